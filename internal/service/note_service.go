package service

import (
	"context"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/diff"
	"github.com/haierkeys/voice-note-service/pkg/logger"
	"github.com/haierkeys/voice-note-service/pkg/timex"

	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口，所有操作限定在 uid 范围内
type NoteService interface {
	// Create 创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error)

	// List 全部笔记，置顶优先、新建优先
	List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error)

	// Page 分页获取笔记
	Page(ctx context.Context, uid int64, page, limit int) (*dto.NotePageDTO, error)

	// Search 在英文文本中做不区分大小写的子串搜索，keyword 为空返回全部
	Search(ctx context.Context, uid int64, keyword string) ([]*dto.NoteDTO, error)

	// Update 覆盖文本、分类与置顶状态
	Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// UpdateText 只覆盖原文与译文，语音命令使用
	UpdateText(ctx context.Context, uid, id int64, originalText, translatedText, language string) (*dto.NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, uid, id int64) error

	// Revisions 笔记的修订记录
	Revisions(ctx context.Context, uid, id int64) ([]*dto.NoteRevisionDTO, error)

	// PruneRevisions 每条笔记只保留最新的 keep 条修订
	PruneRevisions(ctx context.Context, keep int) (int64, error)
}

type noteService struct {
	noteRepo     domain.NoteRepository
	revisionRepo domain.NoteRevisionRepository
	writer       WriteExecutor
	notifier     NoteNotifier
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewNoteService 创建 NoteService 实例，writer 与 notifier 可以为 nil
func NewNoteService(noteRepo domain.NoteRepository, revisionRepo domain.NoteRevisionRepository, writer WriteExecutor, notifier NoteNotifier, logger *zap.Logger, config *ServiceConfig) NoteService {
	if writer == nil {
		writer = directExecutor{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &noteService{
		noteRepo:     noteRepo,
		revisionRepo: revisionRepo,
		writer:       writer,
		notifier:     notifier,
		logger:       logger,
		config:       config,
	}
}

// NoteToDTO 将领域模型转换为 DTO
func NoteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:             n.ID,
		UserID:         n.UID,
		OriginalText:   n.OriginalText,
		TranslatedText: n.TranslatedText,
		Language:       n.Language,
		Category:       n.Category,
		IsPinned:       n.IsPinned,
		CreatedAt:      timex.Time(n.CreatedAt),
		UpdatedAt:      timex.Time(n.UpdatedAt),
	}
}

func notesToDTO(list []*domain.Note) []*dto.NoteDTO {
	out := make([]*dto.NoteDTO, 0, len(list))
	for _, n := range list {
		out = append(out, NoteToDTO(n))
	}
	return out
}

func (s *noteService) notify(uid int64, event domain.NoteEvent, id int64, note *dto.NoteDTO) {
	s.notifier.PushToUser(uid, string(event), &dto.NoteEventDTO{ID: id, Note: note})
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	category := params.Category
	if category == "" {
		category = s.config.defaultCategory()
	}

	var created *domain.Note
	err := s.writer.Execute(ctx, uid, func() error {
		var err error
		created, err = s.noteRepo.Create(ctx, &domain.Note{
			OriginalText:   params.OriginalText,
			TranslatedText: params.TranslatedText,
			Language:       params.Language,
			Category:       category,
			IsPinned:       params.IsPinned,
		}, uid)
		return err
	})
	if err != nil {
		if qerr := queueError(err); qerr != err {
			return nil, qerr
		}
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}

	note := NoteToDTO(created)
	s.notify(uid, domain.NoteEventCreated, created.ID, note)
	return note, nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, uid, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, dbError(err, code.ErrorNoteNotFound)
	}
	return NoteToDTO(note), nil
}

// List 全部笔记
func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error) {
	list, err := s.noteRepo.List(ctx, uid, domain.NoteListOption{})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notesToDTO(list), nil
}

// Page 分页获取笔记
func (s *noteService) Page(ctx context.Context, uid int64, page, limit int) (*dto.NotePageDTO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if maxSize := s.config.maxPageSize(); limit > maxSize {
		limit = maxSize
	}

	total, err := s.noteRepo.Count(ctx, uid, "")
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	list, err := s.noteRepo.List(ctx, uid, domain.NoteListOption{Offset: (page - 1) * limit, Limit: limit})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	return &dto.NotePageDTO{Page: page, Limit: limit, Total: total, Notes: notesToDTO(list)}, nil
}

// Search 搜索笔记
func (s *noteService) Search(ctx context.Context, uid int64, keyword string) ([]*dto.NoteDTO, error) {
	list, err := s.noteRepo.List(ctx, uid, domain.NoteListOption{Keyword: keyword})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return notesToDTO(list), nil
}

// Update 覆盖笔记，语言为空时保留原值
func (s *noteService) Update(ctx context.Context, uid, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	return s.update(ctx, uid, id, func(n *domain.Note) {
		n.OriginalText = params.OriginalText
		n.TranslatedText = params.TranslatedText
		if params.Language != "" {
			n.Language = params.Language
		}
		n.Category = params.Category
		if n.Category == "" {
			n.Category = s.config.defaultCategory()
		}
		n.IsPinned = params.IsPinned
	})
}

// UpdateText 只覆盖文本
func (s *noteService) UpdateText(ctx context.Context, uid, id int64, originalText, translatedText, language string) (*dto.NoteDTO, error) {
	return s.update(ctx, uid, id, func(n *domain.Note) {
		n.OriginalText = originalText
		n.TranslatedText = translatedText
		if language != "" {
			n.Language = language
		}
	})
}

func (s *noteService) update(ctx context.Context, uid, id int64, mutate func(*domain.Note)) (*dto.NoteDTO, error) {
	var updated *domain.Note
	err := s.writer.Execute(ctx, uid, func() error {
		prev, err := s.noteRepo.GetByID(ctx, id, uid)
		if err != nil {
			return err
		}

		next := *prev
		mutate(&next)

		// 文本有变化时保存修订
		var rev *domain.NoteRevision
		if prev.OriginalText != next.OriginalText || prev.TranslatedText != next.TranslatedText {
			rev = &domain.NoteRevision{
				NoteID:         prev.ID,
				UID:            uid,
				OriginalText:   prev.OriginalText,
				TranslatedText: prev.TranslatedText,
				DiffPatch:      diff.MakePatch(prev.TranslatedText, next.TranslatedText),
			}
		}

		updated, err = s.noteRepo.UpdateWithRevision(ctx, &next, rev, uid)
		return err
	})
	if err != nil {
		if qerr := queueError(err); qerr != err {
			return nil, qerr
		}
		return nil, dbError(err, code.ErrorNoteNotFound)
	}

	note := NoteToDTO(updated)
	s.notify(uid, domain.NoteEventUpdated, id, note)
	return note, nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid, id int64) error {
	var rows int64
	err := s.writer.Execute(ctx, uid, func() error {
		var err error
		rows, err = s.noteRepo.Delete(ctx, id, uid)
		return err
	})
	if err != nil {
		if qerr := queueError(err); qerr != err {
			return qerr
		}
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}
	if rows == 0 {
		return code.ErrorNoteNotFound
	}

	s.notify(uid, domain.NoteEventDeleted, id, nil)
	return nil
}

// Revisions 笔记的修订记录，新的在前
func (s *noteService) Revisions(ctx context.Context, uid, id int64) ([]*dto.NoteRevisionDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, dbError(err, code.ErrorNoteNotFound)
	}

	revs, err := s.revisionRepo.ListByNoteID(ctx, id, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 每条修订相对于它之后的版本计算增删字符数
	out := make([]*dto.NoteRevisionDTO, 0, len(revs))
	next := note.TranslatedText
	for _, r := range revs {
		stats := diff.Summarize(r.TranslatedText, next)
		out = append(out, &dto.NoteRevisionDTO{
			ID:             r.ID,
			NoteID:         r.NoteID,
			OriginalText:   r.OriginalText,
			TranslatedText: r.TranslatedText,
			DiffPatch:      r.DiffPatch,
			Inserted:       stats.Inserted,
			Deleted:        stats.Deleted,
			CreatedAt:      timex.Time(r.CreatedAt),
		})
		next = r.TranslatedText
	}
	return out, nil
}

// PruneRevisions 清理超出保留数量的修订
func (s *noteService) PruneRevisions(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	ids, err := s.revisionRepo.ListNoteIDsExceeding(ctx, keep)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, id := range ids {
		n, err := s.revisionRepo.PruneByNoteID(ctx, id, keep)
		if err != nil {
			return total, err
		}
		s.logger.Debug("note revisions pruned",
			zap.Int64(logger.FieldNoteID, id),
			zap.Int64("deleted", n))
		total += n
	}
	return total, nil
}
