package dao

import (
	"context"
	"time"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/model"
	"github.com/haierkeys/voice-note-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:             m.ID,
		UID:            m.UID,
		OriginalText:   m.OriginalText,
		TranslatedText: m.TranslatedText,
		Language:       m.Language,
		Category:       m.Category,
		IsPinned:       m.IsPinned,
		CreatedAt:      time.Time(m.CreatedAt),
		UpdatedAt:      time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	category := note.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	return &model.Note{
		ID:             note.ID,
		UID:            note.UID,
		OriginalText:   note.OriginalText,
		TranslatedText: note.TranslatedText,
		Language:       note.Language,
		Category:       category,
		IsPinned:       note.IsPinned,
		CreatedAt:      timex.Time(note.CreatedAt),
		UpdatedAt:      timex.Time(note.UpdatedAt),
	}
}

func (r *noteRepository) scoped(ctx context.Context, uid int64) *gorm.DB {
	return r.dao.DB(ctx).Model(&model.Note{}).Where("uid = ?", uid)
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	if err := r.scoped(ctx, uid).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	m := r.toModel(note)
	m.ID = 0
	m.UID = uid
	m.CreatedAt = timex.Time(now())
	m.UpdatedAt = m.CreatedAt

	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 覆盖笔记内容
func (r *noteRepository) Update(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	if err := r.update(r.dao.DB(ctx), note, uid); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID, uid)
}

// UpdateWithRevision 在同一事务中覆盖笔记并写入修订，任一失败整体回滚
func (r *noteRepository) UpdateWithRevision(ctx context.Context, note *domain.Note, rev *domain.NoteRevision, uid int64) (*domain.Note, error) {
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.update(tx, note, uid); err != nil {
			return err
		}
		if rev == nil {
			return nil
		}
		return tx.Create(&model.NoteRevision{
			NoteID:         rev.NoteID,
			UID:            uid,
			OriginalText:   rev.OriginalText,
			TranslatedText: rev.TranslatedText,
			DiffPatch:      rev.DiffPatch,
			CreatedAt:      timex.Time(now()),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID, uid)
}

func (r *noteRepository) update(db *gorm.DB, note *domain.Note, uid int64) error {
	m := r.toModel(note)
	res := db.Model(&model.Note{}).Where("uid = ? AND id = ?", uid, note.ID).Updates(map[string]interface{}{
		"original_text":   m.OriginalText,
		"translated_text": m.TranslatedText,
		"language":        m.Language,
		"category":        m.Category,
		"is_pinned":       m.IsPinned,
		"updated_at":      timex.Time(now()),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) (int64, error) {
	var rows int64
	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ? AND uid = ?", id, uid).Delete(&model.NoteRevision{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{})
		rows = res.RowsAffected
		return res.Error
	})
	return rows, err
}

func (r *noteRepository) filter(ctx context.Context, uid int64, keyword string) *gorm.DB {
	q := r.scoped(ctx, uid)
	if keyword != "" {
		q = q.Where("LOWER(translated_text) LIKE ? ESCAPE '!'", likePattern(keyword))
	}
	return q
}

// List 获取笔记列表
func (r *noteRepository) List(ctx context.Context, uid int64, opt domain.NoteListOption) ([]*domain.Note, error) {
	q := r.filter(ctx, uid, opt.Keyword).
		Order("is_pinned DESC").
		Order("created_at DESC").
		Order("id DESC")
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit).Offset(opt.Offset)
	}

	var ms []*model.Note
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Count 获取笔记数量
func (r *noteRepository) Count(ctx context.Context, uid int64, keyword string) (int64, error) {
	var count int64
	err := r.filter(ctx, uid, keyword).Count(&count).Error
	return count, err
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
