package dao

import (
	"context"
	"time"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/model"
	"github.com/haierkeys/voice-note-service/pkg/convert"
	"github.com/haierkeys/voice-note-service/pkg/timex"
)

// noteRevisionRepository 实现 domain.NoteRevisionRepository 接口
type noteRevisionRepository struct {
	dao *Dao
}

// NewNoteRevisionRepository 创建 NoteRevisionRepository 实例
func NewNoteRevisionRepository(dao *Dao) domain.NoteRevisionRepository {
	return &noteRevisionRepository{dao: dao}
}

func (r *noteRevisionRepository) toDomain(m *model.NoteRevision) *domain.NoteRevision {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.NoteRevision{}).(*domain.NoteRevision)
}

// Create 保存一条修订
func (r *noteRevisionRepository) Create(ctx context.Context, rev *domain.NoteRevision) (*domain.NoteRevision, error) {
	m := &model.NoteRevision{
		NoteID:         rev.NoteID,
		UID:            rev.UID,
		OriginalText:   rev.OriginalText,
		TranslatedText: rev.TranslatedText,
		DiffPatch:      rev.DiffPatch,
		CreatedAt:      timex.Time(now()),
	}
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByNoteID 按时间倒序获取修订
func (r *noteRevisionRepository) ListByNoteID(ctx context.Context, noteID, uid int64) ([]*domain.NoteRevision, error) {
	var ms []*model.NoteRevision
	err := r.dao.DB(ctx).
		Where("note_id = ? AND uid = ?", noteID, uid).
		Order("id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.NoteRevision, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// ListNoteIDsExceeding 修订数量超过 keep 的笔记
func (r *noteRevisionRepository) ListNoteIDsExceeding(ctx context.Context, keep int) ([]int64, error) {
	var ids []int64
	err := r.dao.DB(ctx).Model(&model.NoteRevision{}).
		Select("note_id").
		Group("note_id").
		Having("COUNT(*) > ?", keep).
		Pluck("note_id", &ids).Error
	return ids, err
}

// PruneByNoteID 只保留最新的 keep 条
func (r *noteRevisionRepository) PruneByNoteID(ctx context.Context, noteID int64, keep int) (int64, error) {
	var keepIDs []int64
	err := r.dao.DB(ctx).Model(&model.NoteRevision{}).
		Where("note_id = ?", noteID).
		Order("id DESC").
		Limit(keep).
		Pluck("id", &keepIDs).Error
	if err != nil {
		return 0, err
	}

	q := r.dao.DB(ctx).Where("note_id = ?", noteID)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	}
	res := q.Delete(&model.NoteRevision{})
	return res.RowsAffected, res.Error
}

// DeleteBefore 删除早于 before 的修订
func (r *noteRevisionRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.dao.DB(ctx).Where("created_at < ?", timex.Time(before)).Delete(&model.NoteRevision{})
	return res.RowsAffected, res.Error
}

var _ domain.NoteRevisionRepository = (*noteRevisionRepository)(nil)
