package upgrade

import (
	"context"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/model"

	"gorm.io/gorm"
)

// NoteCategoryBackfill 为没有分类的笔记补上默认分类
type NoteCategoryBackfill struct{}

func (m *NoteCategoryBackfill) Version() string {
	return "1.0.0"
}

func (m *NoteCategoryBackfill) Description() string {
	return "Backfill empty note category with General"
}

func (m *NoteCategoryBackfill) Up(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Model(&model.Note{}).
		Where("category = ? OR category IS NULL", "").
		Update("category", domain.DefaultCategory).Error
}

// UserEmailNormalize 邮箱统一为去空白的小写形式，登录时按小写匹配
type UserEmailNormalize struct{}

func (m *UserEmailNormalize) Version() string {
	return "1.0.1"
}

func (m *UserEmailNormalize) Description() string {
	return "Lower-case and trim user email addresses"
}

func (m *UserEmailNormalize) Up(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Model(&model.User{}).
		Where("email <> LOWER(TRIM(email))").
		Update("email", gorm.Expr("LOWER(TRIM(email))")).Error
}
