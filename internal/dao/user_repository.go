package dao

import (
	"context"
	"strings"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/model"
	"github.com/haierkeys/voice-note-service/pkg/convert"
	"github.com/haierkeys/voice-note-service/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.User{}).(*domain.User)
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	return convert.StructAssign(user, &model.User{}).(*model.User)
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	if err := r.dao.DB(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.DB(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户，邮箱统一存为小写
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.CreatedAt = timex.Time(now())
	m.UpdatedAt = m.CreatedAt

	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, password string, uid int64) error {
	res := r.dao.DB(ctx).Model(&model.User{}).Where("uid = ?", uid).Updates(map[string]interface{}{
		"password":   password,
		"updated_at": timex.Time(now()),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除用户及其全部笔记和修订
// 外键的 ON DELETE CASCADE 之外显式删除，兼容未开启外键约束的连接
func (r *userRepository) Delete(ctx context.Context, uid int64) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("uid = ?", uid).Delete(&model.NoteRevision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("uid = ?", uid).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetAllUIDs 获取所有用户UID
func (r *userRepository) GetAllUIDs(ctx context.Context) ([]int64, error) {
	var uids []int64
	err := r.dao.DB(ctx).Model(&model.User{}).Order("uid").Pluck("uid", &uids).Error
	return uids, err
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
