// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户，邮箱比较不区分大小写
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error

	// Delete 删除用户，笔记与修订记录级联删除
	Delete(ctx context.Context, uid int64) error

	// GetAllUIDs 获取所有用户UID
	GetAllUIDs(ctx context.Context) ([]int64, error)
}

// NoteRepository 笔记仓储接口，所有方法都限定在 uid 范围内
type NoteRepository interface {
	// GetByID 根据ID获取笔记，不存在或不属于该用户时返回 gorm.ErrRecordNotFound
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note, uid int64) (*Note, error)

	// Update 覆盖笔记的文本、语言、分类与置顶状态
	Update(ctx context.Context, note *Note, uid int64) (*Note, error)

	// UpdateWithRevision 覆盖笔记并在同一事务中保存修订，rev 为 nil 时等同 Update
	UpdateWithRevision(ctx context.Context, note *Note, rev *NoteRevision, uid int64) (*Note, error)

	// Delete 删除笔记，返回受影响行数
	Delete(ctx context.Context, id, uid int64) (int64, error)

	// List 置顶优先、新建优先的笔记列表
	List(ctx context.Context, uid int64, opt NoteListOption) ([]*Note, error)

	// Count 满足条件的笔记数量
	Count(ctx context.Context, uid int64, keyword string) (int64, error)
}

// NoteRevisionRepository 笔记修订仓储接口
type NoteRevisionRepository interface {
	// Create 保存一条修订
	Create(ctx context.Context, rev *NoteRevision) (*NoteRevision, error)

	// ListByNoteID 按时间倒序获取笔记的修订记录
	ListByNoteID(ctx context.Context, noteID, uid int64) ([]*NoteRevision, error)

	// ListNoteIDsExceeding 修订数量超过 keep 的笔记ID
	ListNoteIDsExceeding(ctx context.Context, keep int) ([]int64, error)

	// PruneByNoteID 只保留最新的 keep 条修订，返回删除数量
	PruneByNoteID(ctx context.Context, noteID int64, keep int) (int64, error)

	// DeleteBefore 删除早于指定时间的修订
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// SchemaVersionRepository 已执行的升级迁移记录
type SchemaVersionRepository interface {
	// Applied 已执行的版本列表
	Applied(ctx context.Context) ([]string, error)

	// MarkApplied 记录版本已执行
	MarkApplied(ctx context.Context, version string) error
}
