// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按依赖顺序迁移全部数据表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Note{},
		&NoteRevision{},
		&SchemaVersion{},
	)
}
