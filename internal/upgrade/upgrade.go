// Package upgrade 按版本顺序执行数据升级脚本
package upgrade

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// Migration 定义升级接口，Up 需要可重复执行
type Migration interface {
	Version() string
	Description() string
	Up(ctx context.Context, tx *gorm.DB) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db         *gorm.DB
	versions   domain.SchemaVersionRepository
	logger     *zap.Logger
	migrations []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(db *gorm.DB, versions domain.SchemaVersionRepository, logger *zap.Logger, migrations ...Migration) *MigrationManager {
	if len(migrations) == 0 {
		// 在这里注册所有的升级脚本
		migrations = []Migration{
			&NoteCategoryBackfill{},
			&UserEmailNormalize{},
		}
	}
	return &MigrationManager{db: db, versions: versions, logger: logger, migrations: migrations}
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 执行所有未应用且不晚于 runningVersion 的升级，返回执行数量
func (m *MigrationManager) Run(ctx context.Context, runningVersion string) (int, error) {
	running := canonical(runningVersion)
	if !semver.IsValid(running) {
		return 0, fmt.Errorf("running version %q is not a valid semver", runningVersion)
	}

	list, err := m.versions.Applied(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied versions: %w", err)
	}
	applied := make(map[string]bool, len(list))
	for _, v := range list {
		applied[canonical(v)] = true
	}

	pending := slices.Clone(m.migrations)
	slices.SortStableFunc(pending, func(a, b Migration) int {
		return semver.Compare(canonical(a.Version()), canonical(b.Version()))
	})

	executed := 0
	for _, migration := range pending {
		ver := canonical(migration.Version())
		if !semver.IsValid(ver) {
			return executed, fmt.Errorf("migration %q has an invalid version", migration.Version())
		}
		if applied[ver] {
			continue
		}
		if semver.Compare(ver, running) > 0 {
			m.logger.Info("skip migration newer than running version",
				zap.String("scriptVersion", ver),
				zap.String("runningVersion", running))
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", ver),
			zap.String("desc", migration.Description()))

		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return migration.Up(ctx, tx)
		}); err != nil {
			return executed, fmt.Errorf("failed to apply migration %s: %w", ver, err)
		}
		if err := m.versions.MarkApplied(ctx, ver); err != nil {
			return executed, fmt.Errorf("failed to record version %s: %w", ver, err)
		}
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}
	return executed, nil
}

// Execute 执行升级（便捷方法）
func Execute(ctx context.Context, d *dao.Dao, logger *zap.Logger, runningVersion string) error {
	if d == nil || d.Db == nil {
		return fmt.Errorf("database not initialized")
	}
	if logger == nil {
		return fmt.Errorf("logger not initialized")
	}
	_, err := NewMigrationManager(d.Db, dao.NewSchemaVersionRepository(d), logger).Run(ctx, runningVersion)
	return err
}
