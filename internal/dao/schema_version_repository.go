package dao

import (
	"context"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/model"
	"github.com/haierkeys/voice-note-service/pkg/timex"

	"gorm.io/gorm/clause"
)

type schemaVersionRepository struct {
	dao *Dao
}

func NewSchemaVersionRepository(dao *Dao) domain.SchemaVersionRepository {
	return &schemaVersionRepository{dao: dao}
}

func (r *schemaVersionRepository) Applied(ctx context.Context) ([]string, error) {
	var versions []string
	err := r.dao.DB(ctx).Model(&model.SchemaVersion{}).Order("version").Pluck("version", &versions).Error
	return versions, err
}

func (r *schemaVersionRepository) MarkApplied(ctx context.Context, version string) error {
	return r.dao.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.SchemaVersion{Version: version, AppliedAt: timex.Now()}).Error
}

var _ domain.SchemaVersionRepository = (*schemaVersionRepository)(nil)
