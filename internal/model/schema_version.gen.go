package model

import "github.com/haierkeys/voice-note-service/pkg/timex"

const TableNameSchemaVersion = "schema_version"

// SchemaVersion mapped from table <schema_version>
type SchemaVersion struct {
	Version   string     `gorm:"column:version;type:varchar(32);primaryKey" json:"version"`
	AppliedAt timex.Time `gorm:"column:applied_at;default:NULL" json:"appliedAt"`
}

// TableName SchemaVersion's table name
func (*SchemaVersion) TableName() string {
	return TableNameSchemaVersion
}
