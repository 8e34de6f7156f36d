package model

import "github.com/haierkeys/voice-note-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID            int64      `gorm:"column:uid;not null;index:idx_note_uid_pinned,priority:1" json:"uid" form:"uid"`
	OriginalText   string     `gorm:"column:original_text;type:text" json:"originalText" form:"originalText"`
	TranslatedText string     `gorm:"column:translated_text;type:text" json:"translatedText" form:"translatedText"`
	Language       string     `gorm:"column:language;type:varchar(16);not null;default:''" json:"language" form:"language"`
	Category       string     `gorm:"column:category;type:varchar(50);not null;default:'General'" json:"category" form:"category"`
	IsPinned       bool       `gorm:"column:is_pinned;not null;default:false;index:idx_note_uid_pinned,priority:2" json:"isPinned" form:"isPinned"`
	CreatedAt      timex.Time `gorm:"column:created_at;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt      timex.Time `gorm:"column:updated_at;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`

	Revisions []NoteRevision `gorm:"foreignKey:NoteID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
