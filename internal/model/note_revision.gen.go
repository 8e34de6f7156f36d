package model

import "github.com/haierkeys/voice-note-service/pkg/timex"

const TableNameNoteRevision = "note_revision"

// NoteRevision mapped from table <note_revision>
type NoteRevision struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID         int64      `gorm:"column:note_id;not null;index:idx_note_revision_note" json:"noteId" form:"noteId"`
	UID            int64      `gorm:"column:uid;not null;index:idx_note_revision_uid" json:"uid" form:"uid"`
	OriginalText   string     `gorm:"column:original_text;type:text" json:"originalText" form:"originalText"`
	TranslatedText string     `gorm:"column:translated_text;type:text" json:"translatedText" form:"translatedText"`
	DiffPatch      string     `gorm:"column:diff_patch;type:text" json:"diffPatch" form:"diffPatch"`
	CreatedAt      timex.Time `gorm:"column:created_at;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteRevision's table name
func (*NoteRevision) TableName() string {
	return TableNameNoteRevision
}
