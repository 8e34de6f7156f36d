package domain

import "time"

// DefaultCategory 未指定分类时使用
const DefaultCategory = "General"

// Note 笔记领域模型
type Note struct {
	ID             int64
	UID            int64
	OriginalText   string
	TranslatedText string
	Language       string
	Category       string
	IsPinned       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NoteRevision 笔记修订记录，保存更新前的文本
type NoteRevision struct {
	ID             int64
	NoteID         int64
	UID            int64
	OriginalText   string
	TranslatedText string
	DiffPatch      string
	CreatedAt      time.Time
}

// NoteEvent 笔记变更事件，推送给同一用户的 websocket 会话
type NoteEvent string

const (
	NoteEventCreated NoteEvent = "NoteCreated"
	NoteEventUpdated NoteEvent = "NoteUpdated"
	NoteEventDeleted NoteEvent = "NoteDeleted"
)

// NoteListOption 列表查询条件
type NoteListOption struct {
	Keyword string // 对 translated_text 做不区分大小写的子串匹配，空表示全部
	Offset  int
	Limit   int // 0 表示不限制
}
