package dto

import "github.com/haierkeys/voice-note-service/pkg/timex"

// NoteCreateRequest 创建笔记请求
type NoteCreateRequest struct {
	OriginalText   string `json:"original_text" form:"original_text"`
	TranslatedText string `json:"translated_text" form:"translated_text"`
	Language       string `json:"language" form:"language" binding:"omitempty,max=16,bcp47"`
	Category       string `json:"category" form:"category" binding:"max=50"`
	IsPinned       bool   `json:"is_pinned" form:"is_pinned"`
}

// NoteUpdateRequest 整体覆盖笔记
type NoteUpdateRequest struct {
	NoteCreateRequest
}

// NoteIDRequest 路径中的笔记ID
type NoteIDRequest struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// NoteSearchRequest 搜索参数，q 为空时返回全部
type NoteSearchRequest struct {
	Q string `form:"q" json:"q"`
}

// NoteDTO 笔记
type NoteDTO struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	OriginalText   string     `json:"original_text"`
	TranslatedText string     `json:"translated_text"`
	Language       string     `json:"language"`
	Category       string     `json:"category"`
	IsPinned       bool       `json:"is_pinned"`
	CreatedAt      timex.Time `json:"created_at"`
	UpdatedAt      timex.Time `json:"updated_at"`
}

// NotePageDTO 分页结果
type NotePageDTO struct {
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
	Notes []*NoteDTO `json:"notes"`
}

// NoteRevisionDTO 修订记录
type NoteRevisionDTO struct {
	ID             int64      `json:"id"`
	NoteID         int64      `json:"note_id"`
	OriginalText   string     `json:"original_text"`
	TranslatedText string     `json:"translated_text"`
	DiffPatch      string     `json:"diff_patch"`
	Inserted       int        `json:"inserted"`
	Deleted        int        `json:"deleted"`
	CreatedAt      timex.Time `json:"created_at"`
}

// NoteEventDTO websocket 推送的笔记事件
type NoteEventDTO struct {
	ID   int64    `json:"id"`
	Note *NoteDTO `json:"note,omitempty"`
}
