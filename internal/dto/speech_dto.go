package dto

import (
	"github.com/haierkeys/voice-note-service/internal/command"
	"github.com/haierkeys/voice-note-service/internal/speech"
)

// STTResult 语音识别与翻译结果
type STTResult struct {
	OriginalText string  `json:"original_text"`
	Language     string  `json:"language"`
	EnglishText  string  `json:"english_text"`
	Confidence   float64 `json:"confidence,omitempty"`
}

// CommandTextRequest 已翻译文本的语音命令
type CommandTextRequest struct {
	Text string `json:"text" form:"text" binding:"required,not_blank"`
}

// SpeechUploadRequest 语音上传的附加参数
type SpeechUploadRequest struct {
	Languages string `form:"languages" binding:"omitempty,bcp47"`
}

// CommandInput 命令执行时携带的流水线文本
type CommandInput struct {
	OriginalText   string
	TranslatedText string
	Language       string
}

// SearchHit 搜索命中
type SearchHit struct {
	ID             int64  `json:"id"`
	TranslatedText string `json:"translated_text"`
}

const (
	CommandStatusSuccess = "success"
	CommandStatusError   = "error"
)

// CommandResult 命令执行结果
type CommandResult struct {
	Status  string         `json:"status"`
	Action  command.Action `json:"action"`
	NoteID  *int64         `json:"note_id,omitempty"`
	Results any            `json:"results,omitempty"` // SEARCH 时为 []SearchHit，无命中时为空数组
	Message string         `json:"message,omitempty"`
}

// SpeechCommandDTO 语音命令完整结果
type SpeechCommandDTO struct {
	Transcript *STTResult             `json:"transcript,omitempty"`
	Command    *command.ParsedCommand `json:"command"`
	Result     *CommandResult         `json:"result"`
}

// LanguagesDTO 支持的候选语言
type LanguagesDTO struct {
	Default   []string          `json:"default"`
	Languages []speech.Language `json:"languages"`
}

// TranslateRequest 翻译请求
type TranslateRequest struct {
	Text string `json:"text" form:"text" binding:"required,not_blank"`
}

// TranslateDTO 翻译结果
type TranslateDTO struct {
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	SourceLanguage string `json:"source_language,omitempty"`
}
