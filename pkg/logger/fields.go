package logger

// 统一的日志字段命名常量
const (
	FieldTraceID  = "traceId"
	FieldUID      = "uid"
	FieldAction   = "action"
	FieldNoteID   = "noteId"
	FieldPath     = "path"
	FieldDuration = "duration"
	FieldMethod   = "method"
	FieldProvider = "provider"
	FieldLanguage = "language"
	FieldSize     = "size"
	FieldFileKey  = "fileKey"
)
