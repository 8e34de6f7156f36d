package dto

// AudioUploadDTO 上传结果
type AudioUploadDTO struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// TranscribeRequest 转写已上传的文件
type TranscribeRequest struct {
	Filename  string `form:"filename" json:"filename" binding:"required"`
	Languages string `form:"languages" json:"languages" binding:"omitempty,bcp47"`
}

// TranscriptionDTO 转写结果
type TranscriptionDTO struct {
	Transcription string `json:"transcription"`
	Language      string `json:"language,omitempty"`
}
