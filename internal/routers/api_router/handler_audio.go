package api_router

import (
	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dto"
	pkgapp "github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	apperrors "github.com/haierkeys/voice-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AudioHandler 音频上传与转写
type AudioHandler struct {
	*Handler
}

func NewAudioHandler(a *app.App) *AudioHandler {
	return &AudioHandler{Handler: NewHandler(a)}
}

// Upload 上传音频
// @Summary Upload audio
// @Description 仅支持 wav、mp3、m4a，保存为 <uuid>.<ext>，配置存储后异步归档
// @Tags Audio
// @Security UserAuthToken
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio"
// @Success 200 {object} pkgapp.Res{data=dto.AudioUploadDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Audio Format"
// @Failure 413 {object} pkgapp.Res "Audio Too Large"
// @Router /upload-audio [post]
func (h *AudioHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	fh, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorAudioMissing)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.ToResponse(code.ErrorAudioMissing.WithDetails(err.Error()))
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	result, err := h.App.AudioService.Upload(ctx, pkgapp.GetUID(c), fh.Filename, fh.Size, f)
	if err != nil {
		h.logError(ctx, "AudioHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Transcribe 转写已上传的音频
// @Summary Transcribe uploaded audio
// @Tags Audio
// @Security UserAuthToken
// @Produce json
// @Param filename query string true "Uploaded file name"
// @Param languages query string false "Candidate languages, comma separated BCP 47"
// @Success 200 {object} pkgapp.Res{data=dto.TranscriptionDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Audio Not Found"
// @Router /transcribe [post]
func (h *AudioHandler) Transcribe(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TranscribeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AudioHandler.Transcribe.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.AudioService.Transcribe(ctx, params.Filename, params.Languages)
	if err != nil {
		h.logError(ctx, "AudioHandler.Transcribe", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
