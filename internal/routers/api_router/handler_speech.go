package api_router

import (
	"strings"

	"github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dto"
	pkgapp "github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	apperrors "github.com/haierkeys/voice-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SpeechHandler 语音识别、翻译与语音命令
type SpeechHandler struct {
	*Handler
}

func NewSpeechHandler(a *app.App) *SpeechHandler {
	return &SpeechHandler{Handler: NewHandler(a)}
}

// STT 语音转文字并翻译为英文
// @Summary Speech to text
// @Description 识别上传音频的源语言文本，并翻译为英文
// @Tags Speech
// @Security UserAuthToken
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio"
// @Param languages formData string false "Candidate languages, comma separated BCP 47"
// @Success 200 {object} pkgapp.Res{data=dto.STTResult} "Success"
// @Failure 413 {object} pkgapp.Res "Audio Too Large"
// @Failure 422 {object} pkgapp.Res "No Speech Recognized"
// @Failure 503 {object} pkgapp.Res "Speech Service Unavailable"
// @Router /speech/stt [post]
func (h *SpeechHandler) STT(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SpeechUploadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SpeechHandler.STT.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	audio, err := h.readAudio(c, "file")
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	result, err := h.App.SpeechService.STT(ctx, audio, params.Languages)
	if err != nil {
		h.logError(ctx, "SpeechHandler.STT", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Command 语音命令
// @Summary Voice command
// @Description 识别、翻译、解析并执行语音命令。失败时 data 中仍包含转写与解析结果
// @Tags Speech
// @Security UserAuthToken
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio"
// @Param languages formData string false "Candidate languages, comma separated BCP 47"
// @Success 200 {object} pkgapp.Res{data=dto.SpeechCommandDTO} "Success"
// @Failure 400 {object} pkgapp.Res{data=dto.SpeechCommandDTO} "Unknown Command / Missing Note ID"
// @Failure 404 {object} pkgapp.Res{data=dto.SpeechCommandDTO} "Note Not Found"
// @Router /speech/command [post]
func (h *SpeechHandler) Command(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SpeechUploadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SpeechHandler.Command.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	audio, err := h.readAudio(c, "file")
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	result, err := h.App.SpeechService.Command(ctx, pkgapp.GetUID(c), audio, params.Languages)
	if err != nil {
		h.logError(ctx, "SpeechHandler.Command", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// CommandText 对英文文本执行命令
// @Summary Text command
// @Tags Speech
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.CommandTextRequest true "Command text"
// @Success 200 {object} pkgapp.Res{data=dto.SpeechCommandDTO} "Success"
// @Failure 400 {object} pkgapp.Res{data=dto.SpeechCommandDTO} "Unknown Command / Missing Note ID"
// @Router /speech/command/text [post]
func (h *SpeechHandler) CommandText(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CommandTextRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SpeechHandler.CommandText.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	result, err := h.App.SpeechService.CommandText(ctx, pkgapp.GetUID(c), params.Text)
	if err != nil {
		h.logError(ctx, "SpeechHandler.CommandText", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Languages 默认候选语言
// @Summary Candidate languages
// @Tags Speech
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.LanguagesDTO} "Success"
// @Router /speech/languages [get]
func (h *SpeechHandler) Languages(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.App.SpeechService.Languages()))
}

// Translate 翻译为英文
// @Summary Translate to English
// @Tags Speech
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.TranslateRequest true "Text"
// @Success 200 {object} pkgapp.Res{data=dto.TranslateDTO} "Success"
// @Failure 503 {object} pkgapp.Res "Translation Service Unavailable"
// @Router /translate/ [post]
func (h *SpeechHandler) Translate(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TranslateRequest{}

	// 兼容查询参数 ?text=
	if text, ok := c.GetQuery("text"); ok && c.Request.ContentLength <= 0 {
		if strings.TrimSpace(text) == "" {
			response.ToResponse(code.ErrorInvalidParams.WithDetails("text is required"))
			return
		}
		params.Text = text
	} else {
		valid, errs := pkgapp.BindAndValid(c, params)
		if !valid {
			h.App.Logger().Error("SpeechHandler.Translate.BindAndValid errs", zap.Error(errs))
			response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
			return
		}
	}

	ctx := c.Request.Context()
	result, err := h.App.SpeechService.Translate(ctx, params.Text)
	if err != nil {
		h.logError(ctx, "SpeechHandler.Translate", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}
