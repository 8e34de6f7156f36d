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

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// bindID 解析路径中的笔记 ID
func (h *NoteHandler) bindID(c *gin.Context) (int64, bool) {
	params := &dto.NoteIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		h.App.Logger().Error("NoteHandler.bindID errs", zap.Error(err))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return 0, false
	}
	return params.ID, true
}

// Create 创建笔记
// @Summary Create note
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "Note"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters"
// @Router /notes/ [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Create(ctx, pkgapp.GetUID(c), params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate.WithData(note))
}

// List 全部笔记，置顶优先、新建优先
// @Summary List notes
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "Success"
// @Router /notes/ [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(notes))
}

// Paginated 分页获取笔记
// @Summary Paginated notes
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param page query int false "Page, starts at 1"
// @Param limit query int false "Page size"
// @Success 200 {object} pkgapp.Res{data=dto.NotePageDTO} "Success"
// @Router /notes/paginated [get]
func (h *NoteHandler) Paginated(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	cfg := h.App.Config().App

	page := pkgapp.GetPage(c)
	limit := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	})

	ctx := c.Request.Context()
	result, err := h.App.NoteService.Page(ctx, pkgapp.GetUID(c), page, limit)
	if err != nil {
		h.logError(ctx, "NoteHandler.Paginated", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Search 按英文文本搜索
// @Summary Search notes
// @Description 对 translated_text 做不区分大小写的子串匹配，q 为空返回全部
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param q query string false "Keyword"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "Success"
// @Router /notes/search [get]
func (h *NoteHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteSearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	notes, err := h.App.NoteService.Search(ctx, pkgapp.GetUID(c), params.Q)
	if err != nil {
		h.logError(ctx, "NoteHandler.Search", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(notes))
}

// Get 获取单条笔记
// @Summary Get note
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Note Not Found"
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Get(ctx, pkgapp.GetUID(c), id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(note))
}

// Update 覆盖笔记
// @Summary Update note
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param params body dto.NoteUpdateRequest true "Note"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Note Not Found"
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Update(ctx, pkgapp.GetUID(c), id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(note))
}

// Delete 删除笔记
// @Summary Delete note
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 404 {object} pkgapp.Res "Note Not Found"
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteService.Delete(ctx, pkgapp.GetUID(c), id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}

// Revisions 笔记修订记录
// @Summary Note revisions
// @Description 新的在前，diff_patch 为与下一版本译文之间的补丁
// @Tags Note
// @Security UserAuthToken
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteRevisionDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Note Not Found"
// @Router /notes/{id}/revisions [get]
func (h *NoteHandler) Revisions(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	list, err := h.App.NoteService.Revisions(ctx, pkgapp.GetUID(c), id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Revisions", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(list))
}
