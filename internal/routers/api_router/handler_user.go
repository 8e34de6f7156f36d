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

// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 用户注册
// @Summary User registration
// @Description 注册新用户并直接签发访问令牌。注册功能可能在配置中被关闭。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TokenDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Email Already Exists"
// @Failure 403 {object} pkgapp.Res "Registration Disabled"
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	token, err := h.App.UserService.Register(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(token))
}

// Login 用户登录
// @Summary User login
// @Description 校验邮箱与密码并返回访问令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TokenDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Invalid Credentials"
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	token, err := h.App.UserService.Login(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(token))
}

// Me 当前用户信息
// @Summary Current user
// @Tags Auth
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	user, err := h.App.UserService.GetInfo(ctx, pkgapp.GetUID(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Me", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// ChangePassword 修改密码
// @Summary Change password
// @Tags Auth
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.UserChangePasswordRequest true "Change Password Parameters"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Old Password Incorrect"
// @Router /auth/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserChangePasswordRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.ChangePassword.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.ChangePassword(ctx, pkgapp.GetUID(c), params); err != nil {
		h.logError(ctx, "UserHandler.ChangePassword", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// DeleteAccount 注销账号
// @Summary Delete account
// @Description 校验密码后删除账号，笔记与修订一并删除
// @Tags Auth
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param params body dto.UserDeleteRequest true "Password"
// @Success 200 {object} pkgapp.Res "Success"
// @Router /auth/account [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.DeleteAccount.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.DeleteAccount(ctx, pkgapp.GetUID(c), params); err != nil {
		h.logError(ctx, "UserHandler.DeleteAccount", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
