package service

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/voice-note-service/internal/domain"
	"github.com/haierkeys/voice-note-service/internal/dto"
	"github.com/haierkeys/voice-note-service/pkg/app"
	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/logger"
	"github.com/haierkeys/voice-note-service/pkg/timex"
	"github.com/haierkeys/voice-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenTypeBearer 返回给客户端的 token 类型
const TokenTypeBearer = "bearer"

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册，成功后直接签发 token
	Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.TokenDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.TokenDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// DeleteAccount 注销账号，级联删除笔记
	DeleteAccount(ctx context.Context, uid int64, params *dto.UserDeleteRequest) error

	// GetAllUIDs 获取所有用户的 UID
	GetAllUIDs(ctx context.Context) ([]int64, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	mail         MailService
	tasks        TaskSubmitter
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例，mail 与 tasks 可以为 nil
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, mail MailService, tasks TaskSubmitter, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		mail:         mail,
		tasks:        tasks,
		logger:       logger,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Name:      user.Name,
		Email:     user.Email,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

func (s *userService) issueToken(user *domain.User, clientIP string) (*dto.TokenDTO, error) {
	token, err := s.tokenManager.Generate(user.UID, user.Name, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	return &dto.TokenDTO{AccessToken: token, TokenType: TokenTypeBearer, UserID: user.UID}, nil
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.TokenDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	email := strings.TrimSpace(params.Email)
	if !util.IsValidEmail(email) {
		return nil, code.ErrorUserEmailNotValid
	}

	// 检查邮箱是否已存在
	exist, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if exist != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 生成密码哈希
	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:     strings.TrimSpace(params.Name),
		Email:    email,
		Password: password,
	})
	if err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if again, _ := s.userRepo.GetByEmail(ctx, email); again != nil {
			return nil, code.ErrorUserEmailAlreadyExists
		}
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	s.sendWelcome(user)

	return s.issueToken(user, clientIP)
}

// sendWelcome 异步发送欢迎邮件，失败不影响注册
func (s *userService) sendWelcome(user *domain.User) {
	if s.mail == nil || s.tasks == nil || s.config == nil || !s.config.User.WelcomeMail || !user.HasEmail() {
		return
	}
	to, name := user.Email, user.Name
	err := s.tasks.SubmitAsync(context.Background(), "welcome-mail", func(ctx context.Context) error {
		return s.mail.SendWelcome(ctx, to, name)
	})
	if err != nil {
		s.logger.Warn("submit welcome mail failed", zap.Int64(logger.FieldUID, user.UID), zap.Error(err))
	}
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(params.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露用户是否存在，统一返回邮箱或密码错误
			return nil, code.ErrorUserLoginPasswordFailed
		}
		return nil, code.ErrorDBQuery
	}

	// 验证密码
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	return s.issueToken(user, clientIP)
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return dbError(err, code.ErrorUserNotFound)
	}

	// 验证旧密码
	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserOldPasswordFailed
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorPasswordNotValid
	}

	if err := s.userRepo.UpdatePassword(ctx, password, uid); err != nil {
		return dbError(err, code.ErrorUserNotFound)
	}
	return nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, dbError(err, code.ErrorUserNotFound)
	}
	return s.domainToDTO(user), nil
}

// DeleteAccount 注销账号
func (s *userService) DeleteAccount(ctx context.Context, uid int64, params *dto.UserDeleteRequest) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return dbError(err, code.ErrorUserNotFound)
	}
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return code.ErrorUserOldPasswordFailed
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return dbError(err, code.ErrorUserNotFound)
	}
	s.logger.Info("account deleted", zap.Int64(logger.FieldUID, uid))
	return nil
}

// GetAllUIDs 获取所有用户的 UID
func (s *userService) GetAllUIDs(ctx context.Context) ([]int64, error) {
	uids, err := s.userRepo.GetAllUIDs(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	return uids, nil
}
