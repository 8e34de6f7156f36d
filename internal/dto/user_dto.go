package dto

import "github.com/haierkeys/voice-note-service/pkg/timex"

// UserCreateRequest 注册请求
type UserCreateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,not_blank,max=150"`
	Email    string `json:"email" form:"email" binding:"required,max=150"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=72"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	Password    string `json:"password" form:"password" binding:"required,min=6,max=72"`
}

// UserDeleteRequest 注销账号需要再次确认密码
type UserDeleteRequest struct {
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO 用户信息
type UserDTO struct {
	UID       int64      `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt timex.Time `json:"created_at"`
	UpdatedAt timex.Time `json:"updated_at"`
}

// TokenDTO 注册与登录的返回
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
}
