package domain

import "time"

// User 用户领域模型
type User struct {
	UID       int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail 判断用户是否有邮箱
func (u *User) HasEmail() bool {
	return u.Email != ""
}
