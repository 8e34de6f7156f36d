package model

import "github.com/haierkeys/voice-note-service/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID       int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid" form:"uid"`
	Name      string     `gorm:"column:name;type:varchar(150);not null;default:''" json:"name" form:"name"`
	Email     string     `gorm:"column:email;type:varchar(150);not null;uniqueIndex:idx_user_email" json:"email" form:"email"`
	Password  string     `gorm:"column:password;type:varchar(255);not null" json:"-" form:"password"`
	CreatedAt timex.Time `gorm:"column:created_at;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`

	Notes []Note `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
