package model

import (
	"strings"
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Username  *string   `gorm:"size:50;unique" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:50" json:"firstName"`
	LastName  string    `gorm:"size:50" json:"lastName"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Interests string    `gorm:"size:500" json:"-"` // 逗号分隔存储，接口层拆分为数组
	AvatarURL string    `gorm:"size:255" json:"avatarUrl"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// InterestList 返回兴趣数组
func (u *User) InterestList() []string {
	if u.Interests == "" {
		return []string{}
	}
	return strings.Split(u.Interests, ",")
}

// DisplayName 优先用户名，其次姓名，最后邮箱
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Email
}
