package model

import "time"

type Group struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   uint   `gorm:"index;not null" json:"createdBy"`
	Creator     User   `gorm:"foreignKey:CreatedBy" json:"creator"`
	MemberCount int    `gorm:"default:1" json:"memberCount"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupRole string

const (
	GroupAdmin  GroupRole = "admin"
	GroupMember GroupRole = "member"
)

// GroupMembership 群组成员，退出时物理删除
type GroupMembership struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   uint      `gorm:"uniqueIndex:idx_group_user;not null" json:"groupId"`
	UserID    uint      `gorm:"uniqueIndex:idx_group_user;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;constraint:false" json:"user,omitempty"`
	Role      GroupRole `gorm:"type:enum('admin','member');default:'member'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (GroupMembership) TableName() string {
	return "group_members"
}

type GroupPost struct {
	BaseModel
	GroupID       uint   `gorm:"index;not null" json:"groupId"`
	AuthorID      uint   `gorm:"index;not null" json:"authorId"`
	Author        User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content       string `gorm:"type:text;not null" json:"content"`
	ImageURL      string `gorm:"size:255" json:"imageUrl"`
	LikesCount    int    `gorm:"default:0" json:"likesCount"`
	CommentsCount int    `gorm:"default:0" json:"commentsCount"`
}

func (GroupPost) TableName() string {
	return "group_posts"
}
