package model

import "time"

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendDeclined FriendStatus = "declined"
)

// FriendEdge 好友关系的单向边。好友关系接受后以两条方向相反的边存在，
// 两条边在同一事务内写入。
type FriendEdge struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint         `gorm:"index:idx_user_friend;not null" json:"userId"`
	FriendID  uint         `gorm:"index:idx_user_friend;not null" json:"friendId"`
	Friend    User         `gorm:"foreignKey:FriendID;constraint:false" json:"friend,omitempty"`
	Sender    User         `gorm:"foreignKey:UserID;constraint:false" json:"sender,omitempty"`
	Status    FriendStatus `gorm:"type:enum('pending','accepted','declined');default:'pending'" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`
}

func (FriendEdge) TableName() string {
	return "friends"
}
