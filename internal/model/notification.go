package model

import "time"

type NotificationType string

const (
	NotifyFriendRequest  NotificationType = "friend_request"
	NotifyFriendAccepted NotificationType = "friend_accepted"
	NotifyPostLike       NotificationType = "post_like"
	NotifyPostComment    NotificationType = "post_comment"
	NotifyGroupInvite    NotificationType = "group_invite"
)

// Notification 拉取式通知，由点赞/评论/好友申请等变更附带写入
type Notification struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint             `gorm:"index;not null" json:"userId"` // 接收者
	Type      NotificationType `gorm:"type:enum('friend_request','friend_accepted','post_like','post_comment','group_invite');not null" json:"type"`
	SenderID  *uint            `gorm:"index" json:"senderId"`
	Sender    *User            `gorm:"foreignKey:SenderID;constraint:false" json:"sender,omitempty"`
	PostID    *uint            `json:"postId"`
	GroupID   *uint            `json:"groupId"`
	Message   string           `gorm:"size:255" json:"message"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
