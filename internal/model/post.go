package model

import "time"

type Post struct {
	BaseModel
	AuthorID      uint   `gorm:"index;not null" json:"authorId"`
	Author        User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content       string `gorm:"type:text;not null" json:"content"`
	ImageURL      string `gorm:"size:255" json:"imageUrl"`
	LikesCount    int    `gorm:"default:0" json:"likesCount"`
	CommentsCount int    `gorm:"default:0" json:"commentsCount"`
}

func (Post) TableName() string {
	return "posts"
}

// PostLike 点赞记录，(user_id, post_id) 唯一，物理删除（不支持软删除）
type PostLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_post;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;constraint:false" json:"user"`
	PostID    uint      `gorm:"uniqueIndex:idx_user_post;not null" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

type PostComment struct {
	BaseModel
	UserID  uint   `gorm:"index;not null" json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	PostID  uint   `gorm:"index;not null" json:"postId"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
