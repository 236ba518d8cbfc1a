package repository

import (
	"context"
	"fmt"
	"social_hub_backend/internal/model"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewNotificationRepository(db *gorm.DB, rdb *redis.Client) *NotificationRepository {
	return &NotificationRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func unreadCacheKey(userID uint) string {
	return fmt.Sprintf("social:notify:unread:%d", userID)
}

func (r *NotificationRepository) invalidateUnread(userID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, unreadCacheKey(userID))
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	err := r.DB.Create(n).Error
	if err == nil {
		r.invalidateUnread(n.UserID)
	}
	return err
}

func (r *NotificationRepository) FindByUser(userID uint, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Sender").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.First(&n, id).Error
	return &n, err
}

func (r *NotificationRepository) MarkRead(id uint, userID uint) error {
	err := r.DB.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err == nil {
		r.invalidateUnread(userID)
	}
	return err
}

// UnreadCount 未读数量 (带缓存)
func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	if r.Redis != nil {
		cached, err := r.Redis.Get(r.ctx, unreadCacheKey(userID)).Result()
		if err == nil {
			if count, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
				return count, nil
			}
		}
	}

	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.Redis != nil {
		r.Redis.Set(r.ctx, unreadCacheKey(userID), count, time.Minute)
	}
	return count, nil
}
