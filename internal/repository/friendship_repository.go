package repository

import (
	"context"
	"fmt"
	"social_hub_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func friendCacheKey(userID uint) string {
	return fmt.Sprintf("social:relation:friends:%d", userID)
}

func (r *FriendshipRepository) invalidateCache(userIDs ...uint) {
	if r.Redis == nil {
		return
	}
	for _, id := range userIDs {
		r.Redis.Del(r.ctx, friendCacheKey(id))
	}
}

func (r *FriendshipRepository) CreateRequest(edge *model.FriendEdge) error {
	return r.DB.Create(edge).Error
}

// FindEdge 查询任意方向的一条边
func (r *FriendshipRepository) FindEdge(userID, friendID uint) (*model.FriendEdge, error) {
	var edge model.FriendEdge
	err := r.DB.Where("user_id = ? AND friend_id = ?", userID, friendID).First(&edge).Error
	return &edge, err
}

// FindPendingInbound 收到的待处理申请（带发送者）
func (r *FriendshipRepository) FindPendingInbound(userID uint) ([]model.FriendEdge, error) {
	var edges []model.FriendEdge
	err := r.DB.Where("friend_id = ? AND status = ?", userID, model.FriendPending).
		Order("created_at DESC").
		Preload("Sender").
		Find(&edges).Error
	return edges, err
}

func (r *FriendshipRepository) HasPendingRequest(senderID, receiverID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.FriendEdge{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", senderID, receiverID, model.FriendPending).
		Count(&count).Error
	return count > 0, err
}

// Accept 将入边置为 accepted 并写入反向边，两步在同一事务内完成，
// 保证 accepted 关系双向边不变式。
func (r *FriendshipRepository) Accept(userID, friendID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.FriendEdge{}).
			Where("user_id = ? AND friend_id = ? AND status = ?", friendID, userID, model.FriendPending).
			Update("status", model.FriendAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		reverse := &model.FriendEdge{
			UserID:   userID,
			FriendID: friendID,
			Status:   model.FriendAccepted,
		}
		return tx.Create(reverse).Error
	})

	if err == nil {
		r.invalidateCache(userID, friendID)
	}
	return err
}

// Decline 将入边置为 declined
func (r *FriendshipRepository) Decline(userID, friendID uint) error {
	res := r.DB.Model(&model.FriendEdge{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", friendID, userID, model.FriendPending).
		Update("status", model.FriendDeclined)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FriendshipRepository) GetFriends(userID uint, query string) ([]model.User, error) {
	var friends []model.User
	db := r.DB.Joins("JOIN friends ON friends.friend_id = users.id").
		Where("friends.user_id = ? AND friends.status = ?", userID, model.FriendAccepted)

	if query != "" {
		searchTerm := "%" + query + "%"
		db = db.Where("(users.username LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ? OR users.email LIKE ?)",
			searchTerm, searchTerm, searchTerm, searchTerm)
	}

	err := db.Find(&friends).Error
	return friends, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.FriendEdge{}).
		Where("user_id = ? AND status = ?", userID, model.FriendAccepted).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := friendCacheKey(userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透：存一个特殊值并设置短过期时间
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FriendshipRepository) AreFriends(userID, friendID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.FriendEdge{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", userID, friendID, model.FriendAccepted).
		Count(&count).Error
	return count > 0, err
}

// DeleteFriendship 同一事务内删除双向边
func (r *FriendshipRepository) DeleteFriendship(userID, friendID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&model.FriendEdge{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).Delete(&model.FriendEdge{}).Error
	})

	if err == nil {
		r.invalidateCache(userID, friendID)
	}
	return err
}
