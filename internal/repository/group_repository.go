package repository

import (
	"social_hub_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// CreateWithAdmin 同一事务内写入群组和创建者的 admin 成员记录
func (r *GroupRepository) CreateWithAdmin(group *model.Group) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := &model.GroupMembership{
			GroupID: group.ID,
			UserID:  group.CreatedBy,
			Role:    model.GroupAdmin,
		}
		return tx.Create(membership).Error
	})
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	err := r.DB.Preload("Creator").First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) Search(query string, limit int) ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.Where("name LIKE ?", "%"+query+"%").
		Preload("Creator").
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

// GroupsByUser 用户加入的所有群组（带创建者）
func (r *GroupRepository) GroupsByUser(userID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Preload("Creator").
		Find(&groups).Error
	return groups, err
}

// MembersByGroupIDs 按群组ID集合批量取成员（带用户）
func (r *GroupRepository) MembersByGroupIDs(groupIDs []uint) ([]model.GroupMembership, error) {
	var members []model.GroupMembership
	if len(groupIDs) == 0 {
		return members, nil
	}
	err := r.DB.Where("group_id IN ?", groupIDs).
		Preload("User").
		Find(&members).Error
	return members, err
}

func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

// Join 同一事务内写入成员记录并维护 member_count
func (r *GroupRepository) Join(groupID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		membership := &model.GroupMembership{
			GroupID: groupID,
			UserID:  userID,
			Role:    model.GroupMember,
		}
		if err := tx.Create(membership).Error; err != nil {
			return err
		}
		return tx.Model(&model.Group{}).
			Where("id = ?", groupID).
			Update("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// Leave 同一事务内删除成员记录并维护 member_count；非成员为空操作
func (r *GroupRepository) Leave(groupID, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
			Delete(&model.GroupMembership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Group{}).
			Where("id = ?", groupID).
			Update("member_count", gorm.Expr("GREATEST(member_count - 1, 0)")).Error
	})
}

func (r *GroupRepository) CreatePost(post *model.GroupPost) error {
	return r.DB.Create(post).Error
}

func (r *GroupRepository) PostsByGroup(groupID uint, limit, offset int) ([]model.GroupPost, error) {
	var posts []model.GroupPost
	err := r.DB.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Preload("Author").
		Find(&posts).Error
	return posts, err
}
