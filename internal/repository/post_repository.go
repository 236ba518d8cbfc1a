package repository

import (
	"errors"
	"social_hub_backend/internal/model"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, id).Error
	return &post, err
}

// FindByAuthors 按作者集合取帖子，时间倒序分页
func (r *PostRepository) FindByAuthors(authorIDs []uint, limit, offset int) ([]model.Post, error) {
	var posts []model.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.DB.Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Preload("Author").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// LikesByPostIDs 按帖子ID集合批量取点赞（带用户），替代逐帖查询
func (r *PostRepository) LikesByPostIDs(postIDs []uint) ([]model.PostLike, error) {
	var likes []model.PostLike
	if len(postIDs) == 0 {
		return likes, nil
	}
	err := r.DB.Where("post_id IN ?", postIDs).
		Preload("User").
		Find(&likes).Error
	return likes, err
}

// CommentsByPostIDs 按帖子ID集合批量取评论（带用户）
func (r *PostRepository) CommentsByPostIDs(postIDs []uint) ([]model.PostComment, error) {
	var comments []model.PostComment
	if len(postIDs) == 0 {
		return comments, nil
	}
	err := r.DB.Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Preload("User").
		Find(&comments).Error
	return comments, err
}

// LikedPostIDs 返回用户在给定帖子集合中点过赞的帖子ID
func (r *PostRepository) LikedPostIDs(userID uint, postIDs []uint) ([]uint, error) {
	var ids []uint
	if len(postIDs) == 0 {
		return ids, nil
	}
	err := r.DB.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *PostRepository) HasLiked(userID, postID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// Like 写入点赞并在同一事务内维护计数；重复点赞为幂等空操作。
// 返回是否产生了新的点赞。
func (r *PostRepository) Like(userID, postID uint) (bool, error) {
	var existing model.PostLike
	result := r.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing)

	if result.Error == nil {
		return false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostLike{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Update("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	if err != nil {
		// 并发点赞时两个请求都能通过存在性检查，
		// 落败方撞唯一索引，同样按幂等空操作处理
		if isDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Unlike 删除点赞并在同一事务内维护计数；未点赞时为空操作，计数不会为负。
func (r *PostRepository) Unlike(userID, postID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Update("likes_count", gorm.Expr("GREATEST(likes_count - 1, 0)")).Error
	})
}

// AddComment 写入评论并在同一事务内维护计数
func (r *PostRepository) AddComment(comment *model.PostComment) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			Update("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}
