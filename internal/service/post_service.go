package service

import (
	"errors"
	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PostService struct {
	PostRepo     *repository.PostRepository
	FriendRepo   *repository.FriendshipRepository
	UserRepo     *repository.UserRepository
	Notification *NotificationService
}

func NewPostService(
	postRepo *repository.PostRepository,
	friendRepo *repository.FriendshipRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
) *PostService {
	return &PostService{
		PostRepo:     postRepo,
		FriendRepo:   friendRepo,
		UserRepo:     userRepo,
		Notification: notification,
	}
}

type PostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type LikeView struct {
	UserID uint   `json:"userId"`
	User   string `json:"user"`
	Avatar string `json:"avatar"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostView struct {
	ID            uint          `json:"id"`
	AuthorID      uint          `json:"authorId"`
	Author        string        `json:"author"`
	Avatar        string        `json:"avatar"`
	Content       string        `json:"content"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	LikesCount    int           `json:"likesCount"`
	CommentsCount int           `json:"commentsCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	Likes         []LikeView    `json:"likes"`
	Comments      []CommentView `json:"comments"`
	IsLiked       bool          `json:"isLiked"`
}

// assemblePostViews 将批量取出的帖子/点赞/评论按帖子聚合。
// likedIDs 是当前用户点过赞的帖子ID集合。
func assemblePostViews(posts []model.Post, likes []model.PostLike, comments []model.PostComment, likedIDs []uint) []PostView {
	likesByPost := make(map[uint][]LikeView)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], LikeView{
			UserID: l.UserID,
			User:   l.User.DisplayName(),
			Avatar: l.User.AvatarURL,
		})
	}

	commentsByPost := make(map[uint][]CommentView)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], CommentView{
			ID:        c.ID,
			UserID:    c.UserID,
			Author:    c.User.DisplayName(),
			Avatar:    c.User.AvatarURL,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	likedSet := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		likeViews := likesByPost[p.ID]
		if likeViews == nil {
			likeViews = []LikeView{}
		}
		commentViews := commentsByPost[p.ID]
		if commentViews == nil {
			commentViews = []CommentView{}
		}
		views[i] = PostView{
			ID:            p.ID,
			AuthorID:      p.AuthorID,
			Author:        p.Author.DisplayName(),
			Avatar:        p.Author.AvatarURL,
			Content:       p.Content,
			ImageURL:      p.ImageURL,
			LikesCount:    p.LikesCount,
			CommentsCount: p.CommentsCount,
			CreatedAt:     p.CreatedAt,
			Likes:         likeViews,
			Comments:      commentViews,
			IsLiked:       likedSet[p.ID],
		}
	}
	return views
}

// CreatePost 纯图片帖允许，纯空帖拒绝
func (s *PostService) CreatePost(authorID uint, req PostRequest) (*PostView, error) {
	if strings.TrimSpace(req.Content) == "" && req.ImageURL == "" {
		return nil, util.ErrEmptyPostContent
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}

	created, err := s.PostRepo.FindByID(post.ID)
	if err != nil {
		return nil, err
	}
	views := assemblePostViews([]model.Post{*created}, nil, nil, nil)
	return &views[0], nil
}

// GetFeed 自己加 accepted 好友的帖子，时间倒序。点赞/评论按帖子ID集合批量取，
// 不做逐帖查询。
func (s *PostService) GetFeed(userID uint, limit, offset int) ([]PostView, error) {
	friendIDs, err := s.FriendRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(friendIDs, userID)

	return s.postsWithDetails(authorIDs, userID, limit, offset)
}

// GetUserPosts 返回某个作者的动态和总数，供分页响应使用
func (s *PostService) GetUserPosts(authorID, viewerID uint, limit, offset int) ([]PostView, int64, error) {
	total, err := s.PostRepo.CountByAuthor(authorID)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.postsWithDetails([]uint{authorID}, viewerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *PostService) postsWithDetails(authorIDs []uint, viewerID uint, limit, offset int) ([]PostView, error) {
	posts, err := s.PostRepo.FindByAuthors(authorIDs, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likes, err := s.PostRepo.LikesByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.PostRepo.CommentsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	likedIDs, err := s.PostRepo.LikedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	return assemblePostViews(posts, likes, comments, likedIDs), nil
}

func (s *PostService) GetPost(id, viewerID uint) (*PostView, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	postIDs := []uint{post.ID}
	likes, err := s.PostRepo.LikesByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.PostRepo.CommentsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}
	likedIDs, err := s.PostRepo.LikedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	views := assemblePostViews([]model.Post{*post}, likes, comments, likedIDs)
	return &views[0], nil
}

// Like 幂等；给作者写通知（自己给自己点赞不通知）
func (s *PostService) Like(userID, postID uint) error {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPostNotFound
		}
		return err
	}

	created, err := s.PostRepo.Like(userID, postID)
	if err != nil {
		return err
	}

	if created && post.AuthorID != userID {
		s.Notification.Notify(post.AuthorID, model.NotifyPostLike, &userID, &postID, nil, "liked your post")
	}
	return nil
}

func (s *PostService) Unlike(userID, postID uint) error {
	return s.PostRepo.Unlike(userID, postID)
}

// AddComment 给作者写通知（自己评论自己不通知）
func (s *PostService) AddComment(userID, postID uint, req CommentRequest) error {
	post, err := s.PostRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPostNotFound
		}
		return err
	}

	comment := &model.PostComment{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	}
	if err := s.PostRepo.AddComment(comment); err != nil {
		return err
	}

	if post.AuthorID != userID {
		s.Notification.Notify(post.AuthorID, model.NotifyPostComment, &userID, &postID, nil, "commented on your post")
	}
	return nil
}

func (s *PostService) GetComments(postID uint) ([]CommentView, error) {
	comments, err := s.PostRepo.CommentsByPostIDs([]uint{postID})
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{
			ID:        c.ID,
			UserID:    c.UserID,
			Author:    c.User.DisplayName(),
			Avatar:    c.User.AvatarURL,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
	}
	return views, nil
}
