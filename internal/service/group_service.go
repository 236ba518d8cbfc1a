package service

import (
	"errors"
	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type GroupService struct {
	GroupRepo    *repository.GroupRepository
	UserRepo     *repository.UserRepository
	Notification *NotificationService
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
) *GroupService {
	return &GroupService{
		GroupRepo:    groupRepo,
		UserRepo:     userRepo,
		Notification: notification,
	}
}

type GroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type GroupMemberView struct {
	UserID   uint            `json:"userId"`
	Name     string          `json:"name"`
	Avatar   string          `json:"avatar"`
	Role     model.GroupRole `json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`
}

type GroupView struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedBy   uint              `json:"createdBy"`
	Creator     string            `json:"creator"`
	MemberCount int               `json:"memberCount"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	Members     []GroupMemberView `json:"members,omitempty"`
}

func groupView(g *model.Group) GroupView {
	return GroupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Creator:     g.Creator.DisplayName(),
		MemberCount: g.MemberCount,
		ImageURL:    g.ImageURL,
		CreatedAt:   g.CreatedAt,
	}
}

func memberViews(members []model.GroupMembership) []GroupMemberView {
	views := make([]GroupMemberView, len(members))
	for i, m := range members {
		views[i] = GroupMemberView{
			UserID:   m.UserID,
			Name:     m.User.DisplayName(),
			Avatar:   m.User.AvatarURL,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
	}
	return views
}

// CreateGroup 创建群组并写入创建者 admin 成员（同一事务）
func (s *GroupService) CreateGroup(creatorID uint, req GroupRequest) (*GroupView, error) {
	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   creatorID,
		MemberCount: 1,
		ImageURL:    req.ImageURL,
	}
	if err := s.GroupRepo.CreateWithAdmin(group); err != nil {
		return nil, err
	}

	created, err := s.GroupRepo.FindByID(group.ID)
	if err != nil {
		return nil, err
	}
	view := groupView(created)
	return &view, nil
}

func (s *GroupService) GetGroup(id uint) (*GroupView, error) {
	group, err := s.GroupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}

	members, err := s.GroupRepo.MembersByGroupIDs([]uint{id})
	if err != nil {
		return nil, err
	}

	view := groupView(group)
	view.Members = memberViews(members)
	return &view, nil
}

// GetUserGroups 用户加入的群组，成员按群组ID集合批量取
func (s *GroupService) GetUserGroups(userID uint) ([]GroupView, error) {
	groups, err := s.GroupRepo.GroupsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return []GroupView{}, nil
	}

	groupIDs := make([]uint, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.ID
	}
	members, err := s.GroupRepo.MembersByGroupIDs(groupIDs)
	if err != nil {
		return nil, err
	}

	membersByGroup := make(map[uint][]model.GroupMembership)
	for _, m := range members {
		membersByGroup[m.GroupID] = append(membersByGroup[m.GroupID], m)
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		views[i] = groupView(&g)
		views[i].Members = memberViews(membersByGroup[g.ID])
	}
	return views, nil
}

func (s *GroupService) Search(query string, limit int) ([]GroupView, error) {
	groups, err := s.GroupRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		views[i] = groupView(&g)
	}
	return views, nil
}

func (s *GroupService) Join(groupID, userID uint) error {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGroupNotFound
		}
		return err
	}

	isMember, err := s.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return util.ErrAlreadyGroupMember
	}

	return s.GroupRepo.Join(groupID, userID)
}

func (s *GroupService) Leave(groupID, userID uint) error {
	return s.GroupRepo.Leave(groupID, userID)
}

// CreateGroupPost 仅成员可发帖
func (s *GroupService) CreateGroupPost(groupID, authorID uint, req PostRequest) (*model.GroupPost, error) {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}

	isMember, err := s.GroupRepo.IsMember(groupID, authorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, util.ErrNotGroupMember
	}

	if req.Content == "" && req.ImageURL == "" {
		return nil, util.ErrEmptyPostContent
	}

	post := &model.GroupPost{
		GroupID:  groupID,
		AuthorID: authorID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.GroupRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *GroupService) GetGroupPosts(groupID uint, limit, offset int) ([]PostView, error) {
	if _, err := s.GroupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}

	posts, err := s.GroupRepo.PostsByGroup(groupID, limit, offset)
	if err != nil {
		return nil, err
	}

	// 群帖复用帖子视图，点赞/评论集合为空
	views := make([]PostView, len(posts))
	for i, p := range posts {
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
			Likes:         []LikeView{},
			Comments:      []CommentView{},
		}
	}
	return views, nil
}
