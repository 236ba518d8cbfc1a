package service

import (
	"errors"
	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type FriendshipService struct {
	FriendRepo   *repository.FriendshipRepository
	UserRepo     *repository.UserRepository
	Notification *NotificationService
}

func NewFriendshipService(
	friendRepo *repository.FriendshipRepository,
	userRepo *repository.UserRepository,
	notification *NotificationService,
) *FriendshipService {
	return &FriendshipService{
		FriendRepo:   friendRepo,
		UserRepo:     userRepo,
		Notification: notification,
	}
}

type FriendRequestView struct {
	ID        uint      `json:"id"`
	SenderID  uint      `json:"senderId"`
	Sender    string    `json:"sender"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendRequest 拒绝加自己、已是好友、重复申请
func (s *FriendshipService) SendRequest(senderID, receiverID uint) error {
	if senderID == receiverID {
		return util.ErrSelfFriendRequest
	}

	if _, err := s.UserRepo.FindByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	isFriend, err := s.FriendRepo.AreFriends(senderID, receiverID)
	if err != nil {
		return err
	}
	if isFriend {
		return util.ErrAlreadyFriends
	}

	pending, err := s.FriendRepo.HasPendingRequest(senderID, receiverID)
	if err != nil {
		return err
	}
	if pending {
		return util.ErrRequestAlreadySent
	}

	// 对方已先发申请：直接按接受处理
	reciprocal, err := s.FriendRepo.HasPendingRequest(receiverID, senderID)
	if err != nil {
		return err
	}
	if reciprocal {
		return s.Accept(senderID, receiverID)
	}

	edge := &model.FriendEdge{
		UserID:   senderID,
		FriendID: receiverID,
		Status:   model.FriendPending,
	}
	if err := s.FriendRepo.CreateRequest(edge); err != nil {
		return err
	}

	s.Notification.Notify(receiverID, model.NotifyFriendRequest, &senderID, nil, nil, "sent you a friend request")
	return nil
}

// Accept 入边置 accepted 并写反向边（同一事务），通知发起者
func (s *FriendshipService) Accept(userID, friendID uint) error {
	err := s.FriendRepo.Accept(userID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrRequestNotFound
		}
		return err
	}

	s.Notification.Notify(friendID, model.NotifyFriendAccepted, &userID, nil, nil, "accepted your friend request")
	return nil
}

func (s *FriendshipService) Decline(userID, friendID uint) error {
	err := s.FriendRepo.Decline(userID, friendID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrRequestNotFound
	}
	return err
}

func (s *FriendshipService) GetFriends(userID uint, query string) ([]model.User, error) {
	return s.FriendRepo.GetFriends(userID, query)
}

func (s *FriendshipService) GetPendingRequests(userID uint) ([]FriendRequestView, error) {
	edges, err := s.FriendRepo.FindPendingInbound(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FriendRequestView, len(edges))
	for i, e := range edges {
		views[i] = FriendRequestView{
			ID:        e.ID,
			SenderID:  e.UserID,
			Sender:    e.Sender.DisplayName(),
			Avatar:    e.Sender.AvatarURL,
			CreatedAt: e.CreatedAt,
		}
	}
	return views, nil
}

func (s *FriendshipService) RemoveFriend(userID, friendID uint) error {
	return s.FriendRepo.DeleteFriendship(userID, friendID)
}
