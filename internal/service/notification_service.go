package service

import (
	"errors"
	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"
	"social_hub_backend/pkg/logger"
	"social_hub_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

type NotificationResponse struct {
	ID        uint                   `json:"id"`
	Type      model.NotificationType `json:"type"`
	SenderID  *uint                  `json:"senderId,omitempty"`
	Sender    string                 `json:"sender,omitempty"`
	Avatar    string                 `json:"avatar,omitempty"`
	PostID    *uint                  `json:"postId,omitempty"`
	GroupID   *uint                  `json:"groupId,omitempty"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Notify 写入通知。失败只记录日志，不影响触发它的变更。
func (s *NotificationService) Notify(recipientID uint, notifyType model.NotificationType, senderID *uint, postID, groupID *uint, message string) {
	n := &model.Notification{
		UserID:   recipientID,
		Type:     notifyType,
		SenderID: senderID,
		PostID:   postID,
		GroupID:  groupID,
		Message:  message,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Error("failed to create notification",
			zap.Uint("recipient", recipientID),
			zap.String("type", string(notifyType)),
			zap.Error(err))
		return
	}
	monitoring.NotificationCounter.WithLabelValues(string(notifyType)).Inc()
}

func (s *NotificationService) List(userID uint, limit int) ([]NotificationResponse, error) {
	notifications, err := s.NotificationRepo.FindByUser(userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp := NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			SenderID:  n.SenderID,
			PostID:    n.PostID,
			GroupID:   n.GroupID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if n.Sender != nil {
			resp.Sender = n.Sender.DisplayName()
			resp.Avatar = n.Sender.AvatarURL
		}
		responses[i] = resp
	}
	return responses, nil
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.NotificationRepo.UnreadCount(userID)
}

// MarkRead 只有接收者可以标记已读
func (s *NotificationService) MarkRead(id, userID uint) error {
	n, err := s.NotificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.NotificationRepo.MarkRead(id, userID)
}
