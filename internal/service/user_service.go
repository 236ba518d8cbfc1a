package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	FriendRepo *repository.FriendshipRepository
	Storage    *StorageService
}

func NewUserService(userRepo *repository.UserRepository, friendRepo *repository.FriendshipRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		FriendRepo: friendRepo,
		Storage:    storage,
	}
}

type ProfileRequest struct {
	Username  *string  `json:"username"`
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Bio       *string  `json:"bio"`
	Interests []string `json:"interests"`
}

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Bio       string    `json:"bio"`
	Interests []string  `json:"interests"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func ProfileOf(u *model.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Interests: u.InterestList(),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateProfile 用户名唯一性在此校验
func (s *UserService) UpdateProfile(userID uint, req ProfileRequest) (*ProfileResponse, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != "" {
		if user.Username == nil || *user.Username != *req.Username {
			existing, err := s.UserRepo.FindByUsername(*req.Username)
			if err == nil && existing.ID != userID {
				return nil, util.ErrUsernameTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		user.Username = req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Interests != nil {
		user.Interests = strings.Join(req.Interests, ",")
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	resp := ProfileOf(user)
	return &resp, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := "avatars/" + uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	user.AvatarURL = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) Search(query string, currentUserID uint) ([]ProfileResponse, error) {
	users, err := s.UserRepo.Search(query, currentUserID, 10)
	if err != nil {
		return nil, err
	}

	responses := make([]ProfileResponse, len(users))
	for i, u := range users {
		responses[i] = ProfileOf(&u)
	}
	return responses, nil
}

// Suggested 好友推荐：排除已是好友的用户和自己
func (s *UserService) Suggested(userID uint, limit int) ([]ProfileResponse, error) {
	friendIDs, err := s.FriendRepo.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	excludeIDs := append(friendIDs, userID)

	users, err := s.UserRepo.FindSuggested(excludeIDs, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ProfileResponse, len(users))
	for i, u := range users {
		responses[i] = ProfileOf(&u)
	}
	return responses, nil
}
