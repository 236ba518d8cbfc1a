package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrUsernameTaken        = errors.New("用户名已被占用")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrPostNotFound         = errors.New("post not found")
	ErrEmptyPostContent     = errors.New("post must have content or an image")
	ErrGroupNotFound        = errors.New("group not found")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrSelfFriendRequest    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends       = errors.New("already friends")
	ErrRequestAlreadySent   = errors.New("friend request already pending")
	ErrAlreadyGroupMember   = errors.New("already a member of this group")
	ErrNotGroupMember       = errors.New("not a member of this group")
	ErrNotificationNotFound = errors.New("notification not found")
)
