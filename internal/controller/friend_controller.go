package controller

import (
	"errors"
	"strconv"

	"social_hub_backend/internal/service"
	"social_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendController(friendshipService *service.FriendshipService) *FriendController {
	return &FriendController{FriendshipService: friendshipService}
}

type FriendRequestBody struct {
	ReceiverID uint `json:"receiverId" binding:"required"`
}

type FriendActionBody struct {
	UserID uint `json:"userId" binding:"required"`
}

// @Summary 发送好友请求
// @Description 向指定用户发送好友请求，对方已发出请求时直接互为好友
// @Tags 好友
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body FriendRequestBody true "接收者"
// @Success 201 {object} util.Response
// @Router /api/friends/request [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.SendRequest(claims.UserID, req.ReceiverID); err != nil {
		switch {
		case errors.Is(err, util.ErrSelfFriendRequest),
			errors.Is(err, util.ErrAlreadyFriends),
			errors.Is(err, util.ErrRequestAlreadySent):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, nil)
}

// @Summary 待处理请求
// @Description 获取发给当前用户的待处理好友请求
// @Tags 好友
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/friends/requests [get]
func (c *FriendController) PendingRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	requests, err := c.FriendshipService.GetPendingRequests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, requests)
}

// @Summary 接受好友请求
// @Tags 好友
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body FriendActionBody true "请求发送者"
// @Success 200 {object} util.Response
// @Router /api/friends/accept [post]
func (c *FriendController) Accept(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendActionBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.Accept(claims.UserID, req.UserID); err != nil {
		if errors.Is(err, util.ErrRequestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 拒绝好友请求
// @Tags 好友
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body FriendActionBody true "请求发送者"
// @Success 200 {object} util.Response
// @Router /api/friends/decline [post]
func (c *FriendController) Decline(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendActionBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.Decline(claims.UserID, req.UserID); err != nil {
		if errors.Is(err, util.ErrRequestNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 好友列表
// @Tags 好友
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "按昵称或邮箱筛选"
// @Success 200 {object} util.Response
// @Router /api/friends [get]
func (c *FriendController) Friends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friends, err := c.FriendshipService.GetFriends(claims.UserID, ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	views := make([]service.ProfileResponse, 0, len(friends))
	for i := range friends {
		views = append(views, service.ProfileOf(&friends[i]))
	}
	util.Success(ctx, views)
}

// @Summary 删除好友
// @Description 解除双方的好友关系
// @Tags 好友
// @Produce json
// @Security ApiKeyAuth
// @Param friendId path int true "好友ID"
// @Success 200 {object} util.Response
// @Router /api/friends/{friendId} [delete]
func (c *FriendController) Remove(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friendID, err := strconv.Atoi(ctx.Param("friendId"))
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	if err := c.FriendshipService.RemoveFriend(claims.UserID, uint(friendID)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
