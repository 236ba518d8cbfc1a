package controller

import (
	"errors"
	"strconv"

	"social_hub_backend/internal/service"
	"social_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// 列表接口统一的分页参数，缺省 limit=20
func pagination(ctx *gin.Context) (int, int) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// @Summary 发布动态
// @Description 发布一条动态，内容和图片至少有一项
// @Tags 动态
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param post body service.PostRequest true "动态内容"
// @Success 201 {object} util.Response
// @Router /api/posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.PostService.CreatePost(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrEmptyPostContent) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, view)
}

// @Summary 好友动态流
// @Description 获取自己和已互为好友用户的动态，按发布时间倒序
// @Tags 动态
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response
// @Router /api/posts/feed [get]
func (c *PostController) Feed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, offset := pagination(ctx)
	views, err := c.PostService.GetFeed(claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 用户动态
// @Description 获取指定用户发布的动态
// @Tags 动态
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/posts/user/{userId} [get]
func (c *PostController) UserPosts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	limit, offset := pagination(ctx)
	views, total, err := c.PostService.GetUserPosts(uint(userID), claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:   views,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// @Summary 动态详情
// @Tags 动态
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "动态ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *PostController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的动态ID")
		return
	}

	view, err := c.PostService.GetPost(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 点赞
// @Description 给动态点赞，重复点赞不报错也不重复计数
// @Tags 动态
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "动态ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id}/like [post]
func (c *PostController) Like(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的动态ID")
		return
	}

	if err := c.PostService.Like(claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 取消点赞
// @Tags 动态
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "动态ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id}/like [delete]
func (c *PostController) Unlike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的动态ID")
		return
	}

	if err := c.PostService.Unlike(claims.UserID, uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 发表评论
// @Tags 动态
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "动态ID"
// @Param comment body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response
// @Router /api/posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的动态ID")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.PostService.AddComment(claims.UserID, uint(id), req); err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, nil)
}

// @Summary 评论列表
// @Description 公开接口，无需登录
// @Tags 动态
// @Produce json
// @Param id path int true "动态ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id}/comments [get]
func (c *PostController) Comments(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的动态ID")
		return
	}

	comments, err := c.PostService.GetComments(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, comments)
}
