package controller

import (
	"errors"
	"strconv"

	"social_hub_backend/internal/service"
	"social_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
}

func NewGroupController(groupService *service.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// @Summary 创建兴趣小组
// @Description 创建小组，创建者自动成为管理员
// @Tags 小组
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group body service.GroupRequest true "小组信息"
// @Success 201 {object} util.Response
// @Router /api/groups [post]
func (c *GroupController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.GroupService.CreateGroup(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, view)
}

// @Summary 我的小组
// @Tags 小组
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/groups/user [get]
func (c *GroupController) UserGroups(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.GroupService.GetUserGroups(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 搜索小组
// @Description 公开接口，无需登录
// @Tags 小组
// @Produce json
// @Param q query string true "关键字"
// @Param limit query int false "数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/groups/search [get]
func (c *GroupController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	views, err := c.GroupService.Search(query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// @Summary 小组详情
// @Description 获取小组信息及成员列表
// @Tags 小组
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "小组ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id} [get]
func (c *GroupController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的小组ID")
		return
	}

	view, err := c.GroupService.GetGroup(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrGroupNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 加入小组
// @Tags 小组
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "小组ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/join [post]
func (c *GroupController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的小组ID")
		return
	}

	if err := c.GroupService.Join(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrGroupNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyGroupMember):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// @Summary 退出小组
// @Tags 小组
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "小组ID"
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/leave [post]
func (c *GroupController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的小组ID")
		return
	}

	if err := c.GroupService.Leave(uint(id), claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 发布小组动态
// @Description 小组成员在小组内发布动态
// @Tags 小组
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "小组ID"
// @Param post body service.PostRequest true "动态内容"
// @Success 201 {object} util.Response
// @Router /api/groups/{id}/posts [post]
func (c *GroupController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的小组ID")
		return
	}

	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.GroupService.CreateGroupPost(uint(id), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGroupNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNotGroupMember):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrEmptyPostContent):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, post)
}

// @Summary 小组动态列表
// @Tags 小组
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "小组ID"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response
// @Router /api/groups/{id}/posts [get]
func (c *GroupController) Posts(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的小组ID")
		return
	}

	limit, offset := pagination(ctx)
	views, err := c.GroupService.GetGroupPosts(uint(id), limit, offset)
	if err != nil {
		if errors.Is(err, util.ErrGroupNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}
