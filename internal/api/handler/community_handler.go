package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// CommunityHandler 社区模块 HTTP 处理器
type CommunityHandler struct {
	communitySvc service.CommunityService
}

// NewCommunityHandler 创建 CommunityHandler
func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

// CreatePost 发帖
// POST /api/v1/community/posts
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	post, err := h.communitySvc.CreatePost(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.Created(c, post)
}

// ListPosts 帖子列表
// GET /api/v1/community/posts
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	var req dto.PostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.communitySvc.ListPosts(c.Request.Context(), &req)
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetPost 帖子详情
// GET /api/v1/community/posts/:id
func (h *CommunityHandler) GetPost(c *gin.Context) {
	post, err := h.communitySvc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OK(c, post)
}

// UpdatePost 编辑帖子（作者或版主）
// PUT /api/v1/community/posts/:id
func (h *CommunityHandler) UpdatePost(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	post, err := h.communitySvc.UpdatePost(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OK(c, post)
}

// DeletePost 删除帖子，评论级联删除
// DELETE /api/v1/community/posts/:id
func (h *CommunityHandler) DeletePost(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.communitySvc.DeletePost(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OK(c, nil)
}

// CreateComment 发表评论
// POST /api/v1/community/posts/:id/comments
func (h *CommunityHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	comment, err := h.communitySvc.CreateComment(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments 帖子评论
// GET /api/v1/community/posts/:id/comments
func (h *CommunityHandler) ListComments(c *gin.Context) {
	comments, err := h.communitySvc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": comments})
}

// DeleteComment 删除评论
// DELETE /api/v1/community/comments/:id
func (h *CommunityHandler) DeleteComment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.communitySvc.DeleteComment(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleCommunityError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CommunityHandler) handleCommunityError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, 60001, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, 60002, err.Error())
	default:
		internalError(c, err)
	}
}
