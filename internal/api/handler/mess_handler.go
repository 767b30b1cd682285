package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// MessHandler 食堂模块 HTTP 处理器
type MessHandler struct {
	messSvc service.MessService
}

// NewMessHandler 创建 MessHandler
func NewMessHandler(messSvc service.MessService) *MessHandler {
	return &MessHandler{messSvc: messSvc}
}

// CreateMenu 创建菜单
// POST /api/v1/mess/menu
func (h *MessHandler) CreateMenu(c *gin.Context) {
	var req dto.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	menu, err := h.messSvc.CreateMenu(c.Request.Context(), &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.Created(c, menu)
}

// ListMenu 菜单列表
// GET /api/v1/mess/menu
func (h *MessHandler) ListMenu(c *gin.Context) {
	var req dto.MenuListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.messSvc.ListMenu(c.Request.Context(), &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetMenu 菜单详情
// GET /api/v1/mess/menu/:id
func (h *MessHandler) GetMenu(c *gin.Context) {
	menu, err := h.messSvc.GetMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OK(c, menu)
}

// UpdateMenu 更新菜单
// PUT /api/v1/mess/menu/:id
func (h *MessHandler) UpdateMenu(c *gin.Context) {
	var req dto.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	menu, err := h.messSvc.UpdateMenu(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OK(c, menu)
}

// DeleteMenu 删除菜单
// DELETE /api/v1/mess/menu/:id
func (h *MessHandler) DeleteMenu(c *gin.Context) {
	if err := h.messSvc.DeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OK(c, nil)
}

// CreateFeedback 提交评价
// POST /api/v1/mess/feedback
func (h *MessHandler) CreateFeedback(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	fb, err := h.messSvc.CreateFeedback(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.Created(c, fb)
}

// ListFeedback 评价列表（学生仅能看到自己的）
// GET /api/v1/mess/feedback
func (h *MessHandler) ListFeedback(c *gin.Context) {
	var req dto.FeedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	list, total, err := h.messSvc.ListFeedback(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// FeedbackStats 评价统计
// GET /api/v1/mess/feedback/stats?meal_type=&days=30
func (h *MessHandler) FeedbackStats(c *gin.Context) {
	var req dto.FeedbackStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	stats, err := h.messSvc.FeedbackStats(c.Request.Context(), &req)
	if err != nil {
		h.handleMessError(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *MessHandler) handleMessError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMenuNotFound):
		response.NotFound(c, 70001, err.Error())
	case errors.Is(err, service.ErrMenuExists):
		response.Conflict(c, 70002, err.Error())
	default:
		internalError(c, err)
	}
}
