package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/internal/transcribe"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// ComplaintHandler 投诉模块 HTTP 处理器
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

// NewComplaintHandler 创建 ComplaintHandler
func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// CreateComplaint 提交投诉；类别与优先级可自动判定
// POST /api/v1/complaints
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.Created(c, complaint)
}

// CreateVoiceComplaint 语音投诉
// POST /api/v1/complaints/voice
func (h *ComplaintHandler) CreateVoiceComplaint(c *gin.Context) {
	var req dto.VoiceComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.CreateFromVoice(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.Created(c, complaint)
}

// ListComplaints 投诉列表，按可见范围过滤，新的在前
// GET /api/v1/complaints
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	var req dto.ComplaintListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	list, total, err := h.complaintSvc.List(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetComplaint 投诉详情
// GET /api/v1/complaints/:id
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, complaint)
}

// UpdateComplaint 按角色更新投诉字段
// PUT /api/v1/complaints/:id
func (h *ComplaintHandler) UpdateComplaint(c *gin.Context) {
	var req dto.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.Update(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, complaint)
}

// DeleteComplaint 删除投诉
// DELETE /api/v1/complaints/:id
func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.complaintSvc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, nil)
}

// AssignComplaint 指派处理人，状态置为 in_progress
// POST /api/v1/complaints/:id/assign
func (h *ComplaintHandler) AssignComplaint(c *gin.Context) {
	var req dto.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	complaint, err := h.complaintSvc.Assign(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, complaint)
}

// ToggleUpvote 点赞 / 取消点赞
// POST /api/v1/complaints/:id/upvote
func (h *ComplaintHandler) ToggleUpvote(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.ToggleUpvote(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, result)
}

// GetUpvotes 点赞状态
// GET /api/v1/complaints/:id/upvotes
func (h *ComplaintHandler) GetUpvotes(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.GetUpvotes(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, result)
}

// GetSuggestions 处理建议
// GET /api/v1/complaints/:id/suggestions
func (h *ComplaintHandler) GetSuggestions(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.Suggestions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleComplaintError(c, err)
		return
	}

	response.OK(c, result)
}

// handleComplaintError 统一处理投诉模块业务错误
func (h *ComplaintHandler) handleComplaintError(c *gin.Context, err error) {
	var recErr *transcribe.RecognitionError
	if errors.As(err, &recErr) {
		// 识别失败原样返回错误信息
		response.BadRequest(c, 30009, recErr.Error())
		return
	}
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrComplaintNotFound):
		response.NotFound(c, 30001, err.Error())
	case errors.Is(err, service.ErrComplaintForbidden):
		response.Forbidden(c, 30002, err.Error())
	case errors.Is(err, service.ErrStudentNoHostel):
		response.BadRequest(c, 30003, err.Error())
	case errors.Is(err, service.ErrFieldNotAllowed):
		response.Forbidden(c, 30004, err.Error())
	case errors.Is(err, service.ErrAssigneeNotFound):
		response.NotFound(c, 30005, err.Error())
	case errors.Is(err, service.ErrAssigneeInactive):
		response.BadRequest(c, 30006, err.Error())
	case errors.Is(err, service.ErrAssigneeMismatch):
		response.BadRequest(c, 30007, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 30008, err.Error())
	default:
		internalError(c, err)
	}
}
