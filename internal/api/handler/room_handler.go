package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// RoomHandler 房间与床位分配 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// ────────────────────── 房间 ──────────────────────

// CreateRoom 创建房间
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.CreateRoom(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, room)
}

// ListRooms 房间列表
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	rooms, total, err := h.roomSvc.ListRooms(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OKPage(c, rooms, total, req.GetPage(), req.GetPageSize())
}

// GetRoom 房间详情
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomSvc.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// UpdateRoom 更新房间
// PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.UpdateRoom(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom 删除房间（存在 current 分配时拒绝）
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.roomSvc.DeleteRoom(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, nil)
}

// AvailableBeds 房间空余床位
// GET /api/v1/rooms/:id/available-beds
func (h *RoomHandler) AvailableBeds(c *gin.Context) {
	result, err := h.roomSvc.AvailableBeds(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, result)
}

// FindFreeBed 宿舍楼内首个空余床位
// GET /api/v1/rooms/free-bed?hostel=
func (h *RoomHandler) FindFreeBed(c *gin.Context) {
	var req dto.FreeBedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.roomSvc.FindFreeBed(c.Request.Context(), actor, req.Hostel)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, result)
}

// ────────────────────── 床位分配 ──────────────────────

// CreateAllocation 指定床位分配
// POST /api/v1/rooms/allocations
func (h *RoomHandler) CreateAllocation(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	alloc, err := h.roomSvc.CreateAllocation(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, alloc)
}

// AutoAllocate 查找并占用首个空余床位
// POST /api/v1/rooms/allocations/auto
func (h *RoomHandler) AutoAllocate(c *gin.Context) {
	var req dto.AutoAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	alloc, err := h.roomSvc.AutoAllocate(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, alloc)
}

// ListAllocations 分配列表（学生仅能看到自己的）
// GET /api/v1/rooms/allocations
func (h *RoomHandler) ListAllocations(c *gin.Context) {
	var req dto.AllocationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	list, total, err := h.roomSvc.ListAllocations(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetAllocation 分配详情
// GET /api/v1/rooms/allocations/:id
func (h *RoomHandler) GetAllocation(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	alloc, err := h.roomSvc.GetAllocation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, alloc)
}

// UpdateAllocation 更新分配（换床或状态流转）
// PUT /api/v1/rooms/allocations/:id
func (h *RoomHandler) UpdateAllocation(c *gin.Context) {
	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	alloc, err := h.roomSvc.UpdateAllocation(c.Request.Context(), actor, c.Param("id"), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, alloc)
}

// DeleteAllocation 删除分配
// DELETE /api/v1/rooms/allocations/:id
func (h *RoomHandler) DeleteAllocation(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.roomSvc.DeleteAllocation(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRoomError 统一处理房间与分配模块业务错误
func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	var bedErr *service.BedTakenError
	if errors.As(err, &bedErr) {
		response.ErrorWithDetails(c, http.StatusConflict, 40007, bedErr.Error(),
			dto.BedConflictDetails{AvailableBeds: bedErr.AvailableBeds})
		return
	}
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 40001, err.Error())
	case errors.Is(err, service.ErrRoomNumberExists):
		response.Conflict(c, 40002, err.Error())
	case errors.Is(err, service.ErrRoomHasAllocations):
		response.Conflict(c, 40003, err.Error())
	case errors.Is(err, service.ErrCapacityBelowOccupied):
		response.BadRequest(c, 40004, err.Error())
	case errors.Is(err, service.ErrAllocationNotFound):
		response.NotFound(c, 40005, err.Error())
	case errors.Is(err, service.ErrBedOutOfRange):
		response.BadRequest(c, 40006, err.Error())
	case errors.Is(err, service.ErrBedTaken):
		response.Conflict(c, 40007, err.Error())
	case errors.Is(err, service.ErrUserAlreadyAllocated):
		response.Conflict(c, 40008, err.Error())
	case errors.Is(err, service.ErrAllocationConflict):
		response.Conflict(c, 40009, err.Error())
	case errors.Is(err, service.ErrNoFreeBed):
		response.NotFound(c, 40010, err.Error())
	case errors.Is(err, service.ErrInvalidStatusTransition):
		response.BadRequest(c, 40011, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20002, err.Error())
	default:
		internalError(c, err)
	}
}
