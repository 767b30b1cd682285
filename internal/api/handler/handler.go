package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Complaint *ComplaintHandler
	Export    *ExportHandler
	Room      *RoomHandler
	Asset     *AssetHandler
	Community *CommunityHandler
	Mess      *MessHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Complaint: NewComplaintHandler(svc.Complaint),
		Export:    NewExportHandler(svc.Export),
		Room:      NewRoomHandler(svc.Room),
		Asset:     NewAssetHandler(svc.Asset),
		Community: NewCommunityHandler(svc.Community),
		Mess:      NewMessHandler(svc.Mess),
	}
}

// handleCommonError 处理跨模块的权限与宿舍楼错误；已写入响应时返回 true
func handleCommonError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrNoPermission), errors.Is(err, service.ErrHostelNotInScope):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, service.ErrInvalidHostel):
		response.BadRequest(c, 10006, err.Error())
	case errors.Is(err, service.ErrHostelRequired):
		response.BadRequest(c, 10007, err.Error())
	default:
		return false
	}
	return true
}

// internalError 记录未预期错误并返回 500
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.InternalError(c)
}
