package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

// AssetHandler 资产模块 HTTP 处理器
type AssetHandler struct {
	assetSvc service.AssetService
}

// NewAssetHandler 创建 AssetHandler
func NewAssetHandler(assetSvc service.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// CreateAsset 登记资产
// POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	asset, err := h.assetSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.Created(c, asset)
}

// ListAssets 资产列表
// GET /api/v1/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var req dto.AssetListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.assetSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetAsset 资产详情
// GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, asset)
}

// UpdateAsset 更新资产
// PUT /api/v1/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	asset, err := h.assetSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, asset)
}

// DeleteAsset 删除资产
// DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAssetError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AssetHandler) handleAssetError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrAssetNotFound):
		response.NotFound(c, 50001, err.Error())
	default:
		internalError(c, err)
	}
}
