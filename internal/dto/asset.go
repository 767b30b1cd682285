package dto

import "time"

// ── 资产模块 DTO ──

// CreateAssetRequest 创建资产
type CreateAssetRequest struct {
	Name          string     `json:"name"           binding:"required,max=100"`
	AssetType     string     `json:"asset_type"     binding:"required,max=50"`
	Description   string     `json:"description"    binding:"omitempty,max=2000"`
	Location      string     `json:"location"       binding:"omitempty,max=200"`
	Status        string     `json:"status"         binding:"omitempty,oneof=available in_use under_repair discarded"`
	Condition     string     `json:"condition"      binding:"omitempty,oneof=good fair poor"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	WarrantyUntil *time.Time `json:"warranty_until"`
}

// UpdateAssetRequest 更新资产
type UpdateAssetRequest struct {
	Name          *string    `json:"name"           binding:"omitempty,min=1,max=100"`
	AssetType     *string    `json:"asset_type"     binding:"omitempty,min=1,max=50"`
	Description   *string    `json:"description"    binding:"omitempty,max=2000"`
	Location      *string    `json:"location"       binding:"omitempty,max=200"`
	Status        *string    `json:"status"         binding:"omitempty,oneof=available in_use under_repair discarded"`
	Condition     *string    `json:"condition"      binding:"omitempty,oneof=good fair poor"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	WarrantyUntil *time.Time `json:"warranty_until"`
}

// AssetListRequest 资产列表查询参数
type AssetListRequest struct {
	PaginationRequest
	AssetType string `form:"asset_type" binding:"omitempty,max=50"`
	Status    string `form:"status"     binding:"omitempty,oneof=available in_use under_repair discarded"`
	Location  string `form:"location"   binding:"omitempty,max=200"`
}

// AssetResponse 资产响应
type AssetResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AssetType     string  `json:"asset_type"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	Condition     string  `json:"condition"`
	PurchaseDate  *string `json:"purchase_date"`
	WarrantyUntil *string `json:"warranty_until"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}
