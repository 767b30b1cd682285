package model

import "time"

// Asset 宿舍资产表，对应 assets
type Asset struct {
	AssetID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"asset_id"`
	Name          string     `gorm:"type:varchar(100);not null"                     json:"name"`
	AssetType     string     `gorm:"type:varchar(50);not null"                      json:"asset_type"`
	Description   string     `gorm:"type:text;not null;default:''"                  json:"description"`
	Location      string     `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	Status        string     `gorm:"type:varchar(20);not null;default:'available'"  json:"status"`
	Condition     string     `gorm:"type:varchar(10);not null;default:'good'"       json:"condition"`
	PurchaseDate  *time.Time `                                                      json:"purchase_date"`
	WarrantyUntil *time.Time `                                                      json:"warranty_until"`
	BaseModel
}

// TableName 指定表名
func (Asset) TableName() string { return "assets" }
