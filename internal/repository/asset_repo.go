package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/model"
)

// AssetFilter 资产列表过滤条件
type AssetFilter struct {
	AssetType string
	Status    string
	Location  string
}

// AssetRepository 资产数据访问接口
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	List(ctx context.Context, filter AssetFilter, offset, limit int) ([]model.Asset, int64, error)
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id string) error
}

type assetRepo struct {
	db *gorm.DB
}

// NewAssetRepo 创建 AssetRepository 实例
func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepo) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", id).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) List(ctx context.Context, filter AssetFilter, offset, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Asset{})
	if filter.AssetType != "" {
		db = db.Where("asset_type = ?", filter.AssetType)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		db = db.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *assetRepo) Update(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("asset_id = ?", id).
		Delete(&model.Asset{}).Error
}
