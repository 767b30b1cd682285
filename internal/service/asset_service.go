package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/repository"
)

var ErrAssetNotFound = errors.New("asset not found")

// AssetService 资产业务接口
type AssetService interface {
	Create(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error)
	List(ctx context.Context, req *dto.AssetListRequest) ([]dto.AssetResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.AssetResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	Delete(ctx context.Context, id string) error
}

type assetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssetService 创建 AssetService 实例
func NewAssetService(repo *repository.Repository, logger *zap.Logger) AssetService {
	return &assetService{repo: repo, logger: logger}
}

func (s *assetService) Create(ctx context.Context, req *dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	asset := &model.Asset{
		Name:          strings.TrimSpace(req.Name),
		AssetType:     strings.TrimSpace(req.AssetType),
		Description:   req.Description,
		Location:      strings.TrimSpace(req.Location),
		Status:        req.Status,
		Condition:     req.Condition,
		PurchaseDate:  req.PurchaseDate,
		WarrantyUntil: req.WarrantyUntil,
	}
	if asset.Status == "" {
		asset.Status = "available"
	}
	if asset.Condition == "" {
		asset.Condition = "good"
	}

	if err := s.repo.Asset.Create(ctx, asset); err != nil {
		s.logger.Error("创建资产失败", zap.String("name", asset.Name), zap.Error(err))
		return nil, err
	}

	resp := toAssetResponse(asset)
	return &resp, nil
}

func (s *assetService) List(ctx context.Context, req *dto.AssetListRequest) ([]dto.AssetResponse, int64, error) {
	filter := repository.AssetFilter{
		AssetType: req.AssetType,
		Status:    req.Status,
		Location:  req.Location,
	}
	assets, total, err := s.repo.Asset.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询资产列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		list = append(list, toAssetResponse(&assets[i]))
	}
	return list, total, nil
}

func (s *assetService) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	asset, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAssetResponse(asset)
	return &resp, nil
}

func (s *assetService) Update(ctx context.Context, id string, req *dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = strings.TrimSpace(*req.Name)
	}
	if req.AssetType != nil {
		asset.AssetType = strings.TrimSpace(*req.AssetType)
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Location != nil {
		asset.Location = strings.TrimSpace(*req.Location)
	}
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if req.Condition != nil {
		asset.Condition = *req.Condition
	}
	if req.PurchaseDate != nil {
		asset.PurchaseDate = req.PurchaseDate
	}
	if req.WarrantyUntil != nil {
		asset.WarrantyUntil = req.WarrantyUntil
	}

	if err := s.repo.Asset.Update(ctx, asset); err != nil {
		s.logger.Error("更新资产失败", zap.String("asset_id", id), zap.Error(err))
		return nil, err
	}

	resp := toAssetResponse(asset)
	return &resp, nil
}

func (s *assetService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Asset.Delete(ctx, id); err != nil {
		s.logger.Error("删除资产失败", zap.String("asset_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *assetService) load(ctx context.Context, id string) (*model.Asset, error) {
	asset, err := s.repo.Asset.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssetNotFound
		}
		s.logger.Error("查询资产失败", zap.String("asset_id", id), zap.Error(err))
		return nil, err
	}
	return asset, nil
}

func toAssetResponse(a *model.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:            a.AssetID,
		Name:          a.Name,
		AssetType:     a.AssetType,
		Description:   a.Description,
		Location:      a.Location,
		Status:        a.Status,
		Condition:     a.Condition,
		PurchaseDate:  formatTimePtr(a.PurchaseDate),
		WarrantyUntil: formatTimePtr(a.WarrantyUntil),
		CreatedAt:     formatTime(a.CreatedAt),
		UpdatedAt:     formatTime(a.UpdatedAt),
	}
}
