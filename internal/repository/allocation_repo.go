package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/model"
)

// AllocationStatusCurrent 当前有效的分配状态
const AllocationStatusCurrent = "current"

// AllocationFilter 分配列表过滤条件
type AllocationFilter struct {
	UserID string
	RoomID string
	Status string
	Hostel string
}

// AllocationRepository 床位分配数据访问接口
type AllocationRepository interface {
	Create(ctx context.Context, a *model.RoomAllocation) error
	GetByID(ctx context.Context, id string) (*model.RoomAllocation, error)
	List(ctx context.Context, filter AllocationFilter, offset, limit int) ([]model.RoomAllocation, int64, error)
	Update(ctx context.Context, a *model.RoomAllocation) error
	Delete(ctx context.Context, id string) error
	// CurrentByUser 返回用户的 current 分配；没有时返回 gorm.ErrRecordNotFound
	CurrentByUser(ctx context.Context, userID string) (*model.RoomAllocation, error)
	// CurrentBeds 返回房间内 current 分配占用的床位号（升序）
	CurrentBeds(ctx context.Context, roomID string) ([]int, error)
	// CountCurrentByRooms 批量统计房间 current 分配数
	CountCurrentByRooms(ctx context.Context, roomIDs []string) (map[string]int, error)
}

type allocationRepo struct {
	db *gorm.DB
}

// NewAllocationRepo 创建 AllocationRepository 实例
func NewAllocationRepo(db *gorm.DB) AllocationRepository {
	return &allocationRepo{db: db}
}

func (r *allocationRepo) Create(ctx context.Context, a *model.RoomAllocation) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *allocationRepo) GetByID(ctx context.Context, id string) (*model.RoomAllocation, error) {
	var a model.RoomAllocation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("allocation_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *allocationRepo) List(ctx context.Context, filter AllocationFilter, offset, limit int) ([]model.RoomAllocation, int64, error) {
	var list []model.RoomAllocation
	var total int64

	db := r.db.WithContext(ctx).Model(&model.RoomAllocation{})
	if filter.UserID != "" {
		db = db.Where("room_allocations.user_id = ?", filter.UserID)
	}
	if filter.RoomID != "" {
		db = db.Where("room_allocations.room_id = ?", filter.RoomID)
	}
	if filter.Status != "" {
		db = db.Where("room_allocations.status = ?", filter.Status)
	}
	if filter.Hostel != "" {
		db = db.Where("room_allocations.room_id IN (?)",
			r.db.Model(&model.Room{}).Select("room_id").Where("hostel = ?", filter.Hostel))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("User").Preload("Room").
		Order("room_allocations.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *allocationRepo) Update(ctx context.Context, a *model.RoomAllocation) error {
	return r.db.WithContext(ctx).
		Omit("User", "Room").
		Save(a).Error
}

func (r *allocationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("allocation_id = ?", id).
		Delete(&model.RoomAllocation{}).Error
}

func (r *allocationRepo) CurrentByUser(ctx context.Context, userID string) (*model.RoomAllocation, error) {
	var a model.RoomAllocation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, AllocationStatusCurrent).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *allocationRepo) CurrentBeds(ctx context.Context, roomID string) ([]int, error) {
	var beds []int
	err := r.db.WithContext(ctx).
		Model(&model.RoomAllocation{}).
		Where("room_id = ? AND status = ?", roomID, AllocationStatusCurrent).
		Order("bed_number ASC").
		Pluck("bed_number", &beds).Error
	return beds, err
}

func (r *allocationRepo) CountCurrentByRooms(ctx context.Context, roomIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		RoomID string
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&model.RoomAllocation{}).
		Select("room_id, COUNT(*) AS count").
		Where("room_id IN ? AND status = ?", roomIDs, AllocationStatusCurrent).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RoomID] = row.Count
	}
	return out, nil
}
