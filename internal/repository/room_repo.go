package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marwahavanshika/FYP2025/internal/model"
)

// 当前占用数子查询，引用外层 rooms 表
const currentOccupancySQL = `(SELECT COUNT(*) FROM room_allocations a
	WHERE a.room_id = rooms.room_id AND a.status = 'current')`

// RoomFilter 房间列表过滤条件
type RoomFilter struct {
	Building  string
	Floor     *int
	Type      string
	Hostel    string
	Available *bool
}

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	// GetByIDForUpdate 加行锁读取，串行化同一房间的床位分配
	GetByIDForUpdate(ctx context.Context, id string) (*model.Room, error)
	GetByNumber(ctx context.Context, number string) (*model.Room, error)
	List(ctx context.Context, filter RoomFilter, offset, limit int) ([]model.Room, int64, error)
	// ListByHostel 按固定顺序（楼层、房号）返回宿舍楼全部房间
	ListByHostel(ctx context.Context, hostel string) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) GetByNumber(ctx context.Context, number string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, filter RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Room{})
	if filter.Building != "" {
		db = db.Where("building = ?", filter.Building)
	}
	if filter.Floor != nil {
		db = db.Where("floor = ?", *filter.Floor)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Hostel != "" {
		db = db.Where("hostel = ?", filter.Hostel)
	}
	if filter.Available != nil {
		if *filter.Available {
			db = db.Where(currentOccupancySQL + " < rooms.capacity")
		} else {
			db = db.Where(currentOccupancySQL + " >= rooms.capacity")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("hostel ASC, floor ASC, number ASC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *roomRepo) ListByHostel(ctx context.Context, hostel string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("hostel = ?", hostel).
		Order("floor ASC, number ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", id).
		Delete(&model.Room{}).Error
}
