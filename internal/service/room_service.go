package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
)

// ── 分配状态 ──

const (
	AllocationStatusCurrent   = repository.AllocationStatusCurrent
	AllocationStatusPast      = "past"
	AllocationStatusCancelled = "cancelled"
)

// ── 房间模块业务错误 ──

var (
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomNumberExists        = errors.New("room number already exists")
	ErrRoomHasAllocations      = errors.New("room has current allocations")
	ErrCapacityBelowOccupied   = errors.New("capacity is below an occupied bed number")
	ErrAllocationNotFound      = errors.New("allocation not found")
	ErrBedOutOfRange           = errors.New("bed number is outside the room capacity")
	ErrBedTaken                = errors.New("bed is already taken")
	ErrUserAlreadyAllocated    = errors.New("user already has a current allocation")
	ErrAllocationConflict      = errors.New("allocation conflicts with an existing current allocation")
	ErrNoFreeBed               = errors.New("no free bed in hostel")
	ErrInvalidStatusTransition = errors.New("invalid allocation status transition")
)

// BedTakenError 床位已被占用，携带该房间当前空余床位
type BedTakenError struct {
	RoomID        string
	BedNumber     int
	AvailableBeds []int
}

func (e *BedTakenError) Error() string {
	return fmt.Sprintf("bed %d is already taken", e.BedNumber)
}

func (e *BedTakenError) Unwrap() error { return ErrBedTaken }

// RoomService 房间与床位分配业务接口
type RoomService interface {
	CreateRoom(ctx context.Context, actor *permission.Actor, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, actor *permission.Actor, id string) error
	AvailableBeds(ctx context.Context, id string) (*dto.AvailableBedsResponse, error)
	FindFreeBed(ctx context.Context, actor *permission.Actor, hostel string) (*dto.FreeBedResponse, error)

	CreateAllocation(ctx context.Context, actor *permission.Actor, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error)
	AutoAllocate(ctx context.Context, actor *permission.Actor, req *dto.AutoAllocationRequest) (*dto.AllocationResponse, error)
	ListAllocations(ctx context.Context, actor *permission.Actor, req *dto.AllocationListRequest) ([]dto.AllocationResponse, int64, error)
	GetAllocation(ctx context.Context, actor *permission.Actor, id string) (*dto.AllocationResponse, error)
	UpdateAllocation(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateAllocationRequest) (*dto.AllocationResponse, error)
	DeleteAllocation(ctx context.Context, actor *permission.Actor, id string) error
}

type roomService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, now: time.Now, logger: logger}
}

// ────────────────────── 房间 CRUD ──────────────────────

func (s *roomService) CreateRoom(ctx context.Context, actor *permission.Actor, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if !actor.InHostelScope(req.Hostel) {
		return nil, ErrHostelNotInScope
	}

	number := strings.TrimSpace(req.Number)
	if _, err := s.repo.Room.GetByNumber(ctx, number); err == nil {
		return nil, ErrRoomNumberExists
	} else if !isNotFound(err) {
		s.logger.Error("查询房间失败", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	room := &model.Room{
		Number:   number,
		Floor:    req.Floor,
		Building: strings.TrimSpace(req.Building),
		Hostel:   req.Hostel,
		Type:     req.Type,
		Capacity: req.Capacity,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrRoomNumberExists
		}
		s.logger.Error("创建房间失败", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room, 0)
	return &resp, nil
}

func (s *roomService) ListRooms(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error) {
	filter := repository.RoomFilter{
		Building:  req.Building,
		Floor:     req.Floor,
		Type:      req.Type,
		Hostel:    req.Hostel,
		Available: req.Available,
	}

	rooms, total, err := s.repo.Room.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询房间列表失败", zap.Error(err))
		return nil, 0, err
	}

	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.RoomID)
	}
	occupied, err := s.repo.Allocation.CountCurrentByRooms(ctx, ids)
	if err != nil {
		s.logger.Error("统计房间占用失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		list = append(list, toRoomResponse(&rooms[i], occupied[rooms[i].RoomID]))
	}
	return list, total, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.loadRoom(ctx, s.repo, id, false)
	if err != nil {
		return nil, err
	}
	beds, err := s.repo.Allocation.CurrentBeds(ctx, id)
	if err != nil {
		s.logger.Error("查询房间床位失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room, len(beds))
	return &resp, nil
}

// UpdateRoom 房号唯一；容量不得低于当前已占用的最大床位号
func (s *roomService) UpdateRoom(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	var resp dto.RoomResponse

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		room, err := s.loadRoom(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !actor.InHostelScope(room.Hostel) {
			return ErrHostelNotInScope
		}
		if req.Hostel != nil && !actor.InHostelScope(*req.Hostel) {
			return ErrHostelNotInScope
		}

		if req.Number != nil {
			number := strings.TrimSpace(*req.Number)
			if number != room.Number {
				if other, err := tx.Room.GetByNumber(ctx, number); err == nil && other.RoomID != room.RoomID {
					return ErrRoomNumberExists
				} else if err != nil && !isNotFound(err) {
					return err
				}
				room.Number = number
			}
		}

		beds, err := tx.Allocation.CurrentBeds(ctx, id)
		if err != nil {
			return err
		}
		if req.Capacity != nil {
			if len(beds) > 0 && beds[len(beds)-1] > *req.Capacity {
				return ErrCapacityBelowOccupied
			}
			room.Capacity = *req.Capacity
		}
		if req.Floor != nil {
			room.Floor = *req.Floor
		}
		if req.Building != nil {
			room.Building = strings.TrimSpace(*req.Building)
		}
		if req.Hostel != nil {
			room.Hostel = *req.Hostel
		}
		if req.Type != nil {
			room.Type = *req.Type
		}

		if err := tx.Room.Update(ctx, room); err != nil {
			if isDuplicateKey(err) {
				return ErrRoomNumberExists
			}
			return err
		}
		resp = toRoomResponse(room, len(beds))
		return nil
	})
	if err != nil {
		s.logUnexpected("更新房间失败", err, zap.String("room_id", id))
		return nil, err
	}
	return &resp, nil
}

// DeleteRoom 存在 current 分配时拒绝；历史分配随房间级联删除
func (s *roomService) DeleteRoom(ctx context.Context, actor *permission.Actor, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		room, err := s.loadRoom(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !actor.InHostelScope(room.Hostel) {
			return ErrHostelNotInScope
		}

		beds, err := tx.Allocation.CurrentBeds(ctx, id)
		if err != nil {
			return err
		}
		if len(beds) > 0 {
			return ErrRoomHasAllocations
		}
		return tx.Room.Delete(ctx, id)
	})
	if err != nil {
		s.logUnexpected("删除房间失败", err, zap.String("room_id", id))
		return err
	}

	s.logger.Info("删除房间", zap.String("room_id", id), zap.String("operator", actor.UserID))
	return nil
}

// ────────────────────── 床位查询 ──────────────────────

func (s *roomService) AvailableBeds(ctx context.Context, id string) (*dto.AvailableBedsResponse, error) {
	room, err := s.loadRoom(ctx, s.repo, id, false)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.Allocation.CurrentBeds(ctx, id)
	if err != nil {
		s.logger.Error("查询房间床位失败", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	return &dto.AvailableBedsResponse{
		RoomID:        room.RoomID,
		Capacity:      room.Capacity,
		AvailableBeds: freeBeds(room.Capacity, taken),
	}, nil
}

func (s *roomService) FindFreeBed(ctx context.Context, actor *permission.Actor, hostel string) (*dto.FreeBedResponse, error) {
	if !permission.IsValidHostel(hostel) {
		return nil, ErrInvalidHostel
	}
	if !actor.InHostelScope(hostel) {
		return nil, ErrHostelNotInScope
	}

	room, bed, occupied, err := firstFreeBed(ctx, s.repo, hostel, false)
	if err != nil {
		s.logUnexpected("查找空余床位失败", err, zap.String("hostel", hostel))
		return nil, err
	}
	return &dto.FreeBedResponse{
		Room:      toRoomResponse(room, occupied),
		BedNumber: bed,
	}, nil
}

// firstFreeBed 按楼层、房号顺序找第一个未满房间中最小的空床位号（first-fit）。
// lock 为 true 时锁定候选房间后再读取床位，必须在事务内调用。
func firstFreeBed(ctx context.Context, repo *repository.Repository, hostel string, lock bool) (*model.Room, int, int, error) {
	rooms, err := repo.Room.ListByHostel(ctx, hostel)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(rooms) == 0 {
		return nil, 0, 0, ErrNoFreeBed
	}

	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.RoomID)
	}
	occupied, err := repo.Allocation.CountCurrentByRooms(ctx, ids)
	if err != nil {
		return nil, 0, 0, err
	}

	for i := range rooms {
		room := &rooms[i]
		if occupied[room.RoomID] >= room.Capacity {
			continue
		}
		if lock {
			locked, err := repo.Room.GetByIDForUpdate(ctx, room.RoomID)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return nil, 0, 0, err
			}
			room = locked
		}
		taken, err := repo.Allocation.CurrentBeds(ctx, room.RoomID)
		if err != nil {
			return nil, 0, 0, err
		}
		if free := freeBeds(room.Capacity, taken); len(free) > 0 {
			return room, free[0], len(taken), nil
		}
	}
	return nil, 0, 0, ErrNoFreeBed
}

// freeBeds 返回 1..capacity 中未被占用的床位号（升序）
func freeBeds(capacity int, taken []int) []int {
	used := make(map[int]bool, len(taken))
	for _, b := range taken {
		used[b] = true
	}
	out := make([]int, 0, capacity)
	for b := 1; b <= capacity; b++ {
		if !used[b] {
			out = append(out, b)
		}
	}
	return out
}

// ────────────────────── CreateAllocation ──────────────────────

// CreateAllocation 指定床位分配。房间行锁串行化同一房间的并发分配，
// 部分唯一索引兜底，唯一键冲突转换为 ErrAllocationConflict
func (s *roomService) CreateAllocation(ctx context.Context, actor *permission.Actor, req *dto.CreateAllocationRequest) (*dto.AllocationResponse, error) {
	status := req.Status
	if status == "" {
		status = AllocationStatusCurrent
	}

	var allocationID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.User.GetByID(ctx, req.UserID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		room, err := s.loadRoom(ctx, tx, req.RoomID, true)
		if err != nil {
			return err
		}
		if !actor.InHostelScope(room.Hostel) {
			return ErrHostelNotInScope
		}
		if req.BedNumber < 1 || req.BedNumber > room.Capacity {
			return ErrBedOutOfRange
		}

		if status == AllocationStatusCurrent {
			if err := s.checkBedFree(ctx, tx, room, req.BedNumber, ""); err != nil {
				return err
			}
			if err := s.checkUserFree(ctx, tx, req.UserID, ""); err != nil {
				return err
			}
		}

		a := &model.RoomAllocation{
			UserID:    req.UserID,
			RoomID:    room.RoomID,
			BedNumber: req.BedNumber,
			Status:    status,
			StartDate: s.startDate(req.StartDate),
			EndDate:   req.EndDate,
		}
		if status != AllocationStatusCurrent && a.EndDate == nil {
			end := s.now().UTC()
			a.EndDate = &end
		}
		if err := tx.Allocation.Create(ctx, a); err != nil {
			if isDuplicateKey(err) {
				return ErrAllocationConflict
			}
			return err
		}
		allocationID = a.AllocationID
		return nil
	})
	if err != nil {
		s.logUnexpected("创建床位分配失败", err, zap.String("user_id", req.UserID), zap.String("room_id", req.RoomID))
		return nil, err
	}

	s.logger.Info("创建床位分配",
		zap.String("allocation_id", allocationID),
		zap.String("room_id", req.RoomID),
		zap.Int("bed_number", req.BedNumber),
		zap.String("operator", actor.UserID),
	)
	return s.reloadAllocation(ctx, allocationID)
}

// AutoAllocate 查找与分配在同一事务内完成
func (s *roomService) AutoAllocate(ctx context.Context, actor *permission.Actor, req *dto.AutoAllocationRequest) (*dto.AllocationResponse, error) {
	var allocationID string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		user, err := tx.User.GetByID(ctx, req.UserID)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		hostel := req.Hostel
		if hostel == "" {
			hostel = user.Hostel
		}
		if hostel == "" {
			return ErrHostelRequired
		}
		if !actor.InHostelScope(hostel) {
			return ErrHostelNotInScope
		}

		if err := s.checkUserFree(ctx, tx, user.UserID, ""); err != nil {
			return err
		}

		room, bed, _, err := firstFreeBed(ctx, tx, hostel, true)
		if err != nil {
			return err
		}

		a := &model.RoomAllocation{
			UserID:    user.UserID,
			RoomID:    room.RoomID,
			BedNumber: bed,
			Status:    AllocationStatusCurrent,
			StartDate: s.startDate(req.StartDate),
		}
		if err := tx.Allocation.Create(ctx, a); err != nil {
			if isDuplicateKey(err) {
				return ErrAllocationConflict
			}
			return err
		}
		allocationID = a.AllocationID
		return nil
	})
	if err != nil {
		s.logUnexpected("自动分配床位失败", err, zap.String("user_id", req.UserID))
		return nil, err
	}

	s.logger.Info("自动分配床位",
		zap.String("allocation_id", allocationID),
		zap.String("user_id", req.UserID),
		zap.String("operator", actor.UserID),
	)
	return s.reloadAllocation(ctx, allocationID)
}

// checkBedFree 床位被其它 current 分配占用时返回 *BedTakenError；excludeID 为自身分配
func (s *roomService) checkBedFree(ctx context.Context, tx *repository.Repository, room *model.Room, bed int, excludeID string) error {
	taken, err := tx.Allocation.CurrentBeds(ctx, room.RoomID)
	if err != nil {
		return err
	}
	if excludeID != "" {
		own, err := tx.Allocation.GetByID(ctx, excludeID)
		if err != nil {
			return err
		}
		if own.Status == AllocationStatusCurrent && own.RoomID == room.RoomID {
			taken = removeBed(taken, own.BedNumber)
		}
	}
	for _, b := range taken {
		if b == bed {
			return &BedTakenError{
				RoomID:        room.RoomID,
				BedNumber:     bed,
				AvailableBeds: freeBeds(room.Capacity, taken),
			}
		}
	}
	return nil
}

// checkUserFree 用户已有其它 current 分配时返回 ErrUserAlreadyAllocated
func (s *roomService) checkUserFree(ctx context.Context, tx *repository.Repository, userID, excludeID string) error {
	existing, err := tx.Allocation.CurrentByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.AllocationID != excludeID {
		return ErrUserAlreadyAllocated
	}
	return nil
}

func removeBed(beds []int, bed int) []int {
	out := make([]int, 0, len(beds))
	for _, b := range beds {
		if b != bed {
			out = append(out, b)
		}
	}
	return out
}

// ────────────────────── 分配查询 ──────────────────────

// ListAllocations 学生与无分配权限的角色只能看到本人的分配，warden 限本楼
func (s *roomService) ListAllocations(ctx context.Context, actor *permission.Actor, req *dto.AllocationListRequest) ([]dto.AllocationResponse, int64, error) {
	filter := repository.AllocationFilter{
		UserID: req.UserID,
		RoomID: req.RoomID,
		Status: req.Status,
		Hostel: req.Hostel,
	}

	switch {
	case actor.IsSuper():
	case actor.Can(permission.CapAllocationManage):
		h := permission.WardenHostel(actor.Role)
		if req.Hostel != "" && req.Hostel != h {
			return nil, 0, ErrHostelNotInScope
		}
		filter.Hostel = h
	default:
		filter.UserID = actor.UserID
	}

	list, total, err := s.repo.Allocation.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询床位分配列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AllocationResponse, 0, len(list))
	for i := range list {
		result = append(result, toAllocationResponse(&list[i]))
	}
	return result, total, nil
}

func (s *roomService) GetAllocation(ctx context.Context, actor *permission.Actor, id string) (*dto.AllocationResponse, error) {
	a, err := s.loadAllocation(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !canViewAllocation(actor, a) {
		return nil, ErrNoPermission
	}
	resp := toAllocationResponse(a)
	return &resp, nil
}

func canViewAllocation(actor *permission.Actor, a *model.RoomAllocation) bool {
	if a.UserID == actor.UserID || actor.IsSuper() {
		return true
	}
	return actor.Can(permission.CapAllocationManage) && a.Room != nil && actor.InHostelScope(a.Room.Hostel)
}

// ────────────────────── UpdateAllocation ──────────────────────

// UpdateAllocation 房间、床位或状态变化时重新校验；
// 允许的状态转换：current → past/cancelled，past/cancelled → current
func (s *roomService) UpdateAllocation(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateAllocationRequest) (*dto.AllocationResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		a, err := s.loadAllocation(ctx, tx, id)
		if err != nil {
			return err
		}
		if a.Room == nil || !actor.InHostelScope(a.Room.Hostel) {
			return ErrHostelNotInScope
		}

		roomID, bed, status := a.RoomID, a.BedNumber, a.Status
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		if req.BedNumber != nil {
			bed = *req.BedNumber
		}
		if req.Status != nil {
			status = *req.Status
		}
		if !validAllocationTransition(a.Status, status) {
			return ErrInvalidStatusTransition
		}

		room, err := s.loadRoom(ctx, tx, roomID, true)
		if err != nil {
			return err
		}
		if !actor.InHostelScope(room.Hostel) {
			return ErrHostelNotInScope
		}
		if bed < 1 || bed > room.Capacity {
			return ErrBedOutOfRange
		}

		moved := roomID != a.RoomID || bed != a.BedNumber
		reactivated := status == AllocationStatusCurrent && a.Status != AllocationStatusCurrent
		if status == AllocationStatusCurrent && (moved || reactivated) {
			if err := s.checkBedFree(ctx, tx, room, bed, a.AllocationID); err != nil {
				return err
			}
		}
		if reactivated {
			if err := s.checkUserFree(ctx, tx, a.UserID, a.AllocationID); err != nil {
				return err
			}
		}

		a.RoomID = roomID
		a.BedNumber = bed
		a.Status = status
		if req.StartDate != nil {
			a.StartDate = req.StartDate.UTC()
		}
		if req.EndDate != nil {
			end := req.EndDate.UTC()
			a.EndDate = &end
		}
		switch {
		case status != AllocationStatusCurrent && a.EndDate == nil:
			end := s.now().UTC()
			a.EndDate = &end
		case reactivated && req.EndDate == nil:
			a.EndDate = nil
		}
		a.User, a.Room = nil, nil

		if err := tx.Allocation.Update(ctx, a); err != nil {
			if isDuplicateKey(err) {
				return ErrAllocationConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logUnexpected("更新床位分配失败", err, zap.String("allocation_id", id))
		return nil, err
	}
	return s.reloadAllocation(ctx, id)
}

func validAllocationTransition(from, to string) bool {
	if from == to {
		return true
	}
	if from == AllocationStatusCurrent {
		return to == AllocationStatusPast || to == AllocationStatusCancelled
	}
	return to == AllocationStatusCurrent
}

func (s *roomService) DeleteAllocation(ctx context.Context, actor *permission.Actor, id string) error {
	a, err := s.loadAllocation(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if a.Room == nil || !actor.InHostelScope(a.Room.Hostel) {
		return ErrHostelNotInScope
	}

	if err := s.repo.Allocation.Delete(ctx, id); err != nil {
		s.logger.Error("删除床位分配失败", zap.String("allocation_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("删除床位分配", zap.String("allocation_id", id), zap.String("operator", actor.UserID))
	return nil
}

// ── 内部辅助方法 ──

func (s *roomService) loadRoom(ctx context.Context, repo *repository.Repository, id string, lock bool) (*model.Room, error) {
	var (
		room *model.Room
		err  error
	)
	if lock {
		room, err = repo.Room.GetByIDForUpdate(ctx, id)
	} else {
		room, err = repo.Room.GetByID(ctx, id)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) loadAllocation(ctx context.Context, repo *repository.Repository, id string) (*model.RoomAllocation, error) {
	a, err := repo.Allocation.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAllocationNotFound
		}
		s.logger.Error("查询床位分配失败", zap.String("allocation_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *roomService) reloadAllocation(ctx context.Context, id string) (*dto.AllocationResponse, error) {
	a, err := s.loadAllocation(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toAllocationResponse(a)
	return &resp, nil
}

func (s *roomService) startDate(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return s.now().UTC()
}

// logUnexpected 只记录非业务错误
func (s *roomService) logUnexpected(msg string, err error, fields ...zap.Field) {
	for _, known := range []error{
		ErrRoomNotFound, ErrRoomNumberExists, ErrRoomHasAllocations, ErrCapacityBelowOccupied,
		ErrAllocationNotFound, ErrBedOutOfRange, ErrBedTaken, ErrUserAlreadyAllocated,
		ErrAllocationConflict, ErrNoFreeBed, ErrInvalidStatusTransition,
		ErrUserNotFound, ErrHostelRequired, ErrHostelNotInScope,
	} {
		if errors.Is(err, known) {
			return
		}
	}
	s.logger.Error(msg, append(fields, zap.Error(err))...)
}

func toRoomResponse(r *model.Room, occupied int) dto.RoomResponse {
	return dto.RoomResponse{
		ID:        r.RoomID,
		Number:    r.Number,
		Floor:     r.Floor,
		Building:  r.Building,
		Hostel:    r.Hostel,
		Type:      r.Type,
		Capacity:  r.Capacity,
		Occupied:  occupied,
		CreatedAt: formatTime(r.CreatedAt),
	}
}

func toAllocationResponse(a *model.RoomAllocation) dto.AllocationResponse {
	resp := dto.AllocationResponse{
		ID:        a.AllocationID,
		UserID:    a.UserID,
		RoomID:    a.RoomID,
		BedNumber: a.BedNumber,
		Status:    a.Status,
		StartDate: formatTime(a.StartDate),
		EndDate:   formatTimePtr(a.EndDate),
		User:      toUserBrief(a.User),
		CreatedAt: formatTime(a.CreatedAt),
	}
	if a.Room != nil {
		resp.Room = &dto.RoomBrief{
			ID:       a.Room.RoomID,
			Number:   a.Room.Number,
			Building: a.Room.Building,
			Hostel:   a.Room.Hostel,
		}
	}
	return resp
}
