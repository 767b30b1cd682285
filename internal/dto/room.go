package dto

import "time"

// ── 房间模块 DTO ──

// CreateRoomRequest 创建房间
type CreateRoomRequest struct {
	Number   string `json:"number"   binding:"required,max=20"`
	Floor    int    `json:"floor"    binding:"min=0,max=50"`
	Building string `json:"building" binding:"omitempty,max=100"`
	Hostel   string `json:"hostel"   binding:"required,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	Type     string `json:"type"     binding:"required,oneof=single double triple dormitory"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=50"`
}

// UpdateRoomRequest 更新房间
type UpdateRoomRequest struct {
	Number   *string `json:"number"   binding:"omitempty,min=1,max=20"`
	Floor    *int    `json:"floor"    binding:"omitempty,min=0,max=50"`
	Building *string `json:"building" binding:"omitempty,max=100"`
	Hostel   *string `json:"hostel"   binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	Type     *string `json:"type"     binding:"omitempty,oneof=single double triple dormitory"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=50"`
}

// RoomListRequest 房间列表查询参数
type RoomListRequest struct {
	PaginationRequest
	Building  string `form:"building"  binding:"omitempty,max=100"`
	Floor     *int   `form:"floor"     binding:"omitempty,min=0"`
	Type      string `form:"type"      binding:"omitempty,oneof=single double triple dormitory"`
	Hostel    string `form:"hostel"    binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	Available *bool  `form:"available"`
}

// RoomResponse 房间响应
type RoomResponse struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Floor     int    `json:"floor"`
	Building  string `json:"building"`
	Hostel    string `json:"hostel"`
	Type      string `json:"type"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
	CreatedAt string `json:"created_at"`
}

// RoomBrief 嵌入其它资源时的房间摘要
type RoomBrief struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Building string `json:"building"`
	Hostel   string `json:"hostel"`
}

// AvailableBedsResponse 房间空余床位
type AvailableBedsResponse struct {
	RoomID        string `json:"room_id"`
	Capacity      int    `json:"capacity"`
	AvailableBeds []int  `json:"available_beds"`
}

// FreeBedResponse 首个空余床位
type FreeBedResponse struct {
	Room      RoomResponse `json:"room"`
	BedNumber int          `json:"bed_number"`
}

// FreeBedRequest 查找空余床位
type FreeBedRequest struct {
	Hostel string `form:"hostel" binding:"required,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
}

// ── 床位分配 DTO ──

// CreateAllocationRequest 指定床位分配
type CreateAllocationRequest struct {
	UserID    string     `json:"user_id"    binding:"required,uuid"`
	RoomID    string     `json:"room_id"    binding:"required,uuid"`
	BedNumber int        `json:"bed_number" binding:"required"`
	Status    string     `json:"status"     binding:"omitempty,oneof=current past cancelled"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// AutoAllocationRequest 自动分配（首个空余床位）
// Hostel 为空时使用该用户的宿舍楼
type AutoAllocationRequest struct {
	UserID    string     `json:"user_id"    binding:"required,uuid"`
	Hostel    string     `json:"hostel"     binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	StartDate *time.Time `json:"start_date"`
}

// UpdateAllocationRequest 更新分配
type UpdateAllocationRequest struct {
	RoomID    *string    `json:"room_id"    binding:"omitempty,uuid"`
	BedNumber *int       `json:"bed_number"`
	Status    *string    `json:"status"     binding:"omitempty,oneof=current past cancelled"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// AllocationListRequest 分配列表查询参数
type AllocationListRequest struct {
	PaginationRequest
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=current past cancelled"`
	Hostel string `form:"hostel"  binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
}

// AllocationResponse 分配响应
type AllocationResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	RoomID    string     `json:"room_id"`
	BedNumber int        `json:"bed_number"`
	Status    string     `json:"status"`
	StartDate string     `json:"start_date"`
	EndDate   *string    `json:"end_date"`
	User      *UserBrief `json:"user,omitempty"`
	Room      *RoomBrief `json:"room,omitempty"`
	CreatedAt string     `json:"created_at"`
}

// BedConflictDetails 床位冲突时返回的可用床位
type BedConflictDetails struct {
	AvailableBeds []int `json:"available_beds"`
}
