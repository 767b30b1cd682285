package model

import "time"

// Room 房间表，对应 rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Number   string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"number"`
	Floor    int    `gorm:"not null;default:0"                             json:"floor"`
	Building string `gorm:"type:varchar(100);not null;default:''"          json:"building"`
	Hostel   string `gorm:"type:varchar(40);not null"                      json:"hostel"`
	Type     string `gorm:"type:varchar(20);not null"                      json:"type"`
	Capacity int    `gorm:"not null"                                       json:"capacity"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// RoomAllocation 床位分配表，对应 room_allocations
//
// status=current 的记录满足：每个用户至多一条；每个 (room_id, bed_number) 至多一条。
// 两条约束均由部分唯一索引兜底。
type RoomAllocation struct {
	AllocationID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"allocation_id"`
	UserID       string     `gorm:"type:uuid;not null"                             json:"user_id"`
	RoomID       string     `gorm:"type:uuid;not null"                             json:"room_id"`
	BedNumber    int        `gorm:"not null"                                       json:"bed_number"`
	Status       string     `gorm:"type:varchar(20);not null;default:'current'"    json:"status"`
	StartDate    time.Time  `gorm:"not null"                                       json:"start_date"`
	EndDate      *time.Time `                                                      json:"end_date"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID;references:RoomID" json:"room,omitempty"`
}

// TableName 指定表名
func (RoomAllocation) TableName() string { return "room_allocations" }
