package model

// User 用户表，对应 users
// Hostel 为空字符串表示未分配宿舍楼
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	PhoneNumber  string `gorm:"type:varchar(30);not null;default:''"           json:"phone_number"`
	Role         string `gorm:"type:varchar(40);not null;default:'student'"    json:"role"`
	Hostel       string `gorm:"type:varchar(40);not null;default:''"           json:"hostel"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
