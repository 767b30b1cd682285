package model

import "time"

// Complaint 维修投诉表，对应 complaints
type Complaint struct {
	ComplaintID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"complaint_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string     `gorm:"type:text;not null"                             json:"description"`
	Category       string     `gorm:"type:varchar(30);not null"                      json:"category"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Priority       string     `gorm:"type:varchar(20);not null;default:'medium'"     json:"priority"`
	SentimentScore *float64   `gorm:"type:double precision"                          json:"sentiment_score"`
	Location       string     `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	Hostel         string     `gorm:"type:varchar(40);not null"                      json:"hostel"`
	UserID         string     `gorm:"type:uuid;not null"                             json:"user_id"`
	AssignedTo     *string    `gorm:"type:uuid"                                      json:"assigned_to"`
	UpvoteCount    int        `gorm:"not null;default:0"                             json:"upvote_count"`
	ResolvedAt     *time.Time `                                                      json:"resolved_at"`
	VersionedModel

	// 关联
	User     *User `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Assignee *User `gorm:"foreignKey:AssignedTo;references:UserID" json:"assignee,omitempty"`
}

// TableName 指定表名
func (Complaint) TableName() string { return "complaints" }

// ComplaintUpvote 投诉点赞表，(complaint_id, user_id) 唯一
type ComplaintUpvote struct {
	UpvoteID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"upvote_id"`
	ComplaintID string    `gorm:"type:uuid;not null"                             json:"complaint_id"`
	UserID      string    `gorm:"type:uuid;not null"                             json:"user_id"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (ComplaintUpvote) TableName() string { return "complaint_upvotes" }
