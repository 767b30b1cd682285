package model

import "time"

// MessMenu 食堂周菜单，(day_of_week, meal_type) 唯一
type MessMenu struct {
	MenuID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"menu_id"`
	DayOfWeek   string `gorm:"type:varchar(10);not null"                      json:"day_of_week"`
	MealType    string `gorm:"type:varchar(20);not null"                      json:"meal_type"`
	Description string `gorm:"type:text;not null"                             json:"description"`
	BaseModel
}

// TableName 指定表名
func (MessMenu) TableName() string { return "mess_menus" }

// MessFeedback 食堂评价
type MessFeedback struct {
	FeedbackID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"feedback_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Rating         int       `gorm:"not null"                                       json:"rating"`
	Comment        string    `gorm:"type:text;not null;default:''"                  json:"comment"`
	MealType       string    `gorm:"type:varchar(20);not null"                      json:"meal_type"`
	SentimentScore *float64  `gorm:"type:double precision"                          json:"sentiment_score"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (MessFeedback) TableName() string { return "mess_feedback" }
