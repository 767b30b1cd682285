package dto

// ── 食堂模块 DTO ──

// CreateMenuRequest 创建菜单
type CreateMenuRequest struct {
	DayOfWeek   string `json:"day_of_week" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType    string `json:"meal_type"   binding:"required,oneof=breakfast lunch snacks dinner"`
	Description string `json:"description" binding:"required,max=2000"`
}

// UpdateMenuRequest 更新菜单
type UpdateMenuRequest struct {
	DayOfWeek   *string `json:"day_of_week" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType    *string `json:"meal_type"   binding:"omitempty,oneof=breakfast lunch snacks dinner"`
	Description *string `json:"description" binding:"omitempty,min=1,max=2000"`
}

// MenuListRequest 菜单查询参数
type MenuListRequest struct {
	DayOfWeek string `form:"day_of_week" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	MealType  string `form:"meal_type"   binding:"omitempty,oneof=breakfast lunch snacks dinner"`
}

// MenuResponse 菜单响应
type MenuResponse struct {
	ID          string `json:"id"`
	DayOfWeek   string `json:"day_of_week"`
	MealType    string `json:"meal_type"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateFeedbackRequest 提交评价
type CreateFeedbackRequest struct {
	Rating   int    `json:"rating"    binding:"required,min=1,max=5"`
	Comment  string `json:"comment"   binding:"omitempty,max=2000"`
	MealType string `json:"meal_type" binding:"required,oneof=breakfast lunch snacks dinner"`
}

// FeedbackListRequest 评价列表查询参数
type FeedbackListRequest struct {
	PaginationRequest
	MealType string `form:"meal_type" binding:"omitempty,oneof=breakfast lunch snacks dinner"`
}

// FeedbackResponse 评价响应
type FeedbackResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Rating         int      `json:"rating"`
	Comment        string   `json:"comment"`
	MealType       string   `json:"meal_type"`
	SentimentScore *float64 `json:"sentiment_score"`
	CreatedAt      string   `json:"created_at"`
}

// FeedbackStatsRequest 评价统计查询参数
type FeedbackStatsRequest struct {
	MealType string `form:"meal_type" binding:"omitempty,oneof=breakfast lunch snacks dinner"`
	Days     int    `form:"days"      binding:"omitempty,min=1,max=365"`
}

// FeedbackStatsResponse 评价统计
type FeedbackStatsResponse struct {
	MealType           string           `json:"meal_type"`
	Days               int              `json:"days"`
	AverageRating      float64          `json:"average_rating"`
	TotalFeedback      int64            `json:"total_feedback"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	AverageSentiment   *float64         `json:"average_sentiment"`
}
