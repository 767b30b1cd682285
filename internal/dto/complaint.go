package dto

// ── 投诉模块 DTO ──

// CreateComplaintRequest 创建投诉；category/priority 为空或 auto 时自动判定
type CreateComplaintRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Category    string `json:"category"    binding:"omitempty,oneof=auto plumbing electrical cleaning maintenance noise mess food other"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=auto low medium high urgent"`
	Location    string `json:"location"    binding:"omitempty,max=200"`
	Hostel      string `json:"hostel"      binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
}

// VoiceComplaintRequest 语音投诉；audio_data 为 base64 编码的音频
type VoiceComplaintRequest struct {
	AudioData string `json:"audio_data" binding:"required"`
	Location  string `json:"location"   binding:"omitempty,max=200"`
	Hostel    string `json:"hostel"     binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
}

// ComplaintListRequest 投诉列表查询参数
type ComplaintListRequest struct {
	PaginationRequest
	Status       string `form:"status"         binding:"omitempty,oneof=pending in_progress resolved rejected"`
	Category     string `form:"category"       binding:"omitempty,oneof=plumbing electrical cleaning maintenance noise mess food other"`
	Priority     string `form:"priority"       binding:"omitempty,oneof=low medium high urgent"`
	Hostel       string `form:"hostel"         binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	AssignedToMe bool   `form:"assigned_to_me"`
}

// UpdateComplaintRequest 更新投诉；各角色可修改的字段不同
// Version 非空时必须与当前版本一致
type UpdateComplaintRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1,max=5000"`
	Category    *string `json:"category"    binding:"omitempty,oneof=plumbing electrical cleaning maintenance noise mess food other"`
	Status      *string `json:"status"      binding:"omitempty,oneof=pending in_progress resolved rejected"`
	Priority    *string `json:"priority"    binding:"omitempty,oneof=low medium high urgent"`
	Location    *string `json:"location"    binding:"omitempty,max=200"`
	Hostel      *string `json:"hostel"      binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	Version     *int    `json:"version"     binding:"omitempty,min=1"`
}

// AssignComplaintRequest 指派处理人
type AssignComplaintRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required,uuid"`
}

// ComplaintResponse 投诉响应
type ComplaintResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	SentimentScore *float64   `json:"sentiment_score"`
	Location       string     `json:"location"`
	Hostel         string     `json:"hostel"`
	UserID         string     `json:"user_id"`
	AssignedTo     *string    `json:"assigned_to"`
	Assignee       *UserBrief `json:"assignee,omitempty"`
	UpvoteCount    int        `json:"upvote_count"`
	Version        int        `json:"version"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
	ResolvedAt     *string    `json:"resolved_at"`
}

// UpvoteToggleResponse 点赞切换结果
type UpvoteToggleResponse struct {
	ComplaintID string `json:"complaint_id"`
	Upvoted     bool   `json:"upvoted"`
	UpvoteCount int    `json:"upvote_count"`
}

// UpvoteStatusResponse 点赞状态
type UpvoteStatusResponse struct {
	ComplaintID string `json:"complaint_id"`
	UpvoteCount int64  `json:"upvote_count"`
	UpvotedByMe bool   `json:"upvoted_by_me"`
}

// SuggestionResponse 处理建议
type SuggestionResponse struct {
	ComplaintID string   `json:"complaint_id"`
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}
