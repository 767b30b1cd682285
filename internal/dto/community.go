package dto

// ── 社区模块 DTO ──

// CreatePostRequest 发帖
type CreatePostRequest struct {
	Title    string `json:"title"    binding:"required,max=200"`
	Content  string `json:"content"  binding:"required,max=10000"`
	Category string `json:"category" binding:"required,oneof=announcement discussion event lost_found"`
}

// UpdatePostRequest 编辑帖子
type UpdatePostRequest struct {
	Title    *string `json:"title"    binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content"  binding:"omitempty,min=1,max=10000"`
	Category *string `json:"category" binding:"omitempty,oneof=announcement discussion event lost_found"`
}

// PostListRequest 帖子列表查询参数
type PostListRequest struct {
	PaginationRequest
	Category string `form:"category" binding:"omitempty,oneof=announcement discussion event lost_found"`
}

// PostResponse 帖子响应
type PostResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Category       string     `json:"category"`
	SentimentScore *float64   `json:"sentiment_score"`
	UserID         string     `json:"user_id"`
	Author         *UserBrief `json:"author,omitempty"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// CreateCommentRequest 发表评论
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID             string     `json:"id"`
	PostID         string     `json:"post_id"`
	UserID         string     `json:"user_id"`
	Author         *UserBrief `json:"author,omitempty"`
	Content        string     `json:"content"`
	SentimentScore *float64   `json:"sentiment_score"`
	CreatedAt      string     `json:"created_at"`
}
