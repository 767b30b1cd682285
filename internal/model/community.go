package model

// CommunityPost 社区帖子表，对应 community_posts
type CommunityPost struct {
	PostID         string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"post_id"`
	Title          string   `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string   `gorm:"type:text;not null"                             json:"content"`
	Category       string   `gorm:"type:varchar(20);not null"                      json:"category"`
	SentimentScore *float64 `gorm:"type:double precision"                          json:"sentiment_score"`
	UserID         string   `gorm:"type:uuid;not null"                             json:"user_id"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (CommunityPost) TableName() string { return "community_posts" }

// Comment 帖子评论表，随帖子级联删除
type Comment struct {
	CommentID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	PostID         string   `gorm:"type:uuid;not null"                             json:"post_id"`
	UserID         string   `gorm:"type:uuid;not null"                             json:"user_id"`
	Content        string   `gorm:"type:text;not null"                             json:"content"`
	SentimentScore *float64 `gorm:"type:double precision"                          json:"sentiment_score"`
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }
