package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Complaint    ComplaintRepository
	Upvote       UpvoteRepository
	Room         RoomRepository
	Allocation   AllocationRepository
	Asset        AssetRepository
	Post         PostRepository
	Comment      CommentRepository
	MessMenu     MessMenuRepository
	MessFeedback MessFeedbackRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Complaint:    NewComplaintRepo(db),
		Upvote:       NewUpvoteRepo(db),
		Room:         NewRoomRepo(db),
		Allocation:   NewAllocationRepo(db),
		Asset:        NewAssetRepo(db),
		Post:         NewPostRepo(db),
		Comment:      NewCommentRepo(db),
		MessMenu:     NewMessMenuRepo(db),
		MessFeedback: NewMessFeedbackRepo(db),
	}
}

// Transaction 在同一事务内执行 fn，fn 收到绑定到该事务的 Repository。
// fn 返回错误时整体回滚。
// 未绑定数据库的聚合（单元测试中手工组装）直接以自身调用 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
