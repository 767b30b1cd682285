package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/model"
)

// PostRepository 社区帖子数据访问接口
type PostRepository interface {
	Create(ctx context.Context, post *model.CommunityPost) error
	GetByID(ctx context.Context, id string) (*model.CommunityPost, error)
	List(ctx context.Context, category string, offset, limit int) ([]model.CommunityPost, int64, error)
	Update(ctx context.Context, post *model.CommunityPost) error
	// Delete 删除帖子，评论由外键级联删除
	Delete(ctx context.Context, id string) error
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepo 创建 PostRepository 实例
func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.CommunityPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.CommunityPost, error) {
	var post model.CommunityPost
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) List(ctx context.Context, category string, offset, limit int) ([]model.CommunityPost, int64, error) {
	var posts []model.CommunityPost
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CommunityPost{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepo) Update(ctx context.Context, post *model.CommunityPost) error {
	return r.db.WithContext(ctx).
		Omit("User").
		Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", id).
		Delete(&model.CommunityPost{}).Error
}

// ── Comment ──

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	var list []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&model.Comment{}).Error
}
