package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marwahavanshika/FYP2025/internal/model"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
)

// ComplaintFilter 投诉列表过滤条件
// Scope* 字段由调用者角色决定可见范围，其余为查询参数
type ComplaintFilter struct {
	Status     string
	Category   string
	Priority   string
	Hostel     string
	AssignedTo string

	// Scope* 之间取并集；全部为空表示不限范围
	ScopeHostel     string
	ScopeOwner      string
	ScopeCategories []string
	ScopeAssignee   string
}

// ComplaintRepository 投诉数据访问接口
type ComplaintRepository interface {
	Create(ctx context.Context, c *model.Complaint) error
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	// GetByIDForUpdate 加行锁读取，仅在事务内有意义
	GetByIDForUpdate(ctx context.Context, id string) (*model.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter, offset, limit int) ([]model.Complaint, int64, error)
	ListAll(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error)
	// UpdateFields 以乐观锁更新指定字段；版本不匹配返回 ErrOptimisticLock
	UpdateFields(ctx context.Context, id string, version int, fields map[string]interface{}) error
	// RecountUpvotes 以点赞行数重算计数并返回新值
	RecountUpvotes(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo 创建 ComplaintRepository 实例
func NewComplaintRepo(db *gorm.DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func (r *complaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *complaintRepo) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	var c model.Complaint
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("complaint_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Complaint, error) {
	var c model.Complaint
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("complaint_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepo) scoped(ctx context.Context, filter ComplaintFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Complaint{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		db = db.Where("priority = ?", filter.Priority)
	}
	if filter.Hostel != "" {
		db = db.Where("hostel = ?", filter.Hostel)
	}
	if filter.AssignedTo != "" {
		db = db.Where("assigned_to = ?", filter.AssignedTo)
	}

	var conds []string
	var args []interface{}
	if filter.ScopeHostel != "" {
		conds = append(conds, "hostel = ?")
		args = append(args, filter.ScopeHostel)
	}
	if filter.ScopeOwner != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.ScopeOwner)
	}
	if len(filter.ScopeCategories) > 0 {
		conds = append(conds, "category IN ?")
		args = append(args, filter.ScopeCategories)
	}
	if filter.ScopeAssignee != "" {
		conds = append(conds, "assigned_to = ?")
		args = append(args, filter.ScopeAssignee)
	}
	if len(conds) > 0 {
		db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return db
}

func (r *complaintRepo) List(ctx context.Context, filter ComplaintFilter, offset, limit int) ([]model.Complaint, int64, error) {
	var list []model.Complaint
	var total int64

	db := r.scoped(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("Assignee").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *complaintRepo) ListAll(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error) {
	var list []model.Complaint
	err := r.scoped(ctx, filter).
		Preload("User").
		Preload("Assignee").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *complaintRepo) UpdateFields(ctx context.Context, id string, version int, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = version + 1
	updates["updated_at"] = gorm.Expr("NOW()")

	result := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("complaint_id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *complaintRepo) RecountUpvotes(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Raw(
		`UPDATE complaints
		    SET upvote_count = (SELECT COUNT(*) FROM complaint_upvotes WHERE complaint_id = ?)
		  WHERE complaint_id = ?
		RETURNING upvote_count`, id, id).
		Scan(&count).Error
	return count, err
}

func (r *complaintRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("complaint_id = ?", id).
		Delete(&model.Complaint{}).Error
}

// ── ComplaintUpvote ──

// UpvoteRepository 投诉点赞数据访问接口
type UpvoteRepository interface {
	Exists(ctx context.Context, complaintID, userID string) (bool, error)
	Create(ctx context.Context, u *model.ComplaintUpvote) error
	Delete(ctx context.Context, complaintID, userID string) error
	CountByComplaint(ctx context.Context, complaintID string) (int64, error)
	// ComplaintIDsByUser 返回用户点赞过的投诉 ID
	ComplaintIDsByUser(ctx context.Context, userID string) ([]string, error)
}

type upvoteRepo struct {
	db *gorm.DB
}

// NewUpvoteRepo 创建 UpvoteRepository 实例
func NewUpvoteRepo(db *gorm.DB) UpvoteRepository {
	return &upvoteRepo{db: db}
}

func (r *upvoteRepo) Exists(ctx context.Context, complaintID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ComplaintUpvote{}).
		Where("complaint_id = ? AND user_id = ?", complaintID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *upvoteRepo) Create(ctx context.Context, u *model.ComplaintUpvote) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *upvoteRepo) Delete(ctx context.Context, complaintID, userID string) error {
	return r.db.WithContext(ctx).
		Where("complaint_id = ? AND user_id = ?", complaintID, userID).
		Delete(&model.ComplaintUpvote{}).Error
}

func (r *upvoteRepo) CountByComplaint(ctx context.Context, complaintID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ComplaintUpvote{}).
		Where("complaint_id = ?", complaintID).
		Count(&n).Error
	return n, err
}

func (r *upvoteRepo) ComplaintIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ComplaintUpvote{}).
		Where("user_id = ?", userID).
		Pluck("complaint_id", &ids).Error
	return ids, err
}
