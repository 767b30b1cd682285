package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/model"
)

// MessMenuRepository 食堂菜单数据访问接口
type MessMenuRepository interface {
	Create(ctx context.Context, menu *model.MessMenu) error
	GetByID(ctx context.Context, id string) (*model.MessMenu, error)
	List(ctx context.Context, dayOfWeek, mealType string) ([]model.MessMenu, error)
	Update(ctx context.Context, menu *model.MessMenu) error
	Delete(ctx context.Context, id string) error
}

type messMenuRepo struct {
	db *gorm.DB
}

// NewMessMenuRepo 创建 MessMenuRepository 实例
func NewMessMenuRepo(db *gorm.DB) MessMenuRepository {
	return &messMenuRepo{db: db}
}

func (r *messMenuRepo) Create(ctx context.Context, menu *model.MessMenu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *messMenuRepo) GetByID(ctx context.Context, id string) (*model.MessMenu, error) {
	var menu model.MessMenu
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", id).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// List 按星期、餐次的自然顺序返回
func (r *messMenuRepo) List(ctx context.Context, dayOfWeek, mealType string) ([]model.MessMenu, error) {
	var menus []model.MessMenu
	db := r.db.WithContext(ctx)
	if dayOfWeek != "" {
		db = db.Where("day_of_week = ?", dayOfWeek)
	}
	if mealType != "" {
		db = db.Where("meal_type = ?", mealType)
	}
	err := db.Order(`array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday']::varchar[], day_of_week),
		array_position(ARRAY['breakfast','lunch','snacks','dinner']::varchar[], meal_type)`).
		Find(&menus).Error
	return menus, err
}

func (r *messMenuRepo) Update(ctx context.Context, menu *model.MessMenu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

func (r *messMenuRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("menu_id = ?", id).
		Delete(&model.MessMenu{}).Error
}

// ── MessFeedback ──

// FeedbackFilter 评价过滤条件
type FeedbackFilter struct {
	UserID   string
	MealType string
	Since    *time.Time
}

// FeedbackStats 评价聚合结果
type FeedbackStats struct {
	AverageRating    float64
	Total            int64
	Distribution     map[int]int64
	AverageSentiment *float64
}

// MessFeedbackRepository 食堂评价数据访问接口
type MessFeedbackRepository interface {
	Create(ctx context.Context, fb *model.MessFeedback) error
	List(ctx context.Context, filter FeedbackFilter, offset, limit int) ([]model.MessFeedback, int64, error)
	Stats(ctx context.Context, filter FeedbackFilter) (*FeedbackStats, error)
}

type messFeedbackRepo struct {
	db *gorm.DB
}

// NewMessFeedbackRepo 创建 MessFeedbackRepository 实例
func NewMessFeedbackRepo(db *gorm.DB) MessFeedbackRepository {
	return &messFeedbackRepo{db: db}
}

func (r *messFeedbackRepo) Create(ctx context.Context, fb *model.MessFeedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *messFeedbackRepo) scoped(ctx context.Context, filter FeedbackFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.MessFeedback{})
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.MealType != "" {
		db = db.Where("meal_type = ?", filter.MealType)
	}
	if filter.Since != nil {
		db = db.Where("created_at >= ?", *filter.Since)
	}
	return db
}

func (r *messFeedbackRepo) List(ctx context.Context, filter FeedbackFilter, offset, limit int) ([]model.MessFeedback, int64, error) {
	var list []model.MessFeedback
	var total int64

	db := r.scoped(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *messFeedbackRepo) Stats(ctx context.Context, filter FeedbackFilter) (*FeedbackStats, error) {
	var agg struct {
		AverageRating    *float64
		Total            int64
		AverageSentiment *float64
	}
	err := r.scoped(ctx, filter).
		Select("AVG(rating) AS average_rating, COUNT(*) AS total, AVG(sentiment_score) AS average_sentiment").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Rating int
		Count  int64
	}
	err = r.scoped(ctx, filter).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &FeedbackStats{
		Total:            agg.Total,
		Distribution:     make(map[int]int64, 5),
		AverageSentiment: agg.AverageSentiment,
	}
	if agg.AverageRating != nil {
		stats.AverageRating = *agg.AverageRating
	}
	for _, row := range rows {
		stats.Distribution[row.Rating] = row.Count
	}
	return stats, nil
}
