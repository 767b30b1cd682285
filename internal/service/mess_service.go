package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	"github.com/marwahavanshika/FYP2025/internal/textanalysis"
)

const defaultStatsDays = 30

var (
	ErrMenuNotFound = errors.New("menu not found")
	ErrMenuExists   = errors.New("menu for this day and meal already exists")
)

// MessService 食堂菜单与评价业务接口
type MessService interface {
	CreateMenu(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error)
	ListMenu(ctx context.Context, req *dto.MenuListRequest) ([]dto.MenuResponse, error)
	GetMenu(ctx context.Context, id string) (*dto.MenuResponse, error)
	UpdateMenu(ctx context.Context, id string, req *dto.UpdateMenuRequest) (*dto.MenuResponse, error)
	DeleteMenu(ctx context.Context, id string) error

	CreateFeedback(ctx context.Context, actor *permission.Actor, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListFeedback(ctx context.Context, actor *permission.Actor, req *dto.FeedbackListRequest) ([]dto.FeedbackResponse, int64, error)
	FeedbackStats(ctx context.Context, req *dto.FeedbackStatsRequest) (*dto.FeedbackStatsResponse, error)
}

type messService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewMessService 创建 MessService 实例
func NewMessService(repo *repository.Repository, logger *zap.Logger) MessService {
	return &messService{repo: repo, now: time.Now, logger: logger}
}

// ────────────────────── 菜单 ──────────────────────

func (s *messService) CreateMenu(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	menu := &model.MessMenu{
		DayOfWeek:   req.DayOfWeek,
		MealType:    req.MealType,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.MessMenu.Create(ctx, menu); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrMenuExists
		}
		s.logger.Error("创建菜单失败", zap.String("day", menu.DayOfWeek), zap.String("meal", menu.MealType), zap.Error(err))
		return nil, err
	}

	resp := toMenuResponse(menu)
	return &resp, nil
}

// ListMenu 按星期、餐次顺序返回
func (s *messService) ListMenu(ctx context.Context, req *dto.MenuListRequest) ([]dto.MenuResponse, error) {
	menus, err := s.repo.MessMenu.List(ctx, req.DayOfWeek, req.MealType)
	if err != nil {
		s.logger.Error("查询菜单失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.MenuResponse, 0, len(menus))
	for i := range menus {
		list = append(list, toMenuResponse(&menus[i]))
	}
	return list, nil
}

func (s *messService) GetMenu(ctx context.Context, id string) (*dto.MenuResponse, error) {
	menu, err := s.loadMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

func (s *messService) UpdateMenu(ctx context.Context, id string, req *dto.UpdateMenuRequest) (*dto.MenuResponse, error) {
	menu, err := s.loadMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		menu.DayOfWeek = *req.DayOfWeek
	}
	if req.MealType != nil {
		menu.MealType = *req.MealType
	}
	if req.Description != nil {
		menu.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.repo.MessMenu.Update(ctx, menu); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrMenuExists
		}
		s.logger.Error("更新菜单失败", zap.String("menu_id", id), zap.Error(err))
		return nil, err
	}

	resp := toMenuResponse(menu)
	return &resp, nil
}

func (s *messService) DeleteMenu(ctx context.Context, id string) error {
	if _, err := s.loadMenu(ctx, id); err != nil {
		return err
	}
	if err := s.repo.MessMenu.Delete(ctx, id); err != nil {
		s.logger.Error("删除菜单失败", zap.String("menu_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 评价 ──────────────────────

// CreateFeedback 有评论内容时计算情感分
func (s *messService) CreateFeedback(ctx context.Context, actor *permission.Actor, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	fb := &model.MessFeedback{
		UserID:   actor.UserID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		MealType: req.MealType,
	}
	if fb.Comment != "" {
		fb.SentimentScore = float64Ptr(textanalysis.Sentiment(fb.Comment))
	}

	if err := s.repo.MessFeedback.Create(ctx, fb); err != nil {
		s.logger.Error("提交评价失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	resp := toFeedbackResponse(fb)
	return &resp, nil
}

// ListFeedback 没有 mess.stats.view 的角色只能看到本人的评价
func (s *messService) ListFeedback(ctx context.Context, actor *permission.Actor, req *dto.FeedbackListRequest) ([]dto.FeedbackResponse, int64, error) {
	filter := repository.FeedbackFilter{MealType: req.MealType}
	if !actor.Can(permission.CapMessStatsView) {
		filter.UserID = actor.UserID
	}

	list, total, err := s.repo.MessFeedback.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询评价列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.FeedbackResponse, 0, len(list))
	for i := range list {
		result = append(result, toFeedbackResponse(&list[i]))
	}
	return result, total, nil
}

// FeedbackStats 统计最近 days 天（默认 30）的评价；分布 1..5 补零
func (s *messService) FeedbackStats(ctx context.Context, req *dto.FeedbackStatsRequest) (*dto.FeedbackStatsResponse, error) {
	days := req.Days
	if days <= 0 {
		days = defaultStatsDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	stats, err := s.repo.MessFeedback.Stats(ctx, repository.FeedbackFilter{
		MealType: req.MealType,
		Since:    &since,
	})
	if err != nil {
		s.logger.Error("统计评价失败", zap.Error(err))
		return nil, err
	}

	dist := make(map[string]int64, 5)
	for r := 1; r <= 5; r++ {
		dist[strconv.Itoa(r)] = stats.Distribution[r]
	}

	mealType := req.MealType
	if mealType == "" {
		mealType = "all"
	}

	return &dto.FeedbackStatsResponse{
		MealType:           mealType,
		Days:               days,
		AverageRating:      stats.AverageRating,
		TotalFeedback:      stats.Total,
		RatingDistribution: dist,
		AverageSentiment:   stats.AverageSentiment,
	}, nil
}

// ── 内部辅助方法 ──

func (s *messService) loadMenu(ctx context.Context, id string) (*model.MessMenu, error) {
	menu, err := s.repo.MessMenu.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMenuNotFound
		}
		s.logger.Error("查询菜单失败", zap.String("menu_id", id), zap.Error(err))
		return nil, err
	}
	return menu, nil
}

func toMenuResponse(m *model.MessMenu) dto.MenuResponse {
	return dto.MenuResponse{
		ID:          m.MenuID,
		DayOfWeek:   m.DayOfWeek,
		MealType:    m.MealType,
		Description: m.Description,
		UpdatedAt:   formatTime(m.UpdatedAt),
	}
}

func toFeedbackResponse(f *model.MessFeedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:             f.FeedbackID,
		UserID:         f.UserID,
		Rating:         f.Rating,
		Comment:        f.Comment,
		MealType:       f.MealType,
		SentimentScore: f.SentimentScore,
		CreatedAt:      formatTime(f.CreatedAt),
	}
}
