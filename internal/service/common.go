package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
)

// ── 跨模块通用错误 ──

var (
	ErrNoPermission     = errors.New("permission denied")
	ErrInvalidHostel    = errors.New("invalid hostel")
	ErrHostelRequired   = errors.New("hostel is required")
	ErrHostelNotInScope = errors.New("hostel is outside your scope")
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ── 响应转换 ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.UserID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Hostel:      u.Hostel,
		IsActive:    u.IsActive,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{ID: u.UserID, FullName: u.FullName, Role: u.Role}
}

func float64Ptr(v float64) *float64 { return &v }
