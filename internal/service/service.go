package service

import (
	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/config"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	"github.com/marwahavanshika/FYP2025/internal/transcribe"
	"github.com/marwahavanshika/FYP2025/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Complaint ComplaintService
	Export    ExportService
	Room      RoomService
	Asset     AssetService
	Community CommunityService
	Mess      MessService
}

// NewService 创建 Service 聚合
// blacklist 与 transcriber 均可为 nil：前者使登出仅在客户端生效，后者使语音投诉返回识别失败
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	transcriber transcribe.Transcriber,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		User:      NewUserService(repo, logger),
		Complaint: NewComplaintService(repo, transcriber, cfg.Transcription.MaxAudioBytes, logger),
		Export:    NewExportService(repo, logger),
		Room:      NewRoomService(repo, logger),
		Asset:     NewAssetService(repo, logger),
		Community: NewCommunityService(repo, logger),
		Mess:      NewMessService(repo, logger),
	}
}
