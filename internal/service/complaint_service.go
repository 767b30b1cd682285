package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	"github.com/marwahavanshika/FYP2025/internal/textanalysis"
	"github.com/marwahavanshika/FYP2025/internal/transcribe"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
)

// ── 投诉状态 ──

const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
)

// ── 投诉模块业务错误 ──

var (
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrComplaintForbidden = errors.New("you do not have access to this complaint")
	ErrStudentNoHostel    = errors.New("student has no hostel assigned")
	ErrFieldNotAllowed    = errors.New("field cannot be modified by your role")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrAssigneeInactive   = errors.New("assignee account is inactive")
	ErrAssigneeMismatch   = errors.New("assignee role does not match complaint category")
)

// ComplaintService 投诉业务接口
type ComplaintService interface {
	Create(ctx context.Context, actor *permission.Actor, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error)
	CreateFromVoice(ctx context.Context, actor *permission.Actor, req *dto.VoiceComplaintRequest) (*dto.ComplaintResponse, error)
	List(ctx context.Context, actor *permission.Actor, req *dto.ComplaintListRequest) ([]dto.ComplaintResponse, int64, error)
	GetByID(ctx context.Context, actor *permission.Actor, id string) (*dto.ComplaintResponse, error)
	Update(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error)
	Delete(ctx context.Context, actor *permission.Actor, id string) error
	Assign(ctx context.Context, actor *permission.Actor, id string, req *dto.AssignComplaintRequest) (*dto.ComplaintResponse, error)
	ToggleUpvote(ctx context.Context, actor *permission.Actor, id string) (*dto.UpvoteToggleResponse, error)
	GetUpvotes(ctx context.Context, actor *permission.Actor, id string) (*dto.UpvoteStatusResponse, error)
	Suggestions(ctx context.Context, actor *permission.Actor, id string) (*dto.SuggestionResponse, error)
}

type complaintService struct {
	repo          *repository.Repository
	transcriber   transcribe.Transcriber
	maxAudioBytes int64
	now           func() time.Time
	logger        *zap.Logger
}

// NewComplaintService 创建 ComplaintService 实例；transcriber 为 nil 时语音投诉不可用
func NewComplaintService(
	repo *repository.Repository,
	transcriber transcribe.Transcriber,
	maxAudioBytes int64,
	logger *zap.Logger,
) ComplaintService {
	return &complaintService{
		repo:          repo,
		transcriber:   transcriber,
		maxAudioBytes: maxAudioBytes,
		now:           time.Now,
		logger:        logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *complaintService) Create(ctx context.Context, actor *permission.Actor, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	hostel, err := s.resolveHostel(actor, req.Hostel)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	a := textanalysis.Analyze(title, description, req.Category, req.Priority)

	c := &model.Complaint{
		Title:          title,
		Description:    description,
		Category:       a.Category,
		Status:         ComplaintStatusPending,
		Priority:       a.Priority,
		SentimentScore: float64Ptr(a.Sentiment),
		Location:       strings.TrimSpace(req.Location),
		Hostel:         hostel,
		UserID:         actor.UserID,
	}
	if err := s.insert(ctx, c); err != nil {
		return nil, err
	}
	return s.reload(ctx, c.ComplaintID)
}

// CreateFromVoice 识别语音后按首个句号拆分标题与描述，分析使用完整识别文本
func (s *complaintService) CreateFromVoice(ctx context.Context, actor *permission.Actor, req *dto.VoiceComplaintRequest) (*dto.ComplaintResponse, error) {
	hostel, err := s.resolveHostel(actor, req.Hostel)
	if err != nil {
		return nil, err
	}

	if s.transcriber == nil {
		return nil, &transcribe.RecognitionError{Err: transcribe.ErrNotConfigured}
	}
	text, err := transcribe.FromBase64(ctx, s.transcriber, req.AudioData, s.maxAudioBytes)
	if err != nil {
		s.logger.Warn("语音识别失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	title, description := transcribe.SplitTranscript(text, s.now())
	category := textanalysis.Categorize(text)

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = transcribe.DefaultLocation
	}

	c := &model.Complaint{
		Title:          title,
		Description:    description,
		Category:       category,
		Status:         ComplaintStatusPending,
		Priority:       textanalysis.Prioritize(text, category),
		SentimentScore: float64Ptr(textanalysis.Sentiment(text)),
		Location:       location,
		Hostel:         hostel,
		UserID:         actor.UserID,
	}
	if err := s.insert(ctx, c); err != nil {
		return nil, err
	}
	return s.reload(ctx, c.ComplaintID)
}

// resolveHostel 学生强制使用本人宿舍楼；职员必须显式给出且在管辖范围内
func (s *complaintService) resolveHostel(actor *permission.Actor, requested string) (string, error) {
	if actor.IsStudent() {
		if actor.Hostel == "" {
			return "", ErrStudentNoHostel
		}
		return actor.Hostel, nil
	}
	if requested == "" {
		return "", ErrHostelRequired
	}
	if !permission.IsValidHostel(requested) {
		return "", ErrInvalidHostel
	}
	if permission.IsWarden(actor.Role) && !actor.InHostelScope(requested) {
		return "", ErrHostelNotInScope
	}
	return requested, nil
}

// autoAssignee 返回类别对应的第一个在职专职人员；无专职角色或无人在职时返回 nil
func (s *complaintService) autoAssignee(ctx context.Context, category string) (*string, error) {
	role := permission.SpecialtyRole(category)
	if role == "" {
		return nil, nil
	}
	staff, err := s.repo.User.FirstActiveByRole(ctx, role)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		s.logger.Error("查询专职人员失败", zap.String("role", role), zap.Error(err))
		return nil, err
	}
	return &staff.UserID, nil
}

// insert 自动指派第一个在职的专职人员后写库
func (s *complaintService) insert(ctx context.Context, c *model.Complaint) error {
	assignee, err := s.autoAssignee(ctx, c.Category)
	if err != nil {
		return err
	}
	c.AssignedTo = assignee

	if err := s.repo.Complaint.Create(ctx, c); err != nil {
		s.logger.Error("创建投诉失败", zap.String("user_id", c.UserID), zap.Error(err))
		return err
	}

	s.logger.Info("创建投诉",
		zap.String("complaint_id", c.ComplaintID),
		zap.String("category", c.Category),
		zap.String("priority", c.Priority),
		zap.Bool("auto_assigned", c.AssignedTo != nil),
	)
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *complaintService) List(ctx context.Context, actor *permission.Actor, req *dto.ComplaintListRequest) ([]dto.ComplaintResponse, int64, error) {
	filter := visibilityFilter(actor)
	filter.Status = req.Status
	filter.Category = req.Category
	filter.Priority = req.Priority
	filter.Hostel = req.Hostel
	if req.AssignedToMe {
		filter.AssignedTo = actor.UserID
	}

	list, total, err := s.repo.Complaint.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询投诉列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ComplaintResponse, 0, len(list))
	for i := range list {
		result = append(result, toComplaintResponse(&list[i]))
	}
	return result, total, nil
}

// visibilityFilter 按角色生成可见范围：
// 学生看本楼及本人提交的；warden 看本楼，专职人员看本类别，二者另可看到指派给自己的（含范围外）；
// admin/hmc 不限；其余角色只看本人提交的
func visibilityFilter(actor *permission.Actor) repository.ComplaintFilter {
	var f repository.ComplaintFilter
	switch {
	case actor.IsSuper():
	case actor.IsStudent():
		f.ScopeHostel = actor.Hostel
		f.ScopeOwner = actor.UserID
	case permission.IsWarden(actor.Role):
		f.ScopeHostel = permission.WardenHostel(actor.Role)
		f.ScopeAssignee = actor.UserID
	case permission.IsSpecialty(actor.Role):
		f.ScopeCategories = permission.SpecialtyCategories(actor.Role)
		f.ScopeAssignee = actor.UserID
	default:
		f.ScopeOwner = actor.UserID
	}
	return f
}

// canView 与 visibilityFilter 保持一致
func canView(actor *permission.Actor, c *model.Complaint) bool {
	f := visibilityFilter(actor)
	if f.ScopeHostel == "" && f.ScopeOwner == "" && len(f.ScopeCategories) == 0 && f.ScopeAssignee == "" {
		return true
	}
	if f.ScopeHostel != "" && c.Hostel == f.ScopeHostel {
		return true
	}
	if f.ScopeOwner != "" && c.UserID == f.ScopeOwner {
		return true
	}
	if f.ScopeAssignee != "" && c.AssignedTo != nil && *c.AssignedTo == f.ScopeAssignee {
		return true
	}
	for _, cat := range f.ScopeCategories {
		if c.Category == cat {
			return true
		}
	}
	return false
}

func (s *complaintService) GetByID(ctx context.Context, actor *permission.Actor, id string) (*dto.ComplaintResponse, error) {
	c, err := s.loadVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toComplaintResponse(c)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

// Update 学生只能修改本人投诉的标题、描述、类别、地点（宿舍楼只能是本楼）；
// 其余角色需要 complaint.manage 且投诉在可见范围内，宿舍楼与处理人仅 admin/hmc 可改
func (s *complaintService) Update(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error) {
	c, err := s.loadVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if actor.IsStudent() {
		if c.UserID != actor.UserID {
			return nil, ErrComplaintForbidden
		}
		if req.Status != nil || req.Priority != nil || req.AssignedTo != nil {
			return nil, ErrFieldNotAllowed
		}
		if req.Hostel != nil && *req.Hostel != actor.Hostel {
			return nil, ErrFieldNotAllowed
		}
	} else {
		if !actor.Can(permission.CapComplaintManage) {
			return nil, ErrNoPermission
		}
		if !actor.IsSuper() && (req.AssignedTo != nil || (req.Hostel != nil && *req.Hostel != c.Hostel)) {
			return nil, ErrFieldNotAllowed
		}
	}

	if req.Version != nil && *req.Version != c.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	fields := make(map[string]interface{})
	title, description := c.Title, c.Description
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		fields["title"] = title
	}
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
		fields["description"] = description
	}
	if req.Title != nil || req.Description != nil {
		fields["sentiment_score"] = textanalysis.Sentiment(title + " " + description)
	}
	if req.Category != nil {
		fields["category"] = *req.Category
		// 类别变化后原处理人不再匹配时重新自动指派
		if *req.Category != c.Category && req.AssignedTo == nil && c.AssignedTo != nil {
			if _, err := s.validateAssignee(ctx, *req.Category, *c.AssignedTo); err != nil {
				if !isAssigneeRejection(err) {
					return nil, err
				}
				next, err := s.autoAssignee(ctx, *req.Category)
				if err != nil {
					return nil, err
				}
				if next == nil {
					fields["assigned_to"] = nil
				} else {
					fields["assigned_to"] = *next
				}
			}
		}
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Hostel != nil {
		fields["hostel"] = *req.Hostel
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.Status != nil {
		fields["status"] = *req.Status
		if *req.Status == ComplaintStatusResolved {
			if c.Status != ComplaintStatusResolved || c.ResolvedAt == nil {
				fields["resolved_at"] = s.now().UTC()
			}
		} else {
			fields["resolved_at"] = nil
		}
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			fields["assigned_to"] = nil
		} else {
			category := c.Category
			if req.Category != nil {
				category = *req.Category
			}
			if _, err := s.validateAssignee(ctx, category, *req.AssignedTo); err != nil {
				return nil, err
			}
			fields["assigned_to"] = *req.AssignedTo
		}
	}

	if len(fields) == 0 {
		resp := toComplaintResponse(c)
		return &resp, nil
	}

	if err := s.repo.Complaint.UpdateFields(ctx, id, c.Version, fields); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("更新投诉失败", zap.String("complaint_id", id), zap.Error(err))
		}
		return nil, err
	}

	return s.reload(ctx, id)
}

// validateAssignee 处理人须为在职用户且角色与类别的专职角色一致；
// 无专职角色的类别接受任意在职职员
func (s *complaintService) validateAssignee(ctx context.Context, category, assigneeID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, assigneeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssigneeNotFound
		}
		s.logger.Error("查询处理人失败", zap.String("user_id", assigneeID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAssigneeInactive
	}

	if !permission.CanHandle(user.Role, category) {
		return nil, ErrAssigneeMismatch
	}
	return user, nil
}

func isAssigneeRejection(err error) bool {
	return errors.Is(err, ErrAssigneeNotFound) ||
		errors.Is(err, ErrAssigneeInactive) ||
		errors.Is(err, ErrAssigneeMismatch)
}

// ────────────────────── Delete ──────────────────────

func (s *complaintService) Delete(ctx context.Context, actor *permission.Actor, id string) error {
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	allowed := actor.IsSuper() ||
		(actor.IsStudent() && c.UserID == actor.UserID) ||
		(permission.IsWarden(actor.Role) && actor.InHostelScope(c.Hostel))
	if !allowed {
		return ErrComplaintForbidden
	}

	if err := s.repo.Complaint.Delete(ctx, id); err != nil {
		s.logger.Error("删除投诉失败", zap.String("complaint_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("删除投诉", zap.String("complaint_id", id), zap.String("operator", actor.UserID))
	return nil
}

// ────────────────────── Assign ──────────────────────

// Assign 指派处理人并将状态置为 in_progress
func (s *complaintService) Assign(ctx context.Context, actor *permission.Actor, id string, req *dto.AssignComplaintRequest) (*dto.ComplaintResponse, error) {
	if !actor.Can(permission.CapComplaintAssign) {
		return nil, ErrNoPermission
	}

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	assignee, err := s.validateAssignee(ctx, c.Category, req.AssigneeID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"assigned_to": assignee.UserID,
		"status":      ComplaintStatusInProgress,
		"resolved_at": nil,
	}
	if err := s.repo.Complaint.UpdateFields(ctx, id, c.Version, fields); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("指派投诉失败", zap.String("complaint_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("指派投诉",
		zap.String("complaint_id", id),
		zap.String("assignee", assignee.UserID),
		zap.String("operator", actor.UserID),
	)
	return s.reload(ctx, id)
}

// ────────────────────── Upvote ──────────────────────

// ToggleUpvote 在同一事务内切换点赞并以点赞行数重算计数
func (s *complaintService) ToggleUpvote(ctx context.Context, actor *permission.Actor, id string) (*dto.UpvoteToggleResponse, error) {
	resp := &dto.UpvoteToggleResponse{ComplaintID: id}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		c, err := tx.Complaint.GetByIDForUpdate(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return ErrComplaintNotFound
			}
			return err
		}
		if !canView(actor, c) {
			return ErrComplaintForbidden
		}

		exists, err := tx.Upvote.Exists(ctx, id, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			if err := tx.Upvote.Delete(ctx, id, actor.UserID); err != nil {
				return err
			}
		} else {
			if err := tx.Upvote.Create(ctx, &model.ComplaintUpvote{ComplaintID: id, UserID: actor.UserID}); err != nil {
				return err
			}
		}

		count, err := tx.Complaint.RecountUpvotes(ctx, id)
		if err != nil {
			return err
		}
		resp.Upvoted = !exists
		resp.UpvoteCount = count
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrComplaintNotFound) && !errors.Is(err, ErrComplaintForbidden) {
			s.logger.Error("切换点赞失败", zap.String("complaint_id", id), zap.Error(err))
		}
		return nil, err
	}
	return resp, nil
}

// GetUpvotes 点赞数直接取自点赞行
func (s *complaintService) GetUpvotes(ctx context.Context, actor *permission.Actor, id string) (*dto.UpvoteStatusResponse, error) {
	if _, err := s.loadVisible(ctx, actor, id); err != nil {
		return nil, err
	}

	count, err := s.repo.Upvote.CountByComplaint(ctx, id)
	if err != nil {
		s.logger.Error("统计点赞失败", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}
	mine, err := s.repo.Upvote.Exists(ctx, id, actor.UserID)
	if err != nil {
		s.logger.Error("查询点赞失败", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}

	return &dto.UpvoteStatusResponse{
		ComplaintID: id,
		UpvoteCount: count,
		UpvotedByMe: mine,
	}, nil
}

// ────────────────────── Suggestions ──────────────────────

func (s *complaintService) Suggestions(ctx context.Context, actor *permission.Actor, id string) (*dto.SuggestionResponse, error) {
	c, err := s.loadVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestionResponse{
		ComplaintID: id,
		Category:    c.Category,
		Suggestions: textanalysis.Suggestions(c.Category),
	}, nil
}

// ── 内部辅助方法 ──

func (s *complaintService) load(ctx context.Context, id string) (*model.Complaint, error) {
	c, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("查询投诉失败", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *complaintService) loadVisible(ctx context.Context, actor *permission.Actor, id string) (*model.Complaint, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, c) {
		return nil, ErrComplaintForbidden
	}
	return c, nil
}

func (s *complaintService) reload(ctx context.Context, id string) (*dto.ComplaintResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toComplaintResponse(c)
	return &resp, nil
}

func toComplaintResponse(c *model.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:             c.ComplaintID,
		Title:          c.Title,
		Description:    c.Description,
		Category:       c.Category,
		Status:         c.Status,
		Priority:       c.Priority,
		SentimentScore: c.SentimentScore,
		Location:       c.Location,
		Hostel:         c.Hostel,
		UserID:         c.UserID,
		AssignedTo:     c.AssignedTo,
		Assignee:       toUserBrief(c.Assignee),
		UpvoteCount:    c.UpvoteCount,
		Version:        c.Version,
		CreatedAt:      formatTime(c.CreatedAt),
		UpdatedAt:      formatTime(c.UpdatedAt),
		ResolvedAt:     formatTimePtr(c.ResolvedAt),
	}
}
