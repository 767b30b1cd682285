package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	"github.com/marwahavanshika/FYP2025/internal/textanalysis"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// CommunityService 社区帖子与评论业务接口
// 作者本人或具备 community.moderate 的角色可以编辑、删除
type CommunityService interface {
	CreatePost(ctx context.Context, actor *permission.Actor, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, req *dto.PostListRequest) ([]dto.PostResponse, int64, error)
	GetPost(ctx context.Context, id string) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, actor *permission.Actor, id string) error

	CreateComment(ctx context.Context, actor *permission.Actor, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postID string) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *permission.Actor, id string) error
}

type communityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommunityService 创建 CommunityService 实例
func NewCommunityService(repo *repository.Repository, logger *zap.Logger) CommunityService {
	return &communityService{repo: repo, logger: logger}
}

// ────────────────────── 帖子 ──────────────────────

func (s *communityService) CreatePost(ctx context.Context, actor *permission.Actor, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	post := &model.CommunityPost{
		Title:          title,
		Content:        content,
		Category:       req.Category,
		SentimentScore: float64Ptr(textanalysis.Sentiment(title + " " + content)),
		UserID:         actor.UserID,
	}
	if err := s.repo.Post.Create(ctx, post); err != nil {
		s.logger.Error("发帖失败", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	return s.GetPost(ctx, post.PostID)
}

func (s *communityService) ListPosts(ctx context.Context, req *dto.PostListRequest) ([]dto.PostResponse, int64, error) {
	posts, total, err := s.repo.Post.List(ctx, req.Category, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询帖子列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, toPostResponse(&posts[i]))
	}
	return list, total, nil
}

func (s *communityService) GetPost(ctx context.Context, id string) (*dto.PostResponse, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPostResponse(post)
	return &resp, nil
}

func (s *communityService) UpdatePost(ctx context.Context, actor *permission.Actor, id string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModerate(actor, post.UserID) {
		return nil, ErrNoPermission
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = strings.TrimSpace(*req.Content)
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Title != nil || req.Content != nil {
		post.SentimentScore = float64Ptr(textanalysis.Sentiment(post.Title + " " + post.Content))
	}

	if err := s.repo.Post.Update(ctx, post); err != nil {
		s.logger.Error("更新帖子失败", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}

	resp := toPostResponse(post)
	return &resp, nil
}

func (s *communityService) DeletePost(ctx context.Context, actor *permission.Actor, id string) error {
	post, err := s.loadPost(ctx, id)
	if err != nil {
		return err
	}
	if !canModerate(actor, post.UserID) {
		return ErrNoPermission
	}

	if err := s.repo.Post.Delete(ctx, id); err != nil {
		s.logger.Error("删除帖子失败", zap.String("post_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 评论 ──────────────────────

func (s *communityService) CreateComment(ctx context.Context, actor *permission.Actor, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	comment := &model.Comment{
		PostID:         postID,
		UserID:         actor.UserID,
		Content:        content,
		SentimentScore: float64Ptr(textanalysis.Sentiment(content)),
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.logger.Error("发表评论失败", zap.String("post_id", postID), zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Comment.GetByID(ctx, comment.CommentID)
	if err != nil {
		s.logger.Error("查询评论失败", zap.String("comment_id", comment.CommentID), zap.Error(err))
		return nil, err
	}
	resp := toCommentResponse(created)
	return &resp, nil
}

func (s *communityService) ListComments(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.ListByPost(ctx, postID)
	if err != nil {
		s.logger.Error("查询评论列表失败", zap.String("post_id", postID), zap.Error(err))
		return nil, err
	}

	list := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		list = append(list, toCommentResponse(&comments[i]))
	}
	return list, nil
}

func (s *communityService) DeleteComment(ctx context.Context, actor *permission.Actor, id string) error {
	comment, err := s.repo.Comment.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		s.logger.Error("查询评论失败", zap.String("comment_id", id), zap.Error(err))
		return err
	}
	if !canModerate(actor, comment.UserID) {
		return ErrNoPermission
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		s.logger.Error("删除评论失败", zap.String("comment_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func canModerate(actor *permission.Actor, authorID string) bool {
	return actor.UserID == authorID || actor.Can(permission.CapCommunityModerate)
}

func (s *communityService) loadPost(ctx context.Context, id string) (*model.CommunityPost, error) {
	post, err := s.repo.Post.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("查询帖子失败", zap.String("post_id", id), zap.Error(err))
		return nil, err
	}
	return post, nil
}

func toPostResponse(p *model.CommunityPost) dto.PostResponse {
	return dto.PostResponse{
		ID:             p.PostID,
		Title:          p.Title,
		Content:        p.Content,
		Category:       p.Category,
		SentimentScore: p.SentimentScore,
		UserID:         p.UserID,
		Author:         toUserBrief(p.User),
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func toCommentResponse(c *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:             c.CommentID,
		PostID:         c.PostID,
		UserID:         c.UserID,
		Author:         toUserBrief(c.User),
		Content:        c.Content,
		SentimentScore: c.SentimentScore,
		CreatedAt:      formatTime(c.CreatedAt),
	}
}
