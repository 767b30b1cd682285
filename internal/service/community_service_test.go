package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/permission"
)

func setupTestCommunityService() (CommunityService, *memStore) {
	repo, store := newMockRepository()
	return NewCommunityService(repo, zap.NewNop()), store
}

func TestCommunityService_PostLifecycle(t *testing.T) {
	svc, store := setupTestCommunityService()
	author := seedUser(store, "a@campus.edu", permission.RoleStudent, permission.HostelLohitGirls)
	other := seedUser(store, "o@campus.edu", permission.RoleStudent, permission.HostelLohitGirls)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorOf(author), &dto.CreatePostRequest{
		Title: "Lost keys", Content: "Lost my keys near the mess, please help", Category: "lost_found",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.Author == nil || post.Author.ID != author.UserID {
		t.Errorf("author brief should be loaded, got %+v", post.Author)
	}
	if post.SentimentScore == nil {
		t.Error("post should carry a sentiment score")
	}

	title := "Found"
	if _, err := svc.UpdatePost(ctx, actorOf(other), post.ID, &dto.UpdatePostRequest{Title: &title}); !errors.Is(err, ErrNoPermission) {
		t.Errorf("expected ErrNoPermission, got %v", err)
	}
	updated, err := svc.UpdatePost(ctx, actorOf(author), post.ID, &dto.UpdatePostRequest{Title: &title})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Title != "Found" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}

	list, total, err := svc.ListPosts(ctx, &dto.PostListRequest{Category: "event"})
	if err != nil || total != 0 || len(list) != 0 {
		t.Errorf("category filter should exclude the post, got %d", total)
	}
}

func TestCommunityService_Comments(t *testing.T) {
	svc, store := setupTestCommunityService()
	author := seedUser(store, "a@campus.edu", permission.RoleStudent, "")
	commenter := seedUser(store, "c@campus.edu", permission.RoleStudent, "")
	warden := seedUser(store, "w@campus.edu", permission.RoleWardenPapumBoys, permission.HostelPapumBoys)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, actorOf(author), &dto.CreatePostRequest{
		Title: "Movie night", Content: "Friday at 8", Category: "event",
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	c1, err := svc.CreateComment(ctx, actorOf(commenter), post.ID, &dto.CreateCommentRequest{Content: "Count me in, sounds fun"})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if c1.Author == nil || c1.SentimentScore == nil {
		t.Errorf("comment should carry author and score: %+v", c1)
	}
	c2, err := svc.CreateComment(ctx, actorOf(author), post.ID, &dto.CreateCommentRequest{Content: "Great"})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if _, err := svc.CreateComment(ctx, actorOf(author), "missing", &dto.CreateCommentRequest{Content: "x"}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	if err := svc.DeleteComment(ctx, actorOf(commenter), c2.ID); !errors.Is(err, ErrNoPermission) {
		t.Errorf("expected ErrNoPermission, got %v", err)
	}
	if err := svc.DeleteComment(ctx, actorOf(warden), c2.ID); err != nil {
		t.Errorf("moderator delete failed: %v", err)
	}

	comments, err := svc.ListComments(ctx, post.ID)
	if err != nil || len(comments) != 1 || comments[0].ID != c1.ID {
		t.Errorf("expected only the first comment to remain, got %+v (err %v)", comments, err)
	}

	// 删帖时评论一并删除
	if err := svc.DeletePost(ctx, actorOf(warden), post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if len(store.comments) != 0 {
		t.Errorf("comments should be removed with the post, got %d", len(store.comments))
	}
	if err := svc.DeleteComment(ctx, actorOf(warden), c1.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got %v", err)
	}
}
