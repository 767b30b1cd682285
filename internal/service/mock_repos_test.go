package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
)

// ── 内存存储 ──
//
// 所有 mock repo 共享一个 memStore，以模拟外键级联与唯一索引。
// 读取返回副本，服务层必须通过 Update 写回。

var mockEpoch = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

type memStore struct {
	seq int

	users       []*model.User
	complaints  []*model.Complaint
	upvotes     []*model.ComplaintUpvote
	rooms       []*model.Room
	allocations []*model.RoomAllocation
	assets      []*model.Asset
	posts       []*model.CommunityPost
	comments    []*model.Comment
	menus       []*model.MessMenu
	feedback    []*model.MessFeedback
}

func (s *memStore) next(prefix string) (string, time.Time) {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq), mockEpoch.Add(time.Duration(s.seq) * time.Second)
}

// newMockRepository 组装一个未绑定数据库的 Repository，Transaction 直接调用 fn
func newMockRepository() (*repository.Repository, *memStore) {
	s := &memStore{}
	return &repository.Repository{
		User:         &mockUserRepo{s},
		Complaint:    &mockComplaintRepo{s},
		Upvote:       &mockUpvoteRepo{s},
		Room:         &mockRoomRepo{s},
		Allocation:   &mockAllocationRepo{s},
		Asset:        &mockAssetRepo{s},
		Post:         &mockPostRepo{s},
		Comment:      &mockCommentRepo{s},
		MessMenu:     &mockMessMenuRepo{s},
		MessFeedback: &mockMessFeedbackRepo{s},
	}, s
}

func (s *memStore) findUser(id string) *model.User {
	for _, u := range s.users {
		if u.UserID == id {
			return u
		}
	}
	return nil
}

func (s *memStore) findRoom(id string) *model.Room {
	for _, r := range s.rooms {
		if r.RoomID == id {
			return r
		}
	}
	return nil
}

func (s *memStore) findComplaint(id string) *model.Complaint {
	for _, c := range s.complaints {
		if c.ComplaintID == id {
			return c
		}
	}
	return nil
}

func (s *memStore) userCopy(id string) *model.User {
	if u := s.findUser(id); u != nil {
		cp := *u
		return &cp
	}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) emailTaken(email, exceptID string) bool {
	for _, u := range m.s.users {
		if u.UserID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.emailTaken(user.Email, "") {
		return gorm.ErrDuplicatedKey
	}
	id, ts := m.s.next("user")
	if user.UserID == "" {
		user.UserID = id
	}
	user.CreatedAt, user.UpdatedAt = ts, ts
	cp := *user
	m.s.users = append(m.s.users, &cp)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u := m.s.userCopy(id); u != nil {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if m.emailTaken(user.Email, user.UserID) {
		return gorm.ErrDuplicatedKey
	}
	for i, u := range m.s.users {
		if u.UserID == user.UserID {
			cp := *user
			m.s.users[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Delete 模拟外键：点赞、投诉、分配级联删除，指派置空
func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	s := m.s
	users := s.users[:0]
	for _, u := range s.users {
		if u.UserID != id {
			users = append(users, u)
		}
	}
	s.users = users

	upvotes := s.upvotes[:0]
	for _, u := range s.upvotes {
		if u.UserID != id {
			upvotes = append(upvotes, u)
		}
	}
	s.upvotes = upvotes

	complaints := s.complaints[:0]
	for _, c := range s.complaints {
		if c.UserID == id {
			continue
		}
		if c.AssignedTo != nil && *c.AssignedTo == id {
			c.AssignedTo = nil
		}
		complaints = append(complaints, c)
	}
	s.complaints = complaints

	allocations := s.allocations[:0]
	for _, a := range s.allocations {
		if a.UserID != id {
			allocations = append(allocations, a)
		}
	}
	s.allocations = allocations
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.s.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Hostel != "" && u.Hostel != filter.Hostel {
			continue
		}
		if kw := strings.ToLower(filter.Keyword); kw != "" &&
			!strings.Contains(strings.ToLower(u.FullName), kw) &&
			!strings.Contains(strings.ToLower(u.Email), kw) {
			continue
		}
		all = append(all, *u)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockUserRepo) FirstActiveByRole(_ context.Context, role string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Role == role && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ComplaintRepository ──

type mockComplaintRepo struct{ s *memStore }

func (m *mockComplaintRepo) Create(_ context.Context, c *model.Complaint) error {
	id, ts := m.s.next("complaint")
	c.ComplaintID = id
	c.CreatedAt, c.UpdatedAt = ts, ts
	c.Version = 1
	cp := *c
	cp.User, cp.Assignee = nil, nil
	m.s.complaints = append(m.s.complaints, &cp)
	return nil
}

func (m *mockComplaintRepo) withAssociations(c *model.Complaint) *model.Complaint {
	cp := *c
	cp.User = m.s.userCopy(c.UserID)
	cp.Assignee = nil
	if c.AssignedTo != nil {
		cp.Assignee = m.s.userCopy(*c.AssignedTo)
	}
	return &cp
}

func (m *mockComplaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	if c := m.s.findComplaint(id); c != nil {
		return m.withAssociations(c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComplaintRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Complaint, error) {
	return m.GetByID(ctx, id)
}

func complaintMatches(c *model.Complaint, f repository.ComplaintFilter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	if f.Hostel != "" && c.Hostel != f.Hostel {
		return false
	}
	if f.AssignedTo != "" && (c.AssignedTo == nil || *c.AssignedTo != f.AssignedTo) {
		return false
	}

	scoped := f.ScopeHostel != "" || f.ScopeOwner != "" || len(f.ScopeCategories) > 0 || f.ScopeAssignee != ""
	if !scoped {
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

func (m *mockComplaintRepo) filtered(f repository.ComplaintFilter) []model.Complaint {
	var out []model.Complaint
	// 倒序模拟 created_at DESC
	for i := len(m.s.complaints) - 1; i >= 0; i-- {
		c := m.s.complaints[i]
		if complaintMatches(c, f) {
			out = append(out, *m.withAssociations(c))
		}
	}
	return out
}

func (m *mockComplaintRepo) List(_ context.Context, f repository.ComplaintFilter, offset, limit int) ([]model.Complaint, int64, error) {
	all := m.filtered(f)
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockComplaintRepo) ListAll(_ context.Context, f repository.ComplaintFilter) ([]model.Complaint, error) {
	return m.filtered(f), nil
}

func (m *mockComplaintRepo) UpdateFields(_ context.Context, id string, version int, fields map[string]interface{}) error {
	c := m.s.findComplaint(id)
	if c == nil || c.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	for k, v := range fields {
		switch k {
		case "title":
			c.Title = v.(string)
		case "description":
			c.Description = v.(string)
		case "category":
			c.Category = v.(string)
		case "location":
			c.Location = v.(string)
		case "hostel":
			c.Hostel = v.(string)
		case "priority":
			c.Priority = v.(string)
		case "status":
			c.Status = v.(string)
		case "sentiment_score":
			f := v.(float64)
			c.SentimentScore = &f
		case "resolved_at":
			if v == nil {
				c.ResolvedAt = nil
			} else {
				t := v.(time.Time)
				c.ResolvedAt = &t
			}
		case "assigned_to":
			if v == nil {
				c.AssignedTo = nil
			} else {
				a := v.(string)
				c.AssignedTo = &a
			}
		default:
			return fmt.Errorf("mock: unexpected complaint field %q", k)
		}
	}
	c.Version++
	_, c.UpdatedAt = m.s.next("tick")
	return nil
}

func (m *mockComplaintRepo) RecountUpvotes(_ context.Context, id string) (int, error) {
	c := m.s.findComplaint(id)
	if c == nil {
		return 0, nil
	}
	n := 0
	for _, u := range m.s.upvotes {
		if u.ComplaintID == id {
			n++
		}
	}
	c.UpvoteCount = n
	return n, nil
}

func (m *mockComplaintRepo) Delete(_ context.Context, id string) error {
	complaints := m.s.complaints[:0]
	for _, c := range m.s.complaints {
		if c.ComplaintID != id {
			complaints = append(complaints, c)
		}
	}
	m.s.complaints = complaints

	upvotes := m.s.upvotes[:0]
	for _, u := range m.s.upvotes {
		if u.ComplaintID != id {
			upvotes = append(upvotes, u)
		}
	}
	m.s.upvotes = upvotes
	return nil
}

// ── Mock UpvoteRepository ──

type mockUpvoteRepo struct{ s *memStore }

func (m *mockUpvoteRepo) Exists(_ context.Context, complaintID, userID string) (bool, error) {
	for _, u := range m.s.upvotes {
		if u.ComplaintID == complaintID && u.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUpvoteRepo) Create(ctx context.Context, u *model.ComplaintUpvote) error {
	if ok, _ := m.Exists(ctx, u.ComplaintID, u.UserID); ok {
		return gorm.ErrDuplicatedKey
	}
	id, ts := m.s.next("upvote")
	u.UpvoteID, u.CreatedAt = id, ts
	cp := *u
	m.s.upvotes = append(m.s.upvotes, &cp)
	return nil
}

func (m *mockUpvoteRepo) Delete(_ context.Context, complaintID, userID string) error {
	upvotes := m.s.upvotes[:0]
	for _, u := range m.s.upvotes {
		if !(u.ComplaintID == complaintID && u.UserID == userID) {
			upvotes = append(upvotes, u)
		}
	}
	m.s.upvotes = upvotes
	return nil
}

func (m *mockUpvoteRepo) CountByComplaint(_ context.Context, complaintID string) (int64, error) {
	var n int64
	for _, u := range m.s.upvotes {
		if u.ComplaintID == complaintID {
			n++
		}
	}
	return n, nil
}

func (m *mockUpvoteRepo) ComplaintIDsByUser(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, u := range m.s.upvotes {
		if u.UserID == userID {
			ids = append(ids, u.ComplaintID)
		}
	}
	return ids, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct{ s *memStore }

func (m *mockRoomRepo) numberTaken(number, exceptID string) bool {
	for _, r := range m.s.rooms {
		if r.RoomID != exceptID && r.Number == number {
			return true
		}
	}
	return false
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if m.numberTaken(room.Number, "") {
		return gorm.ErrDuplicatedKey
	}
	id, ts := m.s.next("room")
	room.RoomID = id
	room.CreatedAt, room.UpdatedAt = ts, ts
	cp := *room
	m.s.rooms = append(m.s.rooms, &cp)
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r := m.s.findRoom(id); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Room, error) {
	return m.GetByID(ctx, id)
}

func (m *mockRoomRepo) GetByNumber(_ context.Context, number string) (*model.Room, error) {
	for _, r := range m.s.rooms {
		if r.Number == number {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) occupancy(roomID string) int {
	n := 0
	for _, a := range m.s.allocations {
		if a.RoomID == roomID && a.Status == AllocationStatusCurrent {
			n++
		}
	}
	return n
}

func (m *mockRoomRepo) List(_ context.Context, f repository.RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	var all []model.Room
	for _, r := range m.s.rooms {
		if f.Building != "" && r.Building != f.Building {
			continue
		}
		if f.Floor != nil && r.Floor != *f.Floor {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Hostel != "" && r.Hostel != f.Hostel {
			continue
		}
		if f.Available != nil && (m.occupancy(r.RoomID) < r.Capacity) != *f.Available {
			continue
		}
		all = append(all, *r)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockRoomRepo) ListByHostel(_ context.Context, hostel string) ([]model.Room, error) {
	var out []model.Room
	for _, r := range m.s.rooms {
		if r.Hostel == hostel {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	if m.numberTaken(room.Number, room.RoomID) {
		return gorm.ErrDuplicatedKey
	}
	for i, r := range m.s.rooms {
		if r.RoomID == room.RoomID {
			cp := *room
			m.s.rooms[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Delete 分配记录随房间级联删除
func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	rooms := m.s.rooms[:0]
	for _, r := range m.s.rooms {
		if r.RoomID != id {
			rooms = append(rooms, r)
		}
	}
	m.s.rooms = rooms

	allocations := m.s.allocations[:0]
	for _, a := range m.s.allocations {
		if a.RoomID != id {
			allocations = append(allocations, a)
		}
	}
	m.s.allocations = allocations
	return nil
}

// ── Mock AllocationRepository ──

type mockAllocationRepo struct{ s *memStore }

// violatesPartialIndex 模拟两个 WHERE status='current' 部分唯一索引
func (m *mockAllocationRepo) violatesPartialIndex(a *model.RoomAllocation) bool {
	if a.Status != AllocationStatusCurrent {
		return false
	}
	for _, o := range m.s.allocations {
		if o.AllocationID == a.AllocationID || o.Status != AllocationStatusCurrent {
			continue
		}
		if o.UserID == a.UserID || (o.RoomID == a.RoomID && o.BedNumber == a.BedNumber) {
			return true
		}
	}
	return false
}

func (m *mockAllocationRepo) Create(_ context.Context, a *model.RoomAllocation) error {
	if m.violatesPartialIndex(a) {
		return gorm.ErrDuplicatedKey
	}
	id, ts := m.s.next("alloc")
	a.AllocationID = id
	a.CreatedAt, a.UpdatedAt = ts, ts
	cp := *a
	cp.User, cp.Room = nil, nil
	m.s.allocations = append(m.s.allocations, &cp)
	return nil
}

func (m *mockAllocationRepo) withAssociations(a *model.RoomAllocation) model.RoomAllocation {
	cp := *a
	cp.User = m.s.userCopy(a.UserID)
	if r := m.s.findRoom(a.RoomID); r != nil {
		rc := *r
		cp.Room = &rc
	}
	return cp
}

func (m *mockAllocationRepo) GetByID(_ context.Context, id string) (*model.RoomAllocation, error) {
	for _, a := range m.s.allocations {
		if a.AllocationID == id {
			cp := m.withAssociations(a)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) List(_ context.Context, f repository.AllocationFilter, offset, limit int) ([]model.RoomAllocation, int64, error) {
	var all []model.RoomAllocation
	for i := len(m.s.allocations) - 1; i >= 0; i-- {
		a := m.s.allocations[i]
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.RoomID != "" && a.RoomID != f.RoomID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Hostel != "" {
			if r := m.s.findRoom(a.RoomID); r == nil || r.Hostel != f.Hostel {
				continue
			}
		}
		all = append(all, m.withAssociations(a))
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockAllocationRepo) Update(_ context.Context, a *model.RoomAllocation) error {
	if m.violatesPartialIndex(a) {
		return gorm.ErrDuplicatedKey
	}
	for i, o := range m.s.allocations {
		if o.AllocationID == a.AllocationID {
			cp := *a
			cp.User, cp.Room = nil, nil
			m.s.allocations[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) Delete(_ context.Context, id string) error {
	allocations := m.s.allocations[:0]
	for _, a := range m.s.allocations {
		if a.AllocationID != id {
			allocations = append(allocations, a)
		}
	}
	m.s.allocations = allocations
	return nil
}

func (m *mockAllocationRepo) CurrentByUser(_ context.Context, userID string) (*model.RoomAllocation, error) {
	for _, a := range m.s.allocations {
		if a.UserID == userID && a.Status == AllocationStatusCurrent {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAllocationRepo) CurrentBeds(_ context.Context, roomID string) ([]int, error) {
	var beds []int
	for _, a := range m.s.allocations {
		if a.RoomID == roomID && a.Status == AllocationStatusCurrent {
			beds = append(beds, a.BedNumber)
		}
	}
	sort.Ints(beds)
	return beds, nil
}

func (m *mockAllocationRepo) CountCurrentByRooms(_ context.Context, roomIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(roomIDs))
	for _, id := range roomIDs {
		for _, a := range m.s.allocations {
			if a.RoomID == id && a.Status == AllocationStatusCurrent {
				out[id]++
			}
		}
	}
	return out, nil
}

// ── Mock AssetRepository ──

type mockAssetRepo struct{ s *memStore }

func (m *mockAssetRepo) Create(_ context.Context, asset *model.Asset) error {
	id, ts := m.s.next("asset")
	asset.AssetID = id
	asset.CreatedAt, asset.UpdatedAt = ts, ts
	cp := *asset
	m.s.assets = append(m.s.assets, &cp)
	return nil
}

func (m *mockAssetRepo) GetByID(_ context.Context, id string) (*model.Asset, error) {
	for _, a := range m.s.assets {
		if a.AssetID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssetRepo) List(_ context.Context, f repository.AssetFilter, offset, limit int) ([]model.Asset, int64, error) {
	var all []model.Asset
	for _, a := range m.s.assets {
		if f.AssetType != "" && a.AssetType != f.AssetType {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Location != "" && a.Location != f.Location {
			continue
		}
		all = append(all, *a)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockAssetRepo) Update(_ context.Context, asset *model.Asset) error {
	for i, a := range m.s.assets {
		if a.AssetID == asset.AssetID {
			cp := *asset
			m.s.assets[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAssetRepo) Delete(_ context.Context, id string) error {
	assets := m.s.assets[:0]
	for _, a := range m.s.assets {
		if a.AssetID != id {
			assets = append(assets, a)
		}
	}
	m.s.assets = assets
	return nil
}

// ── Mock PostRepository / CommentRepository ──

type mockPostRepo struct{ s *memStore }

func (m *mockPostRepo) Create(_ context.Context, post *model.CommunityPost) error {
	id, ts := m.s.next("post")
	post.PostID = id
	post.CreatedAt, post.UpdatedAt = ts, ts
	cp := *post
	cp.User = nil
	m.s.posts = append(m.s.posts, &cp)
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (*model.CommunityPost, error) {
	for _, p := range m.s.posts {
		if p.PostID == id {
			cp := *p
			cp.User = m.s.userCopy(p.UserID)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostRepo) List(_ context.Context, category string, offset, limit int) ([]model.CommunityPost, int64, error) {
	var all []model.CommunityPost
	for i := len(m.s.posts) - 1; i >= 0; i-- {
		p := m.s.posts[i]
		if category != "" && p.Category != category {
			continue
		}
		cp := *p
		cp.User = m.s.userCopy(p.UserID)
		all = append(all, cp)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockPostRepo) Update(_ context.Context, post *model.CommunityPost) error {
	for i, p := range m.s.posts {
		if p.PostID == post.PostID {
			cp := *post
			cp.User = nil
			m.s.posts[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockPostRepo) Delete(_ context.Context, id string) error {
	posts := m.s.posts[:0]
	for _, p := range m.s.posts {
		if p.PostID != id {
			posts = append(posts, p)
		}
	}
	m.s.posts = posts

	comments := m.s.comments[:0]
	for _, c := range m.s.comments {
		if c.PostID != id {
			comments = append(comments, c)
		}
	}
	m.s.comments = comments
	return nil
}

type mockCommentRepo struct{ s *memStore }

func (m *mockCommentRepo) Create(_ context.Context, c *model.Comment) error {
	id, ts := m.s.next("comment")
	c.CommentID = id
	c.CreatedAt, c.UpdatedAt = ts, ts
	cp := *c
	cp.User = nil
	m.s.comments = append(m.s.comments, &cp)
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id string) (*model.Comment, error) {
	for _, c := range m.s.comments {
		if c.CommentID == id {
			cp := *c
			cp.User = m.s.userCopy(c.UserID)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommentRepo) ListByPost(_ context.Context, postID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range m.s.comments {
		if c.PostID == postID {
			cp := *c
			cp.User = m.s.userCopy(c.UserID)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	comments := m.s.comments[:0]
	for _, c := range m.s.comments {
		if c.CommentID != id {
			comments = append(comments, c)
		}
	}
	m.s.comments = comments
	return nil
}

// ── Mock MessMenuRepository / MessFeedbackRepository ──

type mockMessMenuRepo struct{ s *memStore }

func (m *mockMessMenuRepo) slotTaken(menu *model.MessMenu) bool {
	for _, o := range m.s.menus {
		if o.MenuID != menu.MenuID && o.DayOfWeek == menu.DayOfWeek && o.MealType == menu.MealType {
			return true
		}
	}
	return false
}

func (m *mockMessMenuRepo) Create(_ context.Context, menu *model.MessMenu) error {
	if m.slotTaken(menu) {
		return gorm.ErrDuplicatedKey
	}
	id, ts := m.s.next("menu")
	menu.MenuID = id
	menu.CreatedAt, menu.UpdatedAt = ts, ts
	cp := *menu
	m.s.menus = append(m.s.menus, &cp)
	return nil
}

func (m *mockMessMenuRepo) GetByID(_ context.Context, id string) (*model.MessMenu, error) {
	for _, menu := range m.s.menus {
		if menu.MenuID == id {
			cp := *menu
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessMenuRepo) List(_ context.Context, dayOfWeek, mealType string) ([]model.MessMenu, error) {
	var out []model.MessMenu
	for _, menu := range m.s.menus {
		if dayOfWeek != "" && menu.DayOfWeek != dayOfWeek {
			continue
		}
		if mealType != "" && menu.MealType != mealType {
			continue
		}
		out = append(out, *menu)
	}
	return out, nil
}

func (m *mockMessMenuRepo) Update(_ context.Context, menu *model.MessMenu) error {
	if m.slotTaken(menu) {
		return gorm.ErrDuplicatedKey
	}
	for i, o := range m.s.menus {
		if o.MenuID == menu.MenuID {
			cp := *menu
			m.s.menus[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockMessMenuRepo) Delete(_ context.Context, id string) error {
	menus := m.s.menus[:0]
	for _, menu := range m.s.menus {
		if menu.MenuID != id {
			menus = append(menus, menu)
		}
	}
	m.s.menus = menus
	return nil
}

type mockMessFeedbackRepo struct{ s *memStore }

func (m *mockMessFeedbackRepo) Create(_ context.Context, fb *model.MessFeedback) error {
	id, ts := m.s.next("feedback")
	fb.FeedbackID = id
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = ts
	}
	cp := *fb
	m.s.feedback = append(m.s.feedback, &cp)
	return nil
}

func (m *mockMessFeedbackRepo) filtered(f repository.FeedbackFilter) []model.MessFeedback {
	var out []model.MessFeedback
	for i := len(m.s.feedback) - 1; i >= 0; i-- {
		fb := m.s.feedback[i]
		if f.UserID != "" && fb.UserID != f.UserID {
			continue
		}
		if f.MealType != "" && fb.MealType != f.MealType {
			continue
		}
		if f.Since != nil && fb.CreatedAt.Before(*f.Since) {
			continue
		}
		out = append(out, *fb)
	}
	return out
}

func (m *mockMessFeedbackRepo) List(_ context.Context, f repository.FeedbackFilter, offset, limit int) ([]model.MessFeedback, int64, error) {
	all := m.filtered(f)
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockMessFeedbackRepo) Stats(_ context.Context, f repository.FeedbackFilter) (*repository.FeedbackStats, error) {
	stats := &repository.FeedbackStats{Distribution: make(map[int]int64)}
	var ratingSum, sentimentSum float64
	var scored int
	for _, fb := range m.filtered(f) {
		stats.Total++
		stats.Distribution[fb.Rating]++
		ratingSum += float64(fb.Rating)
		if fb.SentimentScore != nil {
			sentimentSum += *fb.SentimentScore
			scored++
		}
	}
	if stats.Total > 0 {
		stats.AverageRating = ratingSum / float64(stats.Total)
	}
	if scored > 0 {
		avg := sentimentSum / float64(scored)
		stats.AverageSentiment = &avg
	}
	return stats, nil
}

// ── 测试数据 ──

// seedUser 直接写入存储；密码固定为 password123
func seedUser(s *memStore, email, role, hostel string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	id, ts := s.next("user")
	u := &model.User{
		UserID:       id,
		Email:        email,
		FullName:     strings.Split(email, "@")[0],
		PasswordHash: string(hash),
		Role:         role,
		Hostel:       hostel,
		IsActive:     true,
		BaseModel:    model.BaseModel{CreatedAt: ts, UpdatedAt: ts},
	}
	s.users = append(s.users, u)
	return u
}

func seedRoom(s *memStore, number, hostel string, floor, capacity int) *model.Room {
	id, ts := s.next("room")
	r := &model.Room{
		RoomID:    id,
		Number:    number,
		Floor:     floor,
		Hostel:    hostel,
		Type:      "double",
		Capacity:  capacity,
		BaseModel: model.BaseModel{CreatedAt: ts, UpdatedAt: ts},
	}
	s.rooms = append(s.rooms, r)
	return r
}

func actorOf(u *model.User) *permission.Actor {
	return &permission.Actor{UserID: u.UserID, Role: u.Role, Hostel: u.Hostel}
}

// ── 辅助 ──

func paginate[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
