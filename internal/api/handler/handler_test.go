package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/marwahavanshika/FYP2025/internal/api/middleware"
	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/internal/transcribe"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
	"github.com/marwahavanshika/FYP2025/pkg/jwt"
	"github.com/marwahavanshika/FYP2025/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.UserResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	logoutErr      error
	logoutJTI      string
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, claims *jwt.Claims) error {
	m.logoutJTI = claims.ID
	return m.logoutErr
}
func (m *mockAuthService) ResolveActor(_ context.Context, _ *jwt.Claims) (*permission.Actor, error) {
	return nil, errors.New("not used")
}

// ── Mock UserService ──

type mockUserService struct {
	parseRows []service.ImportUserRow
	parseErr  error
	importRes *dto.ImportUserResponse
	importErr error
	deleteErr error
	parsed    bool
}

func (m *mockUserService) GetMe(_ context.Context, a *permission.Actor) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: a.UserID, Role: a.Role}, nil
}
func (m *mockUserService) UpdateMe(_ context.Context, _ *permission.Actor, _ *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	return nil, nil
}
func (m *mockUserService) ChangePassword(_ context.Context, _ *permission.Actor, _ *dto.ChangePasswordRequest) error {
	return nil
}
func (m *mockUserService) CreateUser(_ context.Context, _ *permission.Actor, _ *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	return nil, nil
}
func (m *mockUserService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return nil, service.ErrUserNotFound
}
func (m *mockUserService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockUserService) Update(_ context.Context, _ string, _ *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return nil, nil
}
func (m *mockUserService) Delete(_ context.Context, _ *permission.Actor, _ string) error {
	return m.deleteErr
}
func (m *mockUserService) AssignRole(_ context.Context, _ *permission.Actor, _ string, _ *dto.AssignRoleRequest) (*dto.UserResponse, error) {
	return nil, nil
}
func (m *mockUserService) ResetPassword(_ context.Context, _ string) (*dto.ResetPasswordResponse, error) {
	return nil, nil
}
func (m *mockUserService) ParseImportFile(r io.Reader) ([]service.ImportUserRow, error) {
	m.parsed = true
	_, _ = io.ReadAll(r)
	return m.parseRows, m.parseErr
}
func (m *mockUserService) ImportUsers(_ context.Context, _ []service.ImportUserRow) (*dto.ImportUserResponse, error) {
	return m.importRes, m.importErr
}

// ── Mock ComplaintService ──

type mockComplaintService struct {
	createResult *dto.ComplaintResponse
	createErr    error
	gotActor     *permission.Actor
	gotCreate    *dto.CreateComplaintRequest
	voiceErr     error
	getErr       error
	updateErr    error
	upvoteResult *dto.UpvoteToggleResponse
}

func (m *mockComplaintService) Create(_ context.Context, a *permission.Actor, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	m.gotActor, m.gotCreate = a, req
	return m.createResult, m.createErr
}
func (m *mockComplaintService) CreateFromVoice(_ context.Context, _ *permission.Actor, _ *dto.VoiceComplaintRequest) (*dto.ComplaintResponse, error) {
	return m.createResult, m.voiceErr
}
func (m *mockComplaintService) List(_ context.Context, _ *permission.Actor, _ *dto.ComplaintListRequest) ([]dto.ComplaintResponse, int64, error) {
	return []dto.ComplaintResponse{}, 0, nil
}
func (m *mockComplaintService) GetByID(_ context.Context, _ *permission.Actor, id string) (*dto.ComplaintResponse, error) {
	return &dto.ComplaintResponse{ID: id}, m.getErr
}
func (m *mockComplaintService) Update(_ context.Context, _ *permission.Actor, id string, _ *dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error) {
	return &dto.ComplaintResponse{ID: id}, m.updateErr
}
func (m *mockComplaintService) Delete(_ context.Context, _ *permission.Actor, _ string) error {
	return nil
}
func (m *mockComplaintService) Assign(_ context.Context, _ *permission.Actor, _ string, _ *dto.AssignComplaintRequest) (*dto.ComplaintResponse, error) {
	return nil, service.ErrAssigneeMismatch
}
func (m *mockComplaintService) ToggleUpvote(_ context.Context, _ *permission.Actor, _ string) (*dto.UpvoteToggleResponse, error) {
	return m.upvoteResult, nil
}
func (m *mockComplaintService) GetUpvotes(_ context.Context, _ *permission.Actor, _ string) (*dto.UpvoteStatusResponse, error) {
	return nil, nil
}
func (m *mockComplaintService) Suggestions(_ context.Context, _ *permission.Actor, _ string) (*dto.SuggestionResponse, error) {
	return nil, nil
}

// ── Mock RoomService ──

type mockRoomService struct {
	allocErr    error
	freeBedErr  error
	freeBedHost string
}

func (m *mockRoomService) CreateRoom(_ context.Context, _ *permission.Actor, _ *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	return nil, nil
}
func (m *mockRoomService) ListRooms(_ context.Context, _ *dto.RoomListRequest) ([]dto.RoomResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockRoomService) GetRoom(_ context.Context, _ string) (*dto.RoomResponse, error) {
	return nil, nil
}
func (m *mockRoomService) UpdateRoom(_ context.Context, _ *permission.Actor, _ string, _ *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	return nil, nil
}
func (m *mockRoomService) DeleteRoom(_ context.Context, _ *permission.Actor, _ string) error {
	return service.ErrRoomHasAllocations
}
func (m *mockRoomService) AvailableBeds(_ context.Context, _ string) (*dto.AvailableBedsResponse, error) {
	return nil, nil
}
func (m *mockRoomService) FindFreeBed(_ context.Context, _ *permission.Actor, hostel string) (*dto.FreeBedResponse, error) {
	m.freeBedHost = hostel
	if m.freeBedErr != nil {
		return nil, m.freeBedErr
	}
	return &dto.FreeBedResponse{BedNumber: 1}, nil
}
func (m *mockRoomService) CreateAllocation(_ context.Context, _ *permission.Actor, _ *dto.CreateAllocationRequest) (*dto.AllocationResponse, error) {
	return nil, m.allocErr
}
func (m *mockRoomService) AutoAllocate(_ context.Context, _ *permission.Actor, _ *dto.AutoAllocationRequest) (*dto.AllocationResponse, error) {
	return nil, m.allocErr
}
func (m *mockRoomService) ListAllocations(_ context.Context, _ *permission.Actor, _ *dto.AllocationListRequest) ([]dto.AllocationResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockRoomService) GetAllocation(_ context.Context, _ *permission.Actor, _ string) (*dto.AllocationResponse, error) {
	return nil, nil
}
func (m *mockRoomService) UpdateAllocation(_ context.Context, _ *permission.Actor, _ string, _ *dto.UpdateAllocationRequest) (*dto.AllocationResponse, error) {
	return nil, m.allocErr
}
func (m *mockRoomService) DeleteAllocation(_ context.Context, _ *permission.Actor, _ string) error {
	return nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportComplaints(_ context.Context, _ *permission.Actor, _ *dto.ComplaintListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock MessService ──

type mockMessService struct {
	createMenuErr error
}

func (m *mockMessService) CreateMenu(_ context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error) {
	if m.createMenuErr != nil {
		return nil, m.createMenuErr
	}
	return &dto.MenuResponse{ID: "menu-1", DayOfWeek: req.DayOfWeek, MealType: req.MealType}, nil
}
func (m *mockMessService) ListMenu(_ context.Context, _ *dto.MenuListRequest) ([]dto.MenuResponse, error) {
	return nil, nil
}
func (m *mockMessService) GetMenu(_ context.Context, _ string) (*dto.MenuResponse, error) {
	return nil, service.ErrMenuNotFound
}
func (m *mockMessService) UpdateMenu(_ context.Context, _ string, _ *dto.UpdateMenuRequest) (*dto.MenuResponse, error) {
	return nil, nil
}
func (m *mockMessService) DeleteMenu(_ context.Context, _ string) error {
	return nil
}
func (m *mockMessService) CreateFeedback(_ context.Context, _ *permission.Actor, _ *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	return &dto.FeedbackResponse{ID: "fb-1"}, nil
}
func (m *mockMessService) ListFeedback(_ context.Context, _ *permission.Actor, _ *dto.FeedbackListRequest) ([]dto.FeedbackResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockMessService) FeedbackStats(_ context.Context, req *dto.FeedbackStatsRequest) (*dto.FeedbackStatsResponse, error) {
	return &dto.FeedbackStatsResponse{Days: req.Days}, nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

var (
	studentActor = &permission.Actor{UserID: "student-1", Role: permission.RoleStudent, Hostel: permission.HostelLohitGirls}
	adminActor   = &permission.Actor{UserID: "admin-1", Role: permission.RoleAdmin}
)

// withActor 模拟 JWTAuth 注入上下文
func withActor(actor *permission.Actor, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, actor.UserID)
		c.Set(middleware.CtxRole, actor.Role)
		c.Set(middleware.CtxHostel, actor.Hostel)
		c.Set(middleware.CtxActor, actor)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = jsonBody(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "test-access-token", TokenType: "bearer", ExpiresIn: 1800},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@campus.edu", Password: "password123"})

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestAuthHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidCredentials", service.ErrInvalidCredentials, 401, 20001},
		{"Inactive", service.ErrUserInactive, 400, 20003},
		{"InternalError", errors.New("db down"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err})
			r := gin.New()
			r.POST("/auth/login", h.Login)
			w := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@campus.edu", Password: "x"})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailExists})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	w := doJSON(r, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email: "a@campus.edu", FullName: "Asha", Password: "password123",
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestAuthHandler_Register_InvalidHostel(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
		"email": "a@campus.edu", "full_name": "Asha", "password": "password123", "hostel": "kameng_boys",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set(middleware.CtxClaims, &jwt.Claims{})
		c.MustGet(middleware.CtxClaims).(*jwt.Claims).ID = "jti-1"
		h.Logout(c)
	})
	w := doJSON(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "jti-1" {
		t.Errorf("expected jti-1 to be revoked, got %q", mock.logoutJTI)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	w := doJSON(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func multipartFile(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, "students.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return body, mw.FormDataContentType()
}

func TestUserHandler_ImportUsers_Success(t *testing.T) {
	mock := &mockUserService{
		parseRows: []service.ImportUserRow{{Row: 2, FullName: "Asha", Email: "asha@campus.edu"}},
		importRes: &dto.ImportUserResponse{Total: 1, Success: 1},
	}
	h := NewUserHandler(mock)

	r := gin.New()
	r.POST("/users/import", withActor(adminActor, h.ImportUsers))
	body, ct := multipartFile(t, "file", []byte("xlsx-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/users/import", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !mock.parsed {
		t.Error("uploaded file should be parsed")
	}
}

func TestUserHandler_ImportUsers_MissingFile(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	r := gin.New()
	r.POST("/users/import", withActor(adminActor, h.ImportUsers))
	body, ct := multipartFile(t, "other", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/users/import", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserHandler_ImportUsers_BadSpreadsheet(t *testing.T) {
	h := NewUserHandler(&mockUserService{parseErr: service.ErrImportBadHeader})

	r := gin.New()
	r.POST("/users/import", withActor(adminActor, h.ImportUsers))
	body, ct := multipartFile(t, "file", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/users/import", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20009 {
		t.Errorf("expected code 20009, got %d", resp.Code)
	}
}

func TestUserHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"SelfDelete", service.ErrUserSelfDelete, 400, 20006},
		{"NotFound", service.ErrUserNotFound, 404, 20002},
		{"NoPermission", service.ErrNoPermission, 403, 10003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&mockUserService{deleteErr: tt.err})
			r := gin.New()
			r.DELETE("/users/:id", withActor(adminActor, h.DeleteUser))
			w := doJSON(r, http.MethodDelete, "/users/u-1", nil)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestUserHandler_GetMe_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&mockUserService{})

	r := gin.New()
	r.GET("/users/me", h.GetMe)
	w := doJSON(r, http.MethodGet, "/users/me", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ComplaintHandler Tests
// ═══════════════════════════════════════════════════════════

func TestComplaintHandler_Create_PassesActor(t *testing.T) {
	mock := &mockComplaintService{createResult: &dto.ComplaintResponse{ID: "c-1", Category: "plumbing"}}
	h := NewComplaintHandler(mock)

	r := gin.New()
	r.POST("/complaints", withActor(studentActor, h.CreateComplaint))
	w := doJSON(r, http.MethodPost, "/complaints", dto.CreateComplaintRequest{
		Title: "Leak", Description: "water everywhere", Category: "auto",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotActor != studentActor {
		t.Error("handler must pass the authenticated actor")
	}
	if mock.gotCreate.Category != "auto" {
		t.Errorf("expected category auto to reach the service, got %q", mock.gotCreate.Category)
	}
}

func TestComplaintHandler_Create_InvalidEnum(t *testing.T) {
	h := NewComplaintHandler(&mockComplaintService{})

	r := gin.New()
	r.POST("/complaints", withActor(studentActor, h.CreateComplaint))
	w := doJSON(r, http.MethodPost, "/complaints", map[string]string{
		"title": "Leak", "description": "water", "priority": "critical",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestComplaintHandler_Voice_RecognitionError(t *testing.T) {
	recErr := &transcribe.RecognitionError{Err: errors.New("illegal base64 data at input byte 4")}
	h := NewComplaintHandler(&mockComplaintService{voiceErr: recErr})

	r := gin.New()
	r.POST("/complaints/voice", withActor(studentActor, h.CreateVoiceComplaint))
	w := doJSON(r, http.MethodPost, "/complaints/voice", dto.VoiceComplaintRequest{AudioData: "!!!!"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Message != "Error in speech recognition: illegal base64 data at input byte 4" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestComplaintHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrComplaintNotFound, 404, 30001},
		{"Forbidden", service.ErrComplaintForbidden, 403, 30002},
		{"FieldNotAllowed", service.ErrFieldNotAllowed, 403, 30004},
		{"AssigneeMismatch", service.ErrAssigneeMismatch, 400, 30007},
		{"OptimisticLock", pkgerrors.ErrOptimisticLock, 409, 30008},
		{"HostelScope", service.ErrHostelNotInScope, 403, 10003},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewComplaintHandler(&mockComplaintService{updateErr: tt.err})
			r := gin.New()
			r.PUT("/complaints/:id", withActor(studentActor, h.UpdateComplaint))
			w := doJSON(r, http.MethodPut, "/complaints/c-1", map[string]string{"status": "resolved"})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestComplaintHandler_ToggleUpvote(t *testing.T) {
	h := NewComplaintHandler(&mockComplaintService{
		upvoteResult: &dto.UpvoteToggleResponse{ComplaintID: "c-1", Upvoted: true, UpvoteCount: 3},
	})

	r := gin.New()
	r.POST("/complaints/:id/upvote", withActor(studentActor, h.ToggleUpvote))
	w := doJSON(r, http.MethodPost, "/complaints/c-1/upvote", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data dto.UpvoteToggleResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Data.Upvoted || body.Data.UpvoteCount != 3 {
		t.Errorf("unexpected upvote payload: %+v", body.Data)
	}
}

// ═══════════════════════════════════════════════════════════
// RoomHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRoomHandler_CreateAllocation_BedTaken(t *testing.T) {
	mock := &mockRoomService{allocErr: &service.BedTakenError{RoomID: "r-1", BedNumber: 1, AvailableBeds: []int{2, 3}}}
	h := NewRoomHandler(mock)

	r := gin.New()
	r.POST("/rooms/allocations", withActor(adminActor, h.CreateAllocation))
	w := doJSON(r, http.MethodPost, "/rooms/allocations", dto.CreateAllocationRequest{
		UserID:    "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		RoomID:    "2b1a4c8e-7f3d-4b6a-9c2e-1d5f8a7b3c4d",
		BedNumber: 1,
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Code    int                    `json:"code"`
		Details dto.BedConflictDetails `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != 40007 {
		t.Errorf("expected code 40007, got %d", body.Code)
	}
	if len(body.Details.AvailableBeds) != 2 || body.Details.AvailableBeds[0] != 2 {
		t.Errorf("expected available beds [2 3], got %v", body.Details.AvailableBeds)
	}
}

func TestRoomHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"AlreadyAllocated", service.ErrUserAlreadyAllocated, 409, 40008},
		{"OutOfRange", service.ErrBedOutOfRange, 400, 40006},
		{"NoFreeBed", service.ErrNoFreeBed, 404, 40010},
		{"UserNotFound", service.ErrUserNotFound, 404, 20002},
		{"Transition", service.ErrInvalidStatusTransition, 400, 40011},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRoomHandler(&mockRoomService{allocErr: tt.err})
			r := gin.New()
			r.PUT("/rooms/allocations/:id", withActor(adminActor, h.UpdateAllocation))
			w := doJSON(r, http.MethodPut, "/rooms/allocations/a-1", map[string]string{"status": "past"})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestRoomHandler_DeleteRoom_WithAllocations(t *testing.T) {
	h := NewRoomHandler(&mockRoomService{})

	r := gin.New()
	r.DELETE("/rooms/:id", withActor(adminActor, h.DeleteRoom))
	w := doJSON(r, http.MethodDelete, "/rooms/r-1", nil)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestRoomHandler_FindFreeBed(t *testing.T) {
	mock := &mockRoomService{}
	h := NewRoomHandler(mock)

	r := gin.New()
	r.GET("/rooms/free-bed", withActor(adminActor, h.FindFreeBed))

	w := doJSON(r, http.MethodGet, "/rooms/free-bed", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing hostel: expected 400, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/rooms/free-bed?hostel=papum_boys", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.freeBedHost != permission.HostelPapumBoys {
		t.Errorf("expected hostel papum_boys, got %q", mock.freeBedHost)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "complaints_all.xlsx",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/complaints/export", withActor(adminActor, h.ExportComplaints))
	w := doJSON(r, http.MethodGet, "/complaints/export", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "complaints_all.xlsx") {
		t.Errorf("expected filename in Content-Disposition, got %q", cd)
	}
	if w.Body.String() != "excel content" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"NoComplaints", service.ErrExportNoComplaints, 404},
		{"NoPermission", service.ErrNoPermission, 403},
		{"GenerateFail", service.ErrExportGenerateFail, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewExportHandler(&mockExportService{err: tt.err})
			r := gin.New()
			r.GET("/complaints/export", withActor(adminActor, h.ExportComplaints))
			w := doJSON(r, http.MethodGet, "/complaints/export", nil)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// MessHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMessHandler_CreateMenu(t *testing.T) {
	h := NewMessHandler(&mockMessService{})

	r := gin.New()
	r.POST("/mess/menu", withActor(adminActor, h.CreateMenu))

	w := doJSON(r, http.MethodPost, "/mess/menu", dto.CreateMenuRequest{DayOfWeek: "Monday", MealType: "lunch", Description: "Rice, dal"})
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/mess/menu", dto.CreateMenuRequest{DayOfWeek: "Funday", MealType: "lunch", Description: "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid day: expected 400, got %d", w.Code)
	}
}

func TestMessHandler_CreateMenu_Duplicate(t *testing.T) {
	h := NewMessHandler(&mockMessService{createMenuErr: service.ErrMenuExists})

	r := gin.New()
	r.POST("/mess/menu", withActor(adminActor, h.CreateMenu))
	w := doJSON(r, http.MethodPost, "/mess/menu", dto.CreateMenuRequest{DayOfWeek: "Monday", MealType: "lunch", Description: "Rice"})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 70002 {
		t.Errorf("expected code 70002, got %d", resp.Code)
	}
}

func TestMessHandler_FeedbackStats_DaysBounds(t *testing.T) {
	h := NewMessHandler(&mockMessService{})

	r := gin.New()
	r.GET("/mess/feedback/stats", withActor(adminActor, h.FeedbackStats))

	if w := doJSON(r, http.MethodGet, "/mess/feedback/stats?days=400", nil); w.Code != http.StatusBadRequest {
		t.Errorf("days=400: expected 400, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/mess/feedback/stats?days=7&meal_type=dinner", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
