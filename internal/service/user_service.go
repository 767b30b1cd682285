package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/mail"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/model"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	pkgerrors "github.com/marwahavanshika/FYP2025/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserSelfRoleChange = errors.New("cannot change your own role")
	ErrUserSelfDelete     = errors.New("cannot delete yourself")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// UserService 用户业务接口
type UserService interface {
	GetMe(ctx context.Context, actor *permission.Actor) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, actor *permission.Actor, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, actor *permission.Actor, req *dto.ChangePasswordRequest) error

	CreateUser(ctx context.Context, actor *permission.Actor, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor *permission.Actor, id string) error
	AssignRole(ctx context.Context, actor *permission.Actor, id string, req *dto.AssignRoleRequest) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResponse, error)
	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, rows []ImportUserRow) (*dto.ImportUserResponse, error)
}

// ImportUserRow Excel 导入解析后的单行数据
type ImportUserRow struct {
	Row         int
	FullName    string
	Email       string
	PhoneNumber string
	Hostel      string
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── 个人资料 ──────────────────────

func (s *userService) GetMe(ctx context.Context, actor *permission.Actor) (*dto.UserResponse, error) {
	return s.GetByID(ctx, actor.UserID)
}

func (s *userService) UpdateMe(ctx context.Context, actor *permission.Actor, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		s.logger.Error("更新个人资料失败", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor *permission.Actor, req *dto.ChangePasswordRequest) error {
	user, err := s.loadUser(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, actor *permission.Actor, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if !permission.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	// 只有 admin 可以创建 admin
	if req.Role == permission.RoleAdmin && actor.Role != permission.RoleAdmin {
		return nil, ErrNoPermission
	}

	hostel, err := resolveRoleHostel(req.Role, req.Hostel)
	if err != nil {
		return nil, err
	}

	password := req.Password
	var tempPassword string
	if password == "" {
		tempPassword, err = generateTempPassword(10)
		if err != nil {
			s.logger.Error("生成临时密码失败", zap.Error(err))
			return nil, err
		}
		password = tempPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        strings.TrimSpace(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		Hostel:       hostel,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建用户",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
		zap.String("operator", actor.UserID),
	)

	return &dto.CreateUserResponse{
		User:         toUserResponse(user),
		TempPassword: tempPassword,
	}, nil
}

// resolveRoleHostel warden 的宿舍楼由角色决定；其它角色的宿舍楼可为空
func resolveRoleHostel(role, hostel string) (string, error) {
	if h := permission.WardenHostel(role); h != "" {
		return h, nil
	}
	if hostel != "" && !permission.IsValidHostel(hostel) {
		return "", ErrInvalidHostel
	}
	return hostel, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filter := repository.UserFilter{
		Role:    req.Role,
		Hostel:  req.Hostel,
		Keyword: strings.TrimSpace(req.Keyword),
	}

	users, total, err := s.repo.User.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, toUserResponse(&users[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		s.logger.Error("更新用户失败", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── AssignRole ──────────────────────

func (s *userService) AssignRole(ctx context.Context, actor *permission.Actor, id string, req *dto.AssignRoleRequest) (*dto.UserResponse, error) {
	if id == actor.UserID {
		return nil, ErrUserSelfRoleChange
	}
	if !permission.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if req.Role == permission.RoleAdmin && actor.Role != permission.RoleAdmin {
		return nil, ErrNoPermission
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	// 非 admin 不能改动 admin 账号
	if user.Role == permission.RoleAdmin && actor.Role != permission.RoleAdmin {
		return nil, ErrNoPermission
	}

	hostel := user.Hostel
	if req.Hostel != nil {
		hostel = *req.Hostel
	}
	hostel, err = resolveRoleHostel(req.Role, hostel)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = req.Role
	user.Hostel = hostel

	// 新角色不能处理的未结投诉在同一事务内取消指派
	var released int
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Update(ctx, user); err != nil {
			return err
		}
		n, err := releaseMismatchedAssignments(ctx, tx, user.UserID, user.Role)
		released = n
		return err
	})
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("修改用户角色失败", zap.String("user_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("修改用户角色",
		zap.String("user_id", id),
		zap.String("old_role", oldRole),
		zap.String("new_role", user.Role),
		zap.Int("released_complaints", released),
		zap.String("operator", actor.UserID),
	)

	resp := toUserResponse(user)
	return &resp, nil
}

// releaseMismatchedAssignments 清空指派给 userID、仍未结且 role 无法处理的投诉的处理人
func releaseMismatchedAssignments(ctx context.Context, tx *repository.Repository, userID, role string) (int, error) {
	assigned, err := tx.Complaint.ListAll(ctx, repository.ComplaintFilter{AssignedTo: userID})
	if err != nil {
		return 0, err
	}
	released := 0
	for _, c := range assigned {
		if c.Status != ComplaintStatusPending && c.Status != ComplaintStatusInProgress {
			continue
		}
		if permission.CanHandle(role, c.Category) {
			continue
		}
		if err := tx.Complaint.UpdateFields(ctx, c.ComplaintID, c.Version, map[string]interface{}{"assigned_to": nil}); err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除用户；其点赞记录随用户级联删除，受影响投诉的计数在同一事务内重算
func (s *userService) Delete(ctx context.Context, actor *permission.Actor, id string) error {
	if id == actor.UserID {
		return ErrUserSelfDelete
	}
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		complaintIDs, err := tx.Upvote.ComplaintIDsByUser(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.User.Delete(ctx, id); err != nil {
			return err
		}
		for _, cid := range complaintIDs {
			if _, err := tx.Complaint.RecountUpvotes(ctx, cid); err != nil && !isNotFound(err) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除用户失败", zap.String("user_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("删除用户", zap.String("user_id", id), zap.String("operator", actor.UserID))
	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, id string) (*dto.ResetPasswordResponse, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	tempPassword, err := generateTempPassword(10)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{TempPassword: tempPassword}, nil
}

// ────────────────────── ParseImportFile ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("spreadsheet has no data rows (first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("spreadsheet exceeds %d data rows", maxImportRows)
	ErrImportBadHeader   = errors.New("spreadsheet header must contain name and email columns")
	ErrImportInvalidFile = errors.New("file is not a valid xlsx spreadsheet")
)

// ParseImportFile 解析导入 Excel 文件，返回解析后的行数据
func (s *userService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportInvalidFile, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	// 表头列序不固定
	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	cellAt := func(row []string, key string) string {
		idx := colIndex[key]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		row := excelRows[i]
		item := ImportUserRow{
			Row:         i + 1,
			FullName:    cellAt(row, "name"),
			Email:       cellAt(row, "email"),
			PhoneNumber: cellAt(row, "phone"),
			Hostel:      strings.ToLower(cellAt(row, "hostel")),
		}

		// 跳过全空行
		if item.FullName == "" && item.Email == "" && item.PhoneNumber == "" && item.Hostel == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// parseHeaderIndex 解析表头，返回列名 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"name":   -1,
		"email":  -1,
		"phone":  -1,
		"hostel": -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "full_name", "full name":
			idx["name"] = i
		case "email", "e-mail":
			idx["email"] = i
		case "phone", "phone_number", "phone number":
			idx["phone"] = i
		case "hostel":
			idx["hostel"] = i
		}
	}
	return idx
}

// ────────────────────── ImportUsers ──────────────────────

// ImportUsers 批量创建学生账号；校验失败的行逐行报告，写库阶段任一失败则整体回滚
func (s *userService) ImportUsers(ctx context.Context, rows []ImportUserRow) (*dto.ImportUserResponse, error) {
	resp := &dto.ImportUserResponse{Total: len(rows)}

	type validatedRow struct {
		row      ImportUserRow
		password string
		hash     []byte
	}
	var validRows []validatedRow
	seen := make(map[string]bool, len(rows))

	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportUserError{Row: row, Reason: reason})
	}

	// 第一阶段：预校验，不写库
	for _, row := range rows {
		if row.FullName == "" || row.Email == "" {
			fail(row.Row, "name and email are required")
			continue
		}
		if _, err := mail.ParseAddress(row.Email); err != nil {
			fail(row.Row, fmt.Sprintf("invalid email: %s", row.Email))
			continue
		}
		if row.Hostel != "" && !permission.IsValidHostel(row.Hostel) {
			fail(row.Row, fmt.Sprintf("invalid hostel: %s", row.Hostel))
			continue
		}

		key := strings.ToLower(row.Email)
		if seen[key] {
			fail(row.Row, fmt.Sprintf("duplicate email in file: %s", row.Email))
			continue
		}
		if _, err := s.repo.User.GetByEmail(ctx, row.Email); err == nil {
			fail(row.Row, fmt.Sprintf("email already registered: %s", row.Email))
			continue
		} else if !isNotFound(err) {
			s.logger.Error("查询用户失败", zap.String("email", row.Email), zap.Error(err))
			return nil, err
		}
		seen[key] = true

		password, err := generateTempPassword(10)
		if err != nil {
			fail(row.Row, "failed to generate password")
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fail(row.Row, "failed to hash password")
			continue
		}

		validRows = append(validRows, validatedRow{row: row, password: password, hash: hash})
	}

	if len(validRows) == 0 {
		return resp, nil
	}

	// 第二阶段：事务内创建
	var created []dto.ImportedUser
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		created = created[:0]
		for _, vr := range validRows {
			user := &model.User{
				Email:        vr.row.Email,
				FullName:     vr.row.FullName,
				PasswordHash: string(vr.hash),
				PhoneNumber:  vr.row.PhoneNumber,
				Role:         permission.RoleStudent,
				Hostel:       vr.row.Hostel,
				IsActive:     true,
			}
			if err := tx.User.Create(ctx, user); err != nil {
				s.logger.Error("导入用户写入失败，事务回滚", zap.Int("row", vr.row.Row), zap.Error(err))
				return fmt.Errorf("row %d: %w", vr.row.Row, err)
			}
			created = append(created, dto.ImportedUser{Email: user.Email, TempPassword: vr.password})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Success = len(created)
	resp.Created = created
	return resp, nil
}

// ── 内部辅助方法 ──

func (s *userService) loadUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// generateTempPassword 生成指定长度的临时密码（至少一个字母和一个数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 8 {
		length = 8
	}

	result := make([]byte, length)

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
