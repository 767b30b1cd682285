package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,max=40"`
	Hostel  string `form:"hostel"  binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateMeRequest 修改个人资料
type UpdateMeRequest struct {
	FullName    *string `json:"full_name"    binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        binding:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
}

// CreateUserRequest 管理员创建用户；未给密码时生成临时密码
type CreateUserRequest struct {
	Email       string `json:"email"        binding:"required,email,max=255"`
	FullName    string `json:"full_name"    binding:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=30"`
	Role        string `json:"role"         binding:"required,max=40"`
	Hostel      string `json:"hostel"       binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
	Password    string `json:"password"     binding:"omitempty,min=8,max=72"`
}

// CreateUserResponse 创建用户响应
type CreateUserResponse struct {
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password,omitempty"`
}

// UpdateUserRequest 管理员更新用户资料
type UpdateUserRequest struct {
	FullName    *string `json:"full_name"    binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        binding:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
	IsActive    *bool   `json:"is_active"`
}

// AssignRoleRequest 修改角色与宿舍楼
// warden 角色的宿舍楼由角色决定，传入值被忽略
type AssignRoleRequest struct {
	Role   string  `json:"role"   binding:"required,max=40"`
	Hostel *string `json:"hostel" binding:"omitempty"`
}

// ImportUserResponse 批量导入学生响应
type ImportUserResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Created []ImportedUser    `json:"created,omitempty"`
	Errors  []ImportUserError `json:"errors,omitempty"`
}

// ImportedUser 导入成功的账号与临时密码
type ImportedUser struct {
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}

// ImportUserError 导入错误详情
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ResetPasswordResponse 管理员重置密码响应
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
