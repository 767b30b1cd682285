package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 公开注册请求；角色固定为 student
type RegisterRequest struct {
	Email       string `json:"email"        binding:"required,email,max=255"`
	FullName    string `json:"full_name"    binding:"required,min=2,max=100"`
	Password    string `json:"password"     binding:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=30"`
	Hostel      string `json:"hostel"       binding:"omitempty,oneof=lohit_girls lohit_boys papum_boys subhanshiri_boys"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
