// Package permission 定义角色、宿舍楼、投诉类别三个封闭枚举，
// 以及角色 → 能力的扁平映射表（无继承）。
package permission

// ── 角色 ──

const (
	RoleStudent               = "student"
	RoleAdmin                 = "admin"
	RoleHMC                   = "hmc"
	RoleWardenLohitGirls      = "warden_lohit_girls"
	RoleWardenLohitBoys       = "warden_lohit_boys"
	RoleWardenPapumBoys       = "warden_papum_boys"
	RoleWardenSubhanshiriBoys = "warden_subhanshiri_boys"
	RolePlumber               = "plumber"
	RoleElectrician           = "electrician"
	RoleMessVendor            = "mess_vendor"
)

// ── 宿舍楼 ──

const (
	HostelLohitGirls      = "lohit_girls"
	HostelLohitBoys       = "lohit_boys"
	HostelPapumBoys       = "papum_boys"
	HostelSubhanshiriBoys = "subhanshiri_boys"
)

// ── 投诉类别 ──

const (
	CategoryPlumbing    = "plumbing"
	CategoryElectrical  = "electrical"
	CategoryCleaning    = "cleaning"
	CategoryMaintenance = "maintenance"
	CategoryNoise       = "noise"
	CategoryMess        = "mess"
	CategoryFood        = "food"
	CategoryOther       = "other"
)

// Capability 能力标识
type Capability string

const (
	CapUserManage        Capability = "user.manage"
	CapUserAssignRole    Capability = "user.assign_role"
	CapAssetManage       Capability = "asset.manage"
	CapRoomManage        Capability = "room.manage"
	CapAllocationManage  Capability = "allocation.manage"
	CapComplaintManage   Capability = "complaint.manage"
	CapComplaintAssign   Capability = "complaint.assign"
	CapComplaintExport   Capability = "complaint.export"
	CapCommunityModerate Capability = "community.moderate"
	CapMessMenuManage    Capability = "mess.menu.manage"
	CapMessStatsView     Capability = "mess.stats.view"
)

// Roles 全部角色，按声明顺序
var Roles = []string{
	RoleStudent, RoleAdmin, RoleHMC,
	RoleWardenLohitGirls, RoleWardenLohitBoys, RoleWardenPapumBoys, RoleWardenSubhanshiriBoys,
	RolePlumber, RoleElectrician, RoleMessVendor,
}

// Hostels 全部宿舍楼
var Hostels = []string{HostelLohitGirls, HostelLohitBoys, HostelPapumBoys, HostelSubhanshiriBoys}

// Categories 全部投诉类别
var Categories = []string{
	CategoryPlumbing, CategoryElectrical, CategoryCleaning, CategoryMaintenance,
	CategoryNoise, CategoryMess, CategoryFood, CategoryOther,
}

var allCapabilities = []Capability{
	CapUserManage, CapUserAssignRole, CapAssetManage, CapRoomManage, CapAllocationManage,
	CapComplaintManage, CapComplaintAssign, CapComplaintExport, CapCommunityModerate,
	CapMessMenuManage, CapMessStatsView,
}

var wardenCapabilities = []Capability{
	CapRoomManage, CapAllocationManage, CapComplaintManage, CapCommunityModerate,
	CapMessMenuManage, CapMessStatsView,
}

// capabilityTable 角色 → 能力集合
// 宿舍楼范围与类别范围不在此表中表达，由业务层按 WardenHostel / SpecialtyCategories 再过滤
var capabilityTable = map[string]map[Capability]bool{
	RoleStudent:               {},
	RoleAdmin:                 capSet(allCapabilities...),
	RoleHMC:                   capSet(allCapabilities...),
	RoleWardenLohitGirls:      capSet(wardenCapabilities...),
	RoleWardenLohitBoys:       capSet(wardenCapabilities...),
	RoleWardenPapumBoys:       capSet(wardenCapabilities...),
	RoleWardenSubhanshiriBoys: capSet(wardenCapabilities...),
	RolePlumber:               capSet(CapComplaintManage),
	RoleElectrician:           capSet(CapComplaintManage),
	RoleMessVendor:            capSet(CapComplaintManage, CapMessMenuManage, CapMessStatsView),
}

var wardenByHostel = map[string]string{
	HostelLohitGirls:      RoleWardenLohitGirls,
	HostelLohitBoys:       RoleWardenLohitBoys,
	HostelPapumBoys:       RoleWardenPapumBoys,
	HostelSubhanshiriBoys: RoleWardenSubhanshiriBoys,
}

var hostelByWarden = map[string]string{
	RoleWardenLohitGirls:      HostelLohitGirls,
	RoleWardenLohitBoys:       HostelLohitBoys,
	RoleWardenPapumBoys:       HostelPapumBoys,
	RoleWardenSubhanshiriBoys: HostelSubhanshiriBoys,
}

// 类别 → 专职角色；cleaning/maintenance/noise/other 没有专职角色
var specialtyByCategory = map[string]string{
	CategoryPlumbing:   RolePlumber,
	CategoryElectrical: RoleElectrician,
	CategoryMess:       RoleMessVendor,
	CategoryFood:       RoleMessVendor,
}

func capSet(caps ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return m
}

// IsValidRole 角色是否属于封闭枚举
func IsValidRole(role string) bool {
	_, ok := capabilityTable[role]
	return ok
}

// IsValidHostel 宿舍楼是否属于封闭枚举
func IsValidHostel(hostel string) bool {
	_, ok := wardenByHostel[hostel]
	return ok
}

// IsValidCategory 投诉类别是否属于封闭枚举
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsSuperRole admin 与 hmc 拥有跨宿舍楼权限
func IsSuperRole(role string) bool {
	return role == RoleAdmin || role == RoleHMC
}

// IsStaff 除学生外的所有角色
func IsStaff(role string) bool {
	return IsValidRole(role) && role != RoleStudent
}

// IsWarden 是否为某宿舍楼管理员
func IsWarden(role string) bool {
	_, ok := hostelByWarden[role]
	return ok
}

// IsSpecialty 是否为专职维修/餐饮角色
func IsSpecialty(role string) bool {
	return role == RolePlumber || role == RoleElectrician || role == RoleMessVendor
}

// WardenHostel 返回 warden 角色管辖的宿舍楼；非 warden 返回空串
func WardenHostel(role string) string {
	return hostelByWarden[role]
}

// WardenRole 返回宿舍楼对应的 warden 角色
func WardenRole(hostel string) string {
	return wardenByHostel[hostel]
}

// SpecialtyRole 返回类别对应的专职角色；无专职角色时返回空串
func SpecialtyRole(category string) string {
	return specialtyByCategory[category]
}

// SpecialtyCategories 返回专职角色负责的类别（按 Categories 声明顺序）
func SpecialtyCategories(role string) []string {
	var out []string
	for _, c := range Categories {
		if specialtyByCategory[c] == role {
			out = append(out, c)
		}
	}
	return out
}

// CanHandle 角色能否作为该类别投诉的处理人：
// 有专职角色的类别只接受该角色，其余类别接受任意职员
func CanHandle(role, category string) bool {
	if specialty := SpecialtyRole(category); specialty != "" {
		return role == specialty
	}
	return IsStaff(role)
}

// Can 角色是否具备某项能力
func Can(role string, c Capability) bool {
	return capabilityTable[role][c]
}

// Actor 当前请求的调用者；字段来自数据库中的用户记录而非 Token
type Actor struct {
	UserID string
	Role   string
	Hostel string
}

// Can 调用者是否具备某项能力
func (a *Actor) Can(c Capability) bool { return Can(a.Role, c) }

// IsSuper 是否为 admin/hmc
func (a *Actor) IsSuper() bool { return IsSuperRole(a.Role) }

// IsStudent 是否为学生
func (a *Actor) IsStudent() bool { return a.Role == RoleStudent }

// InHostelScope 调用者能否管理指定宿舍楼的数据：
// admin/hmc 不受限，warden 仅限本楼，其余角色一律不可
func (a *Actor) InHostelScope(hostel string) bool {
	if a.IsSuper() {
		return true
	}
	h := WardenHostel(a.Role)
	return h != "" && h == hostel
}
