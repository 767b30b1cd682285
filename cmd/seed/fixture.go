package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marwahavanshika/FYP2025/internal/permission"
)

// Fixture 种子数据文件结构
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Rooms []FixtureRoom `yaml:"rooms"`
	Menu  []FixtureMenu `yaml:"menu"`
}

// FixtureUser 种子账号；Password 为空时生成临时密码并打印
type FixtureUser struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
	Hostel   string `yaml:"hostel"`
	Password string `yaml:"password"`
}

// FixtureRoom 种子房间
type FixtureRoom struct {
	Number   string `yaml:"number"`
	Floor    int    `yaml:"floor"`
	Building string `yaml:"building"`
	Hostel   string `yaml:"hostel"`
	Type     string `yaml:"type"`
	Capacity int    `yaml:"capacity"`
}

// FixtureMenu 种子菜单
type FixtureMenu struct {
	Day   string            `yaml:"day"`
	Meals map[string]string `yaml:"meals"`
}

var (
	validDays  = map[string]bool{"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true, "Friday": true, "Saturday": true, "Sunday": true}
	validMeals = map[string]bool{"breakfast": true, "lunch": true, "snacks": true, "dinner": true}
	validTypes = map[string]bool{"single": true, "double": true, "triple": true, "dormitory": true}
)

// LoadFixture 读取并校验种子文件
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return ParseFixture(f)
}

// ParseFixture 解析种子数据；未知字段视为错误
func ParseFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate 校验枚举取值与必填项
func (fx *Fixture) Validate() error {
	emails := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		if u.Email == "" || u.FullName == "" {
			return fmt.Errorf("users[%d]: email and full_name are required", i)
		}
		if emails[u.Email] {
			return fmt.Errorf("users[%d]: duplicate email %s", i, u.Email)
		}
		emails[u.Email] = true
		if !permission.IsValidRole(u.Role) {
			return fmt.Errorf("users[%d]: invalid role %q", i, u.Role)
		}
		if u.Hostel != "" && !permission.IsValidHostel(u.Hostel) {
			return fmt.Errorf("users[%d]: invalid hostel %q", i, u.Hostel)
		}
	}

	numbers := make(map[string]bool, len(fx.Rooms))
	for i, r := range fx.Rooms {
		if r.Number == "" {
			return fmt.Errorf("rooms[%d]: number is required", i)
		}
		if numbers[r.Number] {
			return fmt.Errorf("rooms[%d]: duplicate number %s", i, r.Number)
		}
		numbers[r.Number] = true
		if !permission.IsValidHostel(r.Hostel) {
			return fmt.Errorf("rooms[%d]: invalid hostel %q", i, r.Hostel)
		}
		if !validTypes[r.Type] {
			return fmt.Errorf("rooms[%d]: invalid type %q", i, r.Type)
		}
		if r.Capacity < 1 {
			return fmt.Errorf("rooms[%d]: capacity must be positive", i)
		}
	}

	for i, m := range fx.Menu {
		if !validDays[m.Day] {
			return fmt.Errorf("menu[%d]: invalid day %q", i, m.Day)
		}
		for meal := range m.Meals {
			if !validMeals[meal] {
				return fmt.Errorf("menu[%d]: invalid meal %q", i, meal)
			}
		}
	}
	return nil
}
