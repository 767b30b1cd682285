// seed 按 YAML 种子文件写入职员账号、房间与每周菜单；已存在的记录跳过，可重复执行
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/marwahavanshika/FYP2025/config"
	"github.com/marwahavanshika/FYP2025/internal/dto"
	"github.com/marwahavanshika/FYP2025/internal/permission"
	"github.com/marwahavanshika/FYP2025/internal/repository"
	"github.com/marwahavanshika/FYP2025/internal/service"
	"github.com/marwahavanshika/FYP2025/pkg/database"
	applogger "github.com/marwahavanshika/FYP2025/pkg/logger"
)

// seedActor 种子程序以 admin 身份调用业务层
var seedActor = &permission.Actor{UserID: "seed", Role: permission.RoleAdmin}

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径")
	fixturePath := pflag.StringP("fixture", "f", "cmd/seed/fixture.yaml", "种子数据文件")
	skipMigrate := pflag.Bool("skip-migrate", false, "不执行数据库迁移")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	fx, err := LoadFixture(*fixturePath)
	if err != nil {
		logger.Fatal("读取种子文件失败", zap.String("path", *fixturePath), zap.Error(err))
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if !*skipMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	}

	repo := repository.NewRepository(db)
	s := &seeder{
		users:  service.NewUserService(repo, logger),
		rooms:  service.NewRoomService(repo, logger),
		mess:   service.NewMessService(repo, logger),
		logger: logger,
	}

	result, err := s.Run(context.Background(), fx)
	if err != nil {
		logger.Fatal("写入种子数据失败", zap.Error(err))
	}

	logger.Info("种子数据写入完成",
		zap.Int("users_created", result.UsersCreated),
		zap.Int("rooms_created", result.RoomsCreated),
		zap.Int("menus_created", result.MenusCreated),
		zap.Int("skipped", result.Skipped),
	)
	for _, c := range result.Credentials {
		fmt.Printf("%-40s %s\n", c.Email, c.TempPassword)
	}
}

// SeedResult 写入统计
type SeedResult struct {
	UsersCreated int
	RoomsCreated int
	MenusCreated int
	Skipped      int
	Credentials  []dto.ImportedUser
}

type seeder struct {
	users  service.UserService
	rooms  service.RoomService
	mess   service.MessService
	logger *zap.Logger
}

// Run 依次写入账号、房间、菜单；唯一键冲突视为已存在
func (s *seeder) Run(ctx context.Context, fx *Fixture) (*SeedResult, error) {
	res := &SeedResult{}

	for _, u := range fx.Users {
		created, err := s.users.CreateUser(ctx, seedActor, &dto.CreateUserRequest{
			Email:       u.Email,
			FullName:    u.FullName,
			PhoneNumber: u.Phone,
			Role:        u.Role,
			Hostel:      u.Hostel,
			Password:    u.Password,
		})
		if errors.Is(err, service.ErrEmailExists) {
			res.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", u.Email, err)
		}
		res.UsersCreated++
		if created.TempPassword != "" {
			res.Credentials = append(res.Credentials, dto.ImportedUser{Email: u.Email, TempPassword: created.TempPassword})
		}
	}

	for _, r := range fx.Rooms {
		_, err := s.rooms.CreateRoom(ctx, seedActor, &dto.CreateRoomRequest{
			Number:   r.Number,
			Floor:    r.Floor,
			Building: r.Building,
			Hostel:   r.Hostel,
			Type:     r.Type,
			Capacity: r.Capacity,
		})
		if errors.Is(err, service.ErrRoomNumberExists) {
			res.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", r.Number, err)
		}
		res.RoomsCreated++
	}

	for _, day := range fx.Menu {
		// map 无序，按餐次名排序保证输出稳定
		meals := make([]string, 0, len(day.Meals))
		for meal := range day.Meals {
			meals = append(meals, meal)
		}
		sort.Strings(meals)

		for _, meal := range meals {
			_, err := s.mess.CreateMenu(ctx, &dto.CreateMenuRequest{
				DayOfWeek:   day.Day,
				MealType:    meal,
				Description: day.Meals[meal],
			})
			if errors.Is(err, service.ErrMenuExists) {
				res.Skipped++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("menu %s/%s: %w", day.Day, meal, err)
			}
			res.MenusCreated++
		}
	}

	return res, nil
}
