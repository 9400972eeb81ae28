package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"vidshare/internal/config"
	"vidshare/internal/infra/database"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "manage",
		Short: "VidShare 运维命令行工具",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "配置文件路径")

	rootCmd.AddCommand(initDBCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 加载配置并打开数据库连接
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, "stdout", ""); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, db, nil
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "创建数据库表结构",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			cmd.Println("数据库初始化完成")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "交互式创建管理员账号",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			username, err := prompt(cmd, reader, "用户名: ")
			if err != nil {
				return err
			}
			email, err := prompt(cmd, reader, "邮箱: ")
			if err != nil {
				return err
			}
			password, err := prompt(cmd, reader, "密码: ")
			if err != nil {
				return err
			}

			userRepo := repository.NewUserRepository(db)
			userService := service.NewUserService(userRepo, nil)

			info, err := userService.Create(username, email, password, model.RoleAdmin)
			if err != nil {
				if errors.Is(err, service.ErrUsernameExists) || errors.Is(err, service.ErrEmailExists) {
					return fmt.Errorf("账号已存在: %w", err)
				}
				return fmt.Errorf("failed to create admin: %w", err)
			}

			cmd.Printf("管理员创建成功: %s (ID=%d)\n", info.Username, info.ID)
			return nil
		},
	}
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	cmd.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", errors.New("输入不能为空")
	}
	return value, nil
}
