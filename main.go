package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"qr-system/internal/api"
	"qr-system/internal/config"
	"qr-system/internal/middleware"
	"qr-system/internal/pkg/database"
	"qr-system/internal/pkg/logger"
	"qr-system/internal/router"
	"qr-system/internal/service"
)

// 版本信息，编译时通过 ldflags 设置
var (
	Version   = "v0.1.0"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "QR System API Server",
		Usage:   "二维码生成与管理服务",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			configPath := cmd.String("config")

			// 如果未指定配置文件，尝试从默认位置加载
			if configPath == "" {
				possiblePaths := []string{
					"config.yaml",
					filepath.Join("config", "config.yaml"),
				}

				found := false
				for _, path := range possiblePaths {
					if _, err := os.Stat(path); err == nil {
						configPath = path
						found = true
						break
					}
				}

				if !found {
					return fmt.Errorf("未指定配置文件且未找到默认配置文件(config.yaml或config/config.yaml)")
				}
			}

			os.Setenv("CONFIG_PATH", configPath)

			return startApp()
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("应用程序启动失败: %v", err)
	}
}

// startApp 启动应用程序的主要逻辑
func startApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %v", err)
	}

	err = logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志系统失败: %v", err)
	}

	logger.Info("配置加载完成")

	// 数据库连接失败是启动致命错误
	db, err := database.Setup(cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库初始化失败: %v", err)
	}

	logger.Info("数据库初始化完成")

	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Cors())

	// 依赖在启动时构造一次，注入各层
	qrService := service.NewQRCodeService(db)
	authService := service.NewAuthService(db, cfg.JWT)
	qrHandler := api.NewQRCodeHandler(qrService, cfg)
	authHandler := api.NewAuthHandler(authService)

	router.SetupRoutes(r, qrHandler, authHandler, cfg, GetPublicFS())
	logger.Info("路由设置完成")

	return listenWithRetry(r, cfg)
}

// listenWithRetry 监听端口
// 端口被占用时递增重试，保留原有运维行为
func listenWithRetry(r *gin.Engine, cfg *config.Config) error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("无效的端口配置: %s", cfg.Server.Port)
	}

	for attempt := 0; attempt < cfg.Server.PortRetry; attempt++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			if errors.Is(err, syscall.EADDRINUSE) {
				logger.Warnf("端口 %d 被占用，尝试端口 %d", port, port+1)
				port++
				continue
			}
			return fmt.Errorf("监听失败: %v", err)
		}

		logger.Infof("服务器启动，端口: %d", port)
		return r.RunListener(ln)
	}

	return fmt.Errorf("连续 %d 个端口均被占用", cfg.Server.PortRetry)
}
