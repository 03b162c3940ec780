package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/api/handler"
	"github.com/vega2004/modulo-hora-espacio/internal/api/router"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/repository"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/database"
	"github.com/vega2004/modulo-hora-espacio/pkg/jwt"
	applogger "github.com/vega2004/modulo-hora-espacio/pkg/logger"
	"github.com/vega2004/modulo-hora-espacio/pkg/redis"
	"github.com/vega2004/modulo-hora-espacio/pkg/sealbox"
)

// purgeInterval 过期会话清理周期
const purgeInterval = time.Hour

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库（门户会话表）
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，令牌黑名单与登录限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 令牌与远端 Token 加密
	jwtMgr := jwt.NewManager(&cfg.Auth)
	sealer, err := sealbox.New([]byte(cfg.Auth.JWTSecret), "remote-token")
	if err != nil {
		logger.Fatal("初始化 Token 加密失败", zap.Error(err))
	}

	// 6. 依赖注入: Remote / Repository → Service → Handler
	gw := remote.NewGateway(remote.NewClient(&cfg.Upstream, logger))
	repo := repository.NewRepository(db)

	// rdb 为 nil 时必须传入字面量 nil，避免接口持有 nil 指针
	deps := router.Deps{Tokens: jwtMgr}
	var blacklist service.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
		deps.Blacklist = rdb
		deps.Limiter = rdb
	}

	svc := service.NewService(cfg, repo, gw, jwtMgr, sealer, blacklist, logger)
	deps.Sessions = svc.Auth
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, deps, logger)

	// 8. 定期清理过期会话
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go purgeExpiredSessions(purgeCtx, svc.Auth, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	stopPurge()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if sqlDB != nil {
		sqlDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// purgeExpiredSessions 按周期删除已过期的门户会话，ctx 取消时退出
func purgeExpiredSessions(ctx context.Context, auth service.AuthService, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("清理过期会话失败", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("已清理过期会话", zap.Int64("count", n))
			}
		}
	}
}
