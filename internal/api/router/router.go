package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/api/handler"
	"github.com/vega2004/modulo-hora-espacio/internal/api/middleware"
)

// Deps 路由依赖；Blacklist 与 Limiter 可为 nil（Redis 不可用时降级）
type Deps struct {
	Tokens    middleware.TokenParser
	Sessions  middleware.SessionResolver
	Blacklist middleware.BlacklistChecker
	Limiter   middleware.RateLimiter
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(deps.Limiter, cfg.Portal.LoginRateLimit, cfg.Portal.LoginRateWindow)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.Tokens, deps.Sessions, deps.Blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 目录模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.POST("", h.Teacher.Create)
				teachers.PUT("/:id", h.Teacher.Update)
				teachers.DELETE("/:id", h.Teacher.Delete)
			}

			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.List)
				classrooms.POST("", h.Classroom.Create)
				classrooms.PUT("/:id", h.Classroom.Update)
				classrooms.DELETE("/:id", h.Classroom.Delete)
			}
			authorized.GET("/buildings", h.Classroom.Buildings)

			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.POST("", h.Subject.Create)
				subjects.PUT("/:id", h.Subject.Update)
				subjects.DELETE("/:id", h.Subject.Delete)
			}

			levels := authorized.Group("/academic-levels")
			{
				levels.GET("", h.AcademicLevel.List)
				levels.POST("", h.AcademicLevel.Create)
				levels.PUT("/:id", h.AcademicLevel.Update)
				levels.DELETE("/:id", h.AcademicLevel.Delete)
			}

			authorized.GET("/days", h.Catalog.Days)
			authorized.GET("/catalog/options", h.Catalog.Options)

			// 课程安排模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.List)
				classes.GET("/options", h.Class.Options)
				classes.POST("/check-overlap", h.Class.CheckOverlap)
				classes.POST("", h.Class.Create)
				classes.PUT("/:id", h.Class.Update)
				classes.DELETE("/:id", h.Class.Delete)
			}

			// 空闲查询模块
			availability := authorized.Group("/availability")
			{
				availability.GET("/buildings", h.Availability.Buildings)
				availability.GET("/buildings/:building/classrooms", h.Availability.Classrooms)
				availability.GET("/buildings/:building/classrooms/:id/week", h.Availability.Week)
				availability.GET("/buildings/:building/matrix", h.Availability.Matrix)
			}

			authorized.GET("/reports/classes", h.Availability.Report)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/classes", h.Export.ExportReport)
				export.GET("/buildings/:building/matrix", h.Export.ExportBuildingMatrix)
			}
		}
	}

	return r
}
