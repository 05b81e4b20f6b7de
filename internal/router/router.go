package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/folioworks/profile-service/docs"
	"github.com/folioworks/profile-service/internal/config"
	"github.com/folioworks/profile-service/internal/middleware"
	"github.com/folioworks/profile-service/internal/modules/handler"
	"github.com/folioworks/profile-service/internal/modules/serializer"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	ProfileHandler *handler.ProfileHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(otelgin.Middleware(d.Config.App.Name))
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(d.Log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Msg("ok")) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Msg("pong")) })

		users := v1.Group("/users")
		{
			users.POST("", d.ProfileHandler.CreateProfile)
			users.GET("", d.ProfileHandler.ListProfiles)
			users.GET("/:id", d.ProfileHandler.GetProfile)
			users.PUT("/:id", d.ProfileHandler.UpdateProfile)
			users.DELETE("/:id", d.ProfileHandler.DeleteProfile)

			users.PATCH("/:id/skills", d.ProfileHandler.AddSkill)
			users.PUT("/:id/education", d.ProfileHandler.UpdateEducation)
			users.PUT("/:id/work-history", d.ProfileHandler.UpdateWorkHistory)
			users.POST("/:id/projects", d.ProfileHandler.AddProject)
		}
	}

	return r
}
