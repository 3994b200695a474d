package router

import (
	"github.com/careerladder/backend/config"
	"github.com/careerladder/backend/internal/handler"
	"github.com/careerladder/backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func Setup(
	cfg *config.Config,
	checklistHandler *handler.ChecklistHandler,
	userChecklistHandler *handler.UserChecklistHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		// Shared instances are publicly readable by token; no auth.
		api.GET("/public/checklist-shares/:token", userChecklistHandler.GetShared)

		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.Auth.JWTSecret))
		{
			checklists := authed.Group("/checklists")
			{
				checklists.GET("", checklistHandler.List)
				checklists.GET("/:id", checklistHandler.Get)
				checklists.POST("", middleware.RequireAdmin(), checklistHandler.Publish)
			}

			userChecklists := authed.Group("/user-checklists")
			{
				userChecklists.GET("/:name", userChecklistHandler.GetForName)
				userChecklists.POST("/:name/upgrade", userChecklistHandler.Upgrade)
				userChecklists.GET("/:name/history", userChecklistHandler.History)
			}

			authed.PUT("/user-checklist-items/:id", userChecklistHandler.ToggleItem)
		}
	}

	return r
}
