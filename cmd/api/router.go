package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kingsley6145/gamebridge-admin/internal/shared/middleware"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCourseRoutes(v1, c)
		setupUploadRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/refresh", c.AuthHandler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.AuthHandler.Me)
	}
}

func setupCourseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	courses := v1.Group("/courses")
	courses.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		courses.GET("", c.CourseHandler.ListCourses)
		courses.POST("", c.CourseHandler.CreateCourse)
		courses.GET("/export", c.BulkHandler.ExportCourses)
		courses.POST("/import", c.BulkHandler.ImportCourses)
		courses.GET("/:id", c.CourseHandler.GetCourse)
		courses.PUT("/:id", c.CourseHandler.UpdateCourse)
		courses.DELETE("/:id", c.CourseHandler.DeleteCourse)
		courses.POST("/:id/duplicate", c.CourseHandler.DuplicateCourse)

		courses.POST("/:id/modules", c.NestedHandler.AddModule)
		courses.PUT("/:id/modules/:moduleId", c.NestedHandler.UpdateModule)
		courses.DELETE("/:id/modules/:moduleId", c.NestedHandler.DeleteModule)

		courses.POST("/:id/questions", c.NestedHandler.AddQuestion)
		courses.PUT("/:id/questions/:questionId", c.NestedHandler.UpdateQuestion)
		courses.DELETE("/:id/questions/:questionId", c.NestedHandler.DeleteQuestion)
	}
}

func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		uploads.POST("/image", c.MediaHandler.UploadImage)
		uploads.POST("/video", c.MediaHandler.UploadVideo)
		uploads.POST("/html", c.MediaHandler.UploadHTML)
		uploads.GET("/resolve", c.MediaHandler.ResolveImage)
		uploads.POST("/delete", c.MediaHandler.DeleteFile)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   c.Config.App.Version,
			"storeMode": c.Config.Store.Mode,
			"timestamp": time.Now().Unix(),
		})
	}
}
