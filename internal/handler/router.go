package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erasmus-advisor-api/internal/middleware"
	"github.com/noah-isme/erasmus-advisor-api/internal/service"
)

// Routers bundles the HTTP handlers registered on the engine.
type Routers struct {
	Advisor    *AdvisorHandler
	University *UniversityHandler
}

// Register mounts all API routes under the given prefix.
func Register(r *gin.Engine, prefix string, routers Routers, auth *service.AuthService, metrics *service.MetricsService) {
	api := r.Group(prefix)
	api.Use(middleware.Metrics(metrics))

	advisor := api.Group("/advisor")
	{
		advisor.GET("/universities", routers.Advisor.Universities)
		advisor.POST("/step1", routers.Advisor.Step1)
		advisor.POST("/departments", routers.Advisor.Departments)
		advisor.POST("/step2", routers.Advisor.Step2)
		advisor.POST("/step3", routers.Advisor.Step3)
		advisor.GET("/files/exams/:token", routers.Advisor.DownloadCourses)
		advisor.POST("/analysis/export", routers.Advisor.ExportAnalysis)
	}

	universities := api.Group("/universities")
	{
		universities.POST("/register", routers.University.Register)
		universities.POST("/login", routers.University.Login)

		private := universities.Group("")
		private.Use(middleware.JWT(auth))
		{
			private.GET("/me", routers.University.Me)
			private.POST("/documents", routers.University.UploadDocument)
			private.GET("/documents", routers.University.ListDocuments)
			private.DELETE("/documents/:id", routers.University.DeactivateDocument)
		}
	}

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}
