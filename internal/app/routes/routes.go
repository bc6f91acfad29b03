package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pratama/sekolahku/internal/app/controllers"
	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	spmbController *controllers.SPMBController,
	academicYearController *controllers.AcademicYearController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	spmb := v1.Group("/spmb")
	{
		// The admissions form is open to the public
		spmb.POST("/register", spmbController.Register)
	}

	// The active enrollment period is shown on the public landing page
	v1.GET("/academic-years/active", academicYearController.GetActive)

	// --- Authenticated staff routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Profile)

		spmbProtected := authenticated.Group("/spmb")
		{
			spmbProtected.GET("/applicants", spmbController.ListApplicants)
			spmbProtected.GET("/applicants/export", spmbController.Export)
			spmbProtected.GET("/applicants/:id", spmbController.GetApplicant)
			spmbProtected.PATCH("/applicants/:id/status", spmbController.UpdateStatus)
			spmbProtected.PATCH("/applicants/:id/score", spmbController.UpdateScore)
			spmbProtected.GET("/ranking", spmbController.Ranking)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/export", studentController.Export)
			students.GET("/:id", studentController.Get)
			students.POST("", studentController.Create)
			students.PUT("/:id", studentController.Update)
			students.DELETE("/:id", studentController.Delete)
			students.POST("/import", studentController.Import)
		}

		academicYears := authenticated.Group("/academic-years")
		{
			academicYears.GET("", academicYearController.List)

			// Changing enrollment periods is an admin-only operation
			academicYearsAdmin := academicYears.Group("")
			academicYearsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				academicYearsAdmin.POST("", academicYearController.Create)
				academicYearsAdmin.PUT("/:id", academicYearController.Update)
				academicYearsAdmin.PUT("/:id/activate", academicYearController.Activate)
				academicYearsAdmin.DELETE("/:id", academicYearController.Delete)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
