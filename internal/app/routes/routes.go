package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/controllers"
	"github.com/yigit/school/internal/app/models/dto"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	facultyController *controllers.FacultyController,
	studentController *controllers.StudentController,
	avatarController *controllers.AvatarController,
	health HealthChecker,
) {
	v1 := router.Group("/api/v1")

	faculties := v1.Group("/faculties")
	{
		faculties.POST("", facultyController.CreateFaculty)
		faculties.GET("", facultyController.GetAllFaculties)
		faculties.GET("/filter", facultyController.FilterByColor)
		faculties.GET("/search", facultyController.SearchFaculties)
		faculties.GET("/longest-name", facultyController.GetLongestName)
		faculties.GET("/:id", facultyController.GetFacultyByID)
		faculties.PUT("/:id", facultyController.UpdateFaculty)
		faculties.DELETE("/:id", facultyController.DeleteFaculty)
		faculties.GET("/:id/students", facultyController.GetFacultyStudents)
	}

	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetAllStudents)
		students.GET("/filter", studentController.FilterByAge)
		students.GET("/age-between", studentController.FilterByAgeRange)
		students.GET("/count", studentController.CountStudents)
		students.GET("/average-age", studentController.GetAverageAge)
		students.GET("/last-five", studentController.GetLastFive)
		students.GET("/names-starting-with-a", studentController.GetNamesStartingWithA)
		students.GET("/print-parallel", studentController.PrintParallel)
		students.GET("/print-synchronized", studentController.PrintSynchronized)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.GET("/:id/faculty", studentController.GetStudentFaculty)
		students.POST("/:id/avatar", avatarController.UploadAvatar)
	}

	avatars := v1.Group("/avatars")
	{
		avatars.GET("", avatarController.ListAvatars)
		avatars.GET("/:studentId/from-db", avatarController.GetAvatarFromDB)
		avatars.GET("/:studentId/from-file", avatarController.GetAvatarFromFile)
	}

	v1.GET("/health", healthHandler(health))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}

func healthHandler(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Database unavailable")))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	}
}
