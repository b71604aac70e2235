package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/lms/internal/app/controllers"
	"github.com/yigit/lms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pageController *controllers.PageController,
	apiController *controllers.APIController,
	identityMiddleware *middleware.IdentityMiddleware,
	allowedOrigins []string,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	// --- HTML pages ---
	pages := router.Group("")
	pages.Use(identityMiddleware.Identify())
	{
		pages.GET("/", pageController.Index)
		pages.GET("/course/:id", pageController.CourseDetail)
		pages.GET("/buy/:id", pageController.Buy)
		pages.GET("/lesson/:id", pageController.Lesson)
		pages.GET("/complete/:id", pageController.Complete)
	}

	// --- JSON API ---
	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORS(allowedOrigins))
	v1.GET("/health", apiController.Health)

	identified := v1.Group("")
	identified.Use(identityMiddleware.Identify())
	{
		courses := identified.Group("/courses")
		{
			courses.GET("", apiController.ListCourses)
			courses.GET("/:id", apiController.GetCourse)
			courses.POST("/:id/enroll", apiController.EnrollCourse)
		}

		lessons := identified.Group("/lessons")
		{
			lessons.GET("/:id", apiController.GetLesson)
			lessons.POST("/:id/complete", apiController.CompleteLesson)
		}
	}
}
