package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/middleware"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// PageController serves the server-rendered pages
type PageController struct {
	courseService services.CourseService
	lessonService services.LessonService
}

// NewPageController creates a new PageController
func NewPageController(courseService services.CourseService, lessonService services.LessonService) *PageController {
	return &PageController{
		courseService: courseService,
		lessonService: lessonService,
	}
}

func courseURL(courseID int64) string {
	return fmt.Sprintf("/course/%d", courseID)
}

// Index renders the course catalog
func (c *PageController) Index(ctx *gin.Context) {
	catalog, err := c.courseService.ListCourses(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{"catalog": catalog})
}

// CourseDetail renders a course with the user's progress
func (c *PageController) CourseDetail(ctx *gin.Context) {
	courseID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	detail, err := c.courseService.GetCourseDetail(ctx, courseID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "course.html", gin.H{"detail": detail})
}

// Buy enrolls the user and returns to the course page. An unknown course is
// not enrolled in; the redirect target then answers 404.
func (c *PageController) Buy(ctx *gin.Context) {
	courseID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	if _, err := c.courseService.Enroll(ctx, courseID, middleware.CurrentUserID(ctx)); err != nil && !apperrors.IsNotFound(err) {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, courseURL(courseID))
}

// Lesson renders a lesson of a purchased course
func (c *PageController) Lesson(ctx *gin.Context) {
	lessonID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx, lessonID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "lesson.html", gin.H{"lesson": lesson})
}

// Complete marks the lesson done and returns to its course page
func (c *PageController) Complete(ctx *gin.Context) {
	lessonID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	lesson, err := c.lessonService.CompleteLesson(ctx, lessonID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandlePageError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, courseURL(lesson.CourseID))
}
