package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/middleware"
)

// APIController exposes courses and lessons as JSON
type APIController struct {
	courseService services.CourseService
	lessonService services.LessonService
}

// NewAPIController creates a new APIController
func NewAPIController(courseService services.CourseService, lessonService services.LessonService) *APIController {
	return &APIController{
		courseService: courseService,
		lessonService: lessonService,
	}
}

// ListCourses returns every course and the ones the user bought
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *APIController) ListCourses(ctx *gin.Context) {
	catalog, err := c.courseService.ListCourses(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseListResponse(catalog)))
}

// GetCourse returns a course with the user's progress
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *APIController) GetCourse(ctx *gin.Context) {
	courseID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail, err := c.courseService.GetCourseDetail(ctx, courseID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseDetailResponse(detail)))
}

// EnrollCourse buys the course and returns its updated state
// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (c *APIController) EnrollCourse(ctx *gin.Context) {
	courseID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	userID := middleware.CurrentUserID(ctx)
	if _, err := c.courseService.Enroll(ctx, courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail, err := c.courseService.GetCourseDetail(ctx, courseID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseDetailResponse(detail)))
}

// GetLesson returns a lesson of a purchased course
// @Summary Get lesson content
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse}
// @Failure 403 {object} dto.ErrorResponse "Course not purchased"
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{id} [get]
func (c *APIController) GetLesson(ctx *gin.Context) {
	lessonID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx, lessonID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewLessonResponse(lesson)))
}

// CompleteLesson marks the lesson done and returns the course state
// @Summary Mark a lesson completed
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{id}/complete [post]
func (c *APIController) CompleteLesson(ctx *gin.Context) {
	lessonID, err := middleware.BindID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	userID := middleware.CurrentUserID(ctx)
	lesson, err := c.lessonService.CompleteLesson(ctx, lessonID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail, err := c.courseService.GetCourseDetail(ctx, lesson.CourseID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseDetailResponse(detail)))
}

// Health reports that the service is up
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /health [get]
func (c *APIController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}))
}
