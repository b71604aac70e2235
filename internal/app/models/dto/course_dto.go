package dto

import "github.com/yigit/lms/internal/app/models"

// CourseSummary is one row of the course list
type CourseSummary struct {
	ID       int64  `json:"id" example:"1"`
	Title    string `json:"title" example:"Python для начинающих"`
	Enrolled bool   `json:"enrolled" example:"false"`
}

// CourseListResponse is the course list for the current user
type CourseListResponse struct {
	Courses           []CourseSummary `json:"courses"`
	EnrolledCourseIDs []int64         `json:"enrolledCourseIds"`
}

// LessonSummary is a lesson as listed on the course page, without content
type LessonSummary struct {
	ID        int64  `json:"id" example:"1"`
	Title     string `json:"title" example:"Основы Python"`
	Completed bool   `json:"completed" example:"false"`
}

// CourseDetailResponse is a course with the current user's progress
type CourseDetailResponse struct {
	ID                 int64           `json:"id" example:"1"`
	Title              string          `json:"title" example:"Python для начинающих"`
	Enrolled           bool            `json:"enrolled" example:"true"`
	Progress           int             `json:"progress" example:"50"`
	CompletedLessonIDs []int64         `json:"completedLessonIds"`
	Lessons            []LessonSummary `json:"lessons"`
}

// LessonResponse is the full content of a lesson
type LessonResponse struct {
	ID       int64  `json:"id" example:"1"`
	CourseID int64  `json:"courseId" example:"1"`
	Title    string `json:"title" example:"Основы Python"`
	Content  string `json:"content" example:"Это контент первого урока."`
}

// NewCourseListResponse converts a catalog into its API form
func NewCourseListResponse(catalog *models.CourseCatalog) CourseListResponse {
	resp := CourseListResponse{
		Courses:           make([]CourseSummary, 0, len(catalog.Courses)),
		EnrolledCourseIDs: nonNilIDs(catalog.EnrolledCourseIDs),
	}
	for _, c := range catalog.Courses {
		resp.Courses = append(resp.Courses, CourseSummary{
			ID:       c.ID,
			Title:    c.Title,
			Enrolled: catalog.IsEnrolled(c.ID),
		})
	}
	return resp
}

// NewCourseDetailResponse converts a course detail into its API form
func NewCourseDetailResponse(detail *models.CourseDetail) CourseDetailResponse {
	resp := CourseDetailResponse{
		ID:                 detail.Course.ID,
		Title:              detail.Course.Title,
		Enrolled:           detail.Enrolled,
		Progress:           detail.Progress,
		CompletedLessonIDs: nonNilIDs(detail.CompletedLessonIDs),
		Lessons:            make([]LessonSummary, 0, len(detail.Lessons)),
	}
	for _, l := range detail.Lessons {
		resp.Lessons = append(resp.Lessons, LessonSummary{
			ID:        l.ID,
			Title:     l.Title,
			Completed: detail.IsCompleted(l.ID),
		})
	}
	return resp
}

// NewLessonResponse converts a lesson into its API form
func NewLessonResponse(lesson *models.Lesson) LessonResponse {
	return LessonResponse{
		ID:       lesson.ID,
		CourseID: lesson.CourseID,
		Title:    lesson.Title,
		Content:  lesson.Content,
	}
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
