package services

import (
	"context"
	"fmt"

	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/logger"
)

// CourseService defines the interface for course-related operations.
// A userID of 0 stands for a request with no user.
type CourseService interface {
	ListCourses(ctx context.Context, userID int64) (*models.CourseCatalog, error)
	GetCourseDetail(ctx context.Context, courseID, userID int64) (*models.CourseDetail, error)
	// Enroll buys the course for the user. It reports whether a new
	// enrollment was recorded; repeating the call is not an error.
	Enroll(ctx context.Context, courseID, userID int64) (bool, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo     repositories.CourseRepository
	lessonRepo     repositories.LessonRepository
	enrollmentRepo repositories.EnrollmentRepository
	progressRepo   repositories.ProgressRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(repos *repositories.Repositories) CourseService {
	return &courseServiceImpl{
		courseRepo:     repos.Courses,
		lessonRepo:     repos.Lessons,
		enrollmentRepo: repos.Enrollments,
		progressRepo:   repos.Progress,
	}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, userID int64) (*models.CourseCatalog, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	catalog := &models.CourseCatalog{Courses: courses, EnrolledCourseIDs: []int64{}}
	if userID == 0 {
		return catalog, nil
	}

	ids, err := s.enrollmentRepo.CourseIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	catalog.EnrolledCourseIDs = ids
	return catalog, nil
}

func (s *courseServiceImpl) GetCourseDetail(ctx context.Context, courseID, userID int64) (*models.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	detail := &models.CourseDetail{
		Course:             course,
		Lessons:            lessons,
		CompletedLessonIDs: []int64{},
	}
	if userID == 0 {
		return detail, nil
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return detail, nil
	}

	completed, err := s.progressRepo.CompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	detail.Enrolled = true
	detail.CompletedLessonIDs = completed
	detail.Progress = ProgressPercent(len(completed), len(lessons))
	return detail, nil
}

func (s *courseServiceImpl) Enroll(ctx context.Context, courseID, userID int64) (bool, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return false, err
	}
	if userID == 0 {
		return false, nil
	}

	created, err := s.enrollmentRepo.Create(ctx, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to enroll: %w", err)
	}
	if created {
		logger.Info().Int64("userID", userID).Int64("courseID", courseID).Msg("Course purchased")
	}
	return created, nil
}
