package services

import (
	"context"
	"fmt"

	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// LessonService defines the interface for lesson-related operations.
// A userID of 0 stands for a request with no user.
type LessonService interface {
	// GetLesson returns the lesson only when the user is enrolled in its
	// course, apperrors.ErrNotEnrolled otherwise.
	GetLesson(ctx context.Context, lessonID, userID int64) (*models.Lesson, error)
	// CompleteLesson marks the lesson done for the user and returns it so
	// callers can reach its course. Repeating the call is not an error.
	CompleteLesson(ctx context.Context, lessonID, userID int64) (*models.Lesson, error)
}

// LessonServiceOptions tunes access rules
type LessonServiceOptions struct {
	// StrictCompletion rejects completion of lessons from courses the user
	// has not bought
	StrictCompletion bool
}

// lessonServiceImpl implements the LessonService interface
type lessonServiceImpl struct {
	lessonRepo     repositories.LessonRepository
	enrollmentRepo repositories.EnrollmentRepository
	progressRepo   repositories.ProgressRepository
	opts           LessonServiceOptions
}

// NewLessonService creates a new lesson service instance
func NewLessonService(repos *repositories.Repositories, opts LessonServiceOptions) LessonService {
	return &lessonServiceImpl{
		lessonRepo:     repos.Lessons,
		enrollmentRepo: repos.Enrollments,
		progressRepo:   repos.Progress,
		opts:           opts,
	}
}

func (s *lessonServiceImpl) checkEnrolled(ctx context.Context, lesson *models.Lesson, userID int64) error {
	if userID == 0 {
		return apperrors.ErrNotEnrolled
	}
	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, lesson.CourseID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return apperrors.ErrNotEnrolled
	}
	return nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, lessonID, userID int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEnrolled(ctx, lesson, userID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonServiceImpl) CompleteLesson(ctx context.Context, lessonID, userID int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if s.opts.StrictCompletion {
		if err := s.checkEnrolled(ctx, lesson, userID); err != nil {
			return nil, err
		}
	}
	if userID == 0 {
		return lesson, nil
	}

	created, err := s.progressRepo.Create(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}
	if created {
		logger.Info().Int64("userID", userID).Int64("lessonID", lessonID).Msg("Lesson completed")
	}
	return lesson, nil
}
