// Package gormstore implements the repository interfaces on top of gorm. It
// backs the default single-file SQLite deployment.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/dberrors"
	"github.com/yigit/lms/internal/pkg/logger"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables for every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Progress{},
	)
}

// NewRepositories initializes the gorm-backed repositories
func NewRepositories(db *gorm.DB) *repositories.Repositories {
	return &repositories.Repositories{
		Users:       &UserRepository{db: db},
		Courses:     &CourseRepository{db: db},
		Lessons:     &LessonRepository{db: db},
		Enrollments: &EnrollmentRepository{db: db},
		Progress:    &ProgressRepository{db: db},
	}
}

// notFound maps gorm's missing-row error to the given domain error
func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// UserRepository is the gorm implementation of repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) First(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Order("id ASC").First(&user).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return user.ID, nil
}

// CourseRepository is the gorm implementation of repositories.CourseRepository
type CourseRepository struct {
	db *gorm.DB
}

func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrCourseNotFound)
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		logger.Error().Err(err).Msg("Error creating course")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return course.ID, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// LessonRepository is the gorm implementation of repositories.LessonRepository
type LessonRepository struct {
	db *gorm.DB
}

func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrLessonNotFound)
	}
	return &lesson, nil
}

func (r *LessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	lessons := []*models.Lesson{}
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&lessons).Error
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error listing lessons")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	return lessons, nil
}

func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		logger.Error().Err(err).Int64("courseID", lesson.CourseID).Msg("Error creating lesson")
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}
	return lesson.ID, nil
}

// EnrollmentRepository is the gorm implementation of repositories.EnrollmentRepository
type EnrollmentRepository struct {
	db *gorm.DB
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID int64) (bool, error) {
	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error creating enrollment")
		return false, fmt.Errorf("error creating enrollment: %w", err)
	}
	return true, nil
}

func (r *EnrollmentRepository) CourseIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error querying enrolled courses: %w", err)
	}
	return ids, nil
}

// ProgressRepository is the gorm implementation of repositories.ProgressRepository
type ProgressRepository struct {
	db *gorm.DB
}

func (r *ProgressRepository) Exists(ctx context.Context, userID, lessonID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Progress{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("error checking progress: %w", err)
	}
	return count > 0, nil
}

func (r *ProgressRepository) Create(ctx context.Context, userID, lessonID int64) (bool, error) {
	progress := &models.Progress{UserID: userID, LessonID: lessonID}
	if err := r.db.WithContext(ctx).Create(progress).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("lessonID", lessonID).Msg("Error creating progress")
		return false, fmt.Errorf("error creating progress: %w", err)
	}
	return true, nil
}

func (r *ProgressRepository) CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Table("progress").
		Joins("JOIN lessons ON lessons.id = progress.lesson_id").
		Where("progress.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Order("progress.lesson_id ASC").
		Pluck("progress.lesson_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error querying completed lessons: %w", err)
	}
	return ids, nil
}

var (
	_ repositories.UserRepository       = (*UserRepository)(nil)
	_ repositories.CourseRepository     = (*CourseRepository)(nil)
	_ repositories.LessonRepository     = (*LessonRepository)(nil)
	_ repositories.EnrollmentRepository = (*EnrollmentRepository)(nil)
	_ repositories.ProgressRepository   = (*ProgressRepository)(nil)
)
