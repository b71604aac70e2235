package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/lms/internal/app/models"
)

// UserRepository reads and creates users
type UserRepository interface {
	// First returns the user with the lowest id, or apperrors.ErrUserNotFound
	First(ctx context.Context) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int64, error)
}

// CourseRepository reads and creates courses
type CourseRepository interface {
	// List returns every course in insertion order
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// LessonRepository reads and creates lessons
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	// ListByCourse returns the course's lessons in insertion order
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) (int64, error)
}

// EnrollmentRepository records which users bought which courses
type EnrollmentRepository interface {
	Exists(ctx context.Context, userID, courseID int64) (bool, error)
	// Create inserts the enrollment. It reports false without error when the
	// pair already exists.
	Create(ctx context.Context, userID, courseID int64) (bool, error)
	CourseIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

// ProgressRepository records which users completed which lessons
type ProgressRepository interface {
	Exists(ctx context.Context, userID, lessonID int64) (bool, error)
	// Create inserts the progress row. It reports false without error when the
	// pair already exists.
	Create(ctx context.Context, userID, lessonID int64) (bool, error)
	// CompletedLessonIDs returns the user's completed lessons that belong to the course
	CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Users       UserRepository
	Courses     CourseRepository
	Lessons     LessonRepository
	Enrollments EnrollmentRepository
	Progress    ProgressRepository
}

// DBTX is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx the repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Courses:     NewCourseRepository(db),
		Lessons:     NewLessonRepository(db),
		Enrollments: NewEnrollmentRepository(db),
		Progress:    NewProgressRepository(db),
	}
}

var (
	_ UserRepository       = (*PgUserRepository)(nil)
	_ CourseRepository     = (*PgCourseRepository)(nil)
	_ LessonRepository     = (*PgLessonRepository)(nil)
	_ EnrollmentRepository = (*PgEnrollmentRepository)(nil)
	_ ProgressRepository   = (*PgProgressRepository)(nil)
)
