package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

var lessonColumns = []string{"id", "course_id", "title", "content"}

// PgLessonRepository handles lesson database operations on PostgreSQL
type PgLessonRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new PgLessonRepository
func NewLessonRepository(db DBTX) *PgLessonRepository {
	return &PgLessonRepository{db: db, sb: psql}
}

// GetByID retrieves a lesson by ID
func (r *PgLessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lesson query: %w", err)
	}

	lesson := &models.Lesson{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Int64("lessonID", id).Msg("Error scanning lesson row")
		return nil, fmt.Errorf("error getting lesson by ID: %w", err)
	}
	return lesson, nil
}

// ListByCourse retrieves the lessons of a course ordered by id
func (r *PgLessonRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list lessons query")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		lesson := &models.Lesson{}
		if err := rows.Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}
	return lessons, nil
}

// Create inserts a lesson and returns its id
func (r *PgLessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	sql, args, err := r.sb.Insert("lessons").
		Columns("course_id", "title", "content").
		Values(lesson.CourseID, lesson.Title, lesson.Content).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create lesson query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID); err != nil {
		logger.Error().Err(err).Int64("courseID", lesson.CourseID).Msg("Error creating lesson")
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}
	return lesson.ID, nil
}
