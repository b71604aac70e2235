package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/lms/internal/pkg/dberrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// progressUniqueConstraint names the UNIQUE constraint from the init migration
const progressUniqueConstraint = "idx_progress_user_lesson"

// PgProgressRepository handles lesson completion records on PostgreSQL
type PgProgressRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewProgressRepository creates a new PgProgressRepository
func NewProgressRepository(db DBTX) *PgProgressRepository {
	return &PgProgressRepository{db: db, sb: psql}
}

// Exists checks whether the user completed the lesson
func (r *PgProgressRepository) Exists(ctx context.Context, userID, lessonID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("progress").
		Where(squirrel.Eq{"user_id": userID, "lesson_id": lessonID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build progress exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("lessonID", lessonID).Msg("Error checking progress")
		return false, fmt.Errorf("error checking progress: %w", err)
	}
	return exists, nil
}

// Create marks the lesson completed; an existing record is not an error
func (r *PgProgressRepository) Create(ctx context.Context, userID, lessonID int64) (bool, error) {
	sql, args, err := r.sb.Insert("progress").
		Columns("user_id", "lesson_id").
		Values(userID, lessonID).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build create progress query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, progressUniqueConstraint) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("lessonID", lessonID).Msg("Error creating progress")
		return false, fmt.Errorf("error creating progress: %w", err)
	}
	return true, nil
}

// CompletedLessonIDs lists the user's completed lessons within the course
func (r *PgProgressRepository) CompletedLessonIDs(ctx context.Context, userID, courseID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("p.lesson_id").
		From("progress p").
		Join("lessons l ON l.id = p.lesson_id").
		Where(squirrel.Eq{"p.user_id": userID, "l.course_id": courseID}).
		OrderBy("p.lesson_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completed lessons query: %w", err)
	}
	return collectIDs(ctx, r.db, sql, args)
}
