package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/lms/internal/pkg/dberrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// enrollmentUniqueConstraint names the UNIQUE constraint from the init migration
const enrollmentUniqueConstraint = "idx_enrollments_user_course"

// PgEnrollmentRepository handles enrollment database operations on PostgreSQL
type PgEnrollmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new PgEnrollmentRepository
func NewEnrollmentRepository(db DBTX) *PgEnrollmentRepository {
	return &PgEnrollmentRepository{db: db, sb: psql}
}

// Exists checks whether the user is enrolled in the course
func (r *PgEnrollmentRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error checking enrollment")
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// Create enrolls the user in the course; an existing enrollment is not an error
func (r *PgEnrollmentRepository) Create(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id").
		Values(userID, courseID).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentUniqueConstraint) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error creating enrollment")
		return false, fmt.Errorf("error creating enrollment: %w", err)
	}
	return true, nil
}

// CourseIDsByUser lists the ids of the courses the user is enrolled in
func (r *PgEnrollmentRepository) CourseIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("course_id").
		From("enrollments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled courses query: %w", err)
	}
	return collectIDs(ctx, r.db, sql, args)
}

// collectIDs runs a single-column query and returns the ids it yields
func collectIDs(ctx context.Context, db DBTX, sql string, args []interface{}) ([]int64, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}
	return ids, nil
}
