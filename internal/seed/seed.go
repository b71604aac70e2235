package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/lms/internal/app/models"
	appRepos "github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// DefaultUsername is the learner every new session is attached to
const DefaultUsername = "student"

type lessonSeed struct {
	Title   string
	Content string
}

var defaultCourse = struct {
	Title   string
	Lessons []lessonSeed
}{
	Title: "Python для начинающих",
	Lessons: []lessonSeed{
		{Title: "Основы Python", Content: "Это контент первого урока."},
		{Title: "Циклы и условия", Content: "Это контент второго урока."},
	},
}

// CreateDefaultData inserts the demo course with its lessons when no course
// exists yet, and the default user when it is missing. Running it again on a
// seeded database changes nothing.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Users)...")
	var finalErr error

	count, err := repos.Courses.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting courses")
		finalErr = errors.Join(finalErr, err)
	} else if count == 0 {
		if err := createDefaultCourse(ctx, repos); err != nil {
			lgr.Error().Err(err).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	_, err = repos.Users.GetByUsername(ctx, DefaultUsername)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		_, err = repos.Users.Create(ctx, &appModels.User{Username: DefaultUsername})
	}
	if err != nil {
		lgr.Error().Err(err).Str("username", DefaultUsername).Msg("Error ensuring default user")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}

func createDefaultCourse(ctx context.Context, repos *appRepos.Repositories) error {
	courseID, err := repos.Courses.Create(ctx, &appModels.Course{Title: defaultCourse.Title})
	if err != nil {
		return err
	}
	for _, l := range defaultCourse.Lessons {
		lesson := &appModels.Lesson{CourseID: courseID, Title: l.Title, Content: l.Content}
		if _, err := repos.Lessons.Create(ctx, lesson); err != nil {
			return fmt.Errorf("lesson %q: %w", l.Title, err)
		}
	}
	return nil
}
