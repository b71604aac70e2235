package models

import "time"

// Enrollment grants a user access to a course's lessons. The (user, course)
// pair is unique at the storage level.
type Enrollment struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" db:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID  int64     `json:"courseId" db:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (Enrollment) TableName() string { return "enrollments" }

// Progress marks a single lesson as completed by a user. The (user, lesson)
// pair is unique at the storage level.
type Progress struct {
	ID        int64     `json:"id" db:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" db:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID  int64     `json:"lessonId" db:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (Progress) TableName() string { return "progress" }
