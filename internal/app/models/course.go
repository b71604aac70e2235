package models

// Course groups an ordered list of lessons.
type Course struct {
	ID    int64  `json:"id" db:"id" gorm:"primaryKey"`
	Title string `json:"title" db:"title" gorm:"size:100;not null"`
}

func (Course) TableName() string { return "courses" }

// Lesson belongs to exactly one course.
type Lesson struct {
	ID       int64  `json:"id" db:"id" gorm:"primaryKey"`
	CourseID int64  `json:"courseId" db:"course_id" gorm:"not null;index"`
	Title    string `json:"title" db:"title" gorm:"size:100;not null"`
	Content  string `json:"content" db:"content" gorm:"type:text;not null"`
}

func (Lesson) TableName() string { return "lessons" }

// CourseCatalog is the course list as seen by one user.
type CourseCatalog struct {
	Courses           []*Course
	EnrolledCourseIDs []int64
}

// IsEnrolled reports whether the catalog's user has bought the course
func (c *CourseCatalog) IsEnrolled(courseID int64) bool {
	return containsID(c.EnrolledCourseIDs, courseID)
}

// CourseDetail is a course with its lessons and the viewing user's progress.
// Progress and CompletedLessonIDs are zero-valued unless Enrolled is true.
type CourseDetail struct {
	Course             *Course
	Lessons            []*Lesson
	Enrolled           bool
	Progress           int
	CompletedLessonIDs []int64
}

// IsCompleted reports whether the lesson is among the user's completed lessons
func (d *CourseDetail) IsCompleted(lessonID int64) bool {
	return containsID(d.CompletedLessonIDs, lessonID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
