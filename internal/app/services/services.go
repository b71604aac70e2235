package services

// Services defined in this package:
// - IdentityService: attaches a user to a request that has none
// - CourseService: course list, course detail with progress, enrollment
// - LessonService: enrollment-gated lesson access and completion marking

// ProgressPercent returns floor(100 * completed / total), or 0 for an empty course
func ProgressPercent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return completed * 100 / total
}
