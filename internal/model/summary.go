package model

// NotAssigned is the sentinel the summary uses for a student without a
// classroom, or for a classroom without a course or teacher. The admin
// console matches on this exact value.
const NotAssigned = "Not Assigned"

// SummaryCounts holds the high-level totals of the admin summary.
type SummaryCounts struct {
	TotalStudents       int `json:"totalStudents"`
	TotalTeachers       int `json:"totalTeachers"`
	TotalCourses        int `json:"totalCourses"`
	TotalClasses        int `json:"totalClasses"`
	StudentsInClasses   int `json:"studentsInClasses"`
	StudentsNotAssigned int `json:"studentsNotAssigned"`
}

// StudentSummaryRow is one per-student line of the admin summary. Class,
// Course and Teacher are resolved display names, or NotAssigned.
type StudentSummaryRow struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Class   string `json:"class"`
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
}

// TeacherSummaryRow is one per-teacher line of the admin summary:
// how many classes the teacher runs and how many students those classes
// hold in total.
type TeacherSummaryRow struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Classes  int    `json:"teacherClasses"`
	Students int    `json:"teacherStudents"`
}

// Summary is the server-computed cross-entity aggregate. A nil Counts
// signals "no server aggregate available" and tells the console to fall
// back to its local fold.
type Summary struct {
	Counts   *SummaryCounts      `json:"counts"`
	Students []StudentSummaryRow `json:"students"`
	Teachers []TeacherSummaryRow `json:"teachers"`
}
