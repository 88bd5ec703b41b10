package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/schoolhub/internal/model"
)

// SummaryRepository handles admin summary data access.
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// GetCounts retrieves the high-level totals for the admin summary.
func (r *SummaryRepository) GetCounts(ctx context.Context) (*model.SummaryCounts, error) {
	c := &model.SummaryCounts{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'student'),
			(SELECT COUNT(*) FROM users WHERE role = 'teacher'),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM classrooms),
			(SELECT COUNT(DISTINCT student_id) FROM classroom_students)`,
	).Scan(&c.TotalStudents, &c.TotalTeachers, &c.TotalCourses, &c.TotalClasses, &c.StudentsInClasses)
	if err != nil {
		return nil, err
	}
	c.StudentsNotAssigned = c.TotalStudents - c.StudentsInClasses
	return c, nil
}

// GetStudentRows retrieves one summary row per student with the classroom,
// course and teacher names resolved. A student enrolled in several
// classrooms yields one row per membership; an unenrolled student yields
// one row with the Not Assigned sentinel.
func (r *SummaryRepository) GetStudentRows(ctx context.Context) ([]model.StudentSummaryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.name, u.email, cl.name, co.name, t.name
		 FROM users u
		 LEFT JOIN classroom_students cs ON cs.student_id = u.id
		 LEFT JOIN classrooms cl ON cl.id = cs.classroom_id
		 LEFT JOIN courses co ON co.id = cl.course_id
		 LEFT JOIN users t ON t.id = cl.teacher_id
		 WHERE u.role = 'student'
		 ORDER BY u.name, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.StudentSummaryRow{}
	for rows.Next() {
		var row model.StudentSummaryRow
		var class, course, teacher *string
		if err := rows.Scan(&row.Name, &row.Email, &class, &course, &teacher); err != nil {
			return nil, err
		}
		row.Class = orNotAssigned(class)
		row.Course = orNotAssigned(course)
		row.Teacher = orNotAssigned(teacher)
		result = append(result, row)
	}
	return result, rows.Err()
}

// GetTeacherRows retrieves one summary row per teacher with class and
// student counts across the classrooms assigned to them.
func (r *SummaryRepository) GetTeacherRows(ctx context.Context) ([]model.TeacherSummaryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email,
		        COUNT(DISTINCT cl.id),
		        COUNT(cs.student_id)
		 FROM users u
		 LEFT JOIN classrooms cl ON cl.teacher_id = u.id
		 LEFT JOIN classroom_students cs ON cs.classroom_id = cl.id
		 WHERE u.role = 'teacher'
		 GROUP BY u.id, u.name, u.email
		 ORDER BY u.name, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.TeacherSummaryRow{}
	for rows.Next() {
		var row model.TeacherSummaryRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.Classes, &row.Students); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func orNotAssigned(s *string) string {
	if s == nil || *s == "" {
		return model.NotAssigned
	}
	return *s
}
