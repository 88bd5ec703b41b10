package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/schoolhub/internal/model"
)

// ClassroomRepository handles classroom and roster membership data access.
type ClassroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

const classroomSelect = `
	SELECT cl.id, cl.name, cl.created_at, cl.updated_at,
	       co.id, co.name, co.description, co.teacher_id, co.created_at, co.updated_at,
	       t.id, t.name, t.email, t.role, t.created_at, t.updated_at
	FROM classrooms cl
	LEFT JOIN courses co ON co.id = cl.course_id
	LEFT JOIN users t ON t.id = cl.teacher_id`

// scanClassroom scans one row of classroomSelect into a Classroom with
// its course and teacher resolved (both may be null).
func scanClassroom(row interface{ Scan(dest ...any) error }) (*model.Classroom, error) {
	var (
		cl model.Classroom

		coID                 *int
		coName, coDesc       *string
		coTeacherID          *int
		coCreated, coUpdated *time.Time

		tID                  *int
		tName, tEmail, tRole *string
		tCreated, tUpdated   *time.Time
	)

	err := row.Scan(
		&cl.ID, &cl.Name, &cl.CreatedAt, &cl.UpdatedAt,
		&coID, &coName, &coDesc, &coTeacherID, &coCreated, &coUpdated,
		&tID, &tName, &tEmail, &tRole, &tCreated, &tUpdated,
	)
	if err != nil {
		return nil, err
	}

	if coID != nil {
		cl.Course = &model.Course{
			ID:          *coID,
			Name:        *coName,
			Description: *coDesc,
			TeacherID:   coTeacherID,
			CreatedAt:   *coCreated,
			UpdatedAt:   *coUpdated,
		}
	}
	if tID != nil {
		cl.Teacher = &model.User{
			ID:        *tID,
			Name:      *tName,
			Email:     *tEmail,
			Role:      model.Role(*tRole),
			CreatedAt: *tCreated,
			UpdatedAt: *tUpdated,
		}
	}
	cl.Students = []model.User{}
	return &cl, nil
}

// List retrieves all classrooms with course, teacher and roster resolved.
func (r *ClassroomRepository) List(ctx context.Context) ([]model.Classroom, error) {
	rows, err := r.pool.Query(ctx, classroomSelect+` ORDER BY cl.name, cl.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := []model.Classroom{}
	index := map[int]int{} // classroom ID -> position
	for rows.Next() {
		cl, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		index[cl.ID] = len(classrooms)
		classrooms = append(classrooms, *cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(classrooms) == 0 {
		return classrooms, nil
	}

	// Attach rosters in one pass, ordered by enrollment time so the
	// roster keeps a stable insertion order.
	memberRows, err := r.pool.Query(ctx,
		`SELECT cs.classroom_id, u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		 FROM classroom_students cs
		 JOIN users u ON u.id = cs.student_id
		 ORDER BY cs.enrolled_at, u.id`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var classroomID int
		var s model.User
		if err := memberRows.Scan(&classroomID, &s.ID, &s.Name, &s.Email, &s.Role, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if pos, ok := index[classroomID]; ok {
			classrooms[pos].Students = append(classrooms[pos].Students, s)
		}
	}
	return classrooms, memberRows.Err()
}

// GetByID retrieves one classroom with course, teacher and roster resolved.
func (r *ClassroomRepository) GetByID(ctx context.Context, id int) (*model.Classroom, error) {
	cl, err := scanClassroom(r.pool.QueryRow(ctx, classroomSelect+` WHERE cl.id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role, u.created_at, u.updated_at
		 FROM classroom_students cs
		 JOIN users u ON u.id = cs.student_id
		 WHERE cs.classroom_id = $1
		 ORDER BY cs.enrolled_at, u.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.User
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		cl.Students = append(cl.Students, s)
	}
	return cl, rows.Err()
}

// Create inserts a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, name string, courseID, teacherID *int) (*model.Classroom, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classrooms (name, course_id, teacher_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, courseID, teacherID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update modifies a classroom's name, course and teacher.
func (r *ClassroomRepository) Update(ctx context.Context, id int, name string, courseID, teacherID *int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classrooms SET name = $1, course_id = $2, teacher_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		name, courseID, teacherID, id,
	)
	return err
}

// Delete removes a classroom by its ID. All roster memberships go with it
// via ON DELETE CASCADE; no orphaned references survive.
func (r *ClassroomRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	return err
}

// AddStudent enrolls a student into a classroom. A duplicate membership
// violates the composite primary key and surfaces as pg error 23505.
func (r *ClassroomRepository) AddStudent(ctx context.Context, classroomID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO classroom_students (classroom_id, student_id) VALUES ($1, $2)`,
		classroomID, studentID,
	)
	return err
}

// RemoveStudent removes a student from a classroom's roster. Removing a
// non-member is defined to succeed silently: the DELETE simply matches
// zero rows.
func (r *ClassroomRepository) RemoveStudent(ctx context.Context, classroomID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM classroom_students WHERE classroom_id = $1 AND student_id = $2`,
		classroomID, studentID,
	)
	return err
}
