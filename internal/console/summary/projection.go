// Package summary resolves the dashboard's data source. The dashboard
// shows either the server-computed summary or a locally derived fold over
// the entity lists, never a blend of both.
package summary

import (
	"github.com/edustack/schoolhub/internal/model"
)

// Source tags where a projection's numbers came from.
type Source int

const (
	// SourceServer means the server aggregate was used wholesale.
	SourceServer Source = iota
	// SourceDerived means the numbers were folded locally from the raw
	// entity lists.
	SourceDerived
)

func (s Source) String() string {
	if s == SourceServer {
		return "server"
	}
	return "derived"
}

// Projection is one consistent view of the dashboard data.
type Projection struct {
	Source   Source
	Counts   model.SummaryCounts
	Students []model.StudentSummaryRow
	Teachers []model.TeacherSummaryRow
}

// Resolve picks the data source. A server summary that carries counts
// wins wholesale; otherwise every figure is derived locally from the
// entity lists. Fields are never mixed between the two sources.
func Resolve(server *model.Summary, users []model.User, courses []model.Course, classrooms []model.Classroom) Projection {
	if server != nil && server.Counts != nil {
		return Projection{
			Source:   SourceServer,
			Counts:   *server.Counts,
			Students: server.Students,
			Teachers: server.Teachers,
		}
	}
	return Derive(users, courses, classrooms)
}

// Derive folds the raw entity lists into the same shape the server
// summary has. A student enrolled in several classrooms yields one row
// per membership; a student enrolled nowhere yields a single row with
// the Not Assigned sentinel in every membership column.
func Derive(users []model.User, courses []model.Course, classrooms []model.Classroom) Projection {
	p := Projection{Source: SourceDerived}

	var students, teachers []model.User
	for _, u := range users {
		switch u.Role {
		case model.RoleStudent:
			students = append(students, u)
		case model.RoleTeacher:
			teachers = append(teachers, u)
		}
	}

	enrolled := make(map[int]bool)
	for _, cl := range classrooms {
		for _, s := range cl.Students {
			enrolled[s.ID] = true
		}
	}

	p.Counts = model.SummaryCounts{
		TotalStudents:       len(students),
		TotalTeachers:       len(teachers),
		TotalCourses:        len(courses),
		TotalClasses:        len(classrooms),
		StudentsInClasses:   len(enrolled),
		StudentsNotAssigned: len(students) - len(enrolled),
	}

	p.Students = deriveStudentRows(students, classrooms)
	p.Teachers = deriveTeacherRows(teachers, classrooms)
	return p
}

func deriveStudentRows(students []model.User, classrooms []model.Classroom) []model.StudentSummaryRow {
	rows := make([]model.StudentSummaryRow, 0, len(students))
	for _, s := range students {
		assigned := false
		for _, cl := range classrooms {
			if !cl.HasStudent(s.ID) {
				continue
			}
			assigned = true
			row := model.StudentSummaryRow{
				Name:    s.Name,
				Email:   s.Email,
				Class:   cl.Name,
				Course:  model.NotAssigned,
				Teacher: model.NotAssigned,
			}
			if cl.Course != nil {
				row.Course = cl.Course.Name
			}
			if cl.Teacher != nil {
				row.Teacher = cl.Teacher.Name
			}
			rows = append(rows, row)
		}
		if !assigned {
			rows = append(rows, model.StudentSummaryRow{
				Name:    s.Name,
				Email:   s.Email,
				Class:   model.NotAssigned,
				Course:  model.NotAssigned,
				Teacher: model.NotAssigned,
			})
		}
	}
	return rows
}

func deriveTeacherRows(teachers []model.User, classrooms []model.Classroom) []model.TeacherSummaryRow {
	rows := make([]model.TeacherSummaryRow, 0, len(teachers))
	for _, t := range teachers {
		row := model.TeacherSummaryRow{
			ID:    t.ID,
			Name:  t.Name,
			Email: t.Email,
		}
		for _, cl := range classrooms {
			if cl.Teacher == nil || cl.Teacher.ID != t.ID {
				continue
			}
			row.Classes++
			row.Students += len(cl.Students)
		}
		rows = append(rows, row)
	}
	return rows
}
