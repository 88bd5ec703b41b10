package summary

import (
	"testing"

	"github.com/edustack/schoolhub/internal/model"
)

func fixtureLists() ([]model.User, []model.Course, []model.Classroom) {
	teacher := model.User{ID: 2, Name: "Ms. Reyes", Email: "reyes@school.test", Role: model.RoleTeacher}
	users := []model.User{
		{ID: 1, Name: "Admin", Email: "admin@school.test", Role: model.RoleAdmin},
		teacher,
		{ID: 3, Name: "Mr. Okafor", Email: "okafor@school.test", Role: model.RoleTeacher},
		{ID: 5, Name: "Ana", Email: "ana@school.test", Role: model.RoleStudent},
		{ID: 6, Name: "Ben", Email: "ben@school.test", Role: model.RoleStudent},
		{ID: 7, Name: "Cleo", Email: "cleo@school.test", Role: model.RoleStudent},
	}
	math := model.Course{ID: 10, Name: "Math"}
	courses := []model.Course{math, {ID: 11, Name: "History"}}
	classrooms := []model.Classroom{
		{
			ID: 20, Name: "10-A", Course: &math, Teacher: &teacher,
			Students: []model.User{users[3], users[4]}, // Ana, Ben
		},
		{
			ID: 21, Name: "10-B", // no course, no teacher
			Students: []model.User{users[3]}, // Ana again
		},
	}
	return users, courses, classrooms
}

func TestResolveServerWins(t *testing.T) {
	users, courses, classrooms := fixtureLists()
	server := &model.Summary{
		Counts: &model.SummaryCounts{TotalStudents: 99, TotalTeachers: 98},
		Students: []model.StudentSummaryRow{
			{Name: "Server Row", Class: "X"},
		},
	}

	p := Resolve(server, users, courses, classrooms)
	if p.Source != SourceServer {
		t.Fatalf("Source = %v, want SourceServer", p.Source)
	}
	// The server aggregate is used wholesale, even where a local fold
	// would disagree.
	if p.Counts.TotalStudents != 99 {
		t.Errorf("TotalStudents = %d, want 99", p.Counts.TotalStudents)
	}
	if len(p.Students) != 1 || p.Students[0].Name != "Server Row" {
		t.Errorf("Students = %+v", p.Students)
	}
}

func TestResolveFallsBackWithoutCounts(t *testing.T) {
	users, courses, classrooms := fixtureLists()

	for _, server := range []*model.Summary{nil, {Counts: nil}} {
		p := Resolve(server, users, courses, classrooms)
		if p.Source != SourceDerived {
			t.Fatalf("Source = %v for server=%+v, want SourceDerived", p.Source, server)
		}
	}
}

func TestDeriveCounts(t *testing.T) {
	users, courses, classrooms := fixtureLists()
	p := Derive(users, courses, classrooms)

	want := model.SummaryCounts{
		TotalStudents:       3,
		TotalTeachers:       2,
		TotalCourses:        2,
		TotalClasses:        2,
		StudentsInClasses:   2, // Ana and Ben; Ana counted once
		StudentsNotAssigned: 1, // Cleo
	}
	if p.Counts != want {
		t.Errorf("Counts = %+v, want %+v", p.Counts, want)
	}
}

func TestDeriveStudentRows(t *testing.T) {
	users, courses, classrooms := fixtureLists()
	p := Derive(users, courses, classrooms)

	// Ana has two memberships, Ben one, Cleo a single unassigned row.
	if len(p.Students) != 4 {
		t.Fatalf("got %d student rows, want 4", len(p.Students))
	}

	byKey := make(map[string]model.StudentSummaryRow)
	for _, row := range p.Students {
		byKey[row.Name+"/"+row.Class] = row
	}

	row, ok := byKey["Ana/10-A"]
	if !ok {
		t.Fatal("missing Ana/10-A row")
	}
	if row.Course != "Math" || row.Teacher != "Ms. Reyes" {
		t.Errorf("Ana/10-A = %+v", row)
	}

	// 10-B has neither course nor teacher.
	row, ok = byKey["Ana/10-B"]
	if !ok {
		t.Fatal("missing Ana/10-B row")
	}
	if row.Course != model.NotAssigned || row.Teacher != model.NotAssigned {
		t.Errorf("Ana/10-B = %+v", row)
	}

	row, ok = byKey["Cleo/"+model.NotAssigned]
	if !ok {
		t.Fatal("missing unassigned Cleo row")
	}
	if row.Course != model.NotAssigned || row.Teacher != model.NotAssigned {
		t.Errorf("Cleo row = %+v", row)
	}
}

func TestDeriveTeacherRows(t *testing.T) {
	users, courses, classrooms := fixtureLists()
	p := Derive(users, courses, classrooms)

	if len(p.Teachers) != 2 {
		t.Fatalf("got %d teacher rows, want 2", len(p.Teachers))
	}

	byID := make(map[int]model.TeacherSummaryRow)
	for _, row := range p.Teachers {
		byID[row.ID] = row
	}

	if row := byID[2]; row.Classes != 1 || row.Students != 2 {
		t.Errorf("teacher 2 = %+v, want 1 class with 2 students", row)
	}
	// A teacher with no classrooms still gets a row, with zeros.
	if row := byID[3]; row.Classes != 0 || row.Students != 0 {
		t.Errorf("teacher 3 = %+v, want zeros", row)
	}
}

func TestDeriveEmptyLists(t *testing.T) {
	p := Derive(nil, nil, nil)
	if p.Source != SourceDerived {
		t.Errorf("Source = %v", p.Source)
	}
	if p.Counts != (model.SummaryCounts{}) {
		t.Errorf("Counts = %+v, want zeros", p.Counts)
	}
	if len(p.Students) != 0 || len(p.Teachers) != 0 {
		t.Errorf("rows = %d students, %d teachers, want none", len(p.Students), len(p.Teachers))
	}
}
