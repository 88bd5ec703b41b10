package roster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/console/client"
	"github.com/edustack/schoolhub/internal/model"
)

// fakeAPI is an in-memory stand-in for the backend. It holds server-side
// classroom state and can be forced to fail any operation.
type fakeAPI struct {
	mu         sync.Mutex
	classrooms []model.Classroom
	nextID     int

	listErr   error
	addErr    error
	removeErr error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	addCalls    int
	removeCalls int
}

func newFakeAPI(classrooms ...model.Classroom) *fakeAPI {
	nextID := 1
	for _, cl := range classrooms {
		if cl.ID >= nextID {
			nextID = cl.ID + 1
		}
	}
	return &fakeAPI{classrooms: classrooms, nextID: nextID}
}

func (f *fakeAPI) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Classroom, len(f.classrooms))
	for i, cl := range f.classrooms {
		out[i] = cl
		out[i].Students = append([]model.User(nil), cl.Students...)
	}
	return out, nil
}

func (f *fakeAPI) AddStudent(ctx context.Context, classroomID, studentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	for i := range f.classrooms {
		if f.classrooms[i].ID != classroomID {
			continue
		}
		if f.classrooms[i].HasStudent(studentID) {
			return &client.ApplicationError{
				Op: "add student", StatusCode: http.StatusConflict, Code: "ALREADY_ENROLLED",
			}
		}
		f.classrooms[i].Students = append(f.classrooms[i].Students,
			model.User{ID: studentID, Name: fmt.Sprintf("Student %d", studentID), Role: model.RoleStudent})
		return nil
	}
	return &client.ApplicationError{Op: "add student", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
}

func (f *fakeAPI) RemoveStudent(ctx context.Context, classroomID, studentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	for i := range f.classrooms {
		if f.classrooms[i].ID != classroomID {
			continue
		}
		for j, s := range f.classrooms[i].Students {
			if s.ID == studentID {
				f.classrooms[i].Students = append(
					f.classrooms[i].Students[:j], f.classrooms[i].Students[j+1:]...)
				return nil
			}
		}
		// Non-member removal is a successful no-op.
		return nil
	}
	return &client.ApplicationError{Op: "remove student", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
}

func (f *fakeAPI) CreateClassroom(ctx context.Context, draft client.ClassroomDraft) (*model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cl := model.Classroom{ID: f.nextID, Name: draft.Name, Students: []model.User{}}
	f.nextID++
	f.classrooms = append(f.classrooms, cl)
	return &cl, nil
}

func (f *fakeAPI) UpdateClassroom(ctx context.Context, id int, draft client.ClassroomDraft) (*model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.classrooms {
		if f.classrooms[i].ID == id {
			f.classrooms[i].Name = draft.Name
			cl := f.classrooms[i]
			return &cl, nil
		}
	}
	return nil, &client.ApplicationError{Op: "update classroom", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
}

func (f *fakeAPI) DeleteClassroom(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.classrooms {
		if f.classrooms[i].ID == id {
			f.classrooms = append(f.classrooms[:i], f.classrooms[i+1:]...)
			return nil
		}
	}
	return &client.ApplicationError{Op: "delete classroom", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
}

func student(id int) model.User {
	return model.User{ID: id, Name: fmt.Sprintf("Student %d", id), Role: model.RoleStudent}
}

func TestStoreLoadReplacesCache(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	store := NewStore(api, zerolog.Nop())

	if store.Loaded() {
		t.Fatal("store must start unloaded")
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !store.Loaded() {
		t.Error("Loaded() = false after successful load")
	}
	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d, want 1", got)
	}
}

func TestStoreFailedLoadKeepsCache(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	api.listErr = errors.New("connection refused")
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	if got := len(store.Classrooms()); got != 1 {
		t.Errorf("cache lost after failed load: %d classrooms", got)
	}
	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d after failed load, want 1", got)
	}
}

func TestStorePatchRemoveMember(t *testing.T) {
	api := newFakeAPI(
		model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5), student(6)}},
		model.Classroom{ID: 2, Name: "10-B", Students: []model.User{student(5)}},
	)
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	store.PatchRemoveMember(1, 5)

	cl, ok := store.Get(1)
	if !ok {
		t.Fatal("classroom 1 missing")
	}
	if cl.HasStudent(5) || !cl.HasStudent(6) {
		t.Errorf("roster after patch = %+v", cl.Students)
	}
	// Other rosters stay untouched.
	if other, _ := store.Get(2); !other.HasStudent(5) {
		t.Error("patch leaked into classroom 2")
	}
}

func TestStorePatchRemoveMemberNoOp(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	store.PatchRemoveMember(1, 999) // non-member
	store.PatchRemoveMember(42, 5)  // unknown classroom

	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d, want 1", got)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap := store.Classrooms()
	snap[0].Students = nil
	snap[0].Name = "mutated"

	cl, _ := store.Get(1)
	if cl.Name != "10-A" || len(cl.Students) != 1 {
		t.Errorf("cache mutated through snapshot: %+v", cl)
	}
}
