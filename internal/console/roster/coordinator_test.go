package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/console/client"
	"github.com/edustack/schoolhub/internal/console/notify"
	"github.com/edustack/schoolhub/internal/model"
)

func newCoordinator(t *testing.T, api *fakeAPI) (*Coordinator, *Store, *notify.Recorder) {
	t.Helper()
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	rec := &notify.Recorder{}
	return NewCoordinator(api, store, rec, zerolog.Nop()), store, rec
}

func TestCreateEmptyNameRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	coord, _, rec := newCoordinator(t, api)
	listCallsBefore := api.listCalls

	for _, name := range []string{"", "   "} {
		if err := coord.Create(context.Background(), client.ClassroomDraft{Name: name}); !errors.Is(err, ErrNameRequired) {
			t.Errorf("Create(%q) = %v, want ErrNameRequired", name, err)
		}
	}
	if api.listCalls != listCallsBefore {
		t.Error("store reloaded despite rejected draft")
	}
	if len(api.classrooms) != 0 {
		t.Error("classroom created despite empty name")
	}
	if len(rec.Errors) != 2 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestCreateSuccessReloads(t *testing.T) {
	api := newFakeAPI()
	coord, store, rec := newCoordinator(t, api)

	if err := coord.Create(context.Background(), client.ClassroomDraft{Name: "11-C"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	classrooms := store.Classrooms()
	if len(classrooms) != 1 || classrooms[0].Name != "11-C" {
		t.Errorf("classrooms = %+v", classrooms)
	}
	if len(rec.Successes) != 1 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestEditSuccessClearsSelection(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	coord, store, _ := newCoordinator(t, api)

	coord.SelectEdit(1)
	if err := coord.Edit(context.Background(), client.ClassroomDraft{Name: "10-A renamed"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if _, ok := coord.EditSelection(); ok {
		t.Error("edit selection kept after success")
	}
	cl, _ := store.Get(1)
	if cl.Name != "10-A renamed" {
		t.Errorf("name = %q", cl.Name)
	}
}

func TestEditFailureKeepsSelection(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	coord, store, rec := newCoordinator(t, api)
	api.updateErr = &client.NetworkError{Op: "update classroom", Err: errors.New("timeout")}

	coord.SelectEdit(1)
	if err := coord.Edit(context.Background(), client.ClassroomDraft{Name: "renamed"}); err == nil {
		t.Fatal("expected error")
	}

	if id, ok := coord.EditSelection(); !ok || id != 1 {
		t.Errorf("edit selection = (%d, %v), want (1, true)", id, ok)
	}
	cl, _ := store.Get(1)
	if cl.Name != "10-A" {
		t.Errorf("name changed on failure: %q", cl.Name)
	}
	if len(rec.Errors) != 1 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestDeleteSuccessClearsSelection(t *testing.T) {
	api := newFakeAPI(
		model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}},
		model.Classroom{ID: 2, Name: "10-B"},
	)
	coord, store, _ := newCoordinator(t, api)

	coord.SelectDelete(1)
	if err := coord.Delete(context.Background()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := coord.DeleteSelection(); ok {
		t.Error("delete selection kept after success")
	}
	if _, ok := store.Get(1); ok {
		t.Error("deleted classroom still cached")
	}
	if _, ok := store.Get(2); !ok {
		t.Error("unrelated classroom lost")
	}
}

func TestDeleteFailureKeepsConfirmation(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	coord, store, _ := newCoordinator(t, api)
	api.deleteErr = &client.NetworkError{Op: "delete classroom", Err: errors.New("timeout")}

	coord.SelectDelete(1)
	if err := coord.Delete(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if id, ok := coord.DeleteSelection(); !ok || id != 1 {
		t.Errorf("delete selection = (%d, %v), want (1, true)", id, ok)
	}
	if _, ok := store.Get(1); !ok {
		t.Error("classroom vanished locally despite failed delete")
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	coord, _, _ := newCoordinator(t, api)

	if err := coord.Delete(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
}

func TestClearSelections(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	coord, _, _ := newCoordinator(t, api)

	coord.SelectEdit(1)
	coord.SelectDelete(1)
	coord.ClearSelections()

	if _, ok := coord.EditSelection(); ok {
		t.Error("edit selection survived clear")
	}
	if _, ok := coord.DeleteSelection(); ok {
		t.Error("delete selection survived clear")
	}
}
