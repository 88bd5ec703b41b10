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

func newEngine(t *testing.T, api *fakeAPI) (*Engine, *Store, *notify.Recorder) {
	t.Helper()
	store := NewStore(api, zerolog.Nop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	rec := &notify.Recorder{}
	return NewEngine(api, store, rec, zerolog.Nop()), store, rec
}

func TestEnrollSuccessReloadsAndClearsSelection(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{}})
	engine, store, rec := newEngine(t, api)

	engine.SelectClassroom(1)
	engine.SelectStudent(5)
	if err := engine.EnrollPending(context.Background()); err != nil {
		t.Fatalf("EnrollPending: %v", err)
	}

	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d, want 1", got)
	}
	if cID, sID := engine.Pending(); cID != 0 || sID != 0 {
		t.Errorf("selection not cleared: classroom=%d student=%d", cID, sID)
	}
	if len(rec.Successes) != 1 || len(rec.Errors) != 0 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestEnrollWithoutSelection(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A"})
	engine, _, _ := newEngine(t, api)

	engine.SelectClassroom(1) // student half missing
	if err := engine.EnrollPending(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	if api.addCalls != 0 {
		t.Error("request sent despite incomplete selection")
	}
}

func TestEnrollFailureKeepsSelectionAndCache(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{}})
	engine, store, rec := newEngine(t, api)
	api.addErr = &client.NetworkError{Op: "add student", Err: errors.New("timeout")}

	engine.SelectClassroom(1)
	engine.SelectStudent(5)
	if err := engine.EnrollPending(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if cID, sID := engine.Pending(); cID != 1 || sID != 5 {
		t.Errorf("selection changed on failure: classroom=%d student=%d", cID, sID)
	}
	if got := store.RosterSize(1); got != 0 {
		t.Errorf("RosterSize(1) = %d after failed enroll, want 0", got)
	}
	if len(rec.Errors) != 1 || len(rec.Successes) != 0 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestEnrollDuplicateRejected(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	engine, store, _ := newEngine(t, api)

	err := engine.Enroll(context.Background(), 1, 5)
	if !client.IsApplicationError(err) {
		t.Fatalf("err = %v, want ApplicationError", err)
	}
	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d, want 1", got)
	}
}

func TestUnenrollPatchesAndReloads(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5), student(6)}})
	engine, store, rec := newEngine(t, api)

	if err := engine.Unenroll(context.Background(), 1, 5); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}

	cl, _ := store.Get(1)
	if cl.HasStudent(5) || !cl.HasStudent(6) {
		t.Errorf("roster after unenroll = %+v", cl.Students)
	}
	if len(rec.Successes) != 1 {
		t.Errorf("notifications = %+v", rec)
	}
}

// When the reload after a removal fails, the local patch still leaves the
// open detail view consistent with what the server committed.
func TestUnenrollPatchSurvivesFailedReload(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	engine, store, _ := newEngine(t, api)

	api.listErr = errors.New("connection reset")
	if err := engine.Unenroll(context.Background(), 1, 5); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}

	if got := store.RosterSize(1); got != 0 {
		t.Errorf("RosterSize(1) = %d, want 0 (patched locally)", got)
	}
}

func TestUnenrollNonMemberIsNoOp(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(5)}})
	engine, store, rec := newEngine(t, api)

	if err := engine.Unenroll(context.Background(), 1, 999); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	if got := store.RosterSize(1); got != 1 {
		t.Errorf("RosterSize(1) = %d, want 1", got)
	}
	if len(rec.Successes) != 1 {
		t.Errorf("notifications = %+v", rec)
	}
}

func TestEnrollUnenrollRoundTrip(t *testing.T) {
	api := newFakeAPI(model.Classroom{ID: 1, Name: "10-A", Students: []model.User{student(6)}})
	engine, store, _ := newEngine(t, api)

	before, _ := store.Get(1)

	if err := engine.Enroll(context.Background(), 1, 5); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := engine.Unenroll(context.Background(), 1, 5); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}

	after, _ := store.Get(1)
	if len(after.Students) != len(before.Students) {
		t.Fatalf("roster size %d after round trip, want %d", len(after.Students), len(before.Students))
	}
	for _, s := range before.Students {
		if !after.HasStudent(s.ID) {
			t.Errorf("student %d lost in round trip", s.ID)
		}
	}
}
