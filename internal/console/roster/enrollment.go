package roster

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/console/notify"
)

// ErrNoSelection is returned when an enrollment is attempted without both
// a classroom and a student selected.
var ErrNoSelection = errors.New("no classroom and student selected")

// MembershipAPI is the slice of the API client the engine needs.
type MembershipAPI interface {
	AddStudent(ctx context.Context, classroomID, studentID int) error
	RemoveStudent(ctx context.Context, classroomID, studentID int) error
}

// Engine drives roster membership changes. It tracks the operator's
// pending classroom/student selection, calls the server, and reconciles
// the store afterwards. Failures leave both the selection and the cached
// rosters exactly as they were.
type Engine struct {
	api      MembershipAPI
	store    *Store
	notifier notify.Notifier
	log      zerolog.Logger

	mu               sync.Mutex
	pendingClassroom int
	pendingStudent   int
}

func NewEngine(api MembershipAPI, store *Store, notifier notify.Notifier, log zerolog.Logger) *Engine {
	return &Engine{
		api:      api,
		store:    store,
		notifier: notifier,
		log:      log.With().Str("component", "enrollment_engine").Logger(),
	}
}

// SelectClassroom records the classroom the operator is enrolling into.
func (e *Engine) SelectClassroom(classroomID int) {
	e.mu.Lock()
	e.pendingClassroom = classroomID
	e.mu.Unlock()
}

// SelectStudent records the student the operator picked.
func (e *Engine) SelectStudent(studentID int) {
	e.mu.Lock()
	e.pendingStudent = studentID
	e.mu.Unlock()
}

// Pending returns the current selection. Zero means nothing selected.
func (e *Engine) Pending() (classroomID, studentID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingClassroom, e.pendingStudent
}

// EnrollPending enrolls the currently selected student into the currently
// selected classroom. Returns ErrNoSelection when either half is missing.
func (e *Engine) EnrollPending(ctx context.Context) error {
	classroomID, studentID := e.Pending()
	if classroomID == 0 || studentID == 0 {
		return ErrNoSelection
	}
	return e.Enroll(ctx, classroomID, studentID)
}

// Enroll adds a student to a classroom's roster. On success the pending
// selection is cleared and the store reloads so the roster and its badge
// count reflect the server. On failure nothing local changes.
func (e *Engine) Enroll(ctx context.Context, classroomID, studentID int) error {
	if err := e.api.AddStudent(ctx, classroomID, studentID); err != nil {
		e.log.Warn().Err(err).Int("classroom_id", classroomID).Int("student_id", studentID).
			Msg("Enroll failed")
		e.notifier.Error("Error adding student to class")
		return err
	}

	e.mu.Lock()
	e.pendingClassroom = 0
	e.pendingStudent = 0
	e.mu.Unlock()

	if err := e.store.Load(ctx); err != nil {
		// The enrollment itself succeeded; the stale cache heals on the
		// next successful load.
		e.log.Warn().Err(err).Msg("Reload after enroll failed")
	}
	e.notifier.Success("Student added successfully")
	return nil
}

// Unenroll removes a student from a classroom's roster. On success the
// cached roster is patched immediately and a full reload runs as well, so
// an open detail view and the list view both update. Removing a student
// who is not on the roster succeeds as a no-op.
func (e *Engine) Unenroll(ctx context.Context, classroomID, studentID int) error {
	if err := e.api.RemoveStudent(ctx, classroomID, studentID); err != nil {
		e.log.Warn().Err(err).Int("classroom_id", classroomID).Int("student_id", studentID).
			Msg("Unenroll failed")
		e.notifier.Error("Error removing student from class")
		return err
	}

	e.store.PatchRemoveMember(classroomID, studentID)
	if err := e.store.Load(ctx); err != nil {
		e.log.Warn().Err(err).Msg("Reload after unenroll failed")
	}
	e.notifier.Success("Student removed successfully")
	return nil
}
