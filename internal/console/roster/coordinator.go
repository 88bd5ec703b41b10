package roster

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/console/client"
	"github.com/edustack/schoolhub/internal/console/notify"
	"github.com/edustack/schoolhub/internal/model"
)

// ErrNameRequired is returned when a classroom create or edit is attempted
// with an empty name. No request is sent in that case.
var ErrNameRequired = errors.New("classroom name is required")

// ClassroomAPI is the slice of the API client the coordinator needs.
type ClassroomAPI interface {
	CreateClassroom(ctx context.Context, draft client.ClassroomDraft) (*model.Classroom, error)
	UpdateClassroom(ctx context.Context, id int, draft client.ClassroomDraft) (*model.Classroom, error)
	DeleteClassroom(ctx context.Context, id int) error
}

// Coordinator drives classroom create/edit/delete flows. It owns the
// edit and delete selections: a selection is cleared only when its
// operation succeeds, so a failed attempt leaves the operator exactly
// where they were, free to retry or cancel.
type Coordinator struct {
	api      ClassroomAPI
	store    *Store
	notifier notify.Notifier
	log      zerolog.Logger

	mu       sync.Mutex
	editID   int
	deleteID int
}

func NewCoordinator(api ClassroomAPI, store *Store, notifier notify.Notifier, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		api:      api,
		store:    store,
		notifier: notifier,
		log:      log.With().Str("component", "mutation_coordinator").Logger(),
	}
}

// SelectEdit marks a classroom as the target of an edit flow.
func (m *Coordinator) SelectEdit(classroomID int) {
	m.mu.Lock()
	m.editID = classroomID
	m.mu.Unlock()
}

// SelectDelete marks a classroom as the target of a delete confirmation.
func (m *Coordinator) SelectDelete(classroomID int) {
	m.mu.Lock()
	m.deleteID = classroomID
	m.mu.Unlock()
}

// EditSelection returns the classroom targeted for editing, if any.
func (m *Coordinator) EditSelection() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editID, m.editID != 0
}

// DeleteSelection returns the classroom targeted for deletion, if any.
func (m *Coordinator) DeleteSelection() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteID, m.deleteID != 0
}

// ClearSelections cancels any pending edit or delete flow.
func (m *Coordinator) ClearSelections() {
	m.mu.Lock()
	m.editID = 0
	m.deleteID = 0
	m.mu.Unlock()
}

// Create creates a classroom. Drafts with an empty name are rejected
// locally before any request is made. On success the store reloads.
func (m *Coordinator) Create(ctx context.Context, draft client.ClassroomDraft) error {
	if strings.TrimSpace(draft.Name) == "" {
		m.notifier.Error("Classroom name is required")
		return ErrNameRequired
	}

	if _, err := m.api.CreateClassroom(ctx, draft); err != nil {
		m.log.Warn().Err(err).Str("name", draft.Name).Msg("Classroom create failed")
		m.notifier.Error("Error adding classroom")
		return err
	}

	if err := m.store.Load(ctx); err != nil {
		m.log.Warn().Err(err).Msg("Reload after create failed")
	}
	m.notifier.Success("Classroom added successfully")
	return nil
}

// Edit updates the classroom targeted by SelectEdit. On success the
// selection clears and the store reloads; on failure the selection is
// kept so the flow can be retried.
func (m *Coordinator) Edit(ctx context.Context, draft client.ClassroomDraft) error {
	m.mu.Lock()
	id := m.editID
	m.mu.Unlock()
	if id == 0 {
		return ErrNoSelection
	}

	if strings.TrimSpace(draft.Name) == "" {
		m.notifier.Error("Classroom name is required")
		return ErrNameRequired
	}

	if _, err := m.api.UpdateClassroom(ctx, id, draft); err != nil {
		m.log.Warn().Err(err).Int("classroom_id", id).Msg("Classroom update failed")
		m.notifier.Error("Error updating classroom")
		return err
	}

	m.mu.Lock()
	m.editID = 0
	m.mu.Unlock()

	if err := m.store.Load(ctx); err != nil {
		m.log.Warn().Err(err).Msg("Reload after update failed")
	}
	m.notifier.Success("Classroom updated successfully")
	return nil
}

// Delete removes the classroom targeted by SelectDelete along with all of
// its roster memberships. On success the selection clears and the store
// reloads; on failure the confirmation state is kept.
func (m *Coordinator) Delete(ctx context.Context) error {
	m.mu.Lock()
	id := m.deleteID
	m.mu.Unlock()
	if id == 0 {
		return ErrNoSelection
	}

	if err := m.api.DeleteClassroom(ctx, id); err != nil {
		m.log.Warn().Err(err).Int("classroom_id", id).Msg("Classroom delete failed")
		m.notifier.Error("Error deleting classroom")
		return err
	}

	m.mu.Lock()
	m.deleteID = 0
	m.mu.Unlock()

	if err := m.store.Load(ctx); err != nil {
		m.log.Warn().Err(err).Msg("Reload after delete failed")
	}
	m.notifier.Success("Classroom deleted")
	return nil
}
