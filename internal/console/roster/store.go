// Package roster holds the console's classroom state: a cache of the
// server's classroom list plus the engines that mutate it. The store is
// the only authority for roster data on the console side; everything the
// views display is a snapshot of it.
package roster

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/model"
)

// ClassroomLister is the slice of the API client the store needs.
type ClassroomLister interface {
	ListClassrooms(ctx context.Context) ([]model.Classroom, error)
}

// Store caches the classroom aggregate list. A failed Load never clears
// the cache: the previous snapshot stays visible until a load succeeds.
type Store struct {
	api ClassroomLister
	log zerolog.Logger

	mu         sync.RWMutex
	classrooms []model.Classroom
	loaded     bool
}

func NewStore(api ClassroomLister, log zerolog.Logger) *Store {
	return &Store{
		api: api,
		log: log.With().Str("component", "roster_store").Logger(),
	}
}

// Load replaces the cached list with a fresh fetch. On failure the cached
// list is left untouched and the error is returned.
func (s *Store) Load(ctx context.Context) error {
	classrooms, err := s.api.ListClassrooms(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Classroom load failed, keeping cached list")
		return err
	}

	s.mu.Lock()
	s.classrooms = classrooms
	s.loaded = true
	s.mu.Unlock()

	s.log.Debug().Int("count", len(classrooms)).Msg("Classroom list loaded")
	return nil
}

// Loaded reports whether at least one Load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Classrooms returns a snapshot of the cached list. Rosters are copied so
// callers cannot mutate the cache.
func (s *Store) Classrooms() []model.Classroom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Classroom, len(s.classrooms))
	for i, cl := range s.classrooms {
		out[i] = copyClassroom(cl)
	}
	return out
}

// Get returns a snapshot of one cached classroom.
func (s *Store) Get(classroomID int) (model.Classroom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cl := range s.classrooms {
		if cl.ID == classroomID {
			return copyClassroom(cl), true
		}
	}
	return model.Classroom{}, false
}

// RosterSize returns the cached roster length for a classroom, 0 when the
// classroom is unknown.
func (s *Store) RosterSize(classroomID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cl := range s.classrooms {
		if cl.ID == classroomID {
			return len(cl.Students)
		}
	}
	return 0
}

// PatchRemoveMember drops a student from one cached roster without
// touching the server. Unknown classrooms and non-members are no-ops.
// Other classrooms' rosters are never affected.
func (s *Store) PatchRemoveMember(classroomID, studentID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.classrooms {
		if s.classrooms[i].ID != classroomID {
			continue
		}
		students := s.classrooms[i].Students
		for j := range students {
			if students[j].ID == studentID {
				s.classrooms[i].Students = append(students[:j:j], students[j+1:]...)
				return
			}
		}
		return
	}
}

func copyClassroom(cl model.Classroom) model.Classroom {
	out := cl
	if cl.Students != nil {
		out.Students = make([]model.User, len(cl.Students))
		copy(out.Students, cl.Students)
	}
	return out
}
