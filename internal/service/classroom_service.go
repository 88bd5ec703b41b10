package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/model"
	"github.com/edustack/schoolhub/internal/repository"
)

// Classroom domain errors.
var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrNotAStudent       = errors.New("user is not a student")
	ErrAlreadyEnrolled   = errors.New("student already enrolled in classroom")
)

// ClassroomService handles classroom and roster business logic.
type ClassroomService struct {
	classroomRepo *repository.ClassroomRepository
	userRepo      *repository.UserRepository
	events        *EventService
	log           zerolog.Logger
}

// NewClassroomService creates a new ClassroomService.
func NewClassroomService(
	classroomRepo *repository.ClassroomRepository,
	userRepo *repository.UserRepository,
	events *EventService,
	log zerolog.Logger,
) *ClassroomService {
	return &ClassroomService{
		classroomRepo: classroomRepo,
		userRepo:      userRepo,
		events:        events,
		log:           log.With().Str("component", "classroom_service").Logger(),
	}
}

// GetByID retrieves one classroom with its roster.
func (s *ClassroomService) GetByID(ctx context.Context, id int) (*model.Classroom, error) {
	cl, err := s.classroomRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClassroomNotFound
	}
	return cl, err
}

// List retrieves all classrooms with course, teacher and roster resolved.
func (s *ClassroomService) List(ctx context.Context) ([]model.Classroom, error) {
	return s.classroomRepo.List(ctx)
}

// Create creates a new classroom with an optional course and teacher.
func (s *ClassroomService) Create(ctx context.Context, name string, courseID, teacherID *int) (*model.Classroom, error) {
	cl, err := s.classroomRepo.Create(ctx, name, courseID, teacherID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, Event{Type: EventClassroomCreated, ClassroomID: cl.ID})
	return cl, nil
}

// Update modifies a classroom's name, course and teacher assignment.
func (s *ClassroomService) Update(ctx context.Context, id int, name string, courseID, teacherID *int) (*model.Classroom, error) {
	if err := s.classroomRepo.Update(ctx, id, name, courseID, teacherID); err != nil {
		return nil, err
	}
	cl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, Event{Type: EventClassroomUpdated, ClassroomID: id})
	return cl, nil
}

// Delete removes a classroom. Memberships are removed transitively by the
// schema; no orphaned roster references survive the parent's destruction.
func (s *ClassroomService) Delete(ctx context.Context, id int) error {
	if err := s.classroomRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, Event{Type: EventClassroomDeleted, ClassroomID: id})
	return nil
}

// AddStudent enrolls a student into a classroom.
// Preconditions: the classroom exists, the user exists and has role
// student, and the student is not already on the roster.
func (s *ClassroomService) AddStudent(ctx context.Context, classroomID, studentID int) error {
	if _, err := s.GetByID(ctx, classroomID); err != nil {
		return err
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrStudentNotFound
	}
	if err != nil {
		return err
	}
	if student.Role != model.RoleStudent {
		return ErrNotAStudent
	}

	if err := s.classroomRepo.AddStudent(ctx, classroomID, studentID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyEnrolled
		}
		return err
	}

	s.log.Info().Int("classroom_id", classroomID).Int("student_id", studentID).Msg("Student enrolled")
	s.events.Publish(ctx, Event{Type: EventStudentAdded, ClassroomID: classroomID, StudentID: studentID})
	return nil
}

// RemoveStudent removes a student from a classroom's roster. Removing a
// student who is not a member succeeds silently; callers may retry or race
// without the second removal turning into an error.
func (s *ClassroomService) RemoveStudent(ctx context.Context, classroomID, studentID int) error {
	if _, err := s.GetByID(ctx, classroomID); err != nil {
		return err
	}

	if err := s.classroomRepo.RemoveStudent(ctx, classroomID, studentID); err != nil {
		return err
	}

	s.log.Info().Int("classroom_id", classroomID).Int("student_id", studentID).Msg("Student unenrolled")
	s.events.Publish(ctx, Event{Type: EventStudentRemoved, ClassroomID: classroomID, StudentID: studentID})
	return nil
}
