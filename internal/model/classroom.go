package model

import "time"

// Classroom represents one class group: an optional course, an optional
// teacher, and the roster of enrolled students. The list endpoint returns
// classrooms with course, teacher and students resolved, which is the shape
// the admin console consumes directly.
//
// Invariant: Students never contains the same student twice. The storage
// layer enforces this with a composite primary key on the membership table.
type Classroom struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Course    *Course   `json:"course"`
	Teacher   *User     `json:"teacher"`
	Students  []User    `json:"students"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStudent reports whether the given student is on the roster.
func (c *Classroom) HasStudent(studentID int) bool {
	for _, s := range c.Students {
		if s.ID == studentID {
			return true
		}
	}
	return false
}
