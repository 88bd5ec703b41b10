// Package client is the typed HTTP client the admin console uses to reach
// the backend: one function per (entity, operation) pair. The client owns
// no state beyond its configuration (no caching, no retries) and every
// call goes to the single configured base URL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edustack/schoolhub/internal/model"
)

// Client calls the SchoolHub REST API with a bearer credential.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        zerolog.Logger
}

// New creates a Client for the given base URL and bearer token. The token
// may be empty for the Login call; use WithToken once a session exists.
func New(baseURL string, token string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		log:        log.With().Str("component", "api_client").Logger(),
	}
}

// WithToken returns a copy of the client carrying the given bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// errorBody mirrors the server's {"error": {code, message}} failure shape.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do issues one request and decodes a 2xx response into out (if non-nil).
// A transport failure becomes a NetworkError; a non-2xx status becomes an
// ApplicationError. Nothing is retried.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("Request failed")
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := &ApplicationError{Op: op, StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			appErr.Code = eb.Error.Code
			appErr.Message = eb.Error.Message
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("op", op).Msg("Server returned failure")
		return appErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

// Login authenticates and returns the bearer token plus the user record.
func (c *Client) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var out struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", payload, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

// ListUsers fetches all users. A response without a users key is an empty
// list, never an error.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.do(ctx, "list users", http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	if out.Users == nil {
		return []model.User{}, nil
	}
	return out.Users, nil
}

// ListCourses fetches all courses.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var out struct {
		Courses []model.Course `json:"courses"`
	}
	if err := c.do(ctx, "list courses", http.MethodGet, "/api/courses", nil, &out); err != nil {
		return nil, err
	}
	if out.Courses == nil {
		return []model.Course{}, nil
	}
	return out.Courses, nil
}

// ListClassrooms fetches all classrooms with course, teacher and roster
// resolved.
func (c *Client) ListClassrooms(ctx context.Context) ([]model.Classroom, error) {
	var out struct {
		Classrooms []model.Classroom `json:"classrooms"`
	}
	if err := c.do(ctx, "list classrooms", http.MethodGet, "/api/classrooms", nil, &out); err != nil {
		return nil, err
	}
	if out.Classrooms == nil {
		return []model.Classroom{}, nil
	}
	return out.Classrooms, nil
}

// ClassroomDraft is the create/update payload for a classroom.
type ClassroomDraft struct {
	Name      string `json:"name"`
	CourseID  *int   `json:"course_id"`
	TeacherID *int   `json:"teacher_id"`
}

// CreateClassroom creates a classroom with an empty roster.
func (c *Client) CreateClassroom(ctx context.Context, draft ClassroomDraft) (*model.Classroom, error) {
	var out struct {
		Classroom *model.Classroom `json:"classroom"`
	}
	if err := c.do(ctx, "create classroom", http.MethodPost, "/api/classrooms", draft, &out); err != nil {
		return nil, err
	}
	return out.Classroom, nil
}

// UpdateClassroom updates a classroom's name, course and teacher.
func (c *Client) UpdateClassroom(ctx context.Context, id int, draft ClassroomDraft) (*model.Classroom, error) {
	var out struct {
		Classroom *model.Classroom `json:"classroom"`
	}
	path := fmt.Sprintf("/api/classrooms/%d", id)
	if err := c.do(ctx, "update classroom", http.MethodPut, path, draft, &out); err != nil {
		return nil, err
	}
	return out.Classroom, nil
}

// DeleteClassroom deletes a classroom and its memberships.
func (c *Client) DeleteClassroom(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/classrooms/%d", id)
	return c.do(ctx, "delete classroom", http.MethodDelete, path, nil, nil)
}

// AddStudent enrolls a student into a classroom's roster.
func (c *Client) AddStudent(ctx context.Context, classroomID, studentID int) error {
	path := fmt.Sprintf("/api/classrooms/%d/add-student", classroomID)
	return c.do(ctx, "add student", http.MethodPost, path, map[string]int{"studentId": studentID}, nil)
}

// RemoveStudent removes a student from a classroom's roster. The server
// treats removal of a non-member as a successful no-op.
func (c *Client) RemoveStudent(ctx context.Context, classroomID, studentID int) error {
	path := fmt.Sprintf("/api/classrooms/%d/remove-student", classroomID)
	return c.do(ctx, "remove student", http.MethodPost, path, map[string]int{"studentId": studentID}, nil)
}

// FetchSummary fetches the server-computed admin summary. A summary whose
// Counts is nil signals that no server aggregate is available.
func (c *Client) FetchSummary(ctx context.Context) (*model.Summary, error) {
	var out model.Summary
	if err := c.do(ctx, "fetch summary", http.MethodGet, "/api/admin/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
