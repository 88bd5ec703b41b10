package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token", srv.Client(), zerolog.Nop()), srv
}

func TestLogin(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "admin@school.test" || body["password"] != "secret1" {
			t.Errorf("unexpected credentials: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"jwt-abc","user":{"id":1,"name":"Admin","email":"admin@school.test","role":"admin"}}`))
	})

	token, user, err := c.Login(context.Background(), "admin@school.test", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q, want jwt-abc", token)
	}
	if user == nil || user.Name != "Admin" {
		t.Errorf("user = %+v", user)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		w.Write([]byte(`{"classrooms":[]}`))
	})

	if _, err := c.ListClassrooms(context.Background()); err != nil {
		t.Fatalf("ListClassrooms: %v", err)
	}
}

func TestListUsersMissingKeyIsEmptyList(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("users = %v, want empty non-nil slice", users)
	}
}

func TestListClassroomsDecodesRoster(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/classrooms" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"classrooms":[
			{"id":3,"name":"10-A","course":{"id":7,"name":"Math"},"teacher":{"id":2,"name":"T"},
			 "students":[{"id":5,"name":"S1"},{"id":6,"name":"S2"}]}
		]}`))
	})

	classrooms, err := c.ListClassrooms(context.Background())
	if err != nil {
		t.Fatalf("ListClassrooms: %v", err)
	}
	if len(classrooms) != 1 {
		t.Fatalf("got %d classrooms", len(classrooms))
	}
	cl := classrooms[0]
	if cl.ID != 3 || cl.Name != "10-A" || len(cl.Students) != 2 {
		t.Errorf("classroom = %+v", cl)
	}
	if cl.Course == nil || cl.Course.Name != "Math" {
		t.Errorf("course = %+v", cl.Course)
	}
}

func TestAddStudentPayload(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/classrooms/3/add-student" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]int
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["studentId"] != 5 {
			t.Errorf("studentId = %d, want 5", body["studentId"])
		}
		w.Write([]byte(`{"message":"student added"}`))
	})

	if err := c.AddStudent(context.Background(), 3, 5); err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
}

func TestRemoveStudentNonMemberSucceeds(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The server treats removal of a non-member as a no-op success.
		w.Write([]byte(`{"message":"student removed"}`))
	})

	if err := c.RemoveStudent(context.Background(), 3, 999); err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}
}

func TestApplicationError(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"ALREADY_ENROLLED","message":"Student is already enrolled in this classroom"}}`))
	})

	err := c.AddStudent(context.Background(), 3, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsApplicationError(err) {
		t.Fatalf("expected ApplicationError, got %T: %v", err, err)
	}
	if IsNetworkError(err) {
		t.Error("ApplicationError must not classify as NetworkError")
	}
	appErr := err.(*ApplicationError)
	if appErr.StatusCode != http.StatusConflict || appErr.Code != "ALREADY_ENROLLED" {
		t.Errorf("appErr = %+v", appErr)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL, "", srv.Client(), zerolog.Nop())
	srv.Close()

	_, err := c.ListClassrooms(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetworkError(err) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if IsApplicationError(err) {
		t.Error("NetworkError must not classify as ApplicationError")
	}
}

func TestFetchSummaryNilCounts(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"students":[],"teachers":[]}`))
	})

	s, err := c.FetchSummary(context.Background())
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if s.Counts != nil {
		t.Errorf("Counts = %+v, want nil", s.Counts)
	}
}

func TestWithToken(t *testing.T) {
	var seen string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{"courses":[]}`))
	})

	if _, err := c.WithToken("other").ListCourses(context.Background()); err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if seen != "Bearer other" {
		t.Errorf("Authorization = %q, want Bearer other", seen)
	}
}
