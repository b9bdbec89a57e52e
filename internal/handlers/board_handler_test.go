package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/mentorhub/mentor-qa-service/internal/models"
)

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t)
	student := srv.newClient(t)
	student.signUp("alice", "Alice", models.RoleStudent)
	mentor := srv.newClient(t)
	mentor.signUp("maria", "Maria", models.RoleMentor)
	anon := srv.newClient(t)

	tests := []struct {
		name     string
		c        *client
		path     string
		wantTo   string
		wantPage string
	}{
		{"anonymous mentor", anon, "/mentor", "/login?next=%2Fmentor", ""},
		{"anonymous student", anon, "/student", "/login?next=%2Fstudent", ""},
		{"student on mentor", student, "/mentor", "/", "Access denied. Mentor role required."},
		{"mentor on student", mentor, "/student", "/", "Access denied. Student role required."},
		{"student on export", student, "/mentor/export", "/", "Access denied. Mentor role required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.c.get(tt.path)
			if res.status != http.StatusFound || res.location != tt.wantTo {
				t.Fatalf("GET %s: status %d location %q", tt.path, res.status, res.location)
			}
			if tt.wantPage != "" {
				if home := tt.c.get("/"); !strings.Contains(home.body, tt.wantPage) {
					t.Errorf("home missing flash %q", tt.wantPage)
				}
			}
		})
	}
}

func TestRoleGates_MissingProfile(t *testing.T) {
	srv := newTestServer(t)
	c := srv.newClient(t)
	c.signUp("alice", "Alice", models.RoleStudent)
	srv.db.Where("1 = 1").Delete(&models.UserProfile{})

	res := c.get("/student")
	if res.status != http.StatusFound || res.location != "/" {
		t.Fatalf("status %d location %q", res.status, res.location)
	}
	if home := c.get("/"); !strings.Contains(home.body, "User profile not found.") {
		t.Error("home missing profile flash")
	}
}

func TestStudent_PostAndListQuestions(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)

	res := alice.postForm("/student", url.Values{
		"title":    {"What is recursion?"},
		"content":  {"Can someone explain recursion with an example?"},
		"category": {"programming"},
	})
	if res.status != http.StatusOK {
		t.Fatalf("status = %d body %s", res.status, res.body)
	}
	body := res.json(t)
	question, _ := body["question"].(map[string]any)
	if body["success"] != true || question["status"] != "pending" || question["category"] != "programming" {
		t.Errorf("body = %v", body)
	}

	page := alice.get("/student")
	if !strings.Contains(page.body, "Question posted successfully!") || !strings.Contains(page.body, "What is recursion?") {
		t.Error("student page should show the flash and the question")
	}

	bob := srv.newClient(t)
	bob.signUp("bob", "Bob", models.RoleStudent)
	if page := bob.get("/student"); strings.Contains(page.body, "What is recursion?") {
		t.Error("students only see their own questions")
	}
}

func TestStudent_PostQuestionErrors(t *testing.T) {
	srv := newTestServer(t)
	c := srv.newClient(t)
	c.signUp("alice", "Alice", models.RoleStudent)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing content", url.Values{"title": {"t"}, "category": {"career"}}, "All fields are required"},
		{"bad category", url.Values{"title": {"t"}, "content": {"c"}, "category": {"cooking"}}, "Invalid category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.postForm("/student", tt.form)
			body := res.json(t)
			if res.status != http.StatusBadRequest || body["success"] != false || body["error"] != tt.want {
				t.Errorf("status %d body %v", res.status, body)
			}
		})
	}
}

func TestStudent_DeleteQuestion(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)
	bob := srv.newClient(t)
	bob.signUp("bob", "Bob", models.RoleStudent)

	alice.postForm("/student", url.Values{"title": {"Mine"}, "content": {"c"}, "category": {"general"}})
	path := fmt.Sprintf("/delete-question/%d", srv.questionID(t, "Mine"))

	res := alice.get(path)
	if res.status != http.StatusMethodNotAllowed || res.json(t)["error"] != "Invalid request method" {
		t.Errorf("GET: status %d body %s", res.status, res.body)
	}

	res = bob.do(http.MethodDelete, path, "", nil)
	if res.status != http.StatusNotFound || res.json(t)["error"] != "Question not found" {
		t.Errorf("other student: status %d body %s", res.status, res.body)
	}

	res = alice.do(http.MethodDelete, path, "", nil)
	if res.status != http.StatusOK || res.json(t)["message"] != "Question deleted successfully" {
		t.Fatalf("owner: status %d body %s", res.status, res.body)
	}

	res = alice.do(http.MethodDelete, path, "", nil)
	if res.status != http.StatusNotFound {
		t.Errorf("second delete status = %d", res.status)
	}
	if res = alice.do(http.MethodDelete, "/delete-question/abc", "", nil); res.status != http.StatusNotFound {
		t.Errorf("non numeric id status = %d", res.status)
	}
}

func TestMentor_AnswerQuestion(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)
	maria := srv.newClient(t)
	maria.signUp("maria", "Maria", models.RoleMentor)

	alice.postForm("/student", url.Values{
		"title":    {"What is recursion?"},
		"content":  {"Can someone explain recursion with an example?"},
		"category": {"programming"},
	})
	id := srv.questionID(t, "What is recursion?")

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantError  string
	}{
		{"missing content", url.Values{"question_id": {fmt.Sprint(id)}}, http.StatusBadRequest, "Question ID and answer content are required"},
		{"unknown question", url.Values{"question_id": {"9999"}, "answer_content": {"x"}}, http.StatusNotFound, "Question not found"},
		{"non numeric id", url.Values{"question_id": {"abc"}, "answer_content": {"x"}}, http.StatusNotFound, "Question not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := maria.postForm("/mentor", tt.form)
			if res.status != tt.wantStatus || res.json(t)["error"] != tt.wantError {
				t.Errorf("status %d body %s", res.status, res.body)
			}
		})
	}

	res := maria.postForm("/mentor", url.Values{
		"question_id":    {fmt.Sprint(id)},
		"answer_content": {"A function that calls itself until a base case."},
	})
	if res.status != http.StatusOK {
		t.Fatalf("status = %d body %s", res.status, res.body)
	}
	answer, _ := res.json(t)["answer"].(map[string]any)
	if answer["mentor_name"] != "Maria" || answer["content"] != "A function that calls itself until a base case." {
		t.Errorf("answer = %v", answer)
	}

	var q models.Question
	srv.db.First(&q, id)
	if q.Status != models.StatusAnswered {
		t.Errorf("status = %q, want answered", q.Status)
	}

	page := maria.get("/mentor")
	if !strings.Contains(page.body, "by Alice") || !strings.Contains(page.body, "A function that calls itself until a base case.") {
		t.Error("mentor board should list the question with its answer")
	}
	if page := alice.get("/student"); !strings.Contains(page.body, "Answered") {
		t.Error("student should see the answered status")
	}
}

func TestMentor_AnswerQuestionJSON(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)
	maria := srv.newClient(t)
	maria.signUp("maria", "Maria", models.RoleMentor)
	alice.postForm("/student", url.Values{"title": {"Closures"}, "content": {"How do they capture?"}, "category": {"programming"}})
	id := srv.questionID(t, "Closures")

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{"numeric id", map[string]any{"question_id": id, "answer_content": "They keep a reference to the variable."}, http.StatusOK},
		{"string id", map[string]any{"question_id": fmt.Sprint(id), "answer_content": "And it outlives the call."}, http.StatusOK},
		{"non numeric id", map[string]any{"question_id": "abc", "answer_content": "x"}, http.StatusNotFound},
		{"missing id", map[string]any{"answer_content": "x"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := maria.sendJSON(http.MethodPost, "/mentor", tt.body)
			if res.status != tt.wantStatus {
				t.Errorf("status = %d body %s", res.status, res.body)
			}
		})
	}

	var q models.Question
	srv.db.Preload("Answers").First(&q, id)
	if q.Status != models.StatusAnswered || len(q.Answers) != 2 {
		t.Errorf("question = status %q with %d answers", q.Status, len(q.Answers))
	}
}

func TestMentor_BoardFilter(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)
	maria := srv.newClient(t)
	maria.signUp("maria", "Maria", models.RoleMentor)
	alice.postForm("/student", url.Values{"title": {"Recursion basics"}, "content": {"c"}, "category": {"programming"}})
	alice.postForm("/student", url.Values{"title": {"Career switch"}, "content": {"c"}, "category": {"career"}})
	maria.postForm("/mentor", url.Values{"question_id": {fmt.Sprint(srv.questionID(t, "Recursion basics"))}, "answer_content": {"a"}})

	tests := []struct {
		query   string
		want    []string
		notWant []string
	}{
		{"", []string{"Recursion basics", "Career switch"}, nil},
		{"?status=answered", []string{"Recursion basics"}, []string{"Career switch"}},
		{"?category=career", []string{"Career switch"}, []string{"Recursion basics"}},
		{"?status=bogus", []string{"Recursion basics", "Career switch"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := maria.get("/mentor" + tt.query)
			if res.status != http.StatusOK {
				t.Fatalf("status = %d", res.status)
			}
			for _, title := range tt.want {
				if !strings.Contains(res.body, title) {
					t.Errorf("board should list %q", title)
				}
			}
			for _, title := range tt.notWant {
				if strings.Contains(res.body, title) {
					t.Errorf("board should not list %q", title)
				}
			}
		})
	}

	if res := maria.get("/mentor?status=answered"); !strings.Contains(res.body, `value="answered" selected`) {
		t.Error("active status should stay selected")
	}
}

func TestMentor_StatsAndExport(t *testing.T) {
	srv := newTestServer(t)
	alice := srv.newClient(t)
	alice.signUp("alice", "Alice", models.RoleStudent)
	maria := srv.newClient(t)
	maria.signUp("maria", "Maria", models.RoleMentor)
	alice.postForm("/student", url.Values{"title": {"one"}, "content": {"c"}, "category": {"career"}})
	alice.postForm("/student", url.Values{"title": {"two"}, "content": {"c"}, "category": {"project"}})

	res := maria.get("/mentor/stats")
	body := res.json(t)
	if res.status != http.StatusOK || body["total_questions"] != float64(2) || body["pending_questions"] != float64(2) || body["unique_students"] != float64(1) {
		t.Errorf("stats = %v", body)
	}

	res = maria.get("/mentor/export")
	if res.status != http.StatusOK {
		t.Fatalf("export status = %d", res.status)
	}
	if ct := res.header.Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := res.header.Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="mentor-qa-`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	// xlsx is a zip archive
	if !strings.HasPrefix(res.body, "PK") {
		t.Error("export body is not an xlsx archive")
	}
}
