package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mentorhub/mentor-qa-service/internal/events"
	"github.com/mentorhub/mentor-qa-service/internal/llm"
	"github.com/mentorhub/mentor-qa-service/internal/models"
	"github.com/mentorhub/mentor-qa-service/internal/repositories/postgres"
	"github.com/mentorhub/mentor-qa-service/internal/services"
	"github.com/mentorhub/mentor-qa-service/internal/session"
	"github.com/mentorhub/mentor-qa-service/internal/templates"
	"github.com/mentorhub/mentor-qa-service/internal/utils"
	"github.com/mentorhub/mentor-qa-service/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubModel answers every prompt with reply, or fails with err.
type stubModel struct {
	mu    sync.Mutex
	reply string
	err   error
}

func (m *stubModel) Generate(context.Context, []models.ChatMessage, llm.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reply, m.err
}

func (m *stubModel) set(reply string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply, m.err = reply, err
}

type testServer struct {
	*httptest.Server
	db    *gorm.DB
	model *stubModel
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:http_%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	log := utils.NewSlogLogger(slogger)
	model := &stubModel{reply: "Recursion is a function calling itself."}

	sm := services.NewServiceManager(services.Dependencies{
		Repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		Logger:    slogger,
		Validator: validator.New(),
		Publisher: events.NewMockEventPublisher(slogger),
		Model:     model,
	}, services.ServiceManagerConfig{DisplayLocation: time.UTC})
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	tmpl, err := templates.Load(time.UTC)
	if err != nil {
		t.Fatalf("templates.Load() error = %v", err)
	}
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), session.Options{TTL: time.Hour}, log)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	SetupMiddleware(router, log)
	NewHandlerManager(sm, sessions, time.UTC, log).SetupRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db, model: model}
}

// client is one browser: it keeps cookies and does not follow redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (s *testServer) newClient(t *testing.T) *client {
	jar, _ := cookiejar.New(nil)
	return &client{
		t:    t,
		base: s.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	status   int
	location string
	header   http.Header
	body     string
}

func (r response) json(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(r.body), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", r.body, err)
	}
	return out
}

func (c *client) do(method, path, contentType string, body io.Reader) response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		c.t.Fatalf("NewRequest() error = %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		header:   resp.Header,
		body:     string(raw),
	}
}

func (c *client) get(path string) response {
	c.t.Helper()
	return c.do(http.MethodGet, path, "", nil)
}

func (c *client) postForm(path string, form url.Values) response {
	c.t.Helper()
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *client) sendJSON(method, path string, body any) response {
	c.t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		c.t.Fatalf("json.Marshal() error = %v", err)
	}
	return c.do(method, path, "application/json", strings.NewReader(string(raw)))
}

// signUp registers and logs in; the password is always "password123".
func (c *client) signUp(username, fullname string, role models.UserRole) {
	c.t.Helper()
	res := c.postForm("/register", url.Values{
		"username": {username},
		"fullname": {fullname},
		"email":    {username + "@example.com"},
		"password": {"password123"},
		"role":     {string(role)},
	})
	if res.status != http.StatusFound || res.location != "/login" {
		c.t.Fatalf("register %s: status %d location %q body %s", username, res.status, res.location, res.body)
	}
	c.login(username+"@example.com", "password123")
}

func (c *client) login(email, password string) response {
	c.t.Helper()
	return c.postForm("/login", url.Values{"email": {email}, "password": {password}})
}

func (s *testServer) questionID(t *testing.T, title string) uint {
	t.Helper()
	var q models.Question
	if err := s.db.Where("title = ?", title).First(&q).Error; err != nil {
		t.Fatalf("question %q not found: %v", title, err)
	}
	return q.ID
}
