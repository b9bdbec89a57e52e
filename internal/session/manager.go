package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentor-qa-service/internal/utils"
)

const contextKey = "session"

// Session is the per-request view of a stored session.
type Session struct {
	ID   string
	Data *Data
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager ties a Store to the session cookie. Every mutation is written to
// the store immediately so it never depends on the response still being open.
type Manager struct {
	store  Store
	opts   Options
	logger utils.Logger
}

func NewManager(store Store, opts Options, logger utils.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "sessionid"
	}
	return &Manager{store: store, opts: opts, logger: logger}
}

// Middleware loads the session named by the cookie, if any. Unknown or
// expired ids clear the cookie.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.opts.CookieName)
		if err == nil && id != "" {
			data, err := m.store.Get(c.Request.Context(), id)
			switch {
			case err == nil:
				c.Set(contextKey, &Session{ID: id, Data: data})
			case errors.Is(err, ErrSessionNotFound):
				m.clearCookie(c)
			default:
				utils.GetLogger(c, m.logger).Error("Failed to load session", "error", err)
			}
		}
		c.Next()
	}
}

// Current returns the session loaded for this request, or nil.
func Current(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// UserID returns the logged in user, if any.
func UserID(c *gin.Context) (uint, bool) {
	s := Current(c)
	if s == nil || s.Data.UserID == 0 {
		return 0, false
	}
	return s.Data.UserID, true
}

// Login starts a fresh session for userID. Pending flashes are carried over
// and the previous session id is destroyed.
func (m *Manager) Login(c *gin.Context, userID uint) error {
	ctx := c.Request.Context()
	data := &Data{UserID: userID}

	if old := Current(c); old != nil {
		data.Flashes = old.Data.Flashes
		if err := m.store.Destroy(ctx, old.ID); err != nil {
			return err
		}
	}

	id, err := m.store.Create(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	c.Set(contextKey, &Session{ID: id, Data: data})
	m.setCookie(c, id)
	return nil
}

// Logout destroys the session and clears the cookie.
func (m *Manager) Logout(c *gin.Context) error {
	if s := Current(c); s != nil {
		if err := m.store.Destroy(c.Request.Context(), s.ID); err != nil {
			return err
		}
	}
	c.Set(contextKey, (*Session)(nil))
	m.clearCookie(c)
	return nil
}

// AddFlash queues a message for the next rendered page, creating an
// anonymous session when the visitor has none.
func (m *Manager) AddFlash(c *gin.Context, level FlashLevel, message string) error {
	ctx := c.Request.Context()
	s := Current(c)
	if s == nil {
		data := &Data{}
		id, err := m.store.Create(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		s = &Session{ID: id, Data: data}
		c.Set(contextKey, s)
		m.setCookie(c, id)
	}

	s.Data.Flashes = append(s.Data.Flashes, Flash{Level: level, Message: message})
	return m.store.Save(ctx, s.ID, s.Data)
}

// Flash is AddFlash for callers that only log failures.
func (m *Manager) Flash(c *gin.Context, level FlashLevel, message string) {
	if err := m.AddFlash(c, level, message); err != nil {
		utils.GetLogger(c, m.logger).Error("Failed to store flash message", "error", err)
	}
}

// PopFlashes returns and clears the pending messages.
func (m *Manager) PopFlashes(c *gin.Context) []Flash {
	s := Current(c)
	if s == nil || len(s.Data.Flashes) == 0 {
		return nil
	}

	flashes := s.Data.Flashes
	s.Data.Flashes = nil
	if err := m.store.Save(c.Request.Context(), s.ID, s.Data); err != nil {
		utils.GetLogger(c, m.logger).Error("Failed to clear flash messages", "error", err)
	}
	return flashes
}

func (m *Manager) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, id, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
}

func (m *Manager) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, "", -1, "/", "", m.opts.Secure, true)
}
