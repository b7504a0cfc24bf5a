package flash

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Kind classifies a flash message for styling.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Message is one notice shown on the next rendered page.
type Message struct {
	Kind Kind
	Text string
}

// Store keeps one-shot messages in a signed cookie between a redirect and the next page.
type Store struct {
	store  sessions.Store
	name   string
	logger *zap.Logger
}

// New builds a cookie-backed store signed with secret.
func New(secret, cookieName string, secure bool, logger *zap.Logger) *Store {
	if cookieName == "" {
		cookieName = "flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cookies, name: cookieName, logger: logger}
}

// Add queues a message for the next page render.
func (s *Store) Add(c *gin.Context, kind Kind, text string) {
	session := s.session(c)
	session.AddFlash(text, string(kind))
	if err := session.Save(c.Request, c.Writer); err != nil {
		s.logger.Warn("failed to save flash message", zap.Error(err))
	}
}

// Pop drains queued messages, errors first.
func (s *Store) Pop(c *gin.Context) []Message {
	session := s.session(c)
	var out []Message
	for _, kind := range []Kind{Error, Success} {
		for _, v := range session.Flashes(string(kind)) {
			if text, ok := v.(string); ok {
				out = append(out, Message{Kind: kind, Text: text})
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		s.logger.Warn("failed to clear flash messages", zap.Error(err))
	}
	return out
}

func (s *Store) session(c *gin.Context) *sessions.Session {
	// A tampered or stale cookie decodes into a fresh session alongside the error.
	session, err := s.store.Get(c.Request, s.name)
	if err != nil {
		s.logger.Debug("discarding unreadable flash cookie", zap.Error(err))
	}
	return session
}
