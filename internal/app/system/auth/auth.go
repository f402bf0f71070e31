package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "teamhub-session"
	DefaultMaxAge      = 14 * 24 * time.Hour

	userIDsKey = "user_ids"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Authentication context                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Context is the set of user ids authenticated within one browser session.
// A session may hold one id per team the browser has signed in to.
type Context interface {
	Contains(id string) bool
	Add(id string)
	IDs() []string
}

// UserSet is the ordered, duplicate-free Context kept in the session cookie.
type UserSet struct {
	ids []string
}

// NewUserSet builds a UserSet from ids, dropping blanks and duplicates.
func NewUserSet(ids ...string) *UserSet {
	s := &UserSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Contains reports whether id is authenticated in this session.
func (s *UserSet) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id unless it is already present. Existing ids are kept.
func (s *UserSet) Add(id string) {
	if id == "" || s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// IDs returns a copy of the authenticated ids in the order they were added.
func (s *UserSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

type ctxKey string

const authContextKey ctxKey = "authContext"

// FromRequest returns the request's authentication context. Requests that
// did not pass through LoadAuthContext get an empty, unsaved set.
func FromRequest(r *http.Request) Context {
	if ac, ok := r.Context().Value(authContextKey).(Context); ok {
		return ac
	}
	return NewUserSet()
}

// WithContext attaches ac to the request.
func WithContext(r *http.Request, ac Context) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authContextKey, ac))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager loads and persists the authentication context in a signed
// cookie session.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager creates a cookie-backed SessionManager.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Name returns the session cookie name.
func (m *SessionManager) Name() string {
	return m.name
}

// Load reads the authentication context from the request's session. A
// cookie that fails to decode (rotated key, tampering) yields an empty set.
func (m *SessionManager) Load(r *http.Request) *UserSet {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			m.log.Debug("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Warn("session store error, using fresh session", zap.Error(err))
		}
	}
	ids, _ := sess.Values[userIDsKey].([]string)
	return NewUserSet(ids...)
}

// LoadAuthContext is middleware that attaches the session's authentication
// context to every request.
func (m *SessionManager) LoadAuthContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(authContextKey).(Context); ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, WithContext(r, m.Load(r)))
	})
}

// Save writes ac's ids to the session cookie. It must be called before the
// response body is written.
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, ac Context) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// Get still returns a usable fresh session on decode errors.
		m.log.Debug("overwriting unreadable session", zap.Error(err))
	}
	sess.Values[userIDsKey] = ac.IDs()
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
