package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/pkg/logger"
)

const (
	// sessionUserIDKey is the session value holding the user id
	sessionUserIDKey = "user_id"
	// ContextUserIDKey is the gin context key holding the resolved user id
	ContextUserIDKey = "userID"
)

// SessionOptions configures the signed session cookie
type SessionOptions struct {
	SecretKey string
	Name      string
	MaxAge    int
	Secure    bool
}

// NewSessionStore creates a cookie store signed with opts.SecretKey
func NewSessionStore(opts SessionOptions) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(opts.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// IdentityMiddleware attaches a user to every request through the session cookie
type IdentityMiddleware struct {
	store       sessions.Store
	sessionName string
	identity    services.IdentityService
}

// NewIdentityMiddleware creates a new IdentityMiddleware
func NewIdentityMiddleware(store sessions.Store, sessionName string, identity services.IdentityService) *IdentityMiddleware {
	return &IdentityMiddleware{
		store:       store,
		sessionName: sessionName,
		identity:    identity,
	}
}

// Identify resolves the request's user and stores it under ContextUserIDKey.
// When the session has no usable user the first user is written back to it.
// Failures leave the request anonymous (user id 0).
func (m *IdentityMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		// A cookie that fails to decode still yields a fresh session
		session, err := m.store.Get(c.Request, m.sessionName)
		if err != nil {
			logger.Debug().Err(err).Msg("Discarding unreadable session cookie")
		}

		sessionUserID := sessionInt64(session.Values[sessionUserIDKey])

		userID, err := m.identity.ResolveUser(c.Request.Context(), sessionUserID)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to resolve session user")
			userID = 0
		}

		if userID != 0 && userID != sessionUserID {
			session.Values[sessionUserIDKey] = userID
			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.Error().Err(err).Msg("Failed to save session")
			}
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user id resolved for the request, 0 when anonymous
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserIDKey)
}

func sessionInt64(v interface{}) int64 {
	switch id := v.(type) {
	case int64:
		return id
	case int:
		return int64(id)
	default:
		return 0
	}
}
