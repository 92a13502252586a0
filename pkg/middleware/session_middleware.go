package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ltctrack/internal/services"
	"ltctrack/pkg/utils"
)

const (
	SessionCookieName = "sessionId"

	identityKey = "identity"
	tokenKey    = "session_token"
)

// Authenticator resolves the session cookie on every request and offers the
// two gate flavours: redirect for pages, 401 for the JSON API.
type Authenticator struct {
	auth         services.AuthServiceInterface
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthenticator(auth services.AuthServiceInterface, cookieSecure bool, log *zap.Logger) *Authenticator {
	return &Authenticator{
		auth:         auth,
		cookieSecure: cookieSecure,
		log:          log.Named("auth-gateway"),
	}
}

// ClientInfoFrom extracts what a session is bound to.
func ClientInfoFrom(c *gin.Context) services.ClientInfo {
	return services.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
}

// RestoreIdentity never rejects. A cookie that resolves to nothing is cleared
// and the request carries on anonymously.
func (a *Authenticator) RestoreIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := a.auth.ResolveIdentity(c.Request.Context(), token, ClientInfoFrom(c))
		if err != nil {
			a.log.Error("failed to resolve session",
				zap.String("trace_id", c.GetString("trace_id")),
				zap.Error(err))
		}
		if identity == nil {
			a.ClearSessionCookie(c)
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireAuthRedirect sends anonymous page requests to loginPath.
func (a *Authenticator) RequireAuthRedirect(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuth answers anonymous API requests with 401.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users off pages like /login.
func (a *Authenticator) RedirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) != nil {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Authenticator) SetSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Authenticator) ClearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// IdentityFrom returns the request's principal or nil.
func IdentityFrom(c *gin.Context) *services.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*services.Identity)
	return identity
}

// SessionTokenFrom returns the raw token that authenticated the request.
func SessionTokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}
