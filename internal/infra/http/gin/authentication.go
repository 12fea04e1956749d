package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	authsvc "camperhub/internal/app/services/auth"
	domainuser "camperhub/internal/domain/user"
	"camperhub/internal/infra/security"
)

const principalContextKey = "camperhub.principal"

type principal struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
}

// AuthMiddleware verifies bearer tokens and resolves the account behind
// them. Requests without a token pass through unauthenticated; route guards
// decide what requires a principal.
type AuthMiddleware struct {
	Tokens  *security.JWTManager
	Service *authsvc.Service
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Tokens == nil || m.Service == nil {
		c.Next()
		return
	}
	claims, err := m.Tokens.Verify(token)
	if err != nil {
		if m.Logger != nil && !errors.Is(err, security.ErrTokenExpired) {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	account, err := m.Service.Resolve(c.Request.Context(), claims.Subject)
	if err != nil {
		if m.Logger != nil && !errors.Is(err, domainuser.ErrNotFound) {
			m.Logger.Debug("principal resolution failed", "error", err)
		}
		c.Next()
		return
	}
	setPrincipal(c, principal{
		ID:        string(account.ID),
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		IsAdmin:   account.IsAdmin,
	})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireAuth(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	return p, true
}

func requireAdmin(c *gin.Context) (principal, bool) {
	p, ok := requireAuth(c)
	if !ok {
		return principal{}, false
	}
	if !p.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
