package middleware

import (
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"ai_hub_backend/internal/util"
)

// AdminGate checks the shared export password supplied as a query parameter.
// The configured value may be plaintext or a bcrypt hash; plaintext values
// are compared in constant time.
type AdminGate struct {
	mu       sync.RWMutex
	password string
}

func NewAdminGate(password string) *AdminGate {
	return &AdminGate{password: password}
}

// UpdatePassword swaps the gate secret on config reload.
func (g *AdminGate) UpdatePassword(password string) {
	g.mu.Lock()
	g.password = password
	g.mu.Unlock()
}

func (g *AdminGate) matches(candidate string) bool {
	g.mu.RLock()
	configured := g.password
	g.mu.RUnlock()

	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(candidate)) == 1
}

func (g *AdminGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.matches(c.Query("password")) {
			util.Forbidden(c, "Invalid password")
			c.Abort()
			return
		}
		c.Next()
	}
}
