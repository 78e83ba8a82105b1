package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/cursolab/internal/access"
)

const identityKey = "access.identity"

// SessionParser resuelve un token de sesión a una identidad.
type SessionParser interface {
	Parse(raw string) (access.Identity, error)
}

// SessionMiddleware lee el token de sesión (cookie o Authorization: Bearer)
// y deja la identidad resuelta en el contexto de gin. Un token ausente o
// inválido deja la identidad anónima; la decisión de rechazar es del dispatcher.
func SessionMiddleware(parser SessionParser, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := access.Anonymous

		if raw := extractToken(c, cookieName); raw != "" {
			parsed, err := parser.Parse(raw)
			if err != nil {
				log.Debug("Sesión inválida, se trata como anónima", zap.Error(err))
			} else {
				id = parsed
			}
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom devuelve la identidad que dejó SessionMiddleware.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Anonymous
}

func extractToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
