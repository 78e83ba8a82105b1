package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/cursolab/pkg/utils"
)

// Nombres compatibles con el cliente del frontend (double-submit cookie).
const (
	CSRFCookieName = "XSRF-TOKEN"
	CSRFHeaderName = "X-XSRF-TOKEN"
)

// CSRFMiddleware exige que en métodos mutantes la cabecera X-XSRF-TOKEN
// coincida con la cookie XSRF-TOKEN. En métodos seguros entrega una cookie
// nueva si el cliente aún no la tiene.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(CSRFCookieName)
		cookie = strings.TrimSpace(cookie)

		if isSafeMethod(c.Request.Method) {
			if cookie == "" {
				// HttpOnly a false: el frontend necesita leerla para reenviarla.
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(CSRFCookieName, uuid.NewString(), 0, "/", "", false, false)
			}
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader(CSRFHeaderName))
		switch {
		case cookie == "":
			utils.SendForbidden(c, "CSRF token missing (cookie)")
			return
		case header == "":
			utils.SendForbidden(c, "CSRF token missing (header)")
			return
		case subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1:
			utils.SendForbidden(c, "CSRF token mismatch")
			return
		}

		c.Next()
	}
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
