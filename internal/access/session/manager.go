package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/davicafu/cursolab/internal/access"
)

var ErrInvalidSession = errors.New("invalid session")

// claims lleva el rol en "type", el mismo nombre que el atributo de sesión original.
type claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Manager firma y verifica tokens de sesión HS256.
// Emitir sesiones es responsabilidad del servicio de autenticación;
// aquí solo se comparte el secreto para poder leerlas.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue genera un token para la identidad dada.
func (m *Manager) Issue(id access.Identity) (string, error) {
	now := m.now()
	c := claims{
		Type: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(m.secret)
}

// Parse valida firma y expiración y devuelve la identidad del token.
func (m *Manager) Parse(raw string) (access.Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return access.Anonymous, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return access.Identity{
		Subject: c.Subject,
		Role:    access.Role(c.Type),
	}, nil
}
