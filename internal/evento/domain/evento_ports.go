package domain

import (
	"context"
	"errors"
	"fmt"

	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// ---------- Errores de dominio ----------
var (
	ErrEventoNotFound      = errors.New("evento not found")
	ErrEventoAlreadyExists = errors.New("evento already exists")
	ErrInvalidEvento       = errors.New("invalid evento")
)

// ---------- Interfaces (Ports) ----------

// EventoRepository define las operaciones persistentes para Evento.
type EventoRepository interface {
	// Create asigna el ID al evento recibido.
	Create(ctx context.Context, e *Evento) error

	// Debe devolver ErrEventoNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Evento, error)

	// Debe devolver ErrEventoNotFound si el evento no existe.
	Update(ctx context.Context, e *Evento) error

	// Debe devolver ErrEventoNotFound si el evento no existe.
	DeleteByID(ctx context.Context, id int64) error

	// ListByCriteria devuelve los eventos que cumplen todas las condiciones.
	// Criteria nil devuelve todos.
	ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria, sort sharedDomain.Sort) ([]*Evento, error)
}

// DefaultSort ordena el calendario por fecha de inicio.
var DefaultSort = sharedDomain.Sort{Field: "start"}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id int64) string {
	return fmt.Sprintf("evento:id:%d", id)
}
