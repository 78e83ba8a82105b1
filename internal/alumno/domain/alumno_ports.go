package domain

import (
	"context"
	"errors"
	"fmt"
)

// ---------- Errores de dominio ----------
var (
	ErrAlumnoNotFound = errors.New("alumno not found")
	ErrInvalidCurso   = errors.New("invalid curso")
)

// ---------- Interfaces (Ports) ----------

// AlumnoRepository es de solo lectura: el alta de alumnos vive en otro servicio.
type AlumnoRepository interface {
	// Debe devolver ErrAlumnoNotFound si no existe.
	GetByNick(ctx context.Context, nick string) (*Alumno, error)
}

// CacheKeyByNick forma una key consistente para cache usando el nick.
func CacheKeyByNick(nick string) string {
	return fmt.Sprintf("alumno:nick:%s", nick)
}

// AlumnoWriter lo implementan los repositorios que admiten carga de datos
// (seed de desarrollo y tests).
type AlumnoWriter interface {
	Save(ctx context.Context, a *Alumno) error
}
