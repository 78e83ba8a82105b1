package memory

import (
	"context"
	"sync"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
)

// InMemoryAlumnoRepo implementa AlumnoRepository sobre un mapa indexado por nick.
type InMemoryAlumnoRepo struct {
	alumnos map[string]alumnoDomain.Alumno
	mu      sync.RWMutex
}

var _ alumnoDomain.AlumnoRepository = (*InMemoryAlumnoRepo)(nil)

func NewInMemoryAlumnoRepo(seed ...alumnoDomain.Alumno) *InMemoryAlumnoRepo {
	r := &InMemoryAlumnoRepo{alumnos: make(map[string]alumnoDomain.Alumno, len(seed))}
	for _, a := range seed {
		r.alumnos[a.NickUsuario] = a
	}
	return r
}

// Save inserta o reemplaza un alumno.
func (r *InMemoryAlumnoRepo) Save(ctx context.Context, a *alumnoDomain.Alumno) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alumnos[a.NickUsuario] = *a
	return nil
}

func (r *InMemoryAlumnoRepo) GetByNick(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alumnos[nick]
	if !ok {
		return nil, alumnoDomain.ErrAlumnoNotFound
	}
	return &a, nil
}
