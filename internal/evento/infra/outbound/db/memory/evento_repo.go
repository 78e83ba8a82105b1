package memory

import (
	"context"
	"sort"
	"sync"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// InMemoryEventoRepo implementa EventoRepository sobre un mapa. Guarda copias
// para que los llamantes no puedan mutar el estado interno.
type InMemoryEventoRepo struct {
	eventos map[int64]eventoDomain.Evento
	nextID  int64
	mu      sync.RWMutex
}

var _ eventoDomain.EventoRepository = (*InMemoryEventoRepo)(nil)

func NewInMemoryEventoRepo() *InMemoryEventoRepo {
	return &InMemoryEventoRepo{
		eventos: make(map[int64]eventoDomain.Evento),
		nextID:  1,
	}
}

func (r *InMemoryEventoRepo) Create(ctx context.Context, e *eventoDomain.Evento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == 0 {
		e.ID = r.nextID
	}
	if _, ok := r.eventos[e.ID]; ok {
		return eventoDomain.ErrEventoAlreadyExists
	}
	if e.ID >= r.nextID {
		r.nextID = e.ID + 1
	}
	r.eventos[e.ID] = *e
	return nil
}

func (r *InMemoryEventoRepo) GetByID(ctx context.Context, id int64) (*eventoDomain.Evento, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.eventos[id]
	if !ok {
		return nil, eventoDomain.ErrEventoNotFound
	}
	return &e, nil
}

func (r *InMemoryEventoRepo) Update(ctx context.Context, e *eventoDomain.Evento) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.eventos[e.ID]; !ok {
		return eventoDomain.ErrEventoNotFound
	}
	r.eventos[e.ID] = *e
	return nil
}

func (r *InMemoryEventoRepo) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.eventos[id]; !ok {
		return eventoDomain.ErrEventoNotFound
	}
	delete(r.eventos, id)
	return nil
}

func (r *InMemoryEventoRepo) ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria, s sharedDomain.Sort) ([]*eventoDomain.Evento, error) {
	r.mu.RLock()
	conds := sharedDomain.Conditions(criteria)
	list := make([]*eventoDomain.Evento, 0, len(r.eventos))
	for _, e := range r.eventos {
		if matchesAll(e, conds) {
			e := e
			list = append(list, &e)
		}
	}
	r.mu.RUnlock()

	sortEventos(list, s)
	return list, nil
}

func matchesAll(e eventoDomain.Evento, conds []sharedDomain.Criterion) bool {
	for _, cond := range conds {
		if !matchCriterion(e, cond) {
			return false
		}
	}
	return true
}

// matchCriterion solo soporta igualdad, que es lo que generan los criterios del dominio.
func matchCriterion(e eventoDomain.Evento, cond sharedDomain.Criterion) bool {
	if cond.Op != sharedDomain.OpEq {
		return false
	}

	switch cond.Field {
	case eventoDomain.FieldID:
		id, ok := cond.Value.(int64)
		return ok && e.ID == id
	case eventoDomain.FieldTitle:
		title, ok := cond.Value.(string)
		return ok && e.Title == title
	case eventoDomain.FieldCurso:
		curso, ok := cond.Value.(string)
		return ok && e.Curso.CursoDeIngles == alumnoDomain.TipoCurso(curso)
	case eventoDomain.FieldStart:
		start, ok := cond.Value.(sharedDomain.Fecha)
		return ok && e.Start.Equal(start.Time)
	case eventoDomain.FieldEnd:
		end, ok := cond.Value.(sharedDomain.Fecha)
		return ok && e.End.Equal(end.Time)
	}
	return false
}

// sortEventos ordena por el campo pedido, con el ID como desempate.
func sortEventos(list []*eventoDomain.Evento, s sharedDomain.Sort) {
	less := func(i, j int) bool { return list[i].ID < list[j].ID }

	switch s.Field {
	case eventoDomain.FieldStart:
		less = func(i, j int) bool {
			if !list[i].Start.Equal(list[j].Start.Time) {
				return list[i].Start.Before(list[j].Start.Time)
			}
			return list[i].ID < list[j].ID
		}
	case eventoDomain.FieldTitle:
		less = func(i, j int) bool {
			if list[i].Title != list[j].Title {
				return list[i].Title < list[j].Title
			}
			return list[i].ID < list[j].ID
		}
	}

	if s.Desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.Slice(list, less)
}
