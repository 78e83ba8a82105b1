package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
	sharedEvents "github.com/davicafu/cursolab/internal/shared/domain/events"
	sharedBus "github.com/davicafu/cursolab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/cursolab/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/cursolab/internal/shared/infra/utils"
)

// EventoService define los casos de uso relacionados con Evento.
// Incorpora repositorio, caché, publicador y logger.
type EventoService struct {
	repo    eventoDomain.EventoRepository
	cache   sharedCache.Cache
	ttlSecs int
	events  sharedBus.EventPublisher
	log     *zap.Logger

	// deletes cuenta los borrados confirmados. Una lectura que se cruza con
	// uno no repuebla la caché. mu ordena la escritura y la invalidación.
	mu      sync.Mutex
	deletes uint64
}

var _ EventoUseCases = (*EventoService)(nil)

// NewEventoService es el constructor. cache y events pueden ser nil.
// Con varias instancias, una entrada obsoleta puede vivir hasta cacheTTL.
func NewEventoService(repo eventoDomain.EventoRepository, cache sharedCache.Cache, cacheTTL time.Duration, events sharedBus.EventPublisher, log *zap.Logger) *EventoService {
	return &EventoService{
		repo:    repo,
		cache:   cache,
		ttlSecs: int(cacheTTL / time.Second),
		events:  events,
		log:     log,
	}
}

// GetAll devuelve todos los eventos ordenados por fecha de inicio.
func (s *EventoService) GetAll(ctx context.Context) ([]*eventoDomain.Evento, error) {
	return s.repo.ListByCriteria(ctx, nil, eventoDomain.DefaultSort)
}

// GetByCourse devuelve los eventos de un curso.
func (s *EventoService) GetByCourse(ctx context.Context, curso alumnoDomain.Curso) ([]*eventoDomain.Evento, error) {
	return s.repo.ListByCriteria(ctx, eventoDomain.CursoCriteria{Curso: curso.CursoDeIngles}, eventoDomain.DefaultSort)
}

// GetEvento obtiene un evento (primero intenta desde cache).
func (s *EventoService) GetEvento(ctx context.Context, id int64) (*eventoDomain.Evento, error) {
	// 1. Intentar cache
	if s.cache != nil {
		var e eventoDomain.Evento
		if ok, _ := s.cache.Get(ctx, eventoDomain.CacheKeyByID(id), &e); ok {
			return &e, nil
		}
	}

	// 2. Ir al repo con reintentos
	deletesBefore := s.deleteCount()
	var evento *eventoDomain.Evento
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, isTransient, func() error {
		var err error
		evento, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Poblar cache, salvo que un borrado se haya cruzado con la lectura
	s.mu.Lock()
	if s.deletes == deletesBefore {
		sharedCache.BestEffortSet(ctx, s.cache, eventoDomain.CacheKeyByID(id), evento, s.ttlSecs, s.log)
	}
	s.mu.Unlock()
	return evento, nil
}

// UpdateDateEvent cambia las fechas de un evento. No comprueba que end >= start.
func (s *EventoService) UpdateDateEvent(ctx context.Context, id int64, start, end sharedDomain.Fecha) (*eventoDomain.Evento, error) {
	evento, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evento.Start = start
	evento.End = end
	if err := s.repo.Update(ctx, evento); err != nil {
		s.log.Error("Failed to update evento", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	sharedCache.BestEffortSet(ctx, s.cache, eventoDomain.CacheKeyByID(id), evento, s.ttlSecs, s.log)
	s.publish(ctx, eventoDomain.EventoUpdated, id, evento)
	return evento, nil
}

// GetDescription devuelve nil si el evento no existe.
func (s *EventoService) GetDescription(ctx context.Context, id int64) (*string, error) {
	evento, err := s.GetEvento(ctx, id)
	if err != nil {
		if errors.Is(err, eventoDomain.ErrEventoNotFound) {
			return nil, nil
		}
		return nil, err
	}
	desc := evento.Descripcion
	return &desc, nil
}

func (s *EventoService) DeleteEvento(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.deletes++
	sharedCache.BestEffortDelete(ctx, s.cache, eventoDomain.CacheKeyByID(id), s.log)
	s.mu.Unlock()
	s.publish(ctx, eventoDomain.EventoDeleted, id, eventoDomain.EventoDeletedPayload{ID: id})
	return nil
}

// ExistEvent indica si ya hay un evento con el mismo título, curso y día de inicio.
func (s *EventoService) ExistEvent(ctx context.Context, e *eventoDomain.Evento) (bool, error) {
	found, err := s.repo.ListByCriteria(ctx, eventoDomain.SameEventoCriteria(e), eventoDomain.DefaultSort)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// AssignTypeAndSave marca el evento como interno y lo persiste.
func (s *EventoService) AssignTypeAndSave(ctx context.Context, e *eventoDomain.Evento) (*eventoDomain.Evento, error) {
	e.ID = 0
	e.Tipo = eventoDomain.TipoEvento{Tipo: eventoDomain.DefaultTipo}

	if err := s.repo.Create(ctx, e); err != nil {
		s.log.Error("Failed to create evento", zap.Error(err))
		return nil, err
	}

	sharedCache.BestEffortSet(ctx, s.cache, eventoDomain.CacheKeyByID(e.ID), e, s.ttlSecs, s.log)
	s.publish(ctx, eventoDomain.EventoCreated, e.ID, e)
	return e, nil
}

// publish no propaga errores: la mutación ya está confirmada en el repositorio.
func (s *EventoService) publish(ctx context.Context, eventType string, id int64, payload interface{}) {
	if s.events == nil {
		return
	}

	evt, err := sharedEvents.NewIntegrationEvent(eventType, strconv.FormatInt(id, 10), payload)
	if err != nil {
		s.log.Warn("⚠️ Could not build integration event", zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("⚠️ Event publication failed",
			zap.String("type", eventType),
			zap.Int64("id", id),
			zap.Error(err))
	}
}

func (s *EventoService) deleteCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

func isTransient(err error) bool {
	return !errors.Is(err, eventoDomain.ErrEventoNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
