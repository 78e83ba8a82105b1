package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/davicafu/cursolab/internal/access"
	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// ErrInvalidParam envuelve cualquier parámetro de ruta o cuerpo mal formado.
var ErrInvalidParam = errors.New("invalid parameter")

// ---------- Puertos que consume el dispatcher ----------

// EventoUseCases es lo que el dispatcher necesita del servicio de eventos.
type EventoUseCases interface {
	GetAll(ctx context.Context) ([]*eventoDomain.Evento, error)
	GetByCourse(ctx context.Context, curso alumnoDomain.Curso) ([]*eventoDomain.Evento, error)
	// UpdateDateEvent puede devolver (nil, nil) si el evento no existe.
	UpdateDateEvent(ctx context.Context, id int64, start, end sharedDomain.Fecha) (*eventoDomain.Evento, error)
	// GetDescription devuelve nil si no hay descripción.
	GetDescription(ctx context.Context, id int64) (*string, error)
	DeleteEvento(ctx context.Context, id int64) error
	ExistEvent(ctx context.Context, e *eventoDomain.Evento) (bool, error)
	AssignTypeAndSave(ctx context.Context, e *eventoDomain.Evento) (*eventoDomain.Evento, error)
}

// AlumnoLookup resuelve un alumno por nick.
type AlumnoLookup interface {
	GetAlumno(ctx context.Context, nick string) (*alumnoDomain.Alumno, error)
}

// Dispatcher aplica la política de roles y después delega en los servicios.
// No guarda estado mutable; es seguro para uso concurrente.
type Dispatcher struct {
	eventos EventoUseCases
	alumnos AlumnoLookup
	log     *zap.Logger
}

func NewDispatcher(eventos EventoUseCases, alumnos AlumnoLookup, log *zap.Logger) *Dispatcher {
	return &Dispatcher{eventos: eventos, alumnos: alumnos, log: log}
}

// authorize se llama siempre antes de parsear o tocar un servicio.
func (d *Dispatcher) authorize(id access.Identity, action access.Action) error {
	if err := access.Authorize(id, action); err != nil {
		d.log.Info("🚫 Acceso denegado",
			zap.String("action", string(action)),
			zap.String("role", string(id.Role)),
			zap.String("subject", id.Subject))
		return err
	}
	return nil
}

// ListAll devuelve todos los eventos. Nunca devuelve un slice nil sin error.
func (d *Dispatcher) ListAll(ctx context.Context, id access.Identity) ([]*eventoDomain.Evento, error) {
	if err := d.authorize(id, access.ActionListAll); err != nil {
		return nil, err
	}

	eventos, err := d.eventos.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(eventos), nil
}

// ListByCourse devuelve los eventos del curso del grupo del alumno.
// Un alumno inexistente es ErrAlumnoNotFound; un alumno sin curso, lista vacía.
func (d *Dispatcher) ListByCourse(ctx context.Context, id access.Identity, nick string) ([]*eventoDomain.Evento, error) {
	if err := d.authorize(id, access.ActionListByCourse); err != nil {
		return nil, err
	}

	nick = strings.TrimSpace(nick)
	if nick == "" {
		return nil, fmt.Errorf("%w: empty nick", ErrInvalidParam)
	}

	alumno, err := d.alumnos.GetAlumno(ctx, nick)
	if err != nil {
		return nil, err
	}
	if alumno == nil {
		return nil, alumnoDomain.ErrAlumnoNotFound
	}

	curso, ok := alumno.Curso()
	if !ok {
		return []*eventoDomain.Evento{}, nil
	}

	eventos, err := d.eventos.GetByCourse(ctx, curso)
	if err != nil {
		return nil, err
	}
	return nonNil(eventos), nil
}

// UpdateDates cambia las fechas de un evento. No valida end >= start.
func (d *Dispatcher) UpdateDates(ctx context.Context, id access.Identity, rawID, rawStart, rawEnd string) (*eventoDomain.Evento, error) {
	if err := d.authorize(id, access.ActionUpdateDates); err != nil {
		return nil, err
	}

	eventoID, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	start, err := sharedDomain.ParseFecha(rawStart)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidParam, err)
	}
	end, err := sharedDomain.ParseFecha(rawEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidParam, err)
	}

	evento, err := d.eventos.UpdateDateEvent(ctx, eventoID, start, end)
	if err != nil {
		return nil, err
	}
	if evento == nil {
		return nil, eventoDomain.ErrEventoNotFound
	}
	return evento, nil
}

// Description devuelve la descripción del evento; ausente es ErrEventoNotFound.
func (d *Dispatcher) Description(ctx context.Context, id access.Identity, rawID string) (string, error) {
	if err := d.authorize(id, access.ActionDescription); err != nil {
		return "", err
	}

	eventoID, err := parseID(rawID)
	if err != nil {
		return "", err
	}

	desc, err := d.eventos.GetDescription(ctx, eventoID)
	if err != nil {
		return "", err
	}
	if desc == nil {
		return "", eventoDomain.ErrEventoNotFound
	}
	return *desc, nil
}

// Delete delega exactamente una vez en el servicio.
func (d *Dispatcher) Delete(ctx context.Context, id access.Identity, rawID string) error {
	if err := d.authorize(id, access.ActionDelete); err != nil {
		return err
	}

	eventoID, err := parseID(rawID)
	if err != nil {
		return err
	}
	return d.eventos.DeleteEvento(ctx, eventoID)
}

// Create da de alta un evento en el curso indicado por la ruta, que
// prevalece sobre el del cuerpo. Un duplicado no llega a guardarse.
func (d *Dispatcher) Create(ctx context.Context, id access.Identity, rawLevel string, body []byte) (*eventoDomain.Evento, error) {
	if err := d.authorize(id, access.ActionCreate); err != nil {
		return nil, err
	}

	level, err := alumnoDomain.ParseTipoCurso(rawLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	var evento eventoDomain.Evento
	if err := json.Unmarshal(body, &evento); err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrInvalidParam, err)
	}
	evento.Curso = alumnoDomain.NewCurso(level)

	if err := evento.Validate(); err != nil {
		return nil, err
	}

	exists, err := d.eventos.ExistEvent(ctx, &evento)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q on %s", eventoDomain.ErrEventoAlreadyExists, evento.Title, evento.Start)
	}

	saved, err := d.eventos.AssignTypeAndSave(ctx, &evento)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = &evento
	}
	return saved, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidParam, raw)
	}
	return id, nil
}

func nonNil(eventos []*eventoDomain.Evento) []*eventoDomain.Evento {
	if eventos == nil {
		return []*eventoDomain.Evento{}
	}
	return eventos
}
