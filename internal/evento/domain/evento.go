package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// DefaultTipo es el tipo que se asigna a los eventos creados por un profesor.
const DefaultTipo = "internal"

// TipoEvento etiqueta el origen del evento.
type TipoEvento struct {
	Tipo string `json:"tipo"`
}

// Evento es una entrada del calendario de un curso.
type Evento struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title" validate:"required,max=255"`
	Descripcion string             `json:"descripcion" validate:"max=2000"`
	Tipo        TipoEvento         `json:"tipo"`
	Curso       alumnoDomain.Curso `json:"curso"`
	Start       sharedDomain.Fecha `json:"start"`
	End         sharedDomain.Fecha `json:"end"`
	Color       string             `json:"color" validate:"max=30"`
}

var validate = validator.New()

// Validate comprueba el payload de alta. No exige end >= start.
func (e *Evento) Validate() error {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidEvento, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidEvento, err)
	}
	if e.Start.IsZero() {
		return fmt.Errorf("%w: Start(required)", ErrInvalidEvento)
	}
	if e.End.IsZero() {
		return fmt.Errorf("%w: End(required)", ErrInvalidEvento)
	}
	if !e.Curso.IsZero() && !e.Curso.CursoDeIngles.IsValid() {
		return fmt.Errorf("%w: Curso(%s)", ErrInvalidEvento, e.Curso.CursoDeIngles)
	}
	return nil
}
