package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedUtils "github.com/davicafu/cursolab/internal/shared/infra/utils"
)

// AlumnoService resuelve alumnos por nick. Solo lectura.
type AlumnoService struct {
	repo alumnoDomain.AlumnoRepository
	log  *zap.Logger
}

func NewAlumnoService(repo alumnoDomain.AlumnoRepository, log *zap.Logger) *AlumnoService {
	return &AlumnoService{repo: repo, log: log}
}

// GetAlumno reintenta fallos de infraestructura; "no encontrado" se devuelve al momento.
func (s *AlumnoService) GetAlumno(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	var alumno *alumnoDomain.Alumno
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, isTransient, func() error {
		var err error
		alumno, err = s.repo.GetByNick(ctx, nick)
		return err
	})
	if err != nil {
		if !errors.Is(err, alumnoDomain.ErrAlumnoNotFound) {
			s.log.Error("Failed to get alumno", zap.String("nick", nick), zap.Error(err))
		}
		return nil, err
	}
	return alumno, nil
}

func isTransient(err error) bool {
	return !errors.Is(err, alumnoDomain.ErrAlumnoNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
