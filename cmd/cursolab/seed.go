package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoApp "github.com/davicafu/cursolab/internal/evento/application"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// seedDemo deja un alumno de A1 y un evento de su curso. Es idempotente.
func seedDemo(ctx context.Context, alumnos alumnoDomain.AlumnoWriter, eventos *eventoApp.EventoService, log *zap.Logger) error {
	curso := alumnoDomain.NewCurso(alumnoDomain.A1)
	alumno := &alumnoDomain.Alumno{
		NickUsuario:              "JaviMartinez7",
		Contraseya:               "JaviMartinez7",
		DniUsuario:               "12345678A",
		NombreCompletoUsuario:    "Javier Martínez",
		CorreoElectronicoUsuario: "javi@example.com",
		NumTelefonoUsuario:       "600000000",
		DireccionUsuario:         "Calle Mayor 1, Sevilla",
		FechaNacimiento:          sharedDomain.NewFecha(1999, time.March, 2),
		FechaSolicitud:           sharedDomain.NewFecha(2020, time.September, 1),
		Grupos:                   &alumnoDomain.Grupo{NombreGrupo: "A1-mañana", Cursos: &curso},
	}
	if err := alumnos.Save(ctx, alumno); err != nil {
		return err
	}

	evento := &eventoDomain.Evento{
		Title:       "Examen oral",
		Descripcion: "Examen oral de la unidad 3",
		Curso:       curso,
		Start:       sharedDomain.NewFecha(2021, time.January, 19),
		End:         sharedDomain.NewFecha(2021, time.January, 20),
		Color:       "#3788d8",
	}
	exists, err := eventos.ExistEvent(ctx, evento)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := eventos.AssignTypeAndSave(ctx, evento); err != nil {
			return err
		}
	}

	log.Info("🌱 Datos de ejemplo cargados", zap.String("alumno", alumno.NickUsuario))
	return nil
}
