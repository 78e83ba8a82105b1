package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// AlumnoRepoMongoDB guarda cada alumno como un documento con su grupo embebido.
type AlumnoRepoMongoDB struct {
	coll *mongo.Collection
}

var _ alumnoDomain.AlumnoRepository = (*AlumnoRepoMongoDB)(nil)

func NewAlumnoRepoMongoDB(client *mongo.Client, dbName string) *AlumnoRepoMongoDB {
	return &AlumnoRepoMongoDB{coll: client.Database(dbName).Collection("alumnos")}
}

type mongoGrupo struct {
	Nombre string `bson:"nombre"`
	Curso  string `bson:"curso,omitempty"`
}

type mongoAlumno struct {
	Nick            string      `bson:"_id"`
	Contraseya      string      `bson:"contraseya"`
	Dni             string      `bson:"dni"`
	NombreCompleto  string      `bson:"nombreCompleto"`
	Correo          string      `bson:"correo"`
	Telefono        string      `bson:"telefono"`
	Direccion       string      `bson:"direccion"`
	FechaNacimiento *time.Time  `bson:"fechaNacimiento,omitempty"`
	FechaSolicitud  *time.Time  `bson:"fechaSolicitud,omitempty"`
	Grupo           *mongoGrupo `bson:"grupo,omitempty"`
}

func (r *AlumnoRepoMongoDB) GetByNick(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	var ma mongoAlumno
	err := r.coll.FindOne(ctx, bson.M{"_id": nick}).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, alumnoDomain.ErrAlumnoNotFound
		}
		return nil, fmt.Errorf("get alumno %q: %w", nick, err)
	}
	return fromMongoAlumno(&ma), nil
}

// Save inserta o reemplaza el documento completo.
func (r *AlumnoRepoMongoDB) Save(ctx context.Context, a *alumnoDomain.Alumno) error {
	ma := toMongoAlumno(a)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ma.Nick}, ma, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save alumno: %w", err)
	}
	return nil
}

// --- Helpers de Mapeo y Conversión ---

func toMongoAlumno(a *alumnoDomain.Alumno) *mongoAlumno {
	ma := &mongoAlumno{
		Nick: a.NickUsuario, Contraseya: a.Contraseya, Dni: a.DniUsuario,
		NombreCompleto: a.NombreCompletoUsuario, Correo: a.CorreoElectronicoUsuario,
		Telefono: a.NumTelefonoUsuario, Direccion: a.DireccionUsuario,
		FechaNacimiento: timePtr(a.FechaNacimiento), FechaSolicitud: timePtr(a.FechaSolicitud),
	}
	if a.Grupos != nil {
		ma.Grupo = &mongoGrupo{Nombre: a.Grupos.NombreGrupo}
		if c, ok := a.Curso(); ok {
			ma.Grupo.Curso = string(c.CursoDeIngles)
		}
	}
	return ma
}

func fromMongoAlumno(ma *mongoAlumno) *alumnoDomain.Alumno {
	a := &alumnoDomain.Alumno{
		NickUsuario: ma.Nick, Contraseya: ma.Contraseya, DniUsuario: ma.Dni,
		NombreCompletoUsuario: ma.NombreCompleto, CorreoElectronicoUsuario: ma.Correo,
		NumTelefonoUsuario: ma.Telefono, DireccionUsuario: ma.Direccion,
	}
	if ma.FechaNacimiento != nil {
		a.FechaNacimiento = sharedDomain.FechaOf(ma.FechaNacimiento.UTC())
	}
	if ma.FechaSolicitud != nil {
		a.FechaSolicitud = sharedDomain.FechaOf(ma.FechaSolicitud.UTC())
	}
	if ma.Grupo != nil {
		a.Grupos = &alumnoDomain.Grupo{NombreGrupo: ma.Grupo.Nombre}
		if ma.Grupo.Curso != "" {
			c := alumnoDomain.NewCurso(alumnoDomain.TipoCurso(ma.Grupo.Curso))
			a.Grupos.Cursos = &c
		}
	}
	return a
}

func timePtr(f sharedDomain.Fecha) *time.Time {
	if f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}
