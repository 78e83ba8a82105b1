package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

func TestMongoAlumnoMapping(t *testing.T) {
	curso := alumnoDomain.NewCurso(alumnoDomain.C1)
	a := &alumnoDomain.Alumno{
		NickUsuario:     "JaviMartinez7",
		Contraseya:      "1234",
		DniUsuario:      "12345678A",
		FechaNacimiento: sharedDomain.NewFecha(1999, time.March, 2),
		Grupos:          &alumnoDomain.Grupo{NombreGrupo: "C1-tarde", Cursos: &curso},
	}
	assert.Equal(t, a, fromMongoAlumno(toMongoAlumno(a)))

	sinGrupo := &alumnoDomain.Alumno{NickUsuario: "nuevo"}
	ma := toMongoAlumno(sinGrupo)
	assert.Nil(t, ma.Grupo)
	assert.Nil(t, ma.FechaNacimiento)
	assert.Equal(t, sinGrupo, fromMongoAlumno(ma))
}
