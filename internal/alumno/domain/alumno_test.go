package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

func TestParseTipoCurso(t *testing.T) {
	for _, level := range TiposCurso() {
		got, err := ParseTipoCurso(string(level))
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}

	got, err := ParseTipoCurso(" b2 ")
	require.NoError(t, err)
	assert.Equal(t, B2, got)

	_, err = ParseTipoCurso("D1")
	assert.ErrorIs(t, err, ErrInvalidCurso)
}

func TestAlumno_Curso(t *testing.T) {
	a := &Alumno{NickUsuario: "JaviMartinez7"}
	_, ok := a.Curso()
	assert.False(t, ok, "sin grupo no hay curso")

	a.Grupos = &Grupo{NombreGrupo: "A1-mañana"}
	_, ok = a.Curso()
	assert.False(t, ok, "grupo sin curso")

	curso := NewCurso(A1)
	a.Grupos.Cursos = &curso
	got, ok := a.Curso()
	assert.True(t, ok)
	assert.Equal(t, A1, got.CursoDeIngles)

	var nilAlumno *Alumno
	_, ok = nilAlumno.Curso()
	assert.False(t, ok)
}

func TestAlumno_JSONHidesPassword(t *testing.T) {
	curso := NewCurso(B1)
	a := Alumno{
		NickUsuario:     "JaviMartinez7",
		Contraseya:      "secreta",
		DniUsuario:      "12345678A",
		FechaNacimiento: sharedDomain.NewFecha(1999, time.March, 2),
		Grupos:          &Grupo{NombreGrupo: "B1-tarde", Cursos: &curso},
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secreta")
	assert.Contains(t, string(data), `"cursoDeIngles":"B1"`)
	assert.Contains(t, string(data), `"fechaNacimiento":"1999-03-02"`)

	var back Alumno
	require.NoError(t, json.Unmarshal(data, &back))
	a.Contraseya = ""
	assert.Equal(t, a, back)
}
