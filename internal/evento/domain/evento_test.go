package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

func newEvento() *Evento {
	return &Evento{
		ID:          1,
		Title:       "Examen oral",
		Descripcion: "Description",
		Tipo:        TipoEvento{Tipo: DefaultTipo},
		Curso:       alumnoDomain.NewCurso(alumnoDomain.A1),
		Start:       sharedDomain.NewFecha(2021, time.January, 19),
		End:         sharedDomain.NewFecha(2021, time.January, 20),
		Color:       "#3788d8",
	}
}

func TestEvento_JSONWireNames(t *testing.T) {
	e := newEvento()
	data, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1,
		"title": "Examen oral",
		"descripcion": "Description",
		"tipo": {"tipo": "internal"},
		"curso": {"cursoDeIngles": "A1"},
		"start": "2021-01-19",
		"end": "2021-01-20",
		"color": "#3788d8"
	}`, string(data))

	var back Evento
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *e, back)
}

func TestEvento_UnmarshalGsonDates(t *testing.T) {
	body := `{"title":"t","start":{"year":2021,"month":1,"day":19},"end":{"year":2021,"month":1,"day":20}}`
	var e Evento
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, sharedDomain.NewFecha(2021, time.January, 19), e.Start)
	assert.Equal(t, sharedDomain.NewFecha(2021, time.January, 20), e.End)
}

func TestEvento_Validate(t *testing.T) {
	assert.NoError(t, newEvento().Validate())

	noTitle := newEvento()
	noTitle.Title = ""
	assert.ErrorIs(t, noTitle.Validate(), ErrInvalidEvento)

	noStart := newEvento()
	noStart.Start = sharedDomain.Fecha{}
	assert.ErrorIs(t, noStart.Validate(), ErrInvalidEvento)

	badCurso := newEvento()
	badCurso.Curso = alumnoDomain.NewCurso("Z9")
	assert.ErrorIs(t, badCurso.Validate(), ErrInvalidEvento)

	// end anterior a start se acepta
	reversed := newEvento()
	reversed.Start, reversed.End = reversed.End, reversed.Start
	assert.NoError(t, reversed.Validate())
}

func TestSameEventoCriteria(t *testing.T) {
	conds := SameEventoCriteria(newEvento()).ToConditions()
	require.Len(t, conds, 3)
	assert.Equal(t, FieldTitle, conds[0].Field)
	assert.Equal(t, "A1", conds[1].Value)
	assert.Equal(t, FieldStart, conds[2].Field)
}

func TestCacheKeyByID(t *testing.T) {
	assert.Equal(t, "evento:id:42", CacheKeyByID(42))
}
