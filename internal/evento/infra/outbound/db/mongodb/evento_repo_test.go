package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

func TestCriteriaToMongoFilter(t *testing.T) {
	start := sharedDomain.NewFecha(2021, time.January, 19)
	filter, err := criteriaToMongoFilter(sharedDomain.And(
		eventoDomain.CursoCriteria{Curso: alumnoDomain.A1},
		eventoDomain.StartCriteria{Start: start},
	))
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "curso", Value: bson.M{"$eq": "A1"}},
		{Key: "start", Value: bson.M{"$eq": start.Time}},
	}, filter)
}

func TestCriteriaToMongoFilter_Empty(t *testing.T) {
	filter, err := criteriaToMongoFilter(nil)
	require.NoError(t, err)
	assert.Empty(t, filter)
}

func TestCriteriaToMongoFilter_UnsupportedOp(t *testing.T) {
	_, err := criteriaToMongoFilter(likeTitle{})
	assert.Error(t, err)
}

type likeTitle struct{}

func (likeTitle) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: eventoDomain.FieldTitle, Op: sharedDomain.OpILike, Value: "%x%"}}
}

func TestMongoEventoMapping(t *testing.T) {
	e := &eventoDomain.Evento{
		ID: 7, Title: "Examen", Descripcion: "d",
		Tipo:  eventoDomain.TipoEvento{Tipo: eventoDomain.DefaultTipo},
		Curso: alumnoDomain.NewCurso(alumnoDomain.B2),
		Start: sharedDomain.NewFecha(2021, time.January, 19),
		End:   sharedDomain.NewFecha(2021, time.January, 20),
		Color: "red",
	}
	assert.Equal(t, e, fromMongoEvento(toMongoEvento(e)))
}
