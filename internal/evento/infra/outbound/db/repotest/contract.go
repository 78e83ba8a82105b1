// Package repotest contiene las comprobaciones que debe pasar cualquier
// implementación de EventoRepository.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

func NewEvento(title string, nivel alumnoDomain.TipoCurso, day int) *eventoDomain.Evento {
	return &eventoDomain.Evento{
		Title:       title,
		Descripcion: "Description",
		Tipo:        eventoDomain.TipoEvento{Tipo: eventoDomain.DefaultTipo},
		Curso:       alumnoDomain.NewCurso(nivel),
		Start:       sharedDomain.NewFecha(2021, time.January, day),
		End:         sharedDomain.NewFecha(2021, time.January, day+1),
		Color:       "#3788d8",
	}
}

// RunEventoRepository ejecuta el contrato completo. newRepo debe devolver un repositorio vacío.
func RunEventoRepository(t *testing.T, newRepo func(t *testing.T) eventoDomain.EventoRepository) {
	ctx := context.Background()

	t.Run("create asigna id y get lo recupera", func(t *testing.T) {
		repo := newRepo(t)
		e := NewEvento("Examen", alumnoDomain.A1, 19)

		require.NoError(t, repo.Create(ctx, e))
		assert.NotZero(t, e.ID)

		got, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e, got)
	})

	t.Run("get inexistente", func(t *testing.T) {
		_, err := newRepo(t).GetByID(ctx, 999)
		assert.ErrorIs(t, err, eventoDomain.ErrEventoNotFound)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		e := NewEvento("Examen", alumnoDomain.A1, 19)
		require.NoError(t, repo.Create(ctx, e))

		e.Start = sharedDomain.NewFecha(2021, time.February, 1)
		e.End = sharedDomain.NewFecha(2021, time.January, 31)
		require.NoError(t, repo.Update(ctx, e))

		got, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.Start, got.Start)
		assert.Equal(t, e.End, got.End)

		missing := NewEvento("x", alumnoDomain.A1, 1)
		missing.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, missing), eventoDomain.ErrEventoNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		e := NewEvento("Examen", alumnoDomain.A1, 19)
		require.NoError(t, repo.Create(ctx, e))

		require.NoError(t, repo.DeleteByID(ctx, e.ID))
		_, err := repo.GetByID(ctx, e.ID)
		assert.ErrorIs(t, err, eventoDomain.ErrEventoNotFound)

		assert.ErrorIs(t, repo.DeleteByID(ctx, e.ID), eventoDomain.ErrEventoNotFound)
	})

	t.Run("list por criterios y orden", func(t *testing.T) {
		repo := newRepo(t)
		b := NewEvento("Oral", alumnoDomain.B1, 20)
		a1Late := NewEvento("Final", alumnoDomain.A1, 25)
		a1Early := NewEvento("Examen", alumnoDomain.A1, 19)
		for _, e := range []*eventoDomain.Evento{b, a1Late, a1Early} {
			require.NoError(t, repo.Create(ctx, e))
		}

		all, err := repo.ListByCriteria(ctx, nil, eventoDomain.DefaultSort)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{a1Early.ID, b.ID, a1Late.ID}, ids(all))

		byCurso, err := repo.ListByCriteria(ctx, eventoDomain.CursoCriteria{Curso: alumnoDomain.A1}, eventoDomain.DefaultSort)
		require.NoError(t, err)
		assert.Equal(t, []int64{a1Early.ID, a1Late.ID}, ids(byCurso))

		desc, err := repo.ListByCriteria(ctx, eventoDomain.CursoCriteria{Curso: alumnoDomain.A1},
			sharedDomain.Sort{Field: eventoDomain.FieldStart, Desc: true})
		require.NoError(t, err)
		assert.Equal(t, []int64{a1Late.ID, a1Early.ID}, ids(desc))

		dup, err := repo.ListByCriteria(ctx, eventoDomain.SameEventoCriteria(NewEvento("Examen", alumnoDomain.A1, 19)), eventoDomain.DefaultSort)
		require.NoError(t, err)
		assert.Equal(t, []int64{a1Early.ID}, ids(dup))

		none, err := repo.ListByCriteria(ctx, eventoDomain.CursoCriteria{Curso: alumnoDomain.C2}, eventoDomain.DefaultSort)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func ids(list []*eventoDomain.Evento) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}
