package domain

import (
	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// Columnas lógicas que entienden los adaptadores.
const (
	FieldID    = "id"
	FieldTitle = "title"
	FieldCurso = "curso"
	FieldStart = "start"
	FieldEnd   = "end"
)

// Filtrado por ID exacto
type IDCriteria struct {
	ID int64
}

func (c IDCriteria) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: FieldID, Op: sharedDomain.OpEq, Value: c.ID}}
}

// Filtrado por nivel de curso
type CursoCriteria struct {
	Curso alumnoDomain.TipoCurso
}

func (c CursoCriteria) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: FieldCurso, Op: sharedDomain.OpEq, Value: string(c.Curso)}}
}

// Filtrado por título exacto
type TitleCriteria struct {
	Title string
}

func (c TitleCriteria) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: FieldTitle, Op: sharedDomain.OpEq, Value: c.Title}}
}

// Filtrado por día de inicio exacto
type StartCriteria struct {
	Start sharedDomain.Fecha
}

func (c StartCriteria) ToConditions() []sharedDomain.Criterion {
	return []sharedDomain.Criterion{{Field: FieldStart, Op: sharedDomain.OpEq, Value: c.Start}}
}

// SameEventoCriteria identifica un evento duplicado: mismo título, curso y día de inicio.
func SameEventoCriteria(e *Evento) sharedDomain.Criteria {
	return sharedDomain.And(
		TitleCriteria{Title: e.Title},
		CursoCriteria{Curso: e.Curso.CursoDeIngles},
		StartCriteria{Start: e.Start},
	)
}
