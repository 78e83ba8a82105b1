package domain

import (
	"fmt"
	"strings"
)

// TipoCurso es el nivel MCER de un curso de inglés.
type TipoCurso string

const (
	A1 TipoCurso = "A1"
	A2 TipoCurso = "A2"
	B1 TipoCurso = "B1"
	B2 TipoCurso = "B2"
	C1 TipoCurso = "C1"
	C2 TipoCurso = "C2"
)

var tiposCurso = []TipoCurso{A1, A2, B1, B2, C1, C2}

// TiposCurso devuelve los niveles en orden ascendente.
func TiposCurso() []TipoCurso {
	out := make([]TipoCurso, len(tiposCurso))
	copy(out, tiposCurso)
	return out
}

func (t TipoCurso) IsValid() bool {
	for _, v := range tiposCurso {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTipoCurso acepta el nivel sin distinguir mayúsculas ("b2" == "B2").
func ParseTipoCurso(s string) (TipoCurso, error) {
	t := TipoCurso(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown course level %q", ErrInvalidCurso, s)
	}
	return t, nil
}

// Curso se identifica únicamente por su nivel.
type Curso struct {
	CursoDeIngles TipoCurso `json:"cursoDeIngles"`
}

func NewCurso(t TipoCurso) Curso {
	return Curso{CursoDeIngles: t}
}

func (c Curso) IsZero() bool {
	return c.CursoDeIngles == ""
}

// Grupo agrupa alumnos de un mismo curso.
type Grupo struct {
	NombreGrupo string `json:"nombreGrupo"`
	Cursos      *Curso `json:"cursos,omitempty"`
}
