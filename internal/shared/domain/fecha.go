package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// FechaLayout es el formato de fecha en el cable.
const FechaLayout = "2006-01-02"

// jsDateLayout es la salida de Date.prototype.toString() sin el nombre de zona
// entre paréntesis, p. ej. "Thu Jan 07 2021 00:00:00 GMT+0100".
const jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

var ErrInvalidFecha = errors.New("invalid date")

// Fecha es un día del calendario, sin hora ni zona. Siempre se normaliza
// a medianoche UTC para que dos fechas iguales sean comparables con ==.
// El valor cero significa "sin fecha": se escribe como null en JSON y como
// cadena vacía en String, así que 0001-01-01 no es representable.
type Fecha struct {
	time.Time
}

func NewFecha(year int, month time.Month, day int) Fecha {
	return Fecha{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FechaOf toma el día del calendario de t en su propia zona.
func FechaOf(t time.Time) Fecha {
	y, m, d := t.Date()
	return NewFecha(y, m, d)
}

// ParseFecha acepta "2006-01-02", RFC3339 y el formato de Date.toString()
// de JavaScript (con o sin el sufijo "(nombre de zona)").
func ParseFecha(s string) (Fecha, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Fecha{}, fmt.Errorf("%w: empty", ErrInvalidFecha)
	}

	if t, err := time.Parse(FechaLayout, s); err == nil {
		return FechaOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FechaOf(t), nil
	}

	js := s
	if i := strings.Index(js, " ("); i >= 0 {
		js = js[:i]
	}
	if t, err := time.Parse(jsDateLayout, js); err == nil {
		return FechaOf(t), nil
	}

	return Fecha{}, fmt.Errorf("%w: %q", ErrInvalidFecha, s)
}

func (f Fecha) String() string {
	if f.IsZero() {
		return ""
	}
	return f.Format(FechaLayout)
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Format(FechaLayout))
}

// gsonLocalDate es la forma en que Gson serializa un LocalDate de Java.
type gsonLocalDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = Fecha{}
		return nil
	}

	if len(b) > 0 && b[0] == '{' {
		var g gsonLocalDate
		if err := json.Unmarshal(b, &g); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFecha, err)
		}
		if g.Month < 1 || g.Month > 12 || g.Day < 1 || g.Day > 31 {
			return fmt.Errorf("%w: %s", ErrInvalidFecha, string(b))
		}
		parsed := NewFecha(g.Year, time.Month(g.Month), g.Day)
		// time.Date normaliza días imposibles (30 de febrero pasa a marzo)
		if parsed.Year() != g.Year || int(parsed.Month()) != g.Month || parsed.Day() != g.Day {
			return fmt.Errorf("%w: %s", ErrInvalidFecha, string(b))
		}
		*f = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFecha, err)
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
