package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
	sharedUtils "github.com/davicafu/cursolab/internal/shared/infra/utils"
)

// columns traduce los campos lógicos del dominio a columnas.
// "end" es palabra reservada, por eso las fechas llevan sufijo.
var columns = map[string]string{
	eventoDomain.FieldID:    "id",
	eventoDomain.FieldTitle: "title",
	eventoDomain.FieldCurso: "curso",
	eventoDomain.FieldStart: "start_date",
	eventoDomain.FieldEnd:   "end_date",
}

const selectEvento = `SELECT id, title, descripcion, tipo, curso, start_date, end_date, color FROM eventos`

type EventoRepoSQLite struct {
	db *sql.DB
}

var _ eventoDomain.EventoRepository = (*EventoRepoSQLite)(nil)

func NewEventoRepoSQLite(db *sql.DB) *EventoRepoSQLite {
	return &EventoRepoSQLite{db: db}
}

// ------------------ Métodos ------------------

func (r *EventoRepoSQLite) Create(ctx context.Context, e *eventoDomain.Evento) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO eventos (title, descripcion, tipo, curso, start_date, end_date, color) VALUES (?,?,?,?,?,?,?)`,
		e.Title, e.Descripcion, e.Tipo.Tipo, string(e.Curso.CursoDeIngles), e.Start.String(), e.End.String(), e.Color,
	)
	if err != nil {
		return fmt.Errorf("insert evento: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert evento: %w", err)
	}
	e.ID = id
	return nil
}

func (r *EventoRepoSQLite) Update(ctx context.Context, e *eventoDomain.Evento) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE eventos SET title=?, descripcion=?, tipo=?, curso=?, start_date=?, end_date=?, color=? WHERE id=?`,
		e.Title, e.Descripcion, e.Tipo.Tipo, string(e.Curso.CursoDeIngles), e.Start.String(), e.End.String(), e.Color, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update evento %d: %w", e.ID, err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

func (r *EventoRepoSQLite) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM eventos WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete evento %d: %w", id, err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

func (r *EventoRepoSQLite) GetByID(ctx context.Context, id int64) (*eventoDomain.Evento, error) {
	row := r.db.QueryRowContext(ctx, selectEvento+` WHERE id = ?`, id)

	e, err := scanEvento(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventoDomain.ErrEventoNotFound
		}
		return nil, err
	}
	return e, nil
}

// applyCriteria traduce criterios a SQL con placeholders "?".
func applyCriteria(criteria sharedDomain.Criteria) (string, []interface{}, error) {
	conds := sharedDomain.Conditions(criteria)
	if len(conds) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(conds))
	args := make([]interface{}, 0, len(conds))
	for _, c := range conds {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported criteria field %q", c.Field)
		}
		op := c.Op
		if op == sharedDomain.OpILike {
			op = sharedDomain.OpLike // LIKE ya es case-insensitive para ASCII en SQLite
		}
		clauses = append(clauses, fmt.Sprintf("%s %s ?", col, op))
		args = append(args, toArg(c.Value))
	}
	return strings.Join(clauses, " AND "), args, nil
}

// toArg guarda las fechas como TEXT "2006-01-02" para que la comparación sea lexicográfica.
func toArg(v interface{}) interface{} {
	switch val := v.(type) {
	case sharedDomain.Fecha:
		return val.String()
	case alumnoDomain.TipoCurso:
		return string(val)
	}
	return v
}

func (r *EventoRepoSQLite) ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria, sort sharedDomain.Sort) ([]*eventoDomain.Evento, error) {
	whereSQL, args, err := applyCriteria(criteria)
	if err != nil {
		return nil, err
	}

	query := selectEvento
	if whereSQL != "" {
		query += " WHERE " + whereSQL
	}

	orderCol, ok := columns[sort.Field]
	if !ok {
		orderCol = "id"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id", orderCol, sharedUtils.Ternary(sort.Desc, "DESC", "ASC"))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list eventos: %w", err)
	}
	defer rows.Close()

	eventos := []*eventoDomain.Evento{}
	for rows.Next() {
		e, err := scanEvento(rows)
		if err != nil {
			return nil, err
		}
		eventos = append(eventos, e)
	}
	return eventos, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvento(s scanner) (*eventoDomain.Evento, error) {
	var (
		e          eventoDomain.Evento
		desc       sql.NullString
		curso      string
		start, end string
	)
	if err := s.Scan(&e.ID, &e.Title, &desc, &e.Tipo.Tipo, &curso, &start, &end, &e.Color); err != nil {
		return nil, err
	}
	e.Descripcion = desc.String
	e.Curso = alumnoDomain.NewCurso(alumnoDomain.TipoCurso(curso))

	var err error
	if e.Start, err = parseStoredFecha(start); err != nil {
		return nil, fmt.Errorf("invalid start_date in DB for evento %d: %w", e.ID, err)
	}
	if e.End, err = parseStoredFecha(end); err != nil {
		return nil, fmt.Errorf("invalid end_date in DB for evento %d: %w", e.ID, err)
	}
	return &e, nil
}

func parseStoredFecha(s string) (sharedDomain.Fecha, error) {
	if s == "" {
		return sharedDomain.Fecha{}, nil
	}
	return sharedDomain.ParseFecha(s)
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea la tabla eventos si no existe
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS eventos (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            descripcion TEXT,
            tipo TEXT NOT NULL DEFAULT '',
            curso TEXT NOT NULL DEFAULT '',
            start_date TEXT NOT NULL,
            end_date TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT ''
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_eventos_curso ON eventos (curso)`)
	return err
}
