package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
	sharedUtils "github.com/davicafu/cursolab/internal/shared/infra/utils"
)

var columns = map[string]string{
	eventoDomain.FieldID:    "id",
	eventoDomain.FieldTitle: "title",
	eventoDomain.FieldCurso: "curso",
	eventoDomain.FieldStart: "start_date",
	eventoDomain.FieldEnd:   "end_date",
}

const selectEvento = `SELECT id, title, descripcion, tipo, curso, start_date, end_date, color FROM eventos`

// EventoRepoPostgres implementa EventoRepository para PostgreSQL.
type EventoRepoPostgres struct {
	db *sql.DB
}

var _ eventoDomain.EventoRepository = (*EventoRepoPostgres)(nil)

func NewEventoRepoPostgres(db *sql.DB) *EventoRepoPostgres {
	return &EventoRepoPostgres{db: db}
}

// ------------------ CRUD ------------------

func (r *EventoRepoPostgres) Create(ctx context.Context, e *eventoDomain.Evento) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO eventos (title, descripcion, tipo, curso, start_date, end_date, color)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.Title, e.Descripcion, e.Tipo.Tipo, string(e.Curso.CursoDeIngles), e.Start.Time, e.End.Time, e.Color,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert evento: %w", err)
	}
	return nil
}

func (r *EventoRepoPostgres) Update(ctx context.Context, e *eventoDomain.Evento) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE eventos SET title=$1, descripcion=$2, tipo=$3, curso=$4, start_date=$5, end_date=$6, color=$7 WHERE id=$8`,
		e.Title, e.Descripcion, e.Tipo.Tipo, string(e.Curso.CursoDeIngles), e.Start.Time, e.End.Time, e.Color, e.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

func (r *EventoRepoPostgres) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM eventos WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

// ------------------ Lectura ------------------

func (r *EventoRepoPostgres) GetByID(ctx context.Context, id int64) (*eventoDomain.Evento, error) {
	e, err := scanEvento(r.db.QueryRowContext(ctx, selectEvento+` WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eventoDomain.ErrEventoNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}
	return e, nil
}

// applyCriteria traduce criterios a SQL para Postgres ($1, $2...).
func applyCriteria(criteria sharedDomain.Criteria) (string, []interface{}, error) {
	conds := sharedDomain.Conditions(criteria)
	if len(conds) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(conds))
	args := make([]interface{}, 0, len(conds))
	for i, c := range conds {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported criteria field %q", c.Field)
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", col, c.Op, i+1))
		args = append(args, toArg(c.Value))
	}
	return strings.Join(clauses, " AND "), args, nil
}

func toArg(v interface{}) interface{} {
	switch val := v.(type) {
	case sharedDomain.Fecha:
		return val.Time
	case alumnoDomain.TipoCurso:
		return string(val)
	}
	return v
}

func (r *EventoRepoPostgres) ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria, sort sharedDomain.Sort) ([]*eventoDomain.Evento, error) {
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
		return nil, err
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
		start, end time.Time
	)
	if err := s.Scan(&e.ID, &e.Title, &desc, &e.Tipo.Tipo, &curso, &start, &end, &e.Color); err != nil {
		return nil, err
	}
	e.Descripcion = desc.String
	e.Curso = alumnoDomain.NewCurso(alumnoDomain.TipoCurso(curso))
	e.Start = sharedDomain.FechaOf(start)
	e.End = sharedDomain.FechaOf(end)
	return &e, nil
}

// ------------------ Inicialización del Esquema ------------------

// InitPostgresEventoSchema crea la tabla 'eventos' si no existe.
func InitPostgresEventoSchema(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS eventos (
        id BIGSERIAL PRIMARY KEY,
        title TEXT NOT NULL,
        descripcion TEXT,
        tipo TEXT NOT NULL DEFAULT '',
        curso TEXT NOT NULL DEFAULT '',
        start_date DATE NOT NULL,
        end_date DATE NOT NULL,
        color TEXT NOT NULL DEFAULT ''
    )`)
	if err != nil {
		return fmt.Errorf("failed to create eventos table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_eventos_curso ON eventos (curso)`)
	return err
}
