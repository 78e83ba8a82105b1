package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

type AlumnoRepoSQLite struct {
	db *sql.DB
}

var _ alumnoDomain.AlumnoRepository = (*AlumnoRepoSQLite)(nil)

func NewAlumnoRepoSQLite(db *sql.DB) *AlumnoRepoSQLite {
	return &AlumnoRepoSQLite{db: db}
}

// GetByNick une el alumno con su grupo; un alumno sin grupo devuelve Grupos nil.
func (r *AlumnoRepoSQLite) GetByNick(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT a.nick, a.contraseya, a.dni, a.nombre_completo, a.correo, a.telefono, a.direccion,
		       a.fecha_nacimiento, a.fecha_solicitud, g.nombre, g.curso
		FROM alumnos a
		LEFT JOIN grupos g ON g.nombre = a.grupo
		WHERE a.nick = ?`, nick)

	var (
		a                     alumnoDomain.Alumno
		nacimiento, solicitud sql.NullString
		grupo, curso          sql.NullString
	)
	err := row.Scan(&a.NickUsuario, &a.Contraseya, &a.DniUsuario, &a.NombreCompletoUsuario,
		&a.CorreoElectronicoUsuario, &a.NumTelefonoUsuario, &a.DireccionUsuario,
		&nacimiento, &solicitud, &grupo, &curso)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, alumnoDomain.ErrAlumnoNotFound
		}
		return nil, fmt.Errorf("get alumno %q: %w", nick, err)
	}

	if a.FechaNacimiento, err = parseNullFecha(nacimiento); err != nil {
		return nil, err
	}
	if a.FechaSolicitud, err = parseNullFecha(solicitud); err != nil {
		return nil, err
	}

	if grupo.Valid {
		a.Grupos = &alumnoDomain.Grupo{NombreGrupo: grupo.String}
		if curso.Valid && curso.String != "" {
			c := alumnoDomain.NewCurso(alumnoDomain.TipoCurso(curso.String))
			a.Grupos.Cursos = &c
		}
	}
	return &a, nil
}

// Save inserta o reemplaza el alumno y su grupo.
func (r *AlumnoRepoSQLite) Save(ctx context.Context, a *alumnoDomain.Alumno) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var grupo sql.NullString
	if a.Grupos != nil {
		grupo = sql.NullString{String: a.Grupos.NombreGrupo, Valid: true}
		var curso sql.NullString
		if c, ok := a.Curso(); ok {
			curso = sql.NullString{String: string(c.CursoDeIngles), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO grupos (nombre, curso) VALUES (?, ?)
			 ON CONFLICT(nombre) DO UPDATE SET curso = excluded.curso`,
			grupo.String, curso,
		); err != nil {
			return fmt.Errorf("save grupo: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO alumnos
		 (nick, contraseya, dni, nombre_completo, correo, telefono, direccion, fecha_nacimiento, fecha_solicitud, grupo)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		a.NickUsuario, a.Contraseya, a.DniUsuario, a.NombreCompletoUsuario, a.CorreoElectronicoUsuario,
		a.NumTelefonoUsuario, a.DireccionUsuario, nullFecha(a.FechaNacimiento), nullFecha(a.FechaSolicitud), grupo,
	); err != nil {
		return fmt.Errorf("save alumno: %w", err)
	}

	return tx.Commit()
}

func nullFecha(f sharedDomain.Fecha) sql.NullString {
	if f.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: f.String(), Valid: true}
}

func parseNullFecha(s sql.NullString) (sharedDomain.Fecha, error) {
	if !s.Valid || s.String == "" {
		return sharedDomain.Fecha{}, nil
	}
	return sharedDomain.ParseFecha(s.String)
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea las tablas grupos y alumnos si no existen
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS grupos (
            nombre TEXT PRIMARY KEY,
            curso TEXT
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS alumnos (
            nick TEXT PRIMARY KEY,
            contraseya TEXT NOT NULL DEFAULT '',
            dni TEXT NOT NULL DEFAULT '',
            nombre_completo TEXT NOT NULL DEFAULT '',
            correo TEXT NOT NULL DEFAULT '',
            telefono TEXT NOT NULL DEFAULT '',
            direccion TEXT NOT NULL DEFAULT '',
            fecha_nacimiento TEXT,
            fecha_solicitud TEXT,
            grupo TEXT REFERENCES grupos(nombre)
        )
    `)
	return err
}
