package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// AlumnoRepoPostgres implementa AlumnoRepository para PostgreSQL.
type AlumnoRepoPostgres struct {
	db *sql.DB
}

var _ alumnoDomain.AlumnoRepository = (*AlumnoRepoPostgres)(nil)

func NewAlumnoRepoPostgres(db *sql.DB) *AlumnoRepoPostgres {
	return &AlumnoRepoPostgres{db: db}
}

func (r *AlumnoRepoPostgres) GetByNick(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT a.nick, a.contraseya, a.dni, a.nombre_completo, a.correo, a.telefono, a.direccion,
		       a.fecha_nacimiento, a.fecha_solicitud, g.nombre, g.curso
		FROM alumnos a
		LEFT JOIN grupos g ON g.nombre = a.grupo
		WHERE a.nick = $1`, nick)

	var (
		a                     alumnoDomain.Alumno
		nacimiento, solicitud sql.NullTime
		grupo, curso          sql.NullString
	)
	err := row.Scan(&a.NickUsuario, &a.Contraseya, &a.DniUsuario, &a.NombreCompletoUsuario,
		&a.CorreoElectronicoUsuario, &a.NumTelefonoUsuario, &a.DireccionUsuario,
		&nacimiento, &solicitud, &grupo, &curso)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, alumnoDomain.ErrAlumnoNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}

	if nacimiento.Valid {
		a.FechaNacimiento = sharedDomain.FechaOf(nacimiento.Time)
	}
	if solicitud.Valid {
		a.FechaSolicitud = sharedDomain.FechaOf(solicitud.Time)
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

// Save inserta o reemplaza el alumno y su grupo en una transacción.
func (r *AlumnoRepoPostgres) Save(ctx context.Context, a *alumnoDomain.Alumno) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Se ignora si el Commit() es exitoso

	var grupo sql.NullString
	if a.Grupos != nil {
		grupo = sql.NullString{String: a.Grupos.NombreGrupo, Valid: true}
		var curso sql.NullString
		if c, ok := a.Curso(); ok {
			curso = sql.NullString{String: string(c.CursoDeIngles), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO grupos (nombre, curso) VALUES ($1, $2)
			 ON CONFLICT (nombre) DO UPDATE SET curso = EXCLUDED.curso`,
			grupo.String, curso,
		); err != nil {
			return fmt.Errorf("save grupo: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO alumnos
		 (nick, contraseya, dni, nombre_completo, correo, telefono, direccion, fecha_nacimiento, fecha_solicitud, grupo)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (nick) DO UPDATE SET
		   contraseya=EXCLUDED.contraseya, dni=EXCLUDED.dni, nombre_completo=EXCLUDED.nombre_completo,
		   correo=EXCLUDED.correo, telefono=EXCLUDED.telefono, direccion=EXCLUDED.direccion,
		   fecha_nacimiento=EXCLUDED.fecha_nacimiento, fecha_solicitud=EXCLUDED.fecha_solicitud,
		   grupo=EXCLUDED.grupo`,
		a.NickUsuario, a.Contraseya, a.DniUsuario, a.NombreCompletoUsuario, a.CorreoElectronicoUsuario,
		a.NumTelefonoUsuario, a.DireccionUsuario, nullTime(a.FechaNacimiento), nullTime(a.FechaSolicitud), grupo,
	); err != nil {
		return fmt.Errorf("save alumno: %w", err)
	}

	return tx.Commit()
}

func nullTime(f sharedDomain.Fecha) sql.NullTime {
	if f.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: f.Time, Valid: true}
}

// InitPostgresAlumnoSchema crea las tablas 'grupos' y 'alumnos' si no existen.
func InitPostgresAlumnoSchema(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS grupos (
        nombre TEXT PRIMARY KEY,
        curso TEXT
    )`)
	if err != nil {
		return fmt.Errorf("failed to create grupos table: %w", err)
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
        fecha_nacimiento DATE,
        fecha_solicitud DATE,
        grupo TEXT REFERENCES grupos(nombre)
    )`)
	if err != nil {
		return fmt.Errorf("failed to create alumnos table: %w", err)
	}
	return nil
}
