package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	alumnoMemory "github.com/davicafu/cursolab/internal/alumno/infra/outbound/db/memory"
	alumnoMongo "github.com/davicafu/cursolab/internal/alumno/infra/outbound/db/mongodb"
	alumnoPostgres "github.com/davicafu/cursolab/internal/alumno/infra/outbound/db/postgre"
	alumnoSQLite "github.com/davicafu/cursolab/internal/alumno/infra/outbound/db/sqlite"
	"github.com/davicafu/cursolab/internal/config"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	eventoMemory "github.com/davicafu/cursolab/internal/evento/infra/outbound/db/memory"
	eventoMongo "github.com/davicafu/cursolab/internal/evento/infra/outbound/db/mongodb"
	eventoPostgres "github.com/davicafu/cursolab/internal/evento/infra/outbound/db/postgre"
	eventoSQLite "github.com/davicafu/cursolab/internal/evento/infra/outbound/db/sqlite"
)

// alumnoStore es el repositorio de alumnos más la escritura que usa el seed.
type alumnoStore interface {
	alumnoDomain.AlumnoRepository
	alumnoDomain.AlumnoWriter
}

type storage struct {
	eventos eventoDomain.EventoRepository
	alumnos alumnoStore
	close   func()
}

// openStorage abre el backend elegido por STORAGE_DRIVER y prepara su esquema.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		// SQLite solo admite un escritor a la vez
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping SQLite: %w", err)
		}
		if err := eventoSQLite.InitSQLite(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize eventos schema: %w", err)
		}
		if err := alumnoSQLite.InitSQLite(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize alumnos schema: %w", err)
		}
		log.Info("🗄️ Usando SQLite", zap.String("path", cfg.SQLitePath))
		return &storage{
			eventos: eventoSQLite.NewEventoRepoSQLite(db),
			alumnos: alumnoSQLite.NewAlumnoRepoSQLite(db),
			close:   func() { db.Close() },
		}, nil

	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping Postgres: %w", err)
		}
		if err := eventoPostgres.InitPostgresEventoSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		if err := alumnoPostgres.InitPostgresAlumnoSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("🐘 Usando PostgreSQL")
		return &storage{
			eventos: eventoPostgres.NewEventoRepoPostgres(db),
			alumnos: alumnoPostgres.NewAlumnoRepoPostgres(db),
			close:   func() { db.Close() },
		}, nil

	case config.DriverMongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		eventos, err := eventoMongo.NewEventoRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("🍃 Usando MongoDB", zap.String("db", cfg.MongoDB))
		return &storage{
			eventos: eventos,
			alumnos: alumnoMongo.NewAlumnoRepoMongoDB(client, cfg.MongoDB),
			close:   func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		log.Warn("⚠️ Usando almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			eventos: eventoMemory.NewInMemoryEventoRepo(),
			alumnos: alumnoMemory.NewInMemoryAlumnoRepo(),
			close:   func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
