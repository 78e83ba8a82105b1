package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

const counterID = "eventos"

// EventoRepoMongoDB implementa EventoRepository para MongoDB. Los IDs
// numéricos salen de un contador en la colección "counters".
type EventoRepoMongoDB struct {
	eventosColl  *mongo.Collection
	countersColl *mongo.Collection
}

var _ eventoDomain.EventoRepository = (*EventoRepoMongoDB)(nil)

func NewEventoRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*EventoRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	db := client.Database(dbName)
	r := &EventoRepoMongoDB{
		eventosColl:  db.Collection("eventos"),
		countersColl: db.Collection("counters"),
	}

	_, err := r.eventosColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "curso", Value: 1}, {Key: "start", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create eventos index: %w", err)
	}
	return r, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoEvento struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Descripcion string    `bson:"descripcion"`
	Tipo        string    `bson:"tipo"`
	Curso       string    `bson:"curso"`
	Start       time.Time `bson:"start"`
	End         time.Time `bson:"end"`
	Color       string    `bson:"color"`
}

var fields = map[string]string{
	eventoDomain.FieldID:    "_id",
	eventoDomain.FieldTitle: "title",
	eventoDomain.FieldCurso: "curso",
	eventoDomain.FieldStart: "start",
	eventoDomain.FieldEnd:   "end",
}

// --- CRUD ---

func (r *EventoRepoMongoDB) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.countersColl.FindOneAndUpdate(ctx,
		bson.M{"_id": counterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next evento id: %w", err)
	}
	return counter.Seq, nil
}

func (r *EventoRepoMongoDB) Create(ctx context.Context, e *eventoDomain.Evento) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	me := toMongoEvento(e)
	me.ID = id
	if _, err := r.eventosColl.InsertOne(ctx, me); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return eventoDomain.ErrEventoAlreadyExists
		}
		return fmt.Errorf("insert evento: %w", err)
	}

	e.ID = id
	return nil
}

func (r *EventoRepoMongoDB) Update(ctx context.Context, e *eventoDomain.Evento) error {
	me := toMongoEvento(e)
	res, err := r.eventosColl.ReplaceOne(ctx, bson.M{"_id": me.ID}, me)
	if err != nil {
		return fmt.Errorf("update evento %d: %w", e.ID, err)
	}
	if res.MatchedCount == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

func (r *EventoRepoMongoDB) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.eventosColl.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete evento %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return eventoDomain.ErrEventoNotFound
	}
	return nil
}

// --- Lectura ---

func (r *EventoRepoMongoDB) GetByID(ctx context.Context, id int64) (*eventoDomain.Evento, error) {
	var me mongoEvento
	err := r.eventosColl.FindOne(ctx, bson.M{"_id": id}).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, eventoDomain.ErrEventoNotFound
		}
		return nil, err
	}
	return fromMongoEvento(&me), nil
}

func (r *EventoRepoMongoDB) ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria, sort sharedDomain.Sort) ([]*eventoDomain.Evento, error) {
	filter, err := criteriaToMongoFilter(criteria)
	if err != nil {
		return nil, err
	}

	sortDir := 1
	if sort.Desc {
		sortDir = -1
	}
	sortKey, ok := fields[sort.Field]
	if !ok {
		sortKey = "_id"
	}
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: sortDir}, {Key: "_id", Value: 1}})

	cursor, err := r.eventosColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	eventos := []*eventoDomain.Evento{}
	for cursor.Next(ctx) {
		var me mongoEvento
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		eventos = append(eventos, fromMongoEvento(&me))
	}
	return eventos, cursor.Err()
}

// --- Helpers de Mapeo y Conversión ---

func toMongoEvento(e *eventoDomain.Evento) *mongoEvento {
	return &mongoEvento{
		ID: e.ID, Title: e.Title, Descripcion: e.Descripcion, Tipo: e.Tipo.Tipo,
		Curso: string(e.Curso.CursoDeIngles), Start: e.Start.Time, End: e.End.Time, Color: e.Color,
	}
}

func fromMongoEvento(me *mongoEvento) *eventoDomain.Evento {
	return &eventoDomain.Evento{
		ID: me.ID, Title: me.Title, Descripcion: me.Descripcion,
		Tipo:  eventoDomain.TipoEvento{Tipo: me.Tipo},
		Curso: alumnoDomain.NewCurso(alumnoDomain.TipoCurso(me.Curso)),
		Start: sharedDomain.FechaOf(me.Start.UTC()), End: sharedDomain.FechaOf(me.End.UTC()),
		Color: me.Color,
	}
}

func criteriaToMongoFilter(criteria sharedDomain.Criteria) (bson.D, error) {
	conds := sharedDomain.Conditions(criteria)
	filter := bson.D{}
	for _, c := range conds {
		key, ok := fields[c.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported criteria field %q", c.Field)
		}

		var mongoOp string
		switch c.Op {
		case sharedDomain.OpEq:
			mongoOp = "$eq"
		case sharedDomain.OpGt:
			mongoOp = "$gt"
		case sharedDomain.OpGte:
			mongoOp = "$gte"
		case sharedDomain.OpLt:
			mongoOp = "$lt"
		case sharedDomain.OpLte:
			mongoOp = "$lte"
		default:
			return nil, fmt.Errorf("unsupported operator %q", c.Op)
		}

		value := c.Value
		if f, ok := value.(sharedDomain.Fecha); ok {
			value = f.Time
		}
		filter = append(filter, bson.E{Key: key, Value: bson.M{mongoOp: value}})
	}
	return filter, nil
}
