package domain

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	EventoCreated = "evento.created"
	EventoUpdated = "evento.updated"
	EventoDeleted = "evento.deleted"
)

const EventoTopic = "evento"

// EventoDeletedPayload es el cuerpo de evento.deleted: el agregado ya no existe.
type EventoDeletedPayload struct {
	ID int64 `json:"id"`
}
