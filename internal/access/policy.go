package access

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("unauthorized")

// Action identifica cada operación del dispatcher de eventos.
type Action string

const (
	ActionListAll      Action = "events.all"
	ActionListByCourse Action = "events.getByCourse"
	ActionUpdateDates  Action = "events.update"
	ActionDescription  Action = "events.description"
	ActionDelete       Action = "events.delete"
	ActionCreate       Action = "events.create"
)

// policy es la tabla estática acción -> rol requerido.
var policy = map[Action]Role{
	ActionListAll:      RoleProfesor,
	ActionListByCourse: RoleAlumno,
	ActionUpdateDates:  RoleProfesor,
	ActionDescription:  RoleAlumno,
	ActionDelete:       RoleProfesor,
	ActionCreate:       RoleProfesor,
}

// Actions devuelve todas las acciones con política definida.
func Actions() []Action {
	return []Action{
		ActionListAll,
		ActionListByCourse,
		ActionUpdateDates,
		ActionDescription,
		ActionDelete,
		ActionCreate,
	}
}

// RequiredRole devuelve el rol exigido por la acción. ok es false si la
// acción no está en la tabla.
func RequiredRole(action Action) (Role, bool) {
	r, ok := policy[action]
	return r, ok
}

// Allowed es una función pura de (rol, acción). Una acción desconocida
// o un rol inválido nunca se permiten.
func Allowed(role Role, action Action) bool {
	required, ok := policy[action]
	return ok && role.IsValid() && role == required
}

// Authorize devuelve ErrUnauthorized (envuelto con contexto) si la identidad
// no puede ejecutar la acción.
func Authorize(id Identity, action Action) error {
	if !Allowed(id.Role, action) {
		return fmt.Errorf("%w: role %q cannot %s", ErrUnauthorized, id.Role, action)
	}
	return nil
}
