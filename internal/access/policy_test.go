package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed_Matrix(t *testing.T) {
	expected := map[Action]Role{
		ActionListAll:      RoleProfesor,
		ActionListByCourse: RoleAlumno,
		ActionUpdateDates:  RoleProfesor,
		ActionDescription:  RoleAlumno,
		ActionDelete:       RoleProfesor,
		ActionCreate:       RoleProfesor,
	}
	roles := []Role{RoleProfesor, RoleAlumno, RoleUsuario, "", "admin"}

	for _, action := range Actions() {
		for _, role := range roles {
			want := expected[action] == role
			assert.Equal(t, want, Allowed(role, action), "acción %s con rol %q", action, role)
		}
	}
}

func TestAllowed_UnknownAction(t *testing.T) {
	assert.False(t, Allowed(RoleProfesor, Action("events.unknown")))
}

func TestAuthorize(t *testing.T) {
	err := Authorize(Identity{Subject: "ana", Role: RoleProfesor}, ActionDelete)
	assert.NoError(t, err)

	err = Authorize(Identity{Subject: "javi", Role: RoleAlumno}, ActionDelete)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = Authorize(Anonymous, ActionListAll)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequiredRole(t *testing.T) {
	r, ok := RequiredRole(ActionCreate)
	assert.True(t, ok)
	assert.Equal(t, RoleProfesor, r)

	_, ok = RequiredRole(Action("nope"))
	assert.False(t, ok)
}
