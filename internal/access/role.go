package access

// Role es el token de rol que viaja en la sesión (atributo "type").
type Role string

const (
	RoleProfesor Role = "profesor"
	RoleAlumno   Role = "alumno"
	RoleUsuario  Role = "usuario"
)

func (r Role) String() string {
	return string(r)
}

// IsValid indica si el token es uno de los roles conocidos.
func (r Role) IsValid() bool {
	return r == RoleProfesor || r == RoleAlumno || r == RoleUsuario
}

// Identity es el llamante ya resuelto: quién es y con qué rol.
// Se pasa explícitamente a cada operación; no hay estado de sesión global.
type Identity struct {
	Subject string `json:"sub"`
	Role    Role   `json:"type"`
}

// Anonymous es la identidad de una petición sin sesión válida.
var Anonymous = Identity{}

func (i Identity) IsAnonymous() bool {
	return i.Role == ""
}
