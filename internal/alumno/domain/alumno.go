package domain

import (
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// Alumno representa a un estudiante matriculado.
type Alumno struct {
	NickUsuario              string             `json:"nickUsuario"`
	Contraseya               string             `json:"-"`
	DniUsuario               string             `json:"dniUsuario"`
	NombreCompletoUsuario    string             `json:"nombreCompletoUsuario"`
	CorreoElectronicoUsuario string             `json:"correoElectronicoUsuario"`
	NumTelefonoUsuario       string             `json:"numTelefonoUsuario"`
	DireccionUsuario         string             `json:"direccionUsuario"`
	FechaNacimiento          sharedDomain.Fecha `json:"fechaNacimiento"`
	FechaSolicitud           sharedDomain.Fecha `json:"fechaSolicitud"`
	Grupos                   *Grupo             `json:"grupos,omitempty"`
}

// Curso devuelve el curso del grupo del alumno, si lo tiene.
func (a *Alumno) Curso() (Curso, bool) {
	if a == nil || a.Grupos == nil || a.Grupos.Cursos == nil || a.Grupos.Cursos.IsZero() {
		return Curso{}, false
	}
	return *a.Grupos.Cursos, true
}
