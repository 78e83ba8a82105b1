package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/cursolab/internal/access"
	accessHttp "github.com/davicafu/cursolab/internal/access/infra/inbound/http"
	"github.com/davicafu/cursolab/internal/access/session"
	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	"github.com/davicafu/cursolab/internal/evento/application"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	sharedDomain "github.com/davicafu/cursolab/internal/shared/domain"
)

// ---------- Mocks de los servicios ----------

type mockEventos struct{ mock.Mock }

func (m *mockEventos) GetAll(ctx context.Context) ([]*eventoDomain.Evento, error) {
	args := m.Called()
	list, _ := args.Get(0).([]*eventoDomain.Evento)
	return list, args.Error(1)
}

func (m *mockEventos) GetByCourse(ctx context.Context, curso alumnoDomain.Curso) ([]*eventoDomain.Evento, error) {
	args := m.Called(curso)
	list, _ := args.Get(0).([]*eventoDomain.Evento)
	return list, args.Error(1)
}

func (m *mockEventos) UpdateDateEvent(ctx context.Context, id int64, start, end sharedDomain.Fecha) (*eventoDomain.Evento, error) {
	args := m.Called(id, start, end)
	e, _ := args.Get(0).(*eventoDomain.Evento)
	return e, args.Error(1)
}

func (m *mockEventos) GetDescription(ctx context.Context, id int64) (*string, error) {
	args := m.Called(id)
	d, _ := args.Get(0).(*string)
	return d, args.Error(1)
}

func (m *mockEventos) DeleteEvento(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

func (m *mockEventos) ExistEvent(ctx context.Context, e *eventoDomain.Evento) (bool, error) {
	args := m.Called(e)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventos) AssignTypeAndSave(ctx context.Context, e *eventoDomain.Evento) (*eventoDomain.Evento, error) {
	args := m.Called(e)
	saved, _ := args.Get(0).(*eventoDomain.Evento)
	return saved, args.Error(1)
}

type mockAlumnos struct{ mock.Mock }

func (m *mockAlumnos) GetAlumno(ctx context.Context, nick string) (*alumnoDomain.Alumno, error) {
	args := m.Called(nick)
	a, _ := args.Get(0).(*alumnoDomain.Alumno)
	return a, args.Error(1)
}

// ---------- Setup ----------

const (
	csrfToken = "csrf-test-token"
	jsStart   = "Thu Jan 07 2021 00:00:00 GMT+0100 (hora estándar de Europa central)"
	jsEnd     = "Thu Jan 09 2021 00:00:00 GMT+0100 (hora estándar de Europa central)"
)

type testServer struct {
	router  *gin.Engine
	eventos *mockEventos
	alumnos *mockAlumnos
	session *session.Manager
}

func setupServer() *testServer {
	gin.SetMode(gin.TestMode)

	ev := new(mockEventos)
	al := new(mockAlumnos)
	sm := session.NewManager("test-secret", time.Hour)
	log := zap.NewNop()

	r := gin.New()
	r.Use(accessHttp.SessionMiddleware(sm, "SESSION", log), accessHttp.CSRFMiddleware())
	RegisterEventoRoutes(r, NewEventoHandler(application.NewDispatcher(ev, al, log), log))

	return &testServer{router: r, eventos: ev, alumnos: al, session: sm}
}

// do ejecuta la petición con la sesión del rol dado. Las mutaciones llevan
// el par cookie/cabecera CSRF salvo que withCSRF sea false.
func (s *testServer) do(t *testing.T, method, target, body string, role access.Role, withCSRF bool) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if role != "" {
		token, err := s.session.Issue(access.Identity{Subject: "test", Role: role})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "SESSION", Value: token})
	}
	if withCSRF {
		req.AddCookie(&http.Cookie{Name: accessHttp.CSRFCookieName, Value: csrfToken})
		req.Header.Set(accessHttp.CSRFHeaderName, csrfToken)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func updatePath(id, start, end string) string {
	return "/events/update/" + id + "/" + url.PathEscape(start) + "/" + url.PathEscape(end)
}

func fixtureEvento() *eventoDomain.Evento {
	return &eventoDomain.Evento{
		ID:          1,
		Title:       "Examen oral",
		Descripcion: "Description",
		Tipo:        eventoDomain.TipoEvento{Tipo: eventoDomain.DefaultTipo},
		Curso:       alumnoDomain.NewCurso(alumnoDomain.A1),
		Start:       sharedDomain.NewFecha(2021, time.January, 19),
		End:         sharedDomain.NewFecha(2021, time.January, 20),
		Color:       "#3788d8",
	}
}

// ---------- /events/all ----------

func TestShowAllEvents(t *testing.T) {
	s := setupServer()
	s.eventos.On("GetAll").Return([]*eventoDomain.Evento{fixtureEvento()}, nil)

	rec := s.do(t, http.MethodGet, "/events/all", "", access.RoleProfesor, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got []*eventoDomain.Evento
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []*eventoDomain.Evento{fixtureEvento()}, got)
}

func TestShowAllEventsEmptyIsArray(t *testing.T) {
	s := setupServer()
	s.eventos.On("GetAll").Return(nil, nil)

	rec := s.do(t, http.MethodGet, "/events/all", "", access.RoleProfesor, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestShowAllEventsNotAuth(t *testing.T) {
	for _, role := range []access.Role{access.RoleUsuario, access.RoleAlumno, ""} {
		s := setupServer()
		rec := s.do(t, http.MethodGet, "/events/all", "", role, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "rol %q", role)
		assert.Empty(t, s.eventos.Calls)
	}
}

// ---------- /events/getByCourse ----------

func TestEventsByCourse(t *testing.T) {
	s := setupServer()
	curso := alumnoDomain.NewCurso(alumnoDomain.A1)
	alumno := &alumnoDomain.Alumno{
		NickUsuario: "JaviMartinez7",
		Grupos:      &alumnoDomain.Grupo{NombreGrupo: "A1", Cursos: &curso},
	}
	s.alumnos.On("GetAlumno", "JaviMartinez7").Return(alumno, nil)
	s.eventos.On("GetByCourse", curso).Return([]*eventoDomain.Evento{fixtureEvento()}, nil)

	rec := s.do(t, http.MethodGet, "/events/getByCourse/JaviMartinez7", "", access.RoleAlumno, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var got []*eventoDomain.Evento
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestEventsByCourseUnknownAlumno(t *testing.T) {
	s := setupServer()
	s.alumnos.On("GetAlumno", "nadie").Return(nil, alumnoDomain.ErrAlumnoNotFound)

	rec := s.do(t, http.MethodGet, "/events/getByCourse/nadie", "", access.RoleAlumno, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsByCourseNotAuth(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodGet, "/events/getByCourse/JaviMartinez7", "", access.RoleUsuario, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.alumnos.Calls)
	assert.Empty(t, s.eventos.Calls)
}

// ---------- /events/update ----------

func TestUpdateEvent(t *testing.T) {
	s := setupServer()
	start := sharedDomain.NewFecha(2021, time.January, 7)
	end := sharedDomain.NewFecha(2021, time.January, 9)
	s.eventos.On("UpdateDateEvent", int64(1), start, end).Return(fixtureEvento(), nil)

	rec := s.do(t, http.MethodPut, updatePath("1", jsStart, jsEnd), "", access.RoleProfesor, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	s.eventos.AssertExpectations(t)
}

func TestUpdateEventNull(t *testing.T) {
	s := setupServer()
	s.eventos.On("UpdateDateEvent", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	rec := s.do(t, http.MethodPut, updatePath("1", jsStart, jsEnd), "", access.RoleProfesor, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEventNotAuth(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPut, updatePath("1", jsStart, jsEnd), "", access.RoleUsuario, true)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

func TestUpdateEventBadDate(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPut, updatePath("1", "ayer", "2021-01-09"), "", access.RoleProfesor, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
	assert.Empty(t, s.eventos.Calls)
}

func TestUpdateEventWithoutCSRF(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPut, updatePath("1", jsStart, jsEnd), "", access.RoleProfesor, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

// ---------- /events/description ----------

func TestGetDescription(t *testing.T) {
	s := setupServer()
	desc := "Description"
	s.eventos.On("GetDescription", int64(1)).Return(&desc, nil)

	rec := s.do(t, http.MethodGet, "/events/description/1", "", access.RoleAlumno, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Description", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestGetDescriptionNull(t *testing.T) {
	s := setupServer()
	s.eventos.On("GetDescription", int64(1)).Return(nil, nil)

	rec := s.do(t, http.MethodGet, "/events/description/1", "", access.RoleAlumno, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDescriptionNotAuth(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodGet, "/events/description/1", "", access.RoleUsuario, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

// ---------- /events/delete ----------

func TestDeleteEvent(t *testing.T) {
	s := setupServer()
	s.eventos.On("DeleteEvento", int64(1)).Return(nil)

	rec := s.do(t, http.MethodDelete, "/events/delete/1", "", access.RoleProfesor, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	s.eventos.AssertNumberOfCalls(t, "DeleteEvento", 1)
}

func TestDeleteEventNotAuth(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodDelete, "/events/delete/1", "", access.RoleAlumno, true)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	s.eventos.AssertNumberOfCalls(t, "DeleteEvento", 0)
}

func TestDeleteEventMissing(t *testing.T) {
	s := setupServer()
	s.eventos.On("DeleteEvento", int64(9)).Return(eventoDomain.ErrEventoNotFound)

	rec := s.do(t, http.MethodDelete, "/events/delete/9", "", access.RoleProfesor, true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	s.eventos.AssertNumberOfCalls(t, "DeleteEvento", 1)
}

// ---------- /events/create ----------

// createBody reproduce lo que Gson genera para un Evento con LocalDate.
const createBody = `{"title":"Examen oral","descripcion":"Description","tipo":{"tipo":"internal"},
	"curso":{"cursoDeIngles":"A1"},"start":{"year":2021,"month":1,"day":19},
	"end":{"year":2021,"month":1,"day":20},"color":"#3788d8","id":1}`

func TestCreateEvent(t *testing.T) {
	s := setupServer()
	s.eventos.On("ExistEvent", mock.Anything).Return(false, nil)
	s.eventos.On("AssignTypeAndSave", mock.Anything).Return(fixtureEvento(), nil)

	rec := s.do(t, http.MethodPost, "/events/create/A1", createBody, access.RoleProfesor, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	s.eventos.AssertNumberOfCalls(t, "AssignTypeAndSave", 1)
}

func TestCreateEventDuplicate(t *testing.T) {
	s := setupServer()
	s.eventos.On("ExistEvent", mock.Anything).Return(true, nil)

	rec := s.do(t, http.MethodPost, "/events/create/A1", createBody, access.RoleProfesor, true)

	assert.Equal(t, http.StatusConflict, rec.Code)
	s.eventos.AssertNotCalled(t, "AssignTypeAndSave", mock.Anything)
}

func TestCreateEventBadLevel(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPost, "/events/create/Z9", createBody, access.RoleProfesor, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

func TestCreateEventNotAuth(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPost, "/events/create/A1", createBody, access.RoleAlumno, true)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

func TestCreateEventWithoutCSRF(t *testing.T) {
	s := setupServer()

	rec := s.do(t, http.MethodPost, "/events/create/A1", createBody, access.RoleProfesor, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, s.eventos.Calls)
}

// ---------- Errores inesperados ----------

func TestUnexpectedErrorIs500(t *testing.T) {
	s := setupServer()
	s.eventos.On("GetAll").Return(nil, errors.New("db down"))

	rec := s.do(t, http.MethodGet, "/events/all", "", access.RoleProfesor, false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
