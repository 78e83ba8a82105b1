package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/cursolab/internal/access"
	accessHttp "github.com/davicafu/cursolab/internal/access/infra/inbound/http"
	alumnoDomain "github.com/davicafu/cursolab/internal/alumno/domain"
	"github.com/davicafu/cursolab/internal/evento/application"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	"github.com/davicafu/cursolab/pkg/utils"
)

// EventoHandler encapsula los endpoints HTTP de /events.
type EventoHandler struct {
	dispatcher *application.Dispatcher
	log        *zap.Logger
}

func NewEventoHandler(dispatcher *application.Dispatcher, log *zap.Logger) *EventoHandler {
	return &EventoHandler{dispatcher: dispatcher, log: log}
}

// ListAll endpoint GET /events/all
func (h *EventoHandler) ListAll(c *gin.Context) {
	eventos, err := h.dispatcher.ListAll(c.Request.Context(), accessHttp.IdentityFrom(c))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// ListByCourse endpoint GET /events/getByCourse/:nick
func (h *EventoHandler) ListByCourse(c *gin.Context) {
	eventos, err := h.dispatcher.ListByCourse(c.Request.Context(), accessHttp.IdentityFrom(c), c.Param("nick"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventos)
}

// UpdateDates endpoint PUT /events/update/:id/:start/:end
func (h *EventoHandler) UpdateDates(c *gin.Context) {
	evento, err := h.dispatcher.UpdateDates(c.Request.Context(), accessHttp.IdentityFrom(c),
		c.Param("id"), c.Param("start"), c.Param("end"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, evento)
}

// Description endpoint GET /events/description/:id (text/plain)
func (h *EventoHandler) Description(c *gin.Context) {
	desc, err := h.dispatcher.Description(c.Request.Context(), accessHttp.IdentityFrom(c), c.Param("id"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.String(http.StatusOK, desc)
}

// Delete endpoint DELETE /events/delete/:id
func (h *EventoHandler) Delete(c *gin.Context) {
	if err := h.dispatcher.Delete(c.Request.Context(), accessHttp.IdentityFrom(c), c.Param("id")); err != nil {
		h.sendError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Create endpoint POST /events/create/:courseLevel
func (h *EventoHandler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.SendBadRequest(c, "could not read request body")
		return
	}

	evento, err := h.dispatcher.Create(c.Request.Context(), accessHttp.IdentityFrom(c), c.Param("courseLevel"), body)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, evento)
}

// sendError es la única tabla error -> status del contexto.
func (h *EventoHandler) sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		utils.SendUnauthorized(c, "unauthorized")
	case errors.Is(err, eventoDomain.ErrEventoNotFound):
		utils.SendNotFound(c, "evento not found")
	case errors.Is(err, alumnoDomain.ErrAlumnoNotFound):
		utils.SendNotFound(c, "alumno not found")
	case errors.Is(err, eventoDomain.ErrEventoAlreadyExists):
		utils.SendConflict(c, "evento already exists")
	case errors.Is(err, application.ErrInvalidParam),
		errors.Is(err, eventoDomain.ErrInvalidEvento):
		utils.SendBadRequest(c, err.Error())
	default:
		h.log.Error("❌ Unexpected error handling request",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.SendInternalServerError(c, "internal server error")
	}
}
