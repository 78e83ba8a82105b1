package http

import "github.com/gin-gonic/gin"

// RegisterEventoRoutes registra las rutas HTTP para el dominio de Eventos.
// Las rutas son literales: las consume un frontend existente.
func RegisterEventoRoutes(r gin.IRouter, handler *EventoHandler) {
	events := r.Group("/events")
	{
		events.GET("/all", handler.ListAll)
		events.GET("/getByCourse/:nick", handler.ListByCourse)
		events.PUT("/update/:id/:start/:end", handler.UpdateDates)
		events.GET("/description/:id", handler.Description)
		events.DELETE("/delete/:id", handler.Delete)
		events.POST("/create/:courseLevel", handler.Create)
	}
}
