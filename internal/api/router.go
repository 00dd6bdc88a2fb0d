package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every HTTP route under the configured base path.
func NewRouter(basePath string, h *Handler, hub *Hub, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware(logger))

	root := router.Group(basePath)
	root.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	readings := root.Group("/readings")
	readings.POST("", h.CreateReading)
	readings.POST("/preview", h.PreviewReading)
	readings.GET("", h.ListReadings)
	readings.GET("/export", h.ExportReadings)

	checklist := root.Group("/checklist")
	checklist.POST("", h.CreateChecklistEntry)
	checklist.POST("/preview", h.PreviewChecklist)
	checklist.GET("", h.ListChecklist)
	checklist.GET("/export", h.ExportChecklist)

	root.GET("/trends", h.Trends)
	root.POST("/vswr", h.ComputeVSWR)
	root.POST("/reminder/run", h.RunReminder)
	root.GET("/ws", hub.Handle)

	return router
}
