package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/opticstore/notify-queue/internal/api/handlers/queue"
)

func New(handler *queue.Handler) *ginext.Engine {
	e := ginext.New("")
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/queue")

	api.POST("", handler.Enqueue)
	api.GET("", handler.GetAll)
	api.GET("/:id", handler.GetStatus)
	api.GET("/:id/log", handler.GetLog)
	api.POST("/run", handler.Run)

	return e
}
