package api

import (
	"github.com/labstack/echo/v4"
)

// Router mounts both handler flavors on one Echo instance. The /api group is
// the dashboard's JSON envelope API; /v1 serves the byte-cached, rate limited
// raw handlers for high-frequency pollers.
type Router struct {
	echoHandler   *SignalsEchoHandler
	legacyHandler *SignalsHandler
}

func NewRouter(echoHandler *SignalsEchoHandler, legacyHandler *SignalsHandler) *Router {
	return &Router{echoHandler: echoHandler, legacyHandler: legacyHandler}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.echoHandler.RegisterRoutes(e)

	if r.legacyHandler != nil {
		v1 := e.Group("/v1")
		v1.GET("/signal", echo.WrapHandler(r.legacyHandler.Signal()))
		v1.GET("/board", echo.WrapHandler(r.legacyHandler.Board()))
		v1.GET("/history", echo.WrapHandler(r.legacyHandler.History()))
	}
}
