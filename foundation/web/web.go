// Package web is a small framework on top of gin that lets handlers return
// errors and threads a context.Context through every request.
package web

import (
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature used by all application handlers.
type Handler func(c *Context) error

// Middleware runs code before or after a Handler.
type Middleware func(Handler) Handler

// App is the entrypoint for the web application. It embeds the gin engine so
// routes that need raw gin handlers can still be registered directly.
type App struct {
	*gin.Engine
	shutdown chan os.Signal
	mw       []Middleware
}

func NewApp(shutdown chan os.Signal, mw ...Middleware) *App {
	return &App{
		Engine:   gin.New(),
		shutdown: shutdown,
		mw:       mw,
	}
}

// SignalShutdown gracefully shuts the application down.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

// Handle converts a Handler into a gin route, wrapping the per-route and
// application middleware around it.
func (a *App) Handle(method string, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     c.Request.Context(),
		}

		if err := handler(ctx); err != nil {
			_ = ctx.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

// wrapMiddleware wraps the handler with the middleware in the order they were
// given, so the first middleware is the outermost one.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}

	return handler
}
