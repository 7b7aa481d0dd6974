package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(app.recoverPanic, app.logRequest, app.enableCORS, app.authenticate)

	router.NotFound(app.notFoundErrorResponse)
	router.MethodNotAllowed(app.methodNotAllowedErrorResponse)

	router.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthCheckHandler)

		// user service
		r.Post("/users/register", app.registerUserHandler)
		r.Post("/users/login", app.loginUserHandler)

		// blog service
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", app.getAllBlogsHandler)
			r.Post("/", app.requireAuthUser(app.createBlogHandler))
			r.Get("/user", app.requireAuthUser(app.getUserBlogsHandler))
			r.Get("/{id}", app.getBlogHandler)
			r.Put("/{id}", app.requireAuthUser(app.updateBlogHandler))
			r.Patch("/{id}/publish", app.requireAuthUser(app.publishBlogHandler))
			r.Delete("/{id}", app.requireAuthUser(app.deleteBlogHandler))
		})
	})

	return router
}
