// Package swaggerkit provides helpers to mount Swagger UI and JSON spec
package swaggerkit

import (
	"net/http"

	pstrings "todoapi/internal/platform/strings"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the swagger UI under prefix and the document at prefix/doc.json
func Mount(prefix string) func(chi.Router) {
	prefix = pstrings.MustPrefix(prefix)
	return func(r chi.Router) {
		r.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, prefix+"/", http.StatusPermanentRedirect)
		})
		r.Get(prefix+"/doc.json", serveDocJSON("/"))
		r.Get(prefix+"/*", httpSwagger.Handler(
			httpSwagger.URL(prefix+"/doc.json"),
		))
	}
}
