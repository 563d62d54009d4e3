package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns the storefront's open CORS policy. Checkout runs on a public
// page with no credentialed requests, so any origin may call the API.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler
}
