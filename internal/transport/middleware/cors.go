package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/heartmarshall/wordpath/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for the
// configured origins, answering preflight OPTIONS requests itself.
func CORS(cfg config.CORSConfig) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
