package middleware

import (
	"net/http"

	"github.com/crestline-remodeling/proposal-api/internal/config"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func isDevEnvironment(environment string) bool {
	return environment == "development" || environment == "local" || environment == ""
}

// allowAnyOrigin echoes back any non-empty Origin, which keeps credentialed
// requests working where a literal "*" would not.
func allowAnyOrigin(r *http.Request, origin string) bool {
	return origin != ""
}

// CORS returns a CORS middleware configured from the application config.
// With no configured origins, development allows everything and any other
// environment denies all cross-origin requests.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	hasWildcard := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			hasWildcard = true
			break
		}
	}

	switch {
	case hasWildcard:
		if !isDevEnvironment(environment) {
			logger.Warn("CORS wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS restricted to configured origins",
			zap.Strings("origins", cfg.AllowedOrigins))

	case isDevEnvironment(environment):
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("CORS allowing all origins in development")

	default:
		// Empty AllowedOrigins defaults to "*" inside the cors package, so
		// denying requires an explicit func.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
