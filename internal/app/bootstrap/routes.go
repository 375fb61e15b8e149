// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authapifeature "github.com/vslopes/doahub/internal/app/features/authapi"
	donationsfeature "github.com/vslopes/doahub/internal/app/features/donations"
	healthfeature "github.com/vslopes/doahub/internal/app/features/health"
	transitionsfeature "github.com/vslopes/doahub/internal/app/features/transitions"
	"github.com/vslopes/doahub/internal/app/system/auth"
	"github.com/vslopes/doahub/internal/app/system/uploads"
	"github.com/vslopes/doahub/internal/app/workflow"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// All features register directly on the root router because the route
// table is flat: the public donation CRUD lives at "/" and "/{id}", and
// the workflow/auth routes sit alongside it. chi gives static paths
// priority over the "/{id}" wildcard, so "/doacaoAceita" and friends are
// matched before the parameterized routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.Secret, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	uploadStore := uploads.New(appCfg.UploadDir, appCfg.UploadURLPrefix)
	engine := workflow.New(deps.MongoDatabase, logger)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(appCfg.CORSAllowedOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	healthfeature.MountRoutes(r, healthHandler)

	// Uploaded proof-of-residence images are served back under the same
	// prefix stored on each donation's image_url.
	r.Handle(strings.TrimRight(appCfg.UploadURLPrefix, "/")+"/*", uploadStore.Handler())

	donationsHandler := donationsfeature.NewHandler(deps.MongoDatabase, uploadStore, logger)
	donationsfeature.MountRoutes(r, donationsHandler)

	transitionsHandler := transitionsfeature.NewHandler(engine, logger)
	transitionsfeature.MountRoutes(r, transitionsHandler, tokens)

	authHandler := authapifeature.NewHandler(deps.MongoDatabase, tokens, logger)
	authapifeature.MountRoutes(r, authHandler, tokens)

	return r, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
