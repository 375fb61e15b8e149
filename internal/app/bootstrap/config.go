// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for doahub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, secret, etc.
//   - Environment variables: DOAHUB_MONGO_URI, DOAHUB_SECRET, etc.
//   - Command-line flags: --mongo_uri, --secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "doahub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "secret", Default: "", Desc: "Bearer-token signing secret (required)"},

	{Name: "upload_dir", Default: "./uploads", Desc: "Local directory for proof-of-residence images"},
	{Name: "upload_url_prefix", Default: "/uploads", Desc: "URL prefix for serving uploaded images"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated allowed CORS origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DOAHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		Secret: appValues.String("secret"),

		UploadDir:       appValues.String("upload_dir"),
		UploadURLPrefix: appValues.String("upload_url_prefix"),

		CORSAllowedOrigins: appValues.String("cors_allowed_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The signing secret is checked here, before anything listens: serving
// protected routes with an empty secret would let anyone forge tokens,
// so the process refuses to start instead.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.Secret == "" {
		return fmt.Errorf("secret is required (set DOAHUB_SECRET)")
	}
	if len(appCfg.Secret) < 32 {
		logger.Warn("token signing secret is short; 32+ chars recommended",
			zap.Int("length", len(appCfg.Secret)))
	}

	if appCfg.UploadDir == "" {
		return fmt.Errorf("upload_dir must not be empty")
	}

	return nil
}
