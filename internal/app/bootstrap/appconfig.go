// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (DOAHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's
// CoreConfig handles framework-level settings (ports, TLS, logging);
// AppConfig is everything specific to the donation service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Secret signs the bearer tokens issued at login. Startup aborts
	// when it is empty: an unset secret must not silently allow forged
	// tokens.
	Secret string

	// Proof-of-residence image storage
	UploadDir       string // local directory for uploaded images
	UploadURLPrefix string // URL prefix under which images are served back

	// CORS
	CORSAllowedOrigins string // comma-separated list, "*" for any
}
