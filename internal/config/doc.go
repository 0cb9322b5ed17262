// Package config loads the service configuration.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file: $DATACLEAN_CONFIG_FILE, config.yaml or configs/config.yaml
//  3. Environment variables
//
// # Environment Variables
//
// Variables follow the pattern DATACLEAN_<SECTION>_<FIELD>:
//
//	DATACLEAN_SERVER_PORT=8080
//	DATACLEAN_SECURITY_API_KEY_HASH=$2a$10$...
//	DATACLEAN_LIMITS_MAX_UPLOAD_BYTES=10485760
//	DATACLEAN_LIMITS_MAX_ROWS=100000
//	DATACLEAN_LOGGING_LEVEL=debug
//	DATACLEAN_OBSERVABILITY_TRACE_EXPORTER=stdout
//
// # Usage
//
// Load configuration once at startup and pass sections to constructors:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests should start from Default() instead of touching the environment.
package config
