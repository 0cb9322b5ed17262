// Package app wires the dataclean service together and manages its
// lifecycle: configuration, logging, observability, services, the chi router
// and the HTTP server.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, an optional YAML file and environment
//  2. Initialize logging and OpenTelemetry
//  3. Create the cleaning and health services
//  4. Set up handlers and middleware
//  5. Create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run stops on SIGINT or SIGTERM. In-flight requests are given
// Server.ShutdownTimeout to complete, then the OpenTelemetry providers are
// flushed.
//
// # Error Handling
//
// All initialization errors are returned to the caller. The package never
// calls os.Exit, leaving the exit code to main.
package app
