// Package ports defines the interfaces (ports) that external adapters must implement.
// Services depend on these instead of the MySQL repositories so they can be
// unit tested with mocks.
package ports
