package servers

// Server defines the interface for a component the Manager starts and stops.
// Start must return once the server is running.
type Server interface {
	Start() error
	Stop() error
	Name() string
}
