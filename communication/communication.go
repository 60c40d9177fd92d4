package communication

// Communicator is an interface that abstracts the line-based session between
// the arena and a player.
type Communicator interface {
	// Send writes one protocol line
	Send(line string) error
	// Receive blocks until the next protocol line arrives
	Receive() (string, error)
	Close() error
}
