package lb

// Transport is the capability the stepper uses for post-collision values
// whose streaming target lies outside the local partition. Implementations
// deliver the value so that it appears in the remote partition's current
// buffer before its next step begins; the core never assumes how.
type Transport interface {
	// Deliver hands off the post-collision value for direction d destined
	// for the remote site ref.
	Deliver(ref RemoteRef, d Direction, value float64)
}

// Loopback is a Transport for single-partition runs and tests: it treats
// remote site indices as local and writes straight into the store's next
// buffer, exactly as local streaming would have.
type Loopback struct {
	Store *SiteStore
}

func (l *Loopback) Deliver(ref RemoteRef, d Direction, value float64) {
	l.Store.WriteNext(ref.Site, d, value)
}

// Discard is a Transport that drops deliveries. Useful for closed test
// lattices whose geometry has no remote neighbors but whose stepper still
// needs a transport.
type Discard struct{}

func (Discard) Deliver(RemoteRef, Direction, float64) {}
