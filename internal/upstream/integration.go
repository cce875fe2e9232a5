package upstream

// Integration is an optional vendor dependency: either Ready with a client or
// Unavailable with the reason it was not configured. Callers must go through
// Get and handle both outcomes.
type Integration[C any] struct {
	client C
	ready  bool
	reason string
}

func Ready[C any](client C) Integration[C] {
	return Integration[C]{client: client, ready: true}
}

func Unavailable[C any](reason string) Integration[C] {
	return Integration[C]{reason: reason}
}

// Get returns the client and true when the integration is Ready.
func (i Integration[C]) Get() (C, bool) {
	return i.client, i.ready
}

// Reason explains why the integration is Unavailable.
func (i Integration[C]) Reason() string {
	return i.reason
}
