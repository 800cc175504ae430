package chat

// Registry maps user id to the single live session for that user.
// It is mutated only from the hub loop, so it needs no locking.
type Registry struct {
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add stores the session and returns any prior session for the same
// user. Last connect wins; the caller closes the returned session.
func (r *Registry) Add(session *Session) (prior *Session) {
	prior = r.sessions[session.UserId]
	r.sessions[session.UserId] = session
	return prior
}

// Remove drops the session, but only if it is still the current one
// for its user. A stale session from a replaced connection is ignored.
func (r *Registry) Remove(session *Session) bool {
	current, ok := r.sessions[session.UserId]
	if !ok || current != session {
		return false
	}
	delete(r.sessions, session.UserId)
	return true
}

// Get returns the live session for userId, or nil.
func (r *Registry) Get(userId string) *Session {
	return r.sessions[userId]
}

// Len reports how many users are connected.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// Each visits every live session.
func (r *Registry) Each(fn func(*Session)) {
	for _, s := range r.sessions {
		fn(s)
	}
}
