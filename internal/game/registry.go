package game

import "sync"

// Registry is the process-wide table of live sessions, one per group.
// Sessions for different groups share nothing but this map.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create installs a fresh waiting session for the group. Fails with
// ErrGameExists while a previous session has not ended and been removed.
func (r *Registry) Create(groupID, creatorID, creatorName string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[groupID]; exists {
		return nil, ErrGameExists
	}
	sess := newSession(groupID, creatorID, creatorName)
	r.sessions[groupID] = sess
	return sess, nil
}

func (r *Registry) Get(groupID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[groupID]
	return sess, ok
}

func (r *Registry) Remove(groupID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, groupID)
}

func (r *Registry) Snapshots() []View {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess)
	}
	r.mu.Unlock()

	views := make([]View, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, sess.Snapshot())
	}
	return views
}
