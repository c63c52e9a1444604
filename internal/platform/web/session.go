package web

import (
	"sync"

	"github.com/gorilla/websocket"
)

// sessionBuffer is the number of outgoing messages queued per session.
const sessionBuffer = 64

// session is the outgoing side of one play socket. Send never blocks: when
// the queue is full the oldest message is dropped.
type session struct {
	id       string
	profile  string
	conn     *websocket.Conn
	send     chan ServerMessage
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(id, profile string, conn *websocket.Conn) *session {
	return &session{
		id:      id,
		profile: profile,
		conn:    conn,
		send:    make(chan ServerMessage, sessionBuffer),
		done:    make(chan struct{}),
	}
}

// Send queues msg for the write loop.
func (s *session) Send(msg ServerMessage) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.send <- msg:
	default:
		// Full: drop the oldest and retry once.
		select {
		case <-s.send:
		default:
		}
		select {
		case s.send <- msg:
		default:
		}
	}
}

// Done returns a channel that closes when the session ends.
func (s *session) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. Safe to call multiple times.
func (s *session) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// sessionRegistry tracks open play sockets.
type sessionRegistry struct {
	mu       sync.RWMutex
	next     uint64
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

// nextID returns a sequence number for session IDs.
func (r *sessionRegistry) nextID() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next
}

// Register adds a session to the registry.
func (r *sessionRegistry) Register(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

// Unregister removes a session from the registry.
func (r *sessionRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of open sessions.
func (r *sessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll ends every open session.
func (r *sessionRegistry) CloseAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		s.Close()
	}
}
