// internal/testutil/tcpserver.go
package testutil

import (
	"net"
	"sync"
	"testing"
)

// TCPServer is a loopback listener that runs a handler per connection.
// Handlers that block should select on Done() so Close can return.
type TCPServer struct {
	ln   net.Listener
	done chan struct{}

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewTCPServer starts a server on 127.0.0.1 and registers Close with t.Cleanup.
func NewTCPServer(t *testing.T, handler func(conn net.Conn, done <-chan struct{})) *TCPServer {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &TCPServer{
		ln:    ln,
		done:  make(chan struct{}),
		conns: make(map[net.Conn]struct{}),
	}

	s.wg.Add(1)
	go s.serve(handler)

	t.Cleanup(s.Close)
	return s
}

func (s *TCPServer) serve(handler func(net.Conn, <-chan struct{})) {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.conns, conn)
				s.mu.Unlock()
				conn.Close()
			}()
			handler(conn, s.done)
		}()
	}
}

// Addr returns "127.0.0.1:port".
func (s *TCPServer) Addr() string {
	return s.ln.Addr().String()
}

// Port returns the listening port.
func (s *TCPServer) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Done is closed when the server shuts down.
func (s *TCPServer) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting, closes open connections and waits for handlers.
func (s *TCPServer) Close() {
	s.once.Do(func() {
		close(s.done)
		s.ln.Close()

		s.mu.Lock()
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()

		s.wg.Wait()
	})
}

// ClosedPort returns a loopback port with nothing listening on it.
func ClosedPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}
