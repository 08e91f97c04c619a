package rawhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Server accepts TCP connections and answers one request per connection.
// Each accepted connection is served on its own goroutine and closed after
// the response is written.
type Server struct {
	Addr        string
	Handler     Handler
	BufferSize  int
	ReadTimeout time.Duration // zero means no deadline
	Logger      zerolog.Logger

	wg sync.WaitGroup
}

// ListenAndServe listens on s.Addr and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln and
// waits for in-flight connections to finish. It returns nil on a clean stop.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("server started")

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				s.Logger.Info().Msg("server stopped")
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else if tempDelay *= 2; tempDelay > time.Second {
					tempDelay = time.Second
				}
				s.Logger.Warn().Err(err).Dur("retry_in", tempDelay).Msg("accept failed")
				time.Sleep(tempDelay)
				continue
			}
			ln.Close()
			s.wg.Wait()
			return fmt.Errorf("accept: %w", err)
		}
		tempDelay = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	start := time.Now()
	remote := conn.RemoteAddr().String()
	defer conn.Close()

	if s.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}
	// Shutdown abandons a read still waiting for bytes. Requests already
	// read are dispatched and answered.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	req, err := ReadRequest(conn, s.BufferSize)
	stop()
	if errors.Is(err, os.ErrDeadlineExceeded) {
		s.Logger.Debug().Str("remote", remote).Msg("no request before read deadline")
		return
	}
	if errors.Is(err, ErrEmptyRequest) {
		s.Logger.Debug().Str("remote", remote).Msg("connection closed without a request")
		return
	}
	if err != nil {
		s.Logger.Error().Err(err).Str("remote", remote).Msg("failed to read request")
		return
	}
	req.RemoteAddr = remote

	resp := s.dispatch(ctx, req)

	method, target := req.RequestLine()
	if _, err := resp.WriteTo(conn); err != nil {
		s.Logger.Error().Err(err).Str("remote", remote).Msg("failed to write response")
		return
	}

	s.Logger.Info().
		Str("method", method).
		Str("path", target).
		Str("status", string(resp.Status)).
		Dur("duration", time.Since(start)).
		Str("remote", remote).
		Msg("request")
}

// dispatch runs the handler and turns a panic into a 500
func (s *Server) dispatch(ctx context.Context, req *Request) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			s.Logger.Error().Interface("panic", rec).Str("remote", req.RemoteAddr).Msg("handler panicked")
			resp = InternalServerError("Error")
		}
	}()
	return s.Handler.Dispatch(ctx, req)
}
