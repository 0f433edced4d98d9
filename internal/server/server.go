// Package server wires the QUIC listener, the phase-gated connection
// table, and the shared collaborators (packet registry, asset registry,
// world, compression codec) into the running game server: a listener
// goroutine handing fresh connections to per-session goroutines, with
// a mutex-guarded connection table behind them.
package server

import (
	"context"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/zytale/zytale-server/internal/assets"
	"github.com/zytale/zytale-server/internal/compress"
	"github.com/zytale/zytale-server/internal/conn"
	"github.com/zytale/zytale-server/internal/config"
	"github.com/zytale/zytale-server/internal/protocol"
	"github.com/zytale/zytale-server/internal/world"
)

// alpn is the application-layer protocol QUIC negotiates for this
// server.
const alpn = "hytale/1"

// CertSource supplies the server's TLS certificate. The handshake
// requires a client certificate but never validates its chain —
// production wires this to a real certificate store; a stub in tests
// returns a self-signed pair.
type CertSource interface {
	GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error)
}

// Server owns the QUIC listener and every connected client's phase
// gate.
type Server struct {
	cfg        *config.Config
	certSrc    CertSource
	registry   *protocol.Registry
	assetsReg  *assets.Registry
	world      *world.World
	codec      *compress.Codec
	sessionSvc conn.SessionServiceClient

	listener *quic.Listener

	mu          sync.RWMutex
	connections map[int32]*conn.Connection
	nextID      int32
}

// New constructs a Server bound to cfg.ListenAddr but does not start
// listening — call Run to accept connections.
func New(cfg *config.Config, certSrc CertSource, registry *protocol.Registry, assetsReg *assets.Registry, w *world.World, codec *compress.Codec, sessionSvc conn.SessionServiceClient) *Server {
	return &Server{
		cfg:         cfg,
		certSrc:     certSrc,
		registry:    registry,
		assetsReg:   assetsReg,
		world:       w,
		codec:       codec,
		sessionSvc:  sessionSvc,
		connections: make(map[int32]*conn.Connection),
	}
}

// Run binds the QUIC listener and accepts connections until ctx is
// canceled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	tlsConf := &tls.Config{
		GetCertificate: s.certSrc.GetCertificate,
		ClientAuth:     tls.RequireAnyClientCert,
		NextProtos:     []string{alpn},
	}
	quicConf := &quic.Config{
		MaxIdleTimeout: idleTimeout(s.cfg.IdleTimeoutSeconds),
	}

	ln, err := quic.ListenAddr(s.cfg.ListenAddr, tlsConf, quicConf)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.ListenAddr, err)
	}
	s.listener = ln
	log.Printf("server: listening on %s (alpn=%s)", s.cfg.ListenAddr, alpn)

	for {
		qc, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		go s.handleConnection(ctx, qc)
	}
}

// Close shuts down the listener and every tracked connection.
func (s *Server) Close() error {
	s.mu.Lock()
	conns := make([]*conn.Connection, 0, len(s.connections))
	for _, c := range s.connections {
		conns = append(conns, c)
	}
	s.connections = make(map[int32]*conn.Connection)
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// ConnectionCount reports how many connections are currently tracked.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) handleConnection(ctx context.Context, qc quic.Connection) {
	stream, err := qc.AcceptStream(ctx)
	if err != nil {
		log.Printf("server: accept stream from %s: %v", qc.RemoteAddr(), err)
		qc.CloseWithError(0, "stream accept failed")
		return
	}

	id := atomic.AddInt32(&s.nextID, 1)
	cs := conn.NewStream(stream)
	c := conn.New(id, cs, qc.RemoteAddr(), conn.Deps{
		Registry:   s.registry,
		Assets:     s.assetsReg,
		World:      s.world,
		Config:     s.cfg,
		Compress:   s.codec,
		SessionSvc: s.sessionSvc,
	})

	s.mu.Lock()
	s.connections[id] = c
	s.mu.Unlock()

	defer func() {
		_ = c.Close()
		s.mu.Lock()
		delete(s.connections, id)
		s.mu.Unlock()
		qc.CloseWithError(0, "")
	}()

	s.readLoop(ctx, stream, cs, c)
}

func (s *Server) readLoop(ctx context.Context, r io.Reader, cs *conn.Stream, c *conn.Connection) {
	buf := make([]byte, 16*1024)
	hexDump := os.Getenv(conn.HexDumpEnv) == "1"

	for {
		n, err := r.Read(buf)
		if n > 0 {
			cs.Feed(buf[:n])
			for {
				frame, ok, ferr := cs.NextFrame()
				if ferr != nil {
					log.Printf("server: conn %d: framing error: %v", c.ClientID, ferr)
					return
				}
				if !ok {
					break
				}
				if hexDump {
					log.Printf("server: conn %d: recv id=%d len=%d %s", c.ClientID, frame.ID, len(frame.Payload), hex.EncodeToString(frame.Payload))
				}
				if err := c.HandlePacket(ctx, frame.ID, frame.Payload); err != nil {
					log.Printf("server: conn %d: %v", c.ClientID, err)
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("server: conn %d: read: %v", c.ClientID, err)
			}
			return
		}
	}
}

func idleTimeout(seconds int32) time.Duration {
	return time.Duration(seconds) * time.Second
}
