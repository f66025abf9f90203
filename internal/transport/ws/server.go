package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"voxelpath.ai/internal/protocol"
	"voxelpath.ai/internal/sim/catalogs"
	"voxelpath.ai/internal/sim/tuning"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 60 * time.Second
	writeTimeout     = 5 * time.Second

	// maxQueuedPlans is how many PLAN requests may wait behind the one
	// being searched before the session answers E_BUSY.
	maxQueuedPlans = 4
)

// PlanRecorder receives every finished plan. The trace log and the plan
// index both implement it.
type PlanRecorder interface {
	WritePlan(entry protocol.PlanLogEntry) error
}

// Server is the websocket planning service. Each connection gets one
// session that searches its PLAN requests one at a time, spreading every
// search over service ticks.
type Server struct {
	cat       *catalogs.Catalogs
	settings  atomic.Pointer[tuning.Settings]
	log       *zap.Logger
	recorders []PlanRecorder

	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder adds a sink for finished plans.
func WithRecorder(r PlanRecorder) Option {
	return func(s *Server) {
		if r != nil {
			s.recorders = append(s.recorders, r)
		}
	}
}

func NewServer(cat *catalogs.Catalogs, settings tuning.Settings, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cat: cat,
		log: zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		ctx:    ctx,
		cancel: cancel,
	}
	for _, o := range opts {
		o(s)
	}
	s.SetSettings(settings)
	return s
}

// SetSettings replaces the settings used by plans that start afterwards.
// Searches already running keep the configuration they started with.
func (s *Server) SetSettings(settings tuning.Settings) {
	settings = settings.Normalize()
	s.settings.Store(&settings)
}

func (s *Server) Settings() tuning.Settings { return *s.settings.Load() }

// Close cancels running searches, tells their clients, and waits for every
// session to end.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if s.ctx.Err() != nil {
			http.Error(rw, "shutting down", http.StatusServiceUnavailable)
			return
		}
		s.wg.Add(1)
		defer s.wg.Done()

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID, ok := s.handshake(conn)
		if !ok {
			return
		}
		sess := newSession(s, conn, sessionID)
		sess.run()
	}
}

func (s *Server) handshake(conn *websocket.Conn) (string, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		closeWith(conn, websocket.ClosePolicyViolation, "expected HELLO")
		return "", false
	}
	if err := protocol.Validate(protocol.TypeHello, msg); err != nil {
		closeWith(conn, websocket.ClosePolicyViolation, "bad HELLO")
		return "", false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", false
	}
	if hello.ProtocolVersion != protocol.Version {
		closeWith(conn, websocket.ClosePolicyViolation, "bad protocol_version")
		return "", false
	}

	sessionID := uuid.NewString()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		Catalog: protocol.CatalogInfo{
			BlocksDigest: s.cat.Blocks.Digest,
			BlockCount:   len(s.cat.Blocks.Defs),
		},
	}
	if err := writeJSON(conn, welcome); err != nil {
		return "", false
	}
	s.log.Info("session opened", zap.String("session", sessionID), zap.String("client", hello.ClientName))
	return sessionID, true
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
