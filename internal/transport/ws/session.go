package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"voxelpath.ai/internal/protocol"
)

type session struct {
	srv  *Server
	conn *websocket.Conn
	id   string
	log  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	out    chan []byte
	plans  chan protocol.PlanMsg
}

func newSession(s *Server, conn *websocket.Conn, id string) *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		srv:    s,
		conn:   conn,
		id:     id,
		log:    s.log.With(zap.String("session", id)),
		ctx:    ctx,
		cancel: cancel,
		out:    make(chan []byte, 16),
		plans:  make(chan protocol.PlanMsg, maxQueuedPlans),
	}
}

// run owns the connection until the client leaves or the server stops.
// The caller's goroutine reads; one goroutine searches and one writes.
func (c *session) run() {
	var workers sync.WaitGroup
	workers.Add(1)
	go func() {
		defer workers.Done()
		c.work()
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.write()
	}()

	c.read()

	close(c.plans)
	c.cancel()
	workers.Wait()
	close(c.out)
	<-writerDone
	c.log.Info("session closed")
}

func (c *session) read() {
	for {
		if c.srv.ctx.Err() != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			c.sendError("", protocol.ErrProtoBadRequest, "malformed message")
			continue
		}
		if base.Type != protocol.TypePlan {
			c.sendError("", protocol.ErrProtoBadRequest, "unexpected message type "+base.Type)
			continue
		}
		var pm protocol.PlanMsg
		if err := protocol.Validate(protocol.TypePlan, msg); err != nil {
			_ = json.Unmarshal(msg, &pm)
			c.sendError(pm.ID, protocol.ErrBadRequest, err.Error())
			continue
		}
		if err := json.Unmarshal(msg, &pm); err != nil {
			c.sendError("", protocol.ErrBadRequest, err.Error())
			continue
		}
		select {
		case c.plans <- pm:
		default:
			c.sendError(pm.ID, protocol.ErrBusy, "too many queued plans")
		}
	}
}

// work searches queued plans in arrival order. On server shutdown it
// answers the running and queued plans with E_CANCELLED and unblocks the
// reader so the session winds down.
func (c *session) work() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.srv.ctx.Done():
			c.shutdown()
			return
		case pm, ok := <-c.plans:
			if !ok {
				return
			}
			entry, perr := c.srv.execute(c.ctx, c.srv.ctx, pm, c.id)
			switch {
			case perr == nil:
				c.send(entry.Result())
			case perr.Code == protocol.ErrCancelled && c.srv.ctx.Err() != nil:
				c.send(perr)
				c.shutdown()
				return
			case c.ctx.Err() != nil:
				return
			default:
				c.send(perr)
			}
		}
	}
}

func (c *session) shutdown() {
	for {
		select {
		case pm, ok := <-c.plans:
			if !ok {
				c.unblockReader()
				return
			}
			c.sendError(pm.ID, protocol.ErrCancelled, "server shutting down")
		default:
			c.unblockReader()
			return
		}
	}
}

func (c *session) unblockReader() {
	_ = c.conn.SetReadDeadline(time.Now())
}

// write drains out until it is closed. After a failed write the remaining
// messages are discarded so senders never block on a dead peer.
func (c *session) write() {
	failed := false
	for b := range c.out {
		if failed {
			continue
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			failed = true
			c.cancel()
		}
	}
	if !failed {
		closeWith(c.conn, websocket.CloseNormalClosure, "")
	}
}

func (c *session) send(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error("marshal message", zap.Error(err))
		return
	}
	select {
	case c.out <- b:
	case <-c.ctx.Done():
	}
}

func (c *session) sendError(id, code, msg string) {
	c.send(&protocol.ErrorMsg{Type: protocol.TypeError, ID: id, Code: code, Message: msg})
}
