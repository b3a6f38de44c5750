// Package realtime relays chat messages between websocket clients of the same idea.
package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/middleware"
)

const (
	userIDKey = "user_id"
	roomsKey  = "rooms"

	checkTimeout = 5 * time.Second
)

// ParticipantChecker authorizes room joins.
type ParticipantChecker interface {
	IsParticipant(ctx context.Context, ideaID, userID string) (bool, error)
}

// Option configures the hub.
type Option func(*Hub)

// WithMaxMessageSize limits inbound frames.
func WithMaxMessageSize(n int64) Option {
	return func(h *Hub) {
		if n > 0 {
			h.m.Config.MaxMessageSize = n
		}
	}
}

// WithBackplane enables cross-instance delivery.
func WithBackplane(b Backplane) Option {
	return func(h *Hub) {
		h.backplane = b
	}
}

// Hub owns the websocket sessions of one server instance.
type Hub struct {
	m         *melody.Melody
	chats     ParticipantChecker
	backplane Backplane
	logger    *zap.SugaredLogger
	id        string

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a hub. Call Run to start the backplane subscription.
func New(chats ParticipantChecker, logger *zap.SugaredLogger, opts ...Option) *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 64 << 10
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &Hub{
		m:      m,
		chats:  chats,
		logger: logger,
		id:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(h)
	}

	m.HandleConnect(func(s *melody.Session) {
		h.logger.Debugw("Realtime client connected", "user_id", sessionUser(s))
	})
	m.HandleDisconnect(func(s *melody.Session) {
		h.logger.Debugw("Realtime client disconnected", "user_id", sessionUser(s))
	})
	m.HandleError(func(s *melody.Session, err error) {
		h.logger.Debugw("Realtime session error", "user_id", sessionUser(s), "error", err)
	})
	m.HandleMessage(h.handleMessage)

	return h
}

// Run subscribes to the backplane until ctx is canceled or Close is called.
// It is a no-op without a backplane.
func (h *Hub) Run(ctx context.Context) {
	if h.backplane == nil {
		return
	}

	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})
	go func() {
		defer close(h.done)
		if err := h.backplane.Subscribe(ctx, h.deliverRemote); err != nil {
			h.logger.Errorw("Realtime backplane stopped", "error", err)
		}
	}()
}

// Handle upgrades an authenticated request. Mount behind middleware.Auth.
func (h *Hub) Handle(c *gin.Context) {
	keys := map[string]any{
		userIDKey: middleware.UserID(c),
		roomsKey:  newRoomSet(),
	}
	if err := h.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		h.logger.Warnw("Realtime upgrade failed", "error", err)
	}
}

// Sessions returns the number of connected clients.
func (h *Hub) Sessions() int {
	return h.m.Len()
}

// Check probes the backplane for the health endpoint.
func (h *Hub) Check(ctx context.Context) error {
	if h.backplane == nil {
		return nil
	}
	return h.backplane.Ping(ctx)
}

// Close disconnects every client and stops the backplane subscription.
func (h *Hub) Close() error {
	if h.cancel != nil {
		h.cancel()
		<-h.done
	}
	err := h.m.Close()
	if h.backplane != nil {
		if bErr := h.backplane.Close(); bErr != nil && err == nil {
			err = bErr
		}
	}
	return err
}

func (h *Hub) handleMessage(s *melody.Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(s, "INVALID_FRAME", "frame must be a JSON envelope")
		return
	}

	switch env.Event {
	case EventJoinRoom:
		h.joinRoom(s, env.Data)
	case EventSendMessage:
		h.relay(s, env.Data)
	default:
		h.sendError(s, "UNKNOWN_EVENT", "unknown event: "+env.Event)
	}
}

func (h *Hub) joinRoom(s *melody.Session, data json.RawMessage) {
	var ideaID string
	if err := json.Unmarshal(data, &ideaID); err != nil || strings.TrimSpace(ideaID) == "" {
		h.sendError(s, "INVALID_FRAME", "join_room expects an idea id")
		return
	}

	userID := sessionUser(s)
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	ok, err := h.chats.IsParticipant(ctx, ideaID, userID)
	if err != nil {
		h.logger.Errorw("Realtime participant check failed", "idea_id", ideaID, "user_id", userID, "error", err)
		h.sendError(s, "INTERNAL_ERROR", "internal server error")
		return
	}
	if !ok {
		h.sendError(s, "FORBIDDEN", "access denied: you are not part of this idea team")
		return
	}

	sessionRooms(s).add(ideaID)
	h.logger.Debugw("Realtime room joined", "idea_id", ideaID, "user_id", userID)
	h.send(s, EventRoomJoined, ideaID)
}

func (h *Hub) relay(s *melody.Session, data json.RawMessage) {
	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.IdeaID == "" {
		h.sendError(s, "INVALID_FRAME", "send_message expects a message with ideaId")
		return
	}
	if !sessionRooms(s).has(msg.IdeaID) {
		h.sendError(s, "FORBIDDEN", "join the room before sending")
		return
	}

	msg.SenderID = sessionUser(s)
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	frame, err := encode(EventReceiveMessage, msg)
	if err != nil {
		h.logger.Errorw("Realtime encode failed", "error", err)
		return
	}

	h.deliver(msg.IdeaID, frame, s)

	if h.backplane != nil {
		h.publish(msg.IdeaID, frame)
	}
}

func (h *Hub) publish(ideaID string, frame []byte) {
	body, err := json.Marshal(packet{Origin: h.id, Frame: frame})
	if err != nil {
		h.logger.Errorw("Realtime packet encode failed", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	if err := h.backplane.Publish(ctx, ideaID, body); err != nil {
		h.logger.Warnw("Realtime publish failed", "idea_id", ideaID, "error", err)
	}
}

func (h *Hub) deliverRemote(ideaID string, body []byte) {
	var p packet
	if err := json.Unmarshal(body, &p); err != nil {
		h.logger.Warnw("Realtime packet decode failed", "idea_id", ideaID, "error", err)
		return
	}
	if p.Origin == h.id {
		return
	}
	h.deliver(ideaID, p.Frame, nil)
}

// deliver writes the frame to every local session in the room except skip.
func (h *Hub) deliver(ideaID string, frame []byte, skip *melody.Session) {
	err := h.m.BroadcastFilter(frame, func(q *melody.Session) bool {
		return q != skip && sessionRooms(q).has(ideaID)
	})
	if err != nil {
		h.logger.Warnw("Realtime broadcast failed", "idea_id", ideaID, "error", err)
	}
}

func (h *Hub) send(s *melody.Session, event string, data any) {
	frame, err := encode(event, data)
	if err != nil {
		h.logger.Errorw("Realtime encode failed", "event", event, "error", err)
		return
	}
	if err := s.Write(frame); err != nil {
		h.logger.Debugw("Realtime write failed", "event", event, "error", err)
	}
}

func (h *Hub) sendError(s *melody.Session, code, message string) {
	h.send(s, EventError, ErrorData{Code: code, Message: message})
}

func sessionUser(s *melody.Session) string {
	v, _ := s.Get(userIDKey)
	id, _ := v.(string)
	return id
}

func sessionRooms(s *melody.Session) *roomSet {
	if v, ok := s.Get(roomsKey); ok {
		if rooms, ok := v.(*roomSet); ok {
			return rooms
		}
	}
	return newRoomSet()
}

type roomSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func newRoomSet() *roomSet {
	return &roomSet{ids: make(map[string]struct{})}
}

func (r *roomSet) add(id string) {
	r.mu.Lock()
	r.ids[id] = struct{}{}
	r.mu.Unlock()
}

func (r *roomSet) has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ids[id]
	return ok
}
