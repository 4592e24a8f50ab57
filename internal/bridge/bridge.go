// ABOUTME: Matrix channel adapter for the orderdesk conversation engine
// ABOUTME: Normalizes inbound room messages to engine events and renders actions back

package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"

	"github.com/workee/orderdesk/internal/config"
	"github.com/workee/orderdesk/internal/dedupe"
	"github.com/workee/orderdesk/internal/engine"
)

// Matrix API call timeouts.
const (
	typingTimeout  = 30 * time.Second
	networkTimeout = 10 * time.Second
	sendTimeout    = 30 * time.Second
)

// Dedupe window for retried event deliveries.
const (
	dedupeTTL     = 5 * time.Minute
	dedupeMaxSize = 10000
)

// Bridge connects a Matrix homeserver to the conversation engine.
type Bridge struct {
	config *config.Config
	matrix *mautrix.Client
	engine *engine.Engine
	seen   *dedupe.Cache
	logger *slog.Logger

	// ctx is the parent context for message processing goroutines
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBridge creates a Matrix bridge. Wire the engine in with SetEngine
// before calling Run.
func NewBridge(cfg *config.Config, logger *slog.Logger) (*Bridge, error) {
	client, err := mautrix.NewClient(cfg.Matrix.Homeserver, id.UserID(cfg.Matrix.UserID), cfg.Matrix.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("creating matrix client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Bridge{
		config: cfg,
		matrix: client,
		seen:   dedupe.New(dedupeTTL, dedupeMaxSize),
		logger: logger.With("component", "bridge"),
	}, nil
}

// Client exposes the underlying Matrix client, for the operator notifier.
func (b *Bridge) Client() *mautrix.Client {
	return b.matrix
}

// SetEngine wires the conversation engine in. The operator notifier shares
// this bridge's Matrix client, so the engine can only be constructed after
// the bridge; call this before Run.
func (b *Bridge) SetEngine(eng *engine.Engine) {
	b.engine = eng
}

// Run starts the sync loop and blocks until the context is cancelled or the
// sync fails.
func (b *Bridge) Run(ctx context.Context) error {
	if b.engine == nil {
		return fmt.Errorf("bridge has no engine; call SetEngine before Run")
	}

	b.logger.Info("starting matrix bridge",
		"homeserver", b.config.Matrix.Homeserver,
		"user_id", b.config.Matrix.UserID,
	)

	b.ctx, b.cancel = context.WithCancel(ctx)
	defer b.cancel()
	defer b.seen.Close()

	syncer, ok := b.matrix.Syncer.(*mautrix.DefaultSyncer)
	if !ok {
		return fmt.Errorf("unexpected syncer type: %T", b.matrix.Syncer)
	}
	syncer.OnEventType(event.EventMessage, b.handleMessageEvent)

	b.logger.Info("connecting to matrix homeserver")

	syncErr := make(chan error, 1)
	go func() {
		syncErr <- b.matrix.SyncWithContext(b.ctx)
	}()

	select {
	case <-ctx.Done():
		b.logger.Info("shutting down matrix bridge")
		b.cancel()
		return nil
	case err := <-syncErr:
		return fmt.Errorf("matrix sync failed: %w", err)
	}
}

// handleMessageEvent filters and normalizes an inbound room message.
func (b *Bridge) handleMessageEvent(ctx context.Context, evt *event.Event) {
	// Ignore our own messages
	if evt.Sender == id.UserID(b.config.Matrix.UserID) {
		return
	}

	content, ok := evt.Content.Parsed.(*event.MessageEventContent)
	if !ok {
		return
	}
	if content.MsgType != event.MsgText {
		return
	}

	roomID := evt.RoomID
	if !b.isRoomAllowed(roomID.String()) {
		b.logger.Debug("ignoring message from non-allowed room", "room", roomID.String())
		return
	}

	// A retried delivery of the same event must not advance the
	// conversation twice.
	if b.seen.Seen(evt.ID.String()) {
		b.logger.Debug("duplicate event ignored", "event_id", evt.ID.String())
		return
	}

	ev := parseEvent(evt.Sender.String(), content.Body)

	b.logger.Debug("received message",
		"room", roomID.String(),
		"sender", evt.Sender.String(),
	)

	// Process in a goroutine so the sync loop is never blocked on engine
	// I/O; per-user ordering is enforced by the session store.
	go b.process(b.ctx, roomID, ev)
}

// process runs one event through the engine and renders the resulting
// actions back into the room.
func (b *Bridge) process(ctx context.Context, roomID id.RoomID, ev engine.Event) {
	if b.config.Bridge.TypingIndicator {
		b.setTyping(roomID, true)
		defer b.setTyping(roomID, false)
	}

	for _, action := range b.engine.Handle(ctx, ev) {
		b.sendAction(roomID, action)
	}
}

// sendAction renders a single engine action into the room.
func (b *Bridge) sendAction(roomID id.RoomID, action engine.Action) {
	switch action.Kind {
	case engine.ActionCatalogPage:
		b.sendMarkdown(roomID, renderCatalogPage(action.Products))
	case engine.ActionPrompt, engine.ActionOrderConfirmed:
		b.sendMarkdown(roomID, action.Text)
	default:
		b.sendText(roomID, action.Text)
	}
}

// isRoomAllowed checks the room against the configured allow-list.
// An empty list allows all rooms.
func (b *Bridge) isRoomAllowed(roomID string) bool {
	if len(b.config.Bridge.AllowedRooms) == 0 {
		return true
	}
	for _, allowed := range b.config.Bridge.AllowedRooms {
		if allowed == roomID {
			return true
		}
	}
	return false
}

// setTyping sends a typing indicator to the room.
func (b *Bridge) setTyping(roomID id.RoomID, typing bool) {
	var timeout time.Duration
	if typing {
		timeout = typingTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), networkTimeout)
	defer cancel()
	if _, err := b.matrix.UserTyping(ctx, roomID, typing, timeout); err != nil {
		b.logger.Debug("failed to set typing indicator", "room", roomID.String(), "error", err)
	}
}

// sendText sends a plain text message to a room.
func (b *Bridge) sendText(roomID id.RoomID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if _, err := b.matrix.SendText(ctx, roomID, text); err != nil {
		b.logger.Error("failed to send message", "room", roomID.String(), "error", err)
	}
}

// sendMarkdown sends a formatted message, falling back to the raw Markdown
// as the plain-text body.
func (b *Bridge) sendMarkdown(roomID id.RoomID, md string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := sendFormatted(ctx, b.matrix, roomID, md); err != nil {
		b.logger.Error("failed to send formatted message", "room", roomID.String(), "error", err)
	}
}

// sendFormatted sends md as a Matrix m.text event with an HTML formatted body.
func sendFormatted(ctx context.Context, client *mautrix.Client, roomID id.RoomID, md string) error {
	content := event.MessageEventContent{
		MsgType:       event.MsgText,
		Body:          md,
		Format:        event.FormatHTML,
		FormattedBody: markdownToHTML(md),
	}
	_, err := client.SendMessageEvent(ctx, roomID, event.EventMessage, &content)
	return err
}
