// ABOUTME: Operator notifier that posts order summaries to a Matrix room
// ABOUTME: Best-effort delivery; failures are reported to the engine, never retried here

package bridge

import (
	"context"
	"log/slog"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/id"
)

// OperatorNotifier delivers order summaries to the operator room.
type OperatorNotifier struct {
	client *mautrix.Client
	room   id.RoomID
	logger *slog.Logger
}

// NewOperatorNotifier creates a notifier posting to the given room with the
// bridge's Matrix client.
func NewOperatorNotifier(client *mautrix.Client, room string, logger *slog.Logger) *OperatorNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &OperatorNotifier{
		client: client,
		room:   id.RoomID(room),
		logger: logger.With("component", "notifier"),
	}
}

// Notify posts the rendered order summary to the operator room. The send
// uses its own timeout so a committed order's notification is attempted even
// if the originating request context is gone.
func (n *OperatorNotifier) Notify(ctx context.Context, summary string) error {
	sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := sendFormatted(sendCtx, n.client, n.room, summary); err != nil {
		return err
	}

	n.logger.Debug("operator notified", "room", n.room.String())
	return nil
}
