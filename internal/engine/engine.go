// ABOUTME: Conversation engine driving users from product selection to a committed order
// ABOUTME: All transitions for one user run serialized inside the session store

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/workee/orderdesk/internal/catalog"
	"github.com/workee/orderdesk/internal/session"
	"github.com/workee/orderdesk/internal/store"
)

// Catalog defines what the engine needs from the catalog provider.
type Catalog interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// Ledger defines what the engine needs from the order ledger.
type Ledger interface {
	AppendOrder(ctx context.Context, order *store.Order) (*store.Receipt, error)
}

// Notifier delivers an order summary to the operator channel. Delivery is
// best-effort: a failure is logged but never rolls back a committed order.
type Notifier interface {
	Notify(ctx context.Context, summary string) error
}

// Engine is the per-user conversation state machine. It owns the session
// lifecycle; collaborators are reached only through the narrow interfaces
// above.
type Engine struct {
	catalog  Catalog
	ledger   Ledger
	notifier Notifier
	sessions *session.Store
	logger   *slog.Logger
}

// New creates a conversation engine.
func New(cat Catalog, ledger Ledger, notifier Notifier, sessions *session.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  cat,
		ledger:   ledger,
		notifier: notifier,
		sessions: sessions,
		logger:   logger.With("component", "engine"),
	}
}

// Handle applies one inbound event and returns the outbound actions the
// channel adapter should render. Events for the same user are processed one
// at a time; side effects complete before the session advances.
func (e *Engine) Handle(ctx context.Context, ev Event) []Action {
	switch ev := ev.(type) {
	case Browse:
		return e.handleBrowse(ctx, ev)
	case Selection:
		return e.handleSelection(ctx, ev)
	case Text:
		return e.handleText(ctx, ev)
	case Cancel:
		return e.handleCancel(ev)
	default:
		e.logger.Warn("unknown event type dropped", "user", ev.User())
		return nil
	}
}

// handleBrowse returns the current catalog page. Browsing does not disturb
// an in-progress conversation.
func (e *Engine) handleBrowse(ctx context.Context, ev Browse) []Action {
	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		e.logger.Error("catalog fetch failed", "user", ev.UserID, "error", err)
		return []Action{{Kind: ActionNotice, UserID: ev.UserID, Text: noticeCatalogDown}}
	}
	return []Action{{Kind: ActionCatalogPage, UserID: ev.UserID, Products: products}}
}

// handleSelection starts a conversation for the selected product. The
// product is resolved against a catalog snapshot taken now and captured in
// the session; it is never re-resolved at commit time. If the user already
// has a live session, the new selection overwrites it: last selection wins,
// the abandoned flow is discarded on purpose.
func (e *Engine) handleSelection(ctx context.Context, ev Selection) []Action {
	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		e.logger.Error("catalog fetch failed", "user", ev.UserID, "error", err)
		return []Action{{Kind: ActionNotice, UserID: ev.UserID, Text: noticeCatalogDown}}
	}

	if ev.ProductIndex < 0 || ev.ProductIndex >= len(products) {
		return []Action{{Kind: ActionValidationError, UserID: ev.UserID, Text: noticeBadSelection}}
	}
	product := products[ev.ProductIndex]

	var actions []Action
	e.sessions.Do(ev.UserID, func(prev *session.Session) *session.Session {
		if prev != nil {
			e.logger.Debug("selection replaces in-progress session",
				"user", ev.UserID,
				"old_product", prev.Product.Name,
				"new_product", product.Name)
		}
		actions = append(actions, Action{Kind: ActionPrompt, UserID: ev.UserID, Text: promptQuantity(product)})
		return session.New(ev.UserID, product)
	})
	return actions
}

// handleText feeds a free-form reply into the current step. Replies with no
// live session get a neutral notice and never create one.
func (e *Engine) handleText(ctx context.Context, ev Text) []Action {
	var actions []Action
	e.sessions.Do(ev.UserID, func(sess *session.Session) *session.Session {
		if sess == nil {
			actions = append(actions, Action{Kind: ActionNotice, UserID: ev.UserID, Text: noticeNothingInProgress})
			return nil
		}

		switch sess.State {
		case session.StateAwaitingQuantity:
			qty, ok := ValidateQuantity(ev.Body)
			if !ok {
				actions = append(actions, Action{Kind: ActionValidationError, UserID: ev.UserID, Text: rejectQuantity})
				sess.Touch()
				return sess
			}
			sess.Quantity = qty
			sess.State = session.StateAwaitingName
			sess.Touch()
			actions = append(actions, Action{Kind: ActionPrompt, UserID: ev.UserID, Text: promptName})
			return sess

		case session.StateAwaitingName:
			name, ok := ValidateNonEmpty(ev.Body)
			if !ok {
				actions = append(actions, Action{Kind: ActionValidationError, UserID: ev.UserID, Text: rejectName})
				sess.Touch()
				return sess
			}
			sess.CustomerName = name
			sess.State = session.StateAwaitingPhone
			sess.Touch()
			actions = append(actions, Action{Kind: ActionPrompt, UserID: ev.UserID, Text: promptPhone})
			return sess

		case session.StateAwaitingPhone:
			phone, ok := ValidateNonEmpty(ev.Body)
			if !ok {
				actions = append(actions, Action{Kind: ActionValidationError, UserID: ev.UserID, Text: rejectPhone})
				sess.Touch()
				return sess
			}
			sess.CustomerPhone = phone
			sess.State = session.StateAwaitingAddress
			sess.Touch()
			actions = append(actions, Action{Kind: ActionPrompt, UserID: ev.UserID, Text: promptAddress})
			return sess

		case session.StateAwaitingAddress:
			address, ok := ValidateNonEmpty(ev.Body)
			if !ok {
				actions = append(actions, Action{Kind: ActionValidationError, UserID: ev.UserID, Text: rejectAddress})
				sess.Touch()
				return sess
			}
			return e.commit(ctx, sess, address, &actions)

		default:
			e.logger.Warn("session in unknown state, dropping", "user", ev.UserID, "state", string(sess.State))
			return nil
		}
	})
	return actions
}

// handleCancel terminates the conversation. Cancelling with nothing in
// progress is a silent no-op, which makes a second cancel idempotent.
func (e *Engine) handleCancel(ev Cancel) []Action {
	var actions []Action
	e.sessions.Do(ev.UserID, func(sess *session.Session) *session.Session {
		if sess == nil {
			return nil
		}
		e.logger.Info("order cancelled", "user", ev.UserID, "product", sess.Product.Name, "state", string(sess.State))
		actions = append(actions, Action{Kind: ActionOrderCancelled, UserID: ev.UserID, Text: cancelledText})
		return nil
	})
	return actions
}

// commit finalizes the order: append to the ledger first, then notify the
// operator, then confirm to the user. If the ledger append fails the session
// stays at the address step and the user is asked to retry - an order that
// was never durably recorded must not be announced. A notification failure
// after a successful append is logged and otherwise ignored.
func (e *Engine) commit(ctx context.Context, sess *session.Session, address string, actions *[]Action) *session.Session {
	order := &store.Order{
		ID:              uuid.New().String(),
		CustomerName:    sess.CustomerName,
		CustomerPhone:   sess.CustomerPhone,
		CustomerAddress: address,
		ProductName:     sess.Product.Name,
		Quantity:        sess.Quantity,
		PlacedAt:        time.Now(),
	}

	receipt, err := e.ledger.AppendOrder(ctx, order)
	if err != nil {
		e.logger.Error("ledger append failed",
			"user", sess.UserID,
			"order_id", order.ID,
			"error", err)
		*actions = append(*actions, Action{Kind: ActionNotice, UserID: sess.UserID, Text: noticeLedgerRetry})
		sess.Touch()
		return sess
	}

	if err := e.notifier.Notify(ctx, renderOperatorSummary(order)); err != nil {
		e.logger.Error("operator notification failed",
			"order_id", order.ID,
			"error", err)
	}

	e.logger.Info("order committed",
		"user", sess.UserID,
		"order_id", receipt.OrderID,
		"seq", receipt.Seq,
		"product", order.ProductName,
		"quantity", order.Quantity)

	*actions = append(*actions, Action{Kind: ActionOrderConfirmed, UserID: sess.UserID, Text: confirmedText})
	return nil
}
