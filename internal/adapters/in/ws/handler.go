package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"agromarket/internal/core/application/ledger"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"nhooyr.io/websocket"
)

const (
	messageStateSync  = "STATE_SYNC"
	messageTransition = "FSM_TRANSITION"
	messagePing       = "PING"
	messagePong       = "PONG"

	writeTimeout = 10 * time.Second
)

// orderState is the order half of every stream message.
type orderState struct {
	Status          string    `json:"status"`
	Grade           string    `json:"grade,omitempty"`
	RemainingVolume int64     `json:"remainingVolume"`
	DeadlineAt      time.Time `json:"deadlineAt"`
}

// escrowState is the funds half. Omitted until a bid has been accepted.
type escrowState struct {
	Status   string `json:"status"`
	Total    int64  `json:"total"`
	Released int64  `json:"released"`
}

type streamMessage struct {
	Type        string       `json:"type"`
	OrderID     string       `json:"orderId,omitempty"`
	Seq         uint64       `json:"seq,omitempty"`
	Event       string       `json:"event,omitempty"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to,omitempty"`
	OrderState  *orderState  `json:"orderState,omitempty"`
	EscrowState *escrowState `json:"escrowState,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// StreamHandler upgrades HTTP requests to WebSocket streams. Each stream
// opens with a STATE_SYNC carrying the order's current snapshot, then relays
// one FSM_TRANSITION per committed status change. Client pings are answered
// with a pong immediately; the server never originates pings.
type StreamHandler struct {
	hub          *Hub
	ledger       *ledger.Ledger
	snapshot     queries.GetOrderSnapshotQueryHandler
	participants queries.GetOrderParticipantsQueryHandler
}

// NewStreamHandler creates a handler for the order stream endpoint.
func NewStreamHandler(
	hub *Hub,
	appLedger *ledger.Ledger,
	snapshot queries.GetOrderSnapshotQueryHandler,
	participants queries.GetOrderParticipantsQueryHandler,
) *StreamHandler {
	return &StreamHandler{
		hub:          hub,
		ledger:       appLedger,
		snapshot:     snapshot,
		participants: participants,
	}
}

// Stream handles GET /api/v1/orders/:orderID/stream.
func (h *StreamHandler) Stream(c echo.Context) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if authErr := h.ledger.AuthorizeSubscribe(actor); authErr != nil {
		return echo.NewHTTPError(http.StatusForbidden, authErr.Error())
	}

	orderID, err := kernel.UUIDFromString(c.Param("orderID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream closed")

	if streamErr := h.stream(c.Request().Context(), conn, actor, orderID); streamErr != nil {
		if status := websocket.CloseStatus(streamErr); status == -1 {
			_ = conn.Close(websocket.StatusInternalError, "stream error")
		}
	}

	return nil
}

func (h *StreamHandler) stream(
	ctx context.Context,
	conn *websocket.Conn,
	actor kernel.Actor,
	orderID kernel.UUID,
) error {
	// Subscribing before reading the snapshot guarantees no transition can
	// slip between the two. Events already reflected in the snapshot are
	// filtered out below by sequence number.
	updates, cancel := h.hub.Subscribe(orderID)
	defer cancel()

	syncSeq := h.hub.Seq(orderID)

	snap, err := h.takeSnapshot(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return conn.Close(websocket.StatusPolicyViolation, "unknown order")
		}
		return err
	}

	holds, err := h.holdsRole(ctx, actor, orderID)
	if err != nil {
		return err
	}
	if !holds {
		return conn.Close(websocket.StatusPolicyViolation, "no role on this order")
	}

	stateSync := streamMessage{
		Type:        messageStateSync,
		OrderID:     orderID.String(),
		Seq:         syncSeq,
		OrderState:  orderStateOf(snap),
		EscrowState: escrowStateOf(snap),
		Timestamp:   time.Now().UTC(),
	}
	if writeErr := writeMessage(ctx, conn, stateSync); writeErr != nil {
		return writeErr
	}

	pings := make(chan struct{}, 1)
	readErrs := make(chan error, 1)
	go readLoop(ctx, conn, pings, readErrs)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case readErr := <-readErrs:
			return readErr
		case <-pings:
			pong := streamMessage{Type: messagePong, Timestamp: time.Now().UTC()}
			if writeErr := writeMessage(ctx, conn, pong); writeErr != nil {
				return writeErr
			}
		case event, ok := <-updates:
			if !ok {
				// The hub dropped us for falling behind.
				return conn.Close(websocket.StatusTryAgainLater, "subscriber too slow")
			}
			if event.Seq <= syncSeq {
				continue
			}

			snap, err = h.takeSnapshot(ctx, orderID)
			if err != nil {
				return err
			}

			// An actor whose role lapsed with this transition loses the
			// stream: a replaced or declining hauler, a buyer whose last
			// bid closed.
			holds, err = h.holdsRole(ctx, actor, orderID)
			if err != nil {
				return err
			}
			if !holds {
				return conn.Close(websocket.StatusPolicyViolation, "subscription revoked")
			}

			transition := streamMessage{
				Type:        messageTransition,
				OrderID:     orderID.String(),
				Seq:         event.Seq,
				Event:       event.Event,
				From:        event.From,
				To:          event.To,
				OrderState:  orderStateOf(snap),
				EscrowState: escrowStateOf(snap),
				Timestamp:   event.At,
			}
			if writeErr := writeMessage(ctx, conn, transition); writeErr != nil {
				return writeErr
			}
		}
	}
}

func (h *StreamHandler) takeSnapshot(
	ctx context.Context,
	orderID kernel.UUID,
) (queries.GetOrderSnapshotQueryResponse, error) {
	query, err := queries.NewGetOrderSnapshotQuery(orderID)
	if err != nil {
		return queries.GetOrderSnapshotQueryResponse{}, err
	}

	return h.snapshot.Handle(ctx, query)
}

// holdsRole reports whether the actor currently holds a role on the order.
// Subscriptions are scoped to role-holders, both at open and after every
// relayed transition.
func (h *StreamHandler) holdsRole(
	ctx context.Context,
	actor kernel.Actor,
	orderID kernel.UUID,
) (bool, error) {
	query, err := queries.NewGetOrderParticipantsQuery(orderID)
	if err != nil {
		return false, err
	}

	roster, err := h.participants.Handle(ctx, query)
	if err != nil {
		return false, err
	}

	return roster.HoldsRole(actor), nil
}

// readLoop drains inbound frames. The only client message the protocol
// understands is a liveness ping; everything else is ignored.
func readLoop(ctx context.Context, conn *websocket.Conn, pings chan<- struct{}, readErrs chan<- error) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			readErrs <- err
			return
		}

		var msg streamMessage
		if unmarshalErr := json.Unmarshal(data, &msg); unmarshalErr != nil {
			continue
		}

		if msg.Type == messagePing {
			select {
			case pings <- struct{}{}:
			default:
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg streamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return conn.Write(writeCtx, websocket.MessageText, data)
}

func orderStateOf(snap queries.GetOrderSnapshotQueryResponse) *orderState {
	return &orderState{
		Status:          snap.Status.String(),
		Grade:           snap.Grade,
		RemainingVolume: snap.RemainingVolume.Hundredths(),
		DeadlineAt:      snap.DeadlineAt,
	}
}

func escrowStateOf(snap queries.GetOrderSnapshotQueryResponse) *escrowState {
	if snap.Escrow == nil {
		return nil
	}

	return &escrowState{
		Status:   snap.Escrow.Status.String(),
		Total:    snap.Escrow.Total.Cents(),
		Released: snap.Escrow.Released.Cents(),
	}
}

func actorFromHeaders(c echo.Context) (kernel.Actor, error) {
	role, err := kernel.RoleFromString(c.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.Actor{}, err
	}

	actorID, err := kernel.UUIDFromString(c.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(role, actorID)
}
