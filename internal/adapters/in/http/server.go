// Package http exposes the marketplace over REST. Every mutating route goes
// through the ledger, which authorizes the actor and serializes commands per
// order; read routes hit the query handlers directly.
package http

import (
	"errors"
	"net/http"
	"time"

	"agromarket/internal/adapters/in/ws"
	"agromarket/internal/core/application/ledger"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the application layer.
type Server struct {
	ledger *ledger.Ledger
	stream *ws.StreamHandler

	getOpenOrdersHandler    queries.GetOpenOrdersQueryHandler
	getOrderSnapshotHandler queries.GetOrderSnapshotQueryHandler
}

// NewServer creates the HTTP server.
func NewServer(
	appLedger *ledger.Ledger,
	stream *ws.StreamHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderSnapshotHandler queries.GetOrderSnapshotQueryHandler,
) *Server {
	return &Server{
		ledger:                  appLedger,
		stream:                  stream,
		getOpenOrdersHandler:    getOpenOrdersHandler,
		getOrderSnapshotHandler: getOrderSnapshotHandler,
	}
}

// RegisterRoutes mounts all marketplace routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.GetOpenOrders)
	api.POST("/orders", s.ListOrder)
	api.GET("/orders/:orderID", s.GetOrderSnapshot)
	api.GET("/orders/:orderID/stream", s.stream.Stream)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)

	api.POST("/orders/:orderID/bids", s.SubmitBid)
	api.DELETE("/orders/:orderID/bids/:bidID", s.WithdrawBid)
	api.POST("/orders/:orderID/bids/:bidID/reject", s.RejectBid)
	api.POST("/orders/:orderID/bids/:bidID/accept", s.AcceptBid)

	api.POST("/orders/:orderID/match", s.RequestHaulerMatch)
	api.POST("/orders/:orderID/assignments/:assignmentID/accept", s.AcceptAssignment)
	api.POST("/orders/:orderID/assignments/:assignmentID/decline", s.DeclineAssignment)

	api.POST("/orders/:orderID/pickup-verification", s.VerifyPickup)
	api.POST("/orders/:orderID/delivery-verification", s.VerifyDelivery)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// rejectionStatus maps a rejection's reason code to an HTTP status. Errors
// outside the taxonomy are treated as validation failures when they come
// from command construction, and as internal errors otherwise.
func rejectionStatus(code string) int {
	switch code {
	case "UNAUTHORIZED":
		return http.StatusForbidden
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_TRANSITION", "CONFLICT":
		return http.StatusConflict
	case "TOKEN_INVALID":
		return http.StatusBadRequest
	case "CAPACITY_EXCEEDED":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func rejectionResponse(c echo.Context, err error) error {
	code := errs.ReasonCode(err)
	if code == "" {
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    "INTERNAL",
			Message: "command failed",
		})
	}

	return c.JSON(rejectionStatus(code), Error{Code: code, Message: err.Error()})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, Error{Code: "INVALID_REQUEST", Message: err.Error()})
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

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("orderID"))
}

// GetOpenOrders handles GET /api/v1/orders.
func (s *Server) GetOpenOrders(c echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    "INTERNAL",
			Message: "failed to retrieve open orders",
		})
	}

	response := make([]OpenOrder, len(orders))
	for i, open := range orders {
		response[i] = OpenOrder{
			ID:              open.ID.String(),
			FarmerID:        open.FarmerID.String(),
			CropType:        open.CropType,
			Variety:         open.Variety,
			Grade:           open.Grade,
			RemainingVolume: open.RemainingVolume.Hundredths(),
			AskingPrice:     open.AskingPrice.Cents(),
			ColdChain:       open.ColdChain,
			Status:          open.Status.String(),
			DeadlineAt:      open.DeadlineAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrderSnapshot handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrderSnapshot(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	query, err := queries.NewGetOrderSnapshotQuery(orderID)
	if err != nil {
		return badRequest(c, err)
	}

	snap, err := s.getOrderSnapshotHandler.Handle(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return rejectionResponse(c, err)
		}
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    "INTERNAL",
			Message: "failed to retrieve order",
		})
	}

	return c.JSON(http.StatusOK, snapshotResponse(snap))
}

// ListOrder handles POST /api/v1/orders.
func (s *Server) ListOrder(c echo.Context) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return badRequest(c, err)
	}

	var body NewOrder
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	totalVolume, err := kernel.NewVolume(body.TotalVolume)
	if err != nil {
		return badRequest(c, err)
	}

	askingPrice, err := kernel.NewMoney(body.AskingPrice)
	if err != nil {
		return badRequest(c, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewListOrderCommand(
		actor, orderID, body.CropType, body.Variety, totalVolume, askingPrice, body.ColdChain)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.ledger.ListOrder(c.Request().Context(), cmd); err != nil {
		return rejectionResponse(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: orderID.String()})
}

// SubmitBid handles POST /api/v1/orders/:orderID/bids.
func (s *Server) SubmitBid(c echo.Context) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return badRequest(c, err)
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	var body NewBid
	if err = c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	pricePerKg, err := kernel.NewMoney(body.PricePerKg)
	if err != nil {
		return badRequest(c, err)
	}

	volume, err := kernel.NewVolume(body.Volume)
	if err != nil {
		return badRequest(c, err)
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(
		actor, bidID, orderID, pricePerKg, volume, body.Message, body.ExpiresAt)
	if err != nil {
		return badRequest(c, err)
	}

	if err = s.ledger.SubmitBid(c.Request().Context(), cmd); err != nil {
		return rejectionResponse(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: bidID.String()})
}

// WithdrawBid handles DELETE /api/v1/orders/:orderID/bids/:bidID.
func (s *Server) WithdrawBid(c echo.Context) error {
	return s.bidAction(c, func(actor kernel.Actor, orderID, bidID kernel.UUID) error {
		cmd, err := commands.NewWithdrawBidCommand(actor, orderID, bidID)
		if err != nil {
			return err
		}
		return s.ledger.WithdrawBid(c.Request().Context(), cmd)
	})
}

// RejectBid handles POST /api/v1/orders/:orderID/bids/:bidID/reject.
func (s *Server) RejectBid(c echo.Context) error {
	return s.bidAction(c, func(actor kernel.Actor, orderID, bidID kernel.UUID) error {
		cmd, err := commands.NewRejectBidCommand(actor, orderID, bidID)
		if err != nil {
			return err
		}
		return s.ledger.RejectBid(c.Request().Context(), cmd)
	})
}

// AcceptBid handles POST /api/v1/orders/:orderID/bids/:bidID/accept. The
// response is the only place the raw verification tokens ever appear: the
// farmer hands them to the buyer's pickup party and the delivery recipient,
// and the backend keeps digests only.
func (s *Server) AcceptBid(c echo.Context) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return badRequest(c, err)
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewAcceptBidCommand(actor, orderID, bidID)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.ledger.AcceptBid(c.Request().Context(), cmd)
	if err != nil {
		return rejectionResponse(c, err)
	}

	return c.JSON(http.StatusOK, EscrowFunded{
		EscrowID:         result.EscrowID.String(),
		Total:            result.Total.Cents(),
		PickupToken:      result.Tokens.Pickup,
		DeliveryToken:    result.Tokens.Delivery,
		TokenDisposition: "store these now; they are not retrievable later",
	})
}

// RequestHaulerMatch handles POST /api/v1/orders/:orderID/match.
func (s *Server) RequestHaulerMatch(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRequestHaulerMatchCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.ledger.RequestHaulerMatch(c.Request().Context(), cmd)
	})
}

// AcceptAssignment handles POST /api/v1/orders/:orderID/assignments/:assignmentID/accept.
func (s *Server) AcceptAssignment(c echo.Context) error {
	return s.assignmentAction(c, func(actor kernel.Actor, orderID, assignmentID kernel.UUID) error {
		cmd, err := commands.NewAcceptAssignmentCommand(actor, orderID, assignmentID)
		if err != nil {
			return err
		}
		return s.ledger.AcceptAssignment(c.Request().Context(), cmd)
	})
}

// DeclineAssignment handles POST /api/v1/orders/:orderID/assignments/:assignmentID/decline.
func (s *Server) DeclineAssignment(c echo.Context) error {
	return s.assignmentAction(c, func(actor kernel.Actor, orderID, assignmentID kernel.UUID) error {
		cmd, err := commands.NewDeclineAssignmentCommand(actor, orderID, assignmentID)
		if err != nil {
			return err
		}
		return s.ledger.DeclineAssignment(c.Request().Context(), cmd)
	})
}

// VerifyPickup handles POST /api/v1/orders/:orderID/pickup-verification.
func (s *Server) VerifyPickup(c echo.Context) error {
	return s.verification(c, func(actor kernel.Actor, orderID kernel.UUID, token string, at *kernel.GeoPoint) error {
		cmd, err := commands.NewVerifyPickupCommand(actor, orderID, token, at)
		if err != nil {
			return err
		}
		return s.ledger.VerifyPickup(c.Request().Context(), cmd)
	})
}

// VerifyDelivery handles POST /api/v1/orders/:orderID/delivery-verification.
func (s *Server) VerifyDelivery(c echo.Context) error {
	return s.verification(c, func(actor kernel.Actor, orderID kernel.UUID, token string, at *kernel.GeoPoint) error {
		cmd, err := commands.NewVerifyDeliveryCommand(actor, orderID, token, at)
		if err != nil {
			return err
		}
		return s.ledger.VerifyDelivery(c.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		return s.ledger.CancelOrder(c.Request().Context(), cmd)
	})
}

func (s *Server) orderAction(c echo.Context, run func(kernel.Actor, kernel.UUID) error) error {
	actor, err := actorFromHeaders(c)
	if err != nil {
		return badRequest(c, err)
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err = run(actor, orderID); err != nil {
		if errs.ReasonCode(err) == "" {
			return badRequest(c, err)
		}
		return rejectionResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) bidAction(c echo.Context, run func(kernel.Actor, kernel.UUID, kernel.UUID) error) error {
	bidID, err := kernel.UUIDFromString(c.Param("bidID"))
	if err != nil {
		return badRequest(c, err)
	}

	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		return run(actor, orderID, bidID)
	})
}

func (s *Server) assignmentAction(c echo.Context, run func(kernel.Actor, kernel.UUID, kernel.UUID) error) error {
	assignmentID, err := kernel.UUIDFromString(c.Param("assignmentID"))
	if err != nil {
		return badRequest(c, err)
	}

	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		return run(actor, orderID, assignmentID)
	})
}

func (s *Server) verification(
	c echo.Context,
	run func(kernel.Actor, kernel.UUID, string, *kernel.GeoPoint) error,
) error {
	var body TokenPresentation
	if err := c.Bind(&body); err != nil {
		return badRequest(c, err)
	}

	var at *kernel.GeoPoint
	if body.Location != nil {
		point, err := kernel.NewGeoPoint(body.Location.Latitude, body.Location.Longitude)
		if err != nil {
			return badRequest(c, err)
		}
		at = &point
	}

	return s.orderAction(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		return run(actor, orderID, body.Token, at)
	})
}

func snapshotResponse(snap queries.GetOrderSnapshotQueryResponse) OrderSnapshot {
	response := OrderSnapshot{
		ID:              snap.ID.String(),
		FarmerID:        snap.FarmerID.String(),
		CropType:        snap.CropType,
		Variety:         snap.Variety,
		Grade:           snap.Grade,
		TotalVolume:     snap.TotalVolume.Hundredths(),
		RemainingVolume: snap.RemainingVolume.Hundredths(),
		AskingPrice:     snap.AskingPrice.Cents(),
		ColdChain:       snap.ColdChain,
		Status:          snap.Status.String(),
		DeadlineAt:      snap.DeadlineAt,
		UpdatedAt:       snap.UpdatedAt,
	}

	if snap.BuyerID != nil {
		buyerID := snap.BuyerID.String()
		response.BuyerID = &buyerID
	}
	if snap.HaulerID != nil {
		haulerID := snap.HaulerID.String()
		response.HaulerID = &haulerID
	}
	if snap.AcceptedPrice != nil {
		acceptedPrice := snap.AcceptedPrice.Cents()
		response.AcceptedPrice = &acceptedPrice
	}
	if snap.Escrow != nil {
		response.Escrow = &EscrowView{
			Total:                snap.Escrow.Total.Cents(),
			Released:             snap.Escrow.Released.Cents(),
			PickupReleasePercent: snap.Escrow.PickupReleasePercent,
			Status:               snap.Escrow.Status.String(),
		}
	}

	response.History = make([]TransitionView, len(snap.History))
	for i, entry := range snap.History {
		response.History[i] = TransitionView{
			From:       entry.From.String(),
			To:         entry.To.String(),
			Event:      entry.Event,
			ActorRole:  entry.ActorRole,
			OccurredAt: entry.OccurredAt,
		}
	}

	return response
}

// Request and response bodies.

// NewOrder is the body of POST /orders. Volume is in hundredths of a
// kilogram, price in cents per kilogram.
type NewOrder struct {
	CropType    string `json:"cropType"`
	Variety     string `json:"variety"`
	TotalVolume int64  `json:"totalVolume"`
	AskingPrice int64  `json:"askingPrice"`
	ColdChain   bool   `json:"coldChain"`
}

// NewBid is the body of POST /orders/:orderID/bids.
type NewBid struct {
	PricePerKg int64      `json:"pricePerKg"`
	Volume     int64      `json:"volume"`
	Message    string     `json:"message"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// TokenPresentation is the body of the two verification routes.
type TokenPresentation struct {
	Token    string    `json:"token"`
	Location *Location `json:"location,omitempty"`
}

// Location is a GPS coordinate attached to a token presentation.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Created reports the identifier of a newly created resource.
type Created struct {
	ID string `json:"id"`
}

// EscrowFunded is returned once from bid acceptance. It is the only
// response that ever carries the raw verification tokens.
type EscrowFunded struct {
	EscrowID         string `json:"escrowId"`
	Total            int64  `json:"total"`
	PickupToken      string `json:"pickupToken"`
	DeliveryToken    string `json:"deliveryToken"`
	TokenDisposition string `json:"tokenDisposition"`
}

// OpenOrder is one row of the open order board.
type OpenOrder struct {
	ID              string    `json:"id"`
	FarmerID        string    `json:"farmerId"`
	CropType        string    `json:"cropType"`
	Variety         string    `json:"variety"`
	Grade           string    `json:"grade,omitempty"`
	RemainingVolume int64     `json:"remainingVolume"`
	AskingPrice     int64     `json:"askingPrice"`
	ColdChain       bool      `json:"coldChain"`
	Status          string    `json:"status"`
	DeadlineAt      time.Time `json:"deadlineAt"`
}

// OrderSnapshot is the full read model of one order.
type OrderSnapshot struct {
	ID              string           `json:"id"`
	FarmerID        string           `json:"farmerId"`
	BuyerID         *string          `json:"buyerId,omitempty"`
	HaulerID        *string          `json:"haulerId,omitempty"`
	CropType        string           `json:"cropType"`
	Variety         string           `json:"variety"`
	Grade           string           `json:"grade,omitempty"`
	TotalVolume     int64            `json:"totalVolume"`
	RemainingVolume int64            `json:"remainingVolume"`
	AskingPrice     int64            `json:"askingPrice"`
	AcceptedPrice   *int64           `json:"acceptedPrice,omitempty"`
	ColdChain       bool             `json:"coldChain"`
	Status          string           `json:"status"`
	DeadlineAt      time.Time        `json:"deadlineAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	Escrow          *EscrowView      `json:"escrow,omitempty"`
	History         []TransitionView `json:"history"`
}

// EscrowView is the escrow summary inside a snapshot.
type EscrowView struct {
	Total                int64  `json:"total"`
	Released             int64  `json:"released"`
	PickupReleasePercent int    `json:"pickupReleasePercent"`
	Status               string `json:"status"`
}

// TransitionView is one audit trail entry inside a snapshot.
type TransitionView struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	Event      string    `json:"event"`
	ActorRole  string    `json:"actorRole"`
	OccurredAt time.Time `json:"occurredAt"`
}
