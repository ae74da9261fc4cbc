package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var (
	ErrListOrderCommandIsNotConstructed = errors.New(
		"ListOrderCommand must be created via NewListOrderCommand constructor",
	)
	ErrCropTypeIsRequired = errors.New("crop type is required")
)

// ListOrderCommand represents a farmer's request to put a crop batch on the
// market. The order starts in Listed status with its full volume available.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewListOrderCommand(actor, orderID, "tomato", "roma", volume, price, true)
//	if err != nil {
//	    return fmt.Errorf("invalid listing: %w", err)
//	}
//
//	handler := NewListOrderCommandHandler(uowFactory, estimator, publisher, policy)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to list order: %w", err)
//	}
type ListOrderCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	orderID     kernel.UUID
	cropType    string
	variety     string
	totalVolume kernel.Volume
	askingPrice kernel.Money
	coldChain   bool

	guard guard.ConstructorGuard
}

// NewListOrderCommand creates a command to list a new order.
// Validates the actor, order ID, crop type, and that volume and price are
// positive.
func NewListOrderCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	cropType string,
	variety string,
	totalVolume kernel.Volume,
	askingPrice kernel.Money,
	coldChain bool,
) (ListOrderCommand, error) {
	listCommand := ListOrderCommand{
		variety:   variety,
		coldChain: coldChain,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		listCommand.setActor(actor),
		listCommand.setOrderID(orderID),
		listCommand.setCropType(cropType),
		listCommand.setTotalVolume(totalVolume),
		listCommand.setAskingPrice(askingPrice),
	); err != nil {
		return ListOrderCommand{}, err
	}

	return listCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ListOrderCommand) Validate() error {
	return c.guard.Validate(ErrListOrderCommandIsNotConstructed)
}

// Actor returns the listing farmer.
func (c ListOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the unique identifier for the new order.
func (c ListOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CropType returns the crop being sold.
func (c ListOrderCommand) CropType() string {
	return c.cropType
}

// Variety returns the optional crop variety.
func (c ListOrderCommand) Variety() string {
	return c.variety
}

// TotalVolume returns the batch volume offered for sale.
func (c ListOrderCommand) TotalVolume() kernel.Volume {
	return c.totalVolume
}

// AskingPrice returns the farmer's asking price per kilogram.
func (c ListOrderCommand) AskingPrice() kernel.Money {
	return c.askingPrice
}

// ColdChain returns whether the batch requires refrigerated transport.
func (c ListOrderCommand) ColdChain() bool {
	return c.coldChain
}

func (c *ListOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ListOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ListOrderCommand) setCropType(cropType string) error {
	if cropType == "" {
		return ErrCropTypeIsRequired
	}

	c.cropType = cropType
	return nil
}

func (c *ListOrderCommand) setTotalVolume(totalVolume kernel.Volume) error {
	if totalVolume.IsZero() {
		return errors.New("total volume must be greater than 0")
	}

	c.totalVolume = totalVolume
	return nil
}

func (c *ListOrderCommand) setAskingPrice(askingPrice kernel.Money) error {
	if askingPrice.IsZero() {
		return errors.New("asking price must be greater than 0")
	}

	c.askingPrice = askingPrice
	return nil
}
