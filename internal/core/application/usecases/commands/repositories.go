// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, persistence, and post-commit event publication.
package commands

import (
	"context"

	"agromarket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each composite names exactly the repositories its handlers touch.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BidRepoFactory provides access to the bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// EscrowRepoFactory provides access to the escrow repository within a transaction.
	EscrowRepoFactory interface {
		EscrowRepository() ports.EscrowRepository
	}

	// TransitionLogRepoFactory provides access to the audit trail within a transaction.
	TransitionLogRepoFactory interface {
		TransitionLogRepository() ports.TransitionLogRepository
	}

	// OrderUoW manages transactions for order-only operations: listing and
	// the deadline cancellation path.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TransitionLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BidUoW manages transactions for negotiation operations that touch
	// orders and bids.
	BidUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		TransitionLogRepoFactory
	}

	// BidUoWFactory creates new bid unit of work instances.
	BidUoWFactory interface {
		Create() BidUoW
	}

	// DealUoW manages transactions for bid acceptance, which locks the
	// order, closes sibling bids, and funds escrow atomically.
	DealUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		EscrowRepoFactory
		TransitionLogRepoFactory
	}

	// DealUoWFactory creates new deal unit of work instances.
	DealUoWFactory interface {
		Create() DealUoW
	}

	// LogisticsUoW manages transactions for hauler matching and assignment
	// responses.
	LogisticsUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		TransitionLogRepoFactory
	}

	// LogisticsUoWFactory creates new logistics unit of work instances.
	LogisticsUoWFactory interface {
		Create() LogisticsUoW
	}

	// VerificationUoW manages transactions for token verification, which
	// moves funds and advances the order in one commit.
	VerificationUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		EscrowRepoFactory
		TransitionLogRepoFactory
	}

	// VerificationUoWFactory creates new verification unit of work instances.
	VerificationUoWFactory interface {
		Create() VerificationUoW
	}

	// MarketUoW manages transactions across every aggregate. Used by
	// cancellation, which must close bids, decline assignments, and refund
	// escrow together.
	MarketUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		AssignmentRepoFactory
		EscrowRepoFactory
		TransitionLogRepoFactory
	}

	// MarketUoWFactory creates new market unit of work instances.
	MarketUoWFactory interface {
		Create() MarketUoW
	}
)
