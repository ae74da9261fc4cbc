package order

// Event names recorded in the transition log and carried on synchronization
// events. Stable identifiers: clients and audits match on them.
const (
	EventOrderListed          = "ORDER_LISTED"
	EventBidSubmitted         = "BID_SUBMITTED"
	EventBidWithdrawn         = "BID_WITHDRAWN"
	EventBidRejected          = "BID_REJECTED"
	EventBidAccepted          = "BID_ACCEPTED"
	EventReturnedToListing    = "RETURNED_TO_LISTING"
	EventHaulerMatched        = "HAULER_MATCHED"
	EventAssignmentAccepted   = "ASSIGNMENT_ACCEPTED"
	EventAssignmentDeclined   = "ASSIGNMENT_DECLINED"
	EventPickupVerified       = "PICKUP_VERIFIED"
	EventDeliveryVerified     = "DELIVERY_VERIFIED"
	EventSettlementFinalized  = "SETTLEMENT_FINALIZED"
	EventOrderCancelled       = "ORDER_CANCELLED"
	EventDeadlineCancellation = "DEADLINE_CANCELLATION"
)
