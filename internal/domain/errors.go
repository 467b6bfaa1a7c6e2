package domain

import "errors"

var (
	// ErrInvalidOrder marks a structurally or semantically invalid order.
	// Nothing has been sent to the controller when this is returned.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrDeviceUnreachable marks a relay attempt whose outcome is unknown:
	// the request timed out or failed at the transport level, so the
	// controller may or may not have acted on it.
	ErrDeviceUnreachable = errors.New("drink controller unreachable")

	// ErrDeviceRejected marks a relay the controller explicitly refused
	// with a non-success HTTP status. The order was not dispensed.
	ErrDeviceRejected = errors.New("drink controller rejected the order")

	// ErrHistoryNotRecorded marks the gap between the irreversible dispense
	// and the durable record: the controller accepted the order but the
	// history append failed afterwards.
	ErrHistoryNotRecorded = errors.New("order dispensed but history not recorded")
)
