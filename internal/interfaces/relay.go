package interfaces

import (
	"context"
	"encoding/json"

	"mocktail/internal/domain"
)

// DeviceRelay sends validated items to the dispensing controller
// (Adapter/Device). Exactly one attempt is made per call; the controller
// dispenses as a side effect, so a successful relay cannot be undone.
//
// On success the controller's raw JSON reply is returned verbatim. Failures
// wrap domain.ErrDeviceUnreachable (timeout or transport error, outcome
// unknown) or domain.ErrDeviceRejected (explicit non-success status).
type DeviceRelay interface {
	Relay(ctx context.Context, items []domain.OrderItem) (json.RawMessage, error)
}
