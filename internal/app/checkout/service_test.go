package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

type fakeStore struct {
	history   []domain.OrderItem
	appendErr error
}

func (s *fakeStore) Load(ctx context.Context) ([]domain.OrderItem, error) {
	return s.history, nil
}

func (s *fakeStore) Append(ctx context.Context, items []domain.OrderItem) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.history = append(s.history, items...)
	return nil
}

type fakeRelay struct {
	calls int
	reply json.RawMessage
	err   error
}

func (r *fakeRelay) Relay(ctx context.Context, items []domain.OrderItem) (json.RawMessage, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.reply, nil
}

type fakeNotifier struct {
	calls int
	last  interfaces.DispensedMessage
	err   error
}

func (n *fakeNotifier) PublishDispensed(ctx context.Context, msg interfaces.DispensedMessage) error {
	n.calls++
	n.last = msg
	return n.err
}

func testLogger() logger.Logger {
	return logger.NewWithOutput("test", "error", io.Discard)
}

func validItems() []domain.OrderItem {
	return []domain.OrderItem{
		{DrinkID: "voltage_fizz", DrinkName: "Voltage Fizz", Quantity: 2, Calories: 117},
		{DrinkID: "base_water", DrinkName: "Water", Quantity: 1, Calories: 0},
	}
}

func TestCheckoutInvalidOrderSkipsRelayAndStore(t *testing.T) {
	store := &fakeStore{}
	relay := &fakeRelay{reply: json.RawMessage(`{"ok":true}`)}
	svc := NewService(store, relay, nil, testLogger())

	items := validItems()
	items[1].DrinkName = ""

	result, err := svc.Checkout(context.Background(), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "drinkName")

	assert.Equal(t, 0, relay.calls, "relay must not be called for invalid orders")
	assert.Empty(t, store.history)
}

func TestCheckoutRelayFailureLeavesHistoryUntouched(t *testing.T) {
	prior := []domain.OrderItem{{DrinkID: "cola_spark", DrinkName: "Cola Spark", Quantity: 1, Calories: 81}}
	store := &fakeStore{history: append([]domain.OrderItem(nil), prior...)}
	relay := &fakeRelay{err: fmt.Errorf("%w: connection refused", domain.ErrDeviceUnreachable)}
	svc := NewService(store, relay, nil, testLogger())

	result, err := svc.Checkout(context.Background(), validItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeviceUnreachable)
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "connection refused")

	assert.Equal(t, 1, relay.calls)
	assert.Equal(t, prior, store.history, "history must be unchanged after a relay failure")
}

func TestCheckoutDeviceRejectionLeavesHistoryUntouched(t *testing.T) {
	store := &fakeStore{}
	relay := &fakeRelay{err: fmt.Errorf("%w: status 422", domain.ErrDeviceRejected)}
	svc := NewService(store, relay, nil, testLogger())

	result, err := svc.Checkout(context.Background(), validItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeviceRejected)
	assert.Equal(t, "error", result.Status)
	assert.Empty(t, store.history)
}

func TestCheckoutSuccessAppendsItemsInOrder(t *testing.T) {
	prior := []domain.OrderItem{{DrinkID: "cola_spark", DrinkName: "Cola Spark", Quantity: 1, Calories: 81}}
	store := &fakeStore{history: append([]domain.OrderItem(nil), prior...)}
	relay := &fakeRelay{reply: json.RawMessage(`{"status":"pouring"}`)}
	svc := NewService(store, relay, nil, testLogger())

	items := validItems()
	result, err := svc.Checkout(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Status)
	assert.JSONEq(t, `{"status":"pouring"}`, string(result.DeviceReply))
	assert.Equal(t, append(prior, items...), store.history)
}

func TestCheckoutPersistFailureIsReportedWithDeviceReply(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("disk full")}
	relay := &fakeRelay{reply: json.RawMessage(`{"status":"pouring"}`)}
	svc := NewService(store, relay, nil, testLogger())

	result, err := svc.Checkout(context.Background(), validItems())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHistoryNotRecorded)

	// The dispense happened; the caller must learn both facts.
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "not recorded")
	assert.NotEmpty(t, result.DeviceReply)
}

func TestCheckoutPublishesDispenseNotification(t *testing.T) {
	store := &fakeStore{}
	relay := &fakeRelay{reply: json.RawMessage(`{}`)}
	notifier := &fakeNotifier{}
	svc := NewService(store, relay, notifier, testLogger())

	_, err := svc.Checkout(context.Background(), validItems())
	require.NoError(t, err)

	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, 3, notifier.last.TotalQuantity)
	assert.Len(t, notifier.last.Items, 2)
}

func TestCheckoutNotifierFailureDoesNotFailCheckout(t *testing.T) {
	store := &fakeStore{}
	relay := &fakeRelay{reply: json.RawMessage(`{}`)}
	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := NewService(store, relay, notifier, testLogger())

	result, err := svc.Checkout(context.Background(), validItems())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Len(t, store.history, 2)
}

func TestCheckoutFailedRelayIsNotAnnounced(t *testing.T) {
	store := &fakeStore{}
	relay := &fakeRelay{err: fmt.Errorf("%w: timeout", domain.ErrDeviceUnreachable)}
	notifier := &fakeNotifier{}
	svc := NewService(store, relay, notifier, testLogger())

	_, err := svc.Checkout(context.Background(), validItems())
	require.Error(t, err)
	assert.Equal(t, 0, notifier.calls, "failed checkouts must not be announced")
}
