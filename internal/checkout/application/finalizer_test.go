package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLedger struct {
	mu        sync.Mutex
	processed map[string]bool
	emailed   map[string]bool
	readErr   error
}

func newMockLedger() *mockLedger {
	return &mockLedger{processed: make(map[string]bool), emailed: make(map[string]bool)}
}

func (m *mockLedger) HasProcessed(ctx context.Context, orderNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return false, m.readErr
	}
	return m.processed[orderNumber], nil
}

func (m *mockLedger) MarkProcessed(ctx context.Context, orderNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed[orderNumber] = true
	return nil
}

func (m *mockLedger) HasEmailed(ctx context.Context, orderNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emailed[orderNumber], nil
}

func (m *mockLedger) MarkEmailed(ctx context.Context, orderNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailed[orderNumber] = true
	return nil
}

type mockSnapshots struct {
	addrs map[string]domain.ShippingAddress
}

func newMockSnapshots() *mockSnapshots {
	return &mockSnapshots{addrs: make(map[string]domain.ShippingAddress)}
}

func (m *mockSnapshots) Put(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	m.addrs[userID] = addr
	return nil
}

func (m *mockSnapshots) Get(ctx context.Context, userID string) (*domain.ShippingAddress, error) {
	if addr, ok := m.addrs[userID]; ok {
		return &addr, nil
	}
	return nil, nil
}

func (m *mockSnapshots) Delete(ctx context.Context, userID string) error {
	delete(m.addrs, userID)
	return nil
}

type mockCartPort struct {
	mu         sync.Mutex
	lines      []domain.CartLine
	getErr     error
	clearCalls int
	clearErr   error
}

func (m *mockCartPort) GetLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lines, nil
}

func (m *mockCartPort) Clear(ctx context.Context, userID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.clearCalls++
	m.lines = nil
	return nil
}

type mockOrderWriter struct {
	mu        sync.Mutex
	created   []OrderWriteInput
	createErr error
}

func (m *mockOrderWriter) Create(ctx context.Context, input OrderWriteInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, input)
	return nil
}

type mockMailer struct {
	mu      sync.Mutex
	sent    []ConfirmationInput
	sendErr error
}

func (m *mockMailer) SendConfirmation(ctx context.Context, input ConfirmationInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, input)
	return nil
}

type finalizerFixture struct {
	finalizer *Finalizer
	ledger    *mockLedger
	snapshots *mockSnapshots
	cart      *mockCartPort
	orders    *mockOrderWriter
	mailer    *mockMailer
}

func newFinalizerFixture() *finalizerFixture {
	f := &finalizerFixture{
		ledger:    newMockLedger(),
		snapshots: newMockSnapshots(),
		cart: &mockCartPort{lines: []domain.CartLine{
			{ProductID: "p1", Name: "6205-2RS Deep Groove", PartNumber: "6205-2RS-25x52x15", Price: decimal.RequireFromString("100.00"), Quantity: 2},
		}},
		orders: &mockOrderWriter{},
		mailer: &mockMailer{},
	}
	f.snapshots.addrs["user-1"] = domain.ShippingAddress{Name: "Dana Smith", Address: "100 Industrial Way", City: "Hamilton", Province: "ON", PostalCode: "L8N 1A1", Country: "CA"}
	f.finalizer = NewFinalizer(f.ledger, f.snapshots, f.cart, f.orders, f.mailer, nil)
	return f
}

func TestFinalize(t *testing.T) {
	f := newFinalizerFixture()

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
		Email:      "dana@example.com",
	})
	require.NoError(t, err)

	assert.False(t, result.AlreadyProcessed)
	assert.True(t, result.OrderCreated)
	assert.True(t, result.EmailSent)
	assert.True(t, result.CartCleared)

	require.Len(t, f.orders.created, 1)
	assert.Equal(t, "ord-1", f.orders.created[0].OrderNumber)
	assert.Equal(t, int64(24100), f.orders.created[0].Totals.TotalMinor)
	assert.Equal(t, "Dana Smith", f.orders.created[0].ShippingAddress.Name)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "dana@example.com", f.mailer.sent[0].Email)

	assert.Equal(t, 1, f.cart.clearCalls)
	assert.True(t, f.ledger.processed["ord-1"])
	assert.Empty(t, f.snapshots.addrs)
}

func TestFinalize_GeneratesTokenWhenAbsent(t *testing.T) {
	f := newFinalizerFixture()

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{UserID: "user-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderNumber)
	require.Len(t, f.orders.created, 1)
	assert.Equal(t, result.OrderNumber, f.orders.created[0].OrderNumber)
}

func TestFinalize_SecondInvocationIsNoOp(t *testing.T) {
	f := newFinalizerFixture()
	cmd := FinalizeCommand{OrderToken: "ord-1", UserID: "user-1", Email: "dana@example.com"}

	_, err := f.finalizer.Finalize(context.Background(), cmd)
	require.NoError(t, err)

	// 重新放入商品模拟回跳重放时购物车已有新内容
	f.cart.lines = []domain.CartLine{{ProductID: "p2", Name: "NU 210", Price: decimal.RequireFromString("80.00"), Quantity: 1}}

	result, err := f.finalizer.Finalize(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, result.AlreadyProcessed)
	assert.False(t, result.OrderCreated)
	assert.False(t, result.EmailSent)
	assert.True(t, result.CartCleared)

	assert.Len(t, f.orders.created, 1)
	assert.Len(t, f.mailer.sent, 1)
	assert.Equal(t, 2, f.cart.clearCalls)
}

func TestFinalize_OrderWriteFailureDoesNotBlockOtherSteps(t *testing.T) {
	f := newFinalizerFixture()
	f.orders.createErr = errors.New("db unavailable")

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
		Email:      "dana@example.com",
	})
	require.NoError(t, err)

	assert.False(t, result.OrderCreated)
	assert.True(t, result.EmailSent)
	assert.True(t, result.CartCleared)
	assert.True(t, f.ledger.processed["ord-1"])
}

func TestFinalize_EmailFailureDoesNotBlockCartClear(t *testing.T) {
	f := newFinalizerFixture()
	f.mailer.sendErr = errors.New("smtp unreachable")

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
		Email:      "dana@example.com",
	})
	require.NoError(t, err)

	assert.True(t, result.OrderCreated)
	assert.False(t, result.EmailSent)
	assert.True(t, result.CartCleared)
	assert.False(t, f.ledger.emailed["ord-1"])
}

func TestFinalize_LedgerUnavailableDegradesGracefully(t *testing.T) {
	f := newFinalizerFixture()
	f.ledger.readErr = errors.New("redis down")

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
	})
	require.NoError(t, err)

	assert.False(t, result.AlreadyProcessed)
	assert.True(t, result.OrderCreated)
	assert.True(t, result.CartCleared)
}

func TestFinalize_EmptyCartSkipsOrderButStillMarksProcessed(t *testing.T) {
	f := newFinalizerFixture()
	f.cart.lines = nil

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
	})
	require.NoError(t, err)

	assert.False(t, result.OrderCreated)
	assert.False(t, result.EmailSent)
	assert.True(t, result.CartCleared)
	assert.True(t, f.ledger.processed["ord-1"])
}

func TestFinalize_MissingShippingSnapshotSkipsOrderAndEmail(t *testing.T) {
	f := newFinalizerFixture()
	delete(f.snapshots.addrs, "user-1")

	result, err := f.finalizer.Finalize(context.Background(), FinalizeCommand{
		OrderToken: "ord-1",
		UserID:     "user-1",
		Email:      "dana@example.com",
	})
	require.NoError(t, err)

	assert.False(t, result.OrderCreated)
	assert.False(t, result.EmailSent)
	assert.True(t, result.CartCleared)
	assert.True(t, f.ledger.processed["ord-1"])
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.mailer.sent)
}

func TestFinalize_ConcurrentInvocationsWriteOnce(t *testing.T) {
	f := newFinalizerFixture()
	cmd := FinalizeCommand{OrderToken: "ord-1", UserID: "user-1", Email: "dana@example.com"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.finalizer.Finalize(context.Background(), cmd)
		}()
	}
	wg.Wait()

	assert.Len(t, f.orders.created, 1)
	assert.LessOrEqual(t, len(f.mailer.sent), 1)
}
