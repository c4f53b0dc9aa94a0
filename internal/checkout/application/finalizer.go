package application

import (
	"context"
	"sync"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/metrics"
	"github.com/google/uuid"
)

// FinalizeCommand 支付回跳结算命令
type FinalizeCommand struct {
	// 订单号，为空时生成新的
	OrderToken string
	UserID     string
	Email      string
}

// FinalizeResult 结算结果
// 各步骤彼此独立，单步失败不会中断其余步骤
type FinalizeResult struct {
	OrderNumber      string `json:"order_number"`
	AlreadyProcessed bool   `json:"already_processed"`
	OrderCreated     bool   `json:"order_created"`
	EmailSent        bool   `json:"email_sent"`
	CartCleared      bool   `json:"cart_cleared"`
}

// Finalizer 支付成功后的结算流程
// 双重幂等防护：进程内 in-flight 标记拦截并发重入，台账拦截跨请求重放
type Finalizer struct {
	ledger    domain.FinalizationLedger
	snapshots domain.ShippingSnapshotStore
	cart      CartPort
	orders    OrderWriter
	mailer    ConfirmationMailer
	metrics   *metrics.Metrics

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFinalizer 创建结算器
func NewFinalizer(
	ledger domain.FinalizationLedger,
	snapshots domain.ShippingSnapshotStore,
	cart CartPort,
	orders OrderWriter,
	mailer ConfirmationMailer,
	m *metrics.Metrics,
) *Finalizer {
	return &Finalizer{
		ledger:    ledger,
		snapshots: snapshots,
		cart:      cart,
		orders:    orders,
		mailer:    mailer,
		metrics:   m,
		inFlight:  make(map[string]struct{}),
	}
}

// Finalize 执行支付成功后的结算
// 订单落库、确认邮件、清空购物车互相独立，购物车清理总会执行
func (f *Finalizer) Finalize(ctx context.Context, cmd FinalizeCommand) (*FinalizeResult, error) {
	token := cmd.OrderToken
	if token == "" {
		token = uuid.NewString()
	}
	result := &FinalizeResult{OrderNumber: token}

	if !f.acquire(token) {
		logger.Info(ctx, "Finalization already in flight, skipping", "order_number", token)
		f.incDuplicate()
		result.AlreadyProcessed = true
		return result, nil
	}
	defer f.release(token)

	processed, err := f.ledger.HasProcessed(ctx, token)
	if err != nil {
		// 台账不可用时降级继续，避免支付成功后结算被完全阻断
		logger.Warn(ctx, "Finalization ledger unavailable, proceeding in degraded mode",
			"order_number", token,
			"error", err,
		)
	}
	if processed {
		logger.Info(ctx, "Order already finalized, clearing cart only",
			"order_number", token,
			"user_id", cmd.UserID,
		)
		f.incDuplicate()
		result.AlreadyProcessed = true
		result.CartCleared = f.clearCart(ctx, cmd.UserID, token)
		return result, nil
	}

	lines, linesErr := f.cart.GetLines(ctx, cmd.UserID)
	if linesErr != nil {
		logger.Error(ctx, "Failed to load cart for finalization",
			"order_number", token,
			"user_id", cmd.UserID,
			"error", linesErr,
		)
	}

	snapshot, snapErr := f.snapshots.Get(ctx, cmd.UserID)
	if snapErr != nil {
		logger.Warn(ctx, "Failed to load shipping snapshot during finalization",
			"order_number", token,
			"error", snapErr,
		)
	}

	totals, totalsErr := domain.ComputeTotals(lines)
	switch {
	case totalsErr != nil:
		logger.Error(ctx, "Skipping order persistence, cart unavailable or empty",
			"order_number", token,
			"user_id", cmd.UserID,
			"error", totalsErr,
		)
	case cmd.UserID == "" || snapshot == nil:
		// 用户或地址快照缺失，支付已成功，只做清理
		logger.Warn(ctx, "Skipping order persistence and email, missing user or shipping snapshot",
			"order_number", token,
			"user_id", cmd.UserID,
		)
	default:
		result.OrderCreated = f.persistOrder(ctx, token, cmd, totals, lines, *snapshot)
		result.EmailSent = f.sendConfirmation(ctx, ConfirmationInput{
			OrderNumber:     token,
			UserID:          cmd.UserID,
			Email:           cmd.Email,
			Lines:           lines,
			Totals:          totals,
			ShippingAddress: *snapshot,
		})
	}

	result.CartCleared = f.clearCart(ctx, cmd.UserID, token)

	if err := f.snapshots.Delete(ctx, cmd.UserID); err != nil {
		logger.Warn(ctx, "Failed to delete shipping snapshot", "order_number", token, "error", err)
	}

	// 无论各步骤成败都记为已处理，重放只会重复清理购物车
	if err := f.ledger.MarkProcessed(ctx, token); err != nil {
		logger.Error(ctx, "Failed to mark order as processed",
			"order_number", token,
			"error", err,
		)
	}

	if f.metrics != nil {
		f.metrics.OrdersFinalized.Inc()
	}
	logger.Info(ctx, "Order finalized",
		"order_number", token,
		"order_created", result.OrderCreated,
		"email_sent", result.EmailSent,
		"cart_cleared", result.CartCleared,
	)
	return result, nil
}

func (f *Finalizer) acquire(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.inFlight[token]; ok {
		return false
	}
	f.inFlight[token] = struct{}{}
	return true
}

func (f *Finalizer) release(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inFlight, token)
}

func (f *Finalizer) persistOrder(ctx context.Context, token string, cmd FinalizeCommand, totals domain.Totals, lines []domain.CartLine, addr domain.ShippingAddress) bool {
	if err := f.orders.Create(ctx, OrderWriteInput{
		OrderNumber:     token,
		UserID:          cmd.UserID,
		Email:           cmd.Email,
		Totals:          totals,
		Lines:           lines,
		ShippingAddress: addr,
	}); err != nil {
		logger.Error(ctx, "Failed to persist order during finalization",
			"order_number", token,
			"error", err,
		)
		return false
	}
	return true
}

func (f *Finalizer) sendConfirmation(ctx context.Context, input ConfirmationInput) bool {
	emailed, err := f.ledger.HasEmailed(ctx, input.OrderNumber)
	if err != nil {
		logger.Warn(ctx, "Failed to check emailed mark", "order_number", input.OrderNumber, "error", err)
	}
	if emailed {
		logger.Info(ctx, "Confirmation email already sent, skipping", "order_number", input.OrderNumber)
		return false
	}

	if err := f.mailer.SendConfirmation(ctx, input); err != nil {
		logger.Error(ctx, "Failed to send confirmation email",
			"order_number", input.OrderNumber,
			"error", err,
		)
		if f.metrics != nil {
			f.metrics.EmailsFailedTotal.Inc()
		}
		return false
	}

	if err := f.ledger.MarkEmailed(ctx, input.OrderNumber); err != nil {
		logger.Warn(ctx, "Failed to mark email as sent", "order_number", input.OrderNumber, "error", err)
	}
	if f.metrics != nil {
		f.metrics.EmailsSentTotal.Inc()
	}
	return true
}

func (f *Finalizer) clearCart(ctx context.Context, userID, token string) bool {
	if err := f.cart.Clear(ctx, userID, "checkout_finalized"); err != nil {
		logger.Error(ctx, "Failed to clear cart after finalization",
			"order_number", token,
			"user_id", userID,
			"error", err,
		)
		return false
	}
	return true
}

func (f *Finalizer) incDuplicate() {
	if f.metrics != nil {
		f.metrics.DuplicateFinalize.Inc()
	}
}
