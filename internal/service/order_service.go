package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KhashayarRezaei/bookverse/internal/events"
	"github.com/KhashayarRezaei/bookverse/internal/metrics"
	"github.com/KhashayarRezaei/bookverse/internal/model"
	"github.com/KhashayarRezaei/bookverse/internal/payment"
	"github.com/KhashayarRezaei/bookverse/internal/pricing"
	"github.com/KhashayarRezaei/bookverse/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const orderCreatedMessage = "Order created successfully."

// orderService implements OrderService.
type orderService struct {
	orderRepo      repository.OrderRepository
	calculator     *pricing.Calculator
	gateways       GatewayFactory
	publisher      events.Publisher
	metrics        *metrics.Metrics
	validate       *validator.Validate
	paymentTimeout time.Duration
	logger         zerolog.Logger
}

// NewOrderService creates a new order service. Prices are read through books
// and every gateway charge is bounded by paymentTimeout.
func NewOrderService(
	orderRepo repository.OrderRepository,
	books pricing.ItemLookup,
	gateways GatewayFactory,
	publisher events.Publisher,
	m *metrics.Metrics,
	paymentTimeout time.Duration,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		calculator:     pricing.NewCalculator(books),
		gateways:       gateways,
		publisher:      publisher,
		metrics:        m,
		validate:       newValidator(),
		paymentTimeout: paymentTimeout,
		logger:         logger.With().Str("service", "order").Logger(),
	}
}

// Checkout runs one checkout attempt to completion. Nothing is written unless
// the gateway confirmed the charge, and the order is then recorded together
// with its items in a single transaction.
func (s *orderService) Checkout(ctx context.Context, userID int64, req *model.OrderRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}

	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveCheckout(metrics.OutcomeInvalid)
		s.logger.Debug().Err(err).Int64("user_id", userID).Msg("invalid order request")
		return nil, toValidationErrors(err)
	}

	priced, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	gateway, err := s.gateways.Create(req.PaymentMethod)
	if err != nil {
		s.metrics.ObserveCheckout(metrics.OutcomeInvalid)
		return nil, model.ValidationErrors{{Field: "payment_method", Message: err.Error()}}
	}

	outcome := s.charge(ctx, gateway, userID, priced.Total)
	if !outcome.Succeeded() {
		s.metrics.ObserveCheckout(metrics.OutcomeRejected)
		s.logger.Warn().
			Int64("user_id", userID).
			Str("gateway", outcome.Gateway).
			Str("amount", priced.Total.StringFixed(2)).
			Str("reason", outcome.Error).
			Msg("payment rejected")
		return nil, &model.PaymentFailedError{Outcome: outcome}
	}

	order := newPaidOrder(userID, gateway.Name(), priced, outcome.TransactionID)

	// The charge has been captured; a cancelled request must not abort the commit.
	if err := s.commit(context.WithoutCancel(ctx), order); err != nil {
		s.metrics.ObserveCheckout(metrics.OutcomeFailed)
		s.logger.WithLevel(zerolog.FatalLevel).
			Err(err).
			Str("alert", "payment_captured_order_not_recorded").
			Str("order_id", order.ID.String()).
			Int64("user_id", userID).
			Str("gateway", outcome.Gateway).
			Str("transaction_id", outcome.TransactionID).
			Str("amount", outcome.Amount.StringFixed(2)).
			Msg("payment captured but order was not recorded")
		return nil, fmt.Errorf("%w: %w", model.ErrOrderNotRecorded, err)
	}

	s.metrics.ObserveCheckout(metrics.OutcomeCommitted)
	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int64("user_id", userID).
		Str("gateway", outcome.Gateway).
		Str("transaction_id", outcome.TransactionID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Int("item_count", len(order.Items)).
		Msg("order placed")

	s.publish(ctx, events.NewOrderPlaced(order))

	return &model.CheckoutResponse{
		Message: orderCreatedMessage,
		Order:   order,
		Payment: outcome,
	}, nil
}

// price resolves every cart line against the catalogue.
func (s *orderService) price(ctx context.Context, req *model.OrderRequest) (*pricing.Result, error) {
	lines := make([]pricing.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = pricing.Line{BookID: item.BookID, Quantity: item.Quantity}
	}

	priced, err := s.calculator.Calculate(ctx, lines)
	if err == nil {
		if priced.Total.GreaterThan(model.MaxOrderTotal) {
			s.metrics.ObserveCheckout(metrics.OutcomeInvalid)
			s.logger.Debug().Str("total", priced.Total.String()).Msg("order total exceeds limit")
			return nil, model.ValidationErrors{{Field: "items", Message: model.ErrTotalTooLarge.Message}}
		}
		return priced, nil
	}

	var notFound *pricing.ItemNotFoundError
	if errors.As(err, &notFound) {
		s.metrics.ObserveCheckout(metrics.OutcomeInvalid)
		s.logger.Debug().
			Int("item_index", notFound.Index).
			Int64("book_id", notFound.BookID).
			Msg("order references unknown book")
		return nil, model.ValidationErrors{{
			Field:   fmt.Sprintf("items.%d.book_id", notFound.Index),
			Message: model.ErrBookNotFound.Message,
		}}
	}

	var badQty *pricing.InvalidQuantityError
	if errors.As(err, &badQty) {
		s.metrics.ObserveCheckout(metrics.OutcomeInvalid)
		return nil, model.ValidationErrors{{
			Field:   fmt.Sprintf("items.%d.quantity", badQty.Index),
			Message: model.ErrInvalidQuantity.Message,
		}}
	}

	s.metrics.ObserveCheckout(metrics.OutcomeFailed)
	s.logger.Error().Err(err).Msg("failed to price order")
	return nil, fmt.Errorf("failed to price order: %w", err)
}

// charge invokes the gateway under the payment timeout.
func (s *orderService) charge(ctx context.Context, gateway payment.Gateway, userID int64, amount decimal.Decimal) model.PaymentOutcome {
	chargeCtx := ctx
	if s.paymentTimeout > 0 {
		var cancel context.CancelFunc
		chargeCtx, cancel = context.WithTimeout(ctx, s.paymentTimeout)
		defer cancel()
	}

	start := time.Now()
	outcome := gateway.Charge(chargeCtx, userID, amount)
	s.metrics.ObserveCharge(gateway.Name(), string(outcome.Status), time.Since(start))

	return outcome
}

// commit writes the order and its items in one transaction.
func (s *orderService) commit(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Str("order_id", order.ID.String()).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// publish hands event to the publisher. Failures are logged only: the order
// they describe is already committed.
func (s *orderService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error().
			Err(err).
			Str("event_type", string(event.Type)).
			Str("order_id", event.OrderID.String()).
			Msg("failed to publish event")
	}
}

func newPaidOrder(userID int64, method string, priced *pricing.Result, transactionID string) *model.Order {
	now := time.Now().UTC()
	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   priced.Total,
		PaymentMethod: method,
		Status:        model.OrderStatusPaid,
		TransactionID: &transactionID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         make([]model.OrderItem, len(priced.Lines)),
	}

	for i, line := range priced.Lines {
		order.Items[i] = model.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			BookID:     line.BookID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		}
	}

	return order
}

// ListOrders retrieves orders matching filter, newest first.
func (s *orderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, model.ValidationErrors{{Field: "status", Message: model.ErrInvalidStatus.Message}}
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// GetOrder retrieves any order by ID.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// GetUserOrder retrieves an order by ID if it belongs to userID. Orders of
// other users are reported as not found.
func (s *orderService) GetUserOrder(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Int64("user_id", userID).
			Msg("order requested by non-owner")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// UpdateStatus changes the status of an order and publishes the change.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.StatusUpdateRequest) (*model.Order, error) {
	if req == nil {
		return nil, fmt.Errorf("status update request is nil")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	status := model.OrderStatus(req.Status)
	previous, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("old_status", string(previous)).
		Str("new_status", string(status)).
		Msg("order status updated")

	s.publish(ctx, events.NewOrderStatusChanged(order, previous))

	return order, nil
}

// Stats summarises all orders.
func (s *orderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get order stats")
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return stats, nil
}
