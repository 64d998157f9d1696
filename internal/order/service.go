package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrStoreRead     = errors.New("store read failed")
	ErrStoreWrite    = errors.New("store write failed")
	ErrInvalidStatus = errors.New("invalid order status")

	ErrInvalidMenuItem = errors.New("menu_item_id must be a UUID")
)

type Service struct {
	repo      Repository
	publisher Publisher
	metrics   Metrics
	log       *slog.Logger
}

// NewService wires the pipeline. publisher, metrics and log may be nil.
func NewService(
	repo Repository,
	publisher Publisher,
	metrics Metrics,
	log *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Total is the sum of unit price times quantity over all lines.
func Total(lines []ResolvedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(
			decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))),
		)
	}
	return total
}

// --------------------------------------------------
// Voice agent orders
// --------------------------------------------------
func (s *Service) CreateVoiceOrder(
	ctx context.Context,
	req VoiceOrderRequest,
) (*Order, error) {

	restaurantID, err := s.ResolveRestaurant(ctx, req.RestaurantID, req.RestaurantIdentifier)
	if err != nil {
		return nil, err
	}

	menu, err := s.repo.GetMenu(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: menu: %v", ErrStoreRead, err)
	}

	lines := make([]ResolvedLine, 0, len(req.Items))
	for _, item := range req.Items {
		line := MatchLine(menu, item)
		matched := line.MenuItemID != nil
		s.metrics.ObserveMatch(matched)
		if !matched {
			s.log.Debug("no menu match", "restaurant_id", restaurantID, "item", item.Name)
		}
		lines = append(lines, line)
	}

	return s.materialize(ctx, &Order{
		RestaurantID:  restaurantID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Type:          req.Type,
		Source:        SourceVoice,
	}, lines)
}

// --------------------------------------------------
// Dashboard orders (no menu matching)
// --------------------------------------------------
func (s *Service) CreateManualOrder(
	ctx context.Context,
	req ManualOrderRequest,
) (*Order, error) {

	if req.RestaurantID == "" {
		return nil, ErrRestaurantNotResolved
	}

	lines := make([]ResolvedLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.MenuItemID != "" {
			if _, err := uuid.Parse(item.MenuItemID); err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidMenuItem, item.MenuItemID)
			}
		}
		lines = append(lines, manualLine(item))
	}

	return s.materialize(ctx, &Order{
		RestaurantID:  req.RestaurantID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Type:          req.Type,
		Source:        SourceManual,
	}, lines)
}

// materialize writes the header, then the lines. When the line insert
// fails the header is deleted again; if that delete also fails the header
// is left without lines and the failure is logged.
func (s *Service) materialize(
	ctx context.Context,
	o *Order,
	lines []ResolvedLine,
) (*Order, error) {

	if o.Type == "" {
		o.Type = DefaultType
	}
	o.Status = StatusPending
	o.TotalAmount = Total(lines).InexactFloat64()

	if err := s.repo.InsertOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("%w: order: %v", ErrStoreWrite, err)
	}

	if len(lines) > 0 {
		if err := s.repo.InsertOrderLines(ctx, o.ID, lines); err != nil {
			if derr := s.repo.DeleteOrder(context.WithoutCancel(ctx), o.ID); derr != nil {
				s.log.Error("orphaned order header",
					"order_id", o.ID,
					"restaurant_id", o.RestaurantID,
					"err", derr,
				)
			}
			return nil, fmt.Errorf("%w: order lines: %v", ErrStoreWrite, err)
		}
	}
	o.Lines = lines

	s.metrics.ObserveOrder(o.Source, o.TotalAmount)
	s.log.Info("order created",
		"order_id", o.ID,
		"restaurant_id", o.RestaurantID,
		"source", o.Source,
		"lines", len(lines),
		"total", o.TotalAmount,
	)

	if err := s.publisher.OrderCreated(ctx, o); err != nil {
		s.log.Warn("order event not published", "order_id", o.ID, "err", err)
	}

	return o, nil
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------
func (s *Service) UpdateStatus(
	ctx context.Context,
	orderID string,
	status string,
) error {

	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return ErrOrderNotFound
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("%w: status: %v", ErrStoreWrite, err)
	}
	return nil
}

// OrderRestaurant returns the restaurant an order belongs to.
func (s *Service) OrderRestaurant(ctx context.Context, orderID string) (string, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return "", ErrOrderNotFound
	}

	restaurantID, err := s.repo.GetOrderRestaurant(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: order: %v", ErrStoreRead, err)
	}
	return restaurantID, nil
}

func (s *Service) ListOrders(
	ctx context.Context,
	restaurantID string,
) ([]*Order, error) {

	orders, err := s.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("%w: orders: %v", ErrStoreRead, err)
	}
	return orders, nil
}
