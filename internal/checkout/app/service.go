package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

const (
	SuccessMessage = "Thank you for your purchase. Your order has been placed successfully."

	logMsgOrderPlaced = "order placed"
)

var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	cart   CartReader
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(cart CartReader, opts ...Option) *Service {
	s := &Service{
		cart:   cart,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices the current cart at the discounted prices captured when each
// product was added.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	return BuildQuote(s.cart.Cart())
}

// PlaceOrder quotes the cart, empties it and hands back a receipt. Quoting
// and clearing happen atomically on the cart, so a concurrent add is either
// billed or stays in the cart.
func (s *Service) PlaceOrder(ctx context.Context) (domain.Receipt, error) {
	var (
		quote domain.Quote
		id    uuid.UUID
	)

	err := s.cart.Checkout(ctx, func(c cart.Cart) error {
		q, err := BuildQuote(c)
		if err != nil {
			return err
		}

		id, err = uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate order id: %w", err)
		}

		quote = q
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	s.logger.InfoContext(ctx, logMsgOrderPlaced,
		slog.String("order_id", id.String()),
		slog.Int("items", quote.TotalItems),
		slog.String("total", quote.Total.StringFixed(domain.MoneyPlaces)),
	)

	return domain.Receipt{
		OrderID:  id.String(),
		Quote:    quote,
		PlacedAt: s.now().UTC(),
		Message:  SuccessMessage,
	}, nil
}

func BuildQuote(c cart.Cart) (domain.Quote, error) {
	if len(c) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, 0, len(c))
	total := decimal.Zero
	items := 0

	for _, line := range c {
		if line.Quantity <= 0 {
			return domain.Quote{}, fmt.Errorf("quantity must be greater than zero: %d", line.Quantity)
		}

		unit := decimal.NewFromFloat(line.DiscountedPrice).Round(domain.MoneyPlaces)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))

		lines = append(lines, domain.QuoteLine{
			ProductID: line.ID,
			Title:     line.Title,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})

		total = total.Add(lineTotal)
		items += line.Quantity
	}

	return domain.Quote{
		Lines:      lines,
		TotalItems: items,
		Total:      total,
	}, nil
}
