package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const (
	DefaultKey            = "cart"
	DefaultPersistTimeout = 5 * time.Second

	logMsgLoadFailed    = "cart slot unreadable, starting empty"
	logMsgDecodeFailed  = "cart slot malformed, starting empty"
	logMsgEncodeFailed  = "failed to encode cart"
	logMsgPersistFailed = "failed to persist cart"
	logMsgLoaded        = "cart loaded"
	logAttrKey          = "key"
	logAttrError        = "error"
	logAttrLines        = "lines"
	logAttrOp           = "op"
	logOpAdd            = "add"
	logOpRemove         = "remove"
	logOpClear          = "clear"
	logOpCheckout       = "checkout"
)

var (
	ErrEmptyKey       = errors.New("cart storage key must not be empty")
	ErrInvalidTimeout = errors.New("persist timeout must be positive")
)

// Store owns the cart of one client session. All mutations go through
// AddToCart, RemoveFromCart and ClearCart; each one re-persists the full
// cart to the slot. Persistence failures are logged and otherwise ignored,
// the in-memory cart stays authoritative.
type Store struct {
	mu     sync.Mutex
	cart   domain.Cart
	slots  SlotStore
	key    string
	logger *slog.Logger

	persistTimeout time.Duration
}

type Option func(*Store) error

func WithKey(key string) Option {
	return func(s *Store) error {
		if key == "" {
			return ErrEmptyKey
		}
		s.key = key
		return nil
	}
}

// WithPersistTimeout bounds every slot write, independent of the caller's
// context.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) error {
		if d <= 0 {
			return ErrInvalidTimeout
		}
		s.persistTimeout = d
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// NewStore builds a store and loads whatever the slot holds. A missing or
// malformed slot yields an empty cart; only bad options return an error.
func NewStore(ctx context.Context, slots SlotStore, opts ...Option) (*Store, error) {
	s := &Store{
		cart:   domain.Cart{},
		slots:  slots,
		key:    DefaultKey,
		logger: slog.Default(),

		persistTimeout: DefaultPersistTimeout,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.cart = s.load(ctx)
	return s, nil
}

func (s *Store) load(ctx context.Context) domain.Cart {
	raw, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, ErrSlotNotFound) {
		return domain.Cart{}
	}
	if err != nil {
		s.logger.Warn(logMsgLoadFailed, logAttrKey, s.key, logAttrError, err.Error())
		return domain.Cart{}
	}

	cart, err := Decode(raw)
	if err != nil {
		s.logger.Warn(logMsgDecodeFailed, logAttrKey, s.key, logAttrError, err.Error())
		return domain.Cart{}
	}

	s.logger.Debug(logMsgLoaded, logAttrKey, s.key, logAttrLines, len(cart))
	return cart
}

func (s *Store) AddToCart(ctx context.Context, p catalog.Product) {
	s.mutate(ctx, logOpAdd, func(c domain.Cart) domain.Cart { return c.Add(p) })
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mutate(ctx, logOpRemove, func(c domain.Cart) domain.Cart { return c.Remove(productID) })
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, logOpClear, func(domain.Cart) domain.Cart { return domain.Cart{} })
}

func (s *Store) mutate(ctx context.Context, op string, fn func(domain.Cart) domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = fn(s.cart)
	s.persist(ctx, op)
}

// Checkout hands a copy of the cart to fn and empties the cart when fn
// succeeds. No other mutation can run between the read and the clear. An
// error from fn leaves the cart untouched and is returned as is.
func (s *Store) Checkout(ctx context.Context, fn func(domain.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.cart.Clone()); err != nil {
		return err
	}

	s.cart = domain.Cart{}
	s.persist(ctx, logOpCheckout)
	return nil
}

// persist must be called with mu held. The write outlives a canceled caller
// context and is bounded by persistTimeout instead.
func (s *Store) persist(ctx context.Context, op string) {
	raw, err := Encode(s.cart)
	if err != nil {
		s.logger.Error(logMsgEncodeFailed, logAttrOp, op, logAttrError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	if err := s.slots.Set(ctx, s.key, raw); err != nil {
		s.logger.Error(logMsgPersistFailed, logAttrKey, s.key, logAttrOp, op, logAttrError, err.Error())
	}
}

// Cart returns a deep copy of the current lines.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}
