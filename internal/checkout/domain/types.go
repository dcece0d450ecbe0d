package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// MoneyPlaces is the number of decimal places prices are rounded to.
const MoneyPlaces = catalog.MoneyPlaces

type QuoteLine struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines      []QuoteLine
	TotalItems int
	Total      decimal.Decimal
}

type Receipt struct {
	OrderID  string
	Quote    Quote
	PlacedAt time.Time
	Message  string
}
