package console

import (
	"context"
	"time"
)

// EntityKind identifies one of the admin catalog resources.
type EntityKind string

const (
	KindAPIs       EntityKind = "apis"
	KindExchanges  EntityKind = "exchanges"
	KindCategories EntityKind = "categories"
	KindServices   EntityKind = "services"
	KindOrders     EntityKind = "orders"
	KindPayments   EntityKind = "payments"
	KindUsers      EntityKind = "users"
)

// Page is one page of a list endpoint response. Count is the total number of
// rows matching server side, not the page length.
type Page[E any] struct {
	Count   int
	Results []E
}

// ListFetcher loads one page of entities from the upstream API.
type ListFetcher[E any] func(ctx context.Context, limit, offset int) (Page[E], error)

// CRUDClient performs mutations for a single entity kind against the API.
type CRUDClient[E any] interface {
	Create(ctx context.Context, draft E) (E, error)
	Update(ctx context.Context, id int, draft E) (E, error)
	Delete(ctx context.Context, id int) error
}

// BulkClient issues the per-id calls behind bulk actions. SetActive maps to a
// partial update of the is_active flag.
type BulkClient interface {
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
}

// ErrorLog is a timestamped upstream provider failure attached to an API row.
type ErrorLog struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// API is an upstream SMM provider endpoint. Percentage is the markup applied
// on top of the provider price; the server serializes it as a string.
type API struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Percentage string     `json:"percentage"`
	Exchange   *Exchange  `json:"exchange,omitempty"`
	ExchangeID int        `json:"exchange_id"`
	Key        string     `json:"key"`
	IsActive   bool       `json:"is_active"`
	LastUsed   *time.Time `json:"last_used"`
	ErrorLogs  []ErrorLog `json:"error_logs,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Exchange is a currency exchange rate row referenced by APIs.
type Exchange struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups services in the public catalog.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Service is a sellable catalog entry. Min/Max bound the order quantity;
// Max == 0 means unbounded.
type Service struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Min         int       `json:"min"`
	Max         int       `json:"max"`
	Price       float64   `json:"price"`
	SiteID      int       `json:"site_id"`
	Category    int       `json:"category"`
	APIID       int       `json:"api"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order is a customer purchase of a service. The server denormalizes the
// full service record onto the order.
type Order struct {
	ID        int       `json:"id"`
	Service   Service   `json:"service"`
	Price     float64   `json:"price"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	UserID    int       `json:"user"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentType labels a payment channel (card, crypto, balance top-up...).
type PaymentType struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment is a ledger entry on a user account.
type Payment struct {
	ID          int         `json:"id"`
	Price       string      `json:"price"`
	User        User        `json:"user"`
	PaymentType PaymentType `json:"payment_type"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// User is a customer account.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	APIKey      string `json:"api_key"`
	Balance     string `json:"balance"`
}
