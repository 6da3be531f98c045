package console

import (
	"strconv"
	"strings"
)

// Lookups carries the foreign-key resolvers screens use to render and sort
// id columns by display name. Nil resolvers fall back to "Unknown".
type Lookups struct {
	Exchanges  LookupResolver
	Categories LookupResolver
	APIs       LookupResolver
}

// MapLookup builds a resolver over an in-memory id->name map.
func MapLookup(names map[int]string) LookupResolver {
	return func(id int) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

// APIScreenConfig binds the table engine to the APIs collection.
func APIScreenConfig(lk Lookups) ScreenConfig[API] {
	return ScreenConfig[API]{
		Kind: KindAPIs,
		ID:   func(a API) int { return a.ID },
		Fields: map[string]FieldSpec[API]{
			"id":          {Kind: CompareNumeric, Value: func(a API) any { return a.ID }},
			"name":        {Value: func(a API) any { return a.Name }},
			"url":         {Value: func(a API) any { return a.URL }},
			"percentage":  {Kind: CompareNumeric, Value: func(a API) any { return a.Percentage }},
			"exchange_id": {Kind: CompareLookup, Value: func(a API) any { return a.ExchangeID }, Lookup: lk.Exchanges},
			"is_active":   {Kind: CompareBool, Value: func(a API) any { return a.IsActive }},
			"last_used":   {Kind: CompareTime, Value: func(a API) any { return a.LastUsed }},
			"created_at":  {Kind: CompareTime, Value: func(a API) any { return a.CreatedAt }},
			"updated_at":  {Kind: CompareTime, Value: func(a API) any { return a.UpdatedAt }},
		},
		Searchable: []string{"name", "url"},
		Filters: map[string]FilterPredicate[API]{
			"exchange": func(a API, v any) bool { return matchID(a.ExchangeID, v) },
			"active":   func(a API, v any) bool { return matchActive(a.IsActive, v) },
		},
		Lookup:    lk.Exchanges,
		SetActive: func(a API, active bool) API { a.IsActive = active; return a },
	}
}

// ExchangeScreenConfig binds the table engine to the exchanges collection.
func ExchangeScreenConfig() ScreenConfig[Exchange] {
	return ScreenConfig[Exchange]{
		Kind: KindExchanges,
		ID:   func(e Exchange) int { return e.ID },
		Fields: map[string]FieldSpec[Exchange]{
			"id":         {Kind: CompareNumeric, Value: func(e Exchange) any { return e.ID }},
			"name":       {Value: func(e Exchange) any { return e.Name }},
			"price":      {Kind: CompareNumeric, Value: func(e Exchange) any { return e.Price }},
			"is_active":  {Kind: CompareBool, Value: func(e Exchange) any { return e.IsActive }},
			"created_at": {Kind: CompareTime, Value: func(e Exchange) any { return e.CreatedAt }},
			"updated_at": {Kind: CompareTime, Value: func(e Exchange) any { return e.UpdatedAt }},
		},
		Searchable: []string{"name"},
		Filters: map[string]FilterPredicate[Exchange]{
			"active": func(e Exchange, v any) bool { return matchActive(e.IsActive, v) },
		},
		SetActive: func(e Exchange, active bool) Exchange { e.IsActive = active; return e },
	}
}

// CategoryScreenConfig binds the table engine to the categories collection.
func CategoryScreenConfig() ScreenConfig[Category] {
	return ScreenConfig[Category]{
		Kind: KindCategories,
		ID:   func(c Category) int { return c.ID },
		Fields: map[string]FieldSpec[Category]{
			"id":          {Kind: CompareNumeric, Value: func(c Category) any { return c.ID }},
			"name":        {Value: func(c Category) any { return c.Name }},
			"description": {Value: func(c Category) any { return c.Description }},
			"is_active":   {Kind: CompareBool, Value: func(c Category) any { return c.IsActive }},
			"created_at":  {Kind: CompareTime, Value: func(c Category) any { return c.CreatedAt }},
		},
		Searchable: []string{"name", "description"},
		Filters: map[string]FilterPredicate[Category]{
			"active": func(c Category, v any) bool { return matchActive(c.IsActive, v) },
		},
		SetActive: func(c Category, active bool) Category { c.IsActive = active; return c },
	}
}

// ServiceScreenConfig binds the table engine to the services collection. The
// services list uses a shorter page than the rest of the console.
func ServiceScreenConfig(lk Lookups) ScreenConfig[Service] {
	return ScreenConfig[Service]{
		Kind:     KindServices,
		PageSize: 4,
		ID:       func(s Service) int { return s.ID },
		Fields: map[string]FieldSpec[Service]{
			"id":         {Kind: CompareNumeric, Value: func(s Service) any { return s.ID }},
			"name":       {Value: func(s Service) any { return s.Name }},
			"duration":   {Kind: CompareNumeric, Value: func(s Service) any { return s.Duration }},
			"min":        {Kind: CompareNumeric, Value: func(s Service) any { return s.Min }},
			"max":        {Kind: CompareNumeric, Value: func(s Service) any { return s.Max }},
			"price":      {Kind: CompareNumeric, Value: func(s Service) any { return s.Price }},
			"category":   {Kind: CompareLookup, Value: func(s Service) any { return s.Category }, Lookup: lk.Categories},
			"api":        {Kind: CompareLookup, Value: func(s Service) any { return s.APIID }, Lookup: lk.APIs},
			"is_active":  {Kind: CompareBool, Value: func(s Service) any { return s.IsActive }},
			"created_at": {Kind: CompareTime, Value: func(s Service) any { return s.CreatedAt }},
		},
		Searchable: []string{"name", "description"},
		Filters: map[string]FilterPredicate[Service]{
			"category": func(s Service, v any) bool { return matchID(s.Category, v) },
			"api":      func(s Service, v any) bool { return matchID(s.APIID, v) },
			"active":   func(s Service, v any) bool { return matchActive(s.IsActive, v) },
		},
		SetActive: func(s Service, active bool) Service { s.IsActive = active; return s },
	}
}

// OrderScreenConfig binds the table engine to the orders collection. The
// service column sorts by the denormalized service name.
func OrderScreenConfig() ScreenConfig[Order] {
	return ScreenConfig[Order]{
		Kind: KindOrders,
		ID:   func(o Order) int { return o.ID },
		Fields: map[string]FieldSpec[Order]{
			"id":         {Kind: CompareNumeric, Value: func(o Order) any { return o.ID }},
			"service":    {Value: func(o Order) any { return o.Service.Name }},
			"price":      {Kind: CompareNumeric, Value: func(o Order) any { return o.Price }},
			"quantity":   {Kind: CompareNumeric, Value: func(o Order) any { return o.Quantity }},
			"url":        {Value: func(o Order) any { return o.URL }},
			"status":     {Value: func(o Order) any { return o.Status }},
			"created_at": {Kind: CompareTime, Value: func(o Order) any { return o.CreatedAt }},
		},
		Searchable: []string{"url", "status"},
		Filters: map[string]FilterPredicate[Order]{
			"status": func(o Order, v any) bool { return matchText(o.Status, v) },
		},
	}
}

// PaymentScreenConfig binds the table engine to the payments collection.
func PaymentScreenConfig() ScreenConfig[Payment] {
	return ScreenConfig[Payment]{
		Kind: KindPayments,
		ID:   func(p Payment) int { return p.ID },
		Fields: map[string]FieldSpec[Payment]{
			"id":           {Kind: CompareNumeric, Value: func(p Payment) any { return p.ID }},
			"price":        {Kind: CompareNumeric, Value: func(p Payment) any { return p.Price }},
			"user":         {Value: func(p Payment) any { return p.User.Username }},
			"payment_type": {Value: func(p Payment) any { return p.PaymentType.Name }},
			"is_active":    {Kind: CompareBool, Value: func(p Payment) any { return p.IsActive }},
			"created_at":   {Kind: CompareTime, Value: func(p Payment) any { return p.CreatedAt }},
		},
		Searchable: []string{"user"},
		Filters: map[string]FilterPredicate[Payment]{
			"type": func(p Payment, v any) bool { return matchText(p.PaymentType.Name, v) },
		},
	}
}

// UserScreenConfig binds the table engine to the users collection.
func UserScreenConfig() ScreenConfig[User] {
	return ScreenConfig[User]{
		Kind: KindUsers,
		ID:   func(u User) int { return u.ID },
		Fields: map[string]FieldSpec[User]{
			"id":           {Kind: CompareNumeric, Value: func(u User) any { return u.ID }},
			"username":     {Value: func(u User) any { return u.Username }},
			"email":        {Value: func(u User) any { return u.Email }},
			"first_name":   {Value: func(u User) any { return u.FirstName }},
			"last_name":    {Value: func(u User) any { return u.LastName }},
			"phone_number": {Value: func(u User) any { return u.PhoneNumber }},
			"balance":      {Kind: CompareNumeric, Value: func(u User) any { return u.Balance }},
		},
		Searchable:  []string{"username", "email", "phone_number"},
		DefaultSort: SortSpec{Field: "id", Direction: SortAsc},
	}
}

// ApplyDefinition overlays a declarative screen definition onto a config:
// page size, searchable fields, default sort. Column comparators stay bound
// to the typed accessors in the config.
func ApplyDefinition[E any](cfg ScreenConfig[E], def ScreenDefinition) ScreenConfig[E] {
	if def.PageSize > 0 {
		cfg.PageSize = def.PageSize
	}
	if len(def.Searchable) > 0 {
		cfg.Searchable = def.Searchable
	}
	if def.DefaultSort.Field != "" {
		cfg.DefaultSort = def.DefaultSort
	}
	return cfg
}

// matchID matches a foreign key filter. Transports hand values over as int,
// float64 (JSON numbers) or string.
func matchID(id int, v any) bool {
	switch value := v.(type) {
	case int:
		return id == value
	case float64:
		return id == int(value)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		return err == nil && id == n
	}
	return false
}

// matchActive matches the activation filter. Accepts bools and the string
// forms used by query params.
func matchActive(active bool, v any) bool {
	switch value := v.(type) {
	case bool:
		return active == value
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "active", "1":
			return active
		case "false", "inactive", "0":
			return !active
		}
	}
	return false
}

// matchText matches a case-insensitive equality filter.
func matchText(have string, v any) bool {
	value, ok := v.(string)
	if !ok {
		return false
	}
	return strings.EqualFold(have, value)
}
