package console

// DefaultScreenDefinitions returns the built-in screen catalog. Manifests can
// override any of these per deployment.
func DefaultScreenDefinitions() []ScreenDefinition {
	return []ScreenDefinition{
		{
			Kind:  KindAPIs,
			Title: "APIs",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "name"},
				{Field: "url", Title: "URL"},
				{Field: "percentage", Kind: "numeric"},
				{Field: "exchange_id", Kind: "lookup", Title: "Exchange"},
				{Field: "is_active", Kind: "bool", Title: "Active"},
				{Field: "last_used", Kind: "time"},
				{Field: "created_at", Kind: "time"},
				{Field: "updated_at", Kind: "time"},
			},
			Searchable: []string{"name", "url"},
			Filters:    []string{"exchange", "active"},
		},
		{
			Kind:  KindExchanges,
			Title: "Exchanges",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "name"},
				{Field: "price", Kind: "numeric"},
				{Field: "is_active", Kind: "bool", Title: "Active"},
				{Field: "created_at", Kind: "time"},
				{Field: "updated_at", Kind: "time"},
			},
			Searchable: []string{"name"},
			Filters:    []string{"active"},
		},
		{
			Kind:  KindCategories,
			Title: "Categories",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "name"},
				{Field: "description"},
				{Field: "is_active", Kind: "bool", Title: "Active"},
				{Field: "created_at", Kind: "time"},
			},
			Searchable: []string{"name", "description"},
			Filters:    []string{"active"},
		},
		{
			Kind:     KindServices,
			Title:    "Services",
			PageSize: 4,
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "name"},
				{Field: "duration", Kind: "numeric"},
				{Field: "min", Kind: "numeric"},
				{Field: "max", Kind: "numeric"},
				{Field: "price", Kind: "numeric"},
				{Field: "category", Kind: "lookup"},
				{Field: "api", Kind: "lookup", Title: "API"},
				{Field: "is_active", Kind: "bool", Title: "Active"},
				{Field: "created_at", Kind: "time"},
			},
			Searchable: []string{"name"},
			Filters:    []string{"category", "api", "active"},
		},
		{
			Kind:  KindOrders,
			Title: "Orders",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "service"},
				{Field: "price", Kind: "numeric"},
				{Field: "quantity", Kind: "numeric"},
				{Field: "url", Title: "URL"},
				{Field: "status"},
				{Field: "created_at", Kind: "time"},
			},
			Searchable: []string{"url", "status"},
			Filters:    []string{"status"},
		},
		{
			Kind:  KindPayments,
			Title: "Payments",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "price", Kind: "numeric"},
				{Field: "user"},
				{Field: "payment_type"},
				{Field: "is_active", Kind: "bool", Title: "Active"},
				{Field: "created_at", Kind: "time"},
			},
			Searchable: []string{"user"},
			Filters:    []string{"type"},
		},
		{
			Kind:  KindUsers,
			Title: "Users",
			Columns: []ColumnDefinition{
				{Field: "id", Kind: "numeric", Title: "ID"},
				{Field: "username"},
				{Field: "email"},
				{Field: "first_name"},
				{Field: "last_name"},
				{Field: "phone_number"},
				{Field: "balance", Kind: "numeric"},
			},
			Searchable:  []string{"username", "email", "phone_number"},
			DefaultSort: SortSpec{Field: "id", Direction: SortAsc},
		},
	}
}

// DefaultScreenManifest wraps the built-in catalog in a manifest document,
// for tooling that round-trips manifests to disk.
func DefaultScreenManifest() *ScreenManifestDocument {
	return &ScreenManifestDocument{
		Version: ManifestVersion,
		Name:    "default",
		Screens: DefaultScreenDefinitions(),
	}
}
