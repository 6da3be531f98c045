package apiclient

import (
	"time"

	console "github.com/goliatone/go-admin-console/components/console"
)

// SeedData returns a small deterministic fixture set for demos and tests.
func SeedData() MockData {
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	lastUsed := base.Add(36 * time.Hour)
	return MockData{
		Exchanges: []console.Exchange{
			{ID: 1, Name: "USD", Price: "12650.00", IsActive: true, CreatedAt: base, UpdatedAt: base},
			{ID: 2, Name: "EUR", Price: "13800.50", IsActive: true, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		},
		APIs: []console.API{
			{ID: 1, Name: "BoostPanel", URL: "https://boostpanel.example/api/v2", Percentage: "15", ExchangeID: 1, Key: "bp-live-key", IsActive: true, LastUsed: &lastUsed, CreatedAt: base, UpdatedAt: base},
			{ID: 2, Name: "SocialHub", URL: "https://socialhub.example/api", Percentage: "22.5", ExchangeID: 2, Key: "sh-live-key", IsActive: false, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
		},
		Categories: []console.Category{
			{ID: 1, Name: "Instagram", Description: "Followers and likes", IsActive: true, CreatedAt: base},
			{ID: 2, Name: "Telegram", Description: "Channel members", IsActive: true, CreatedAt: base.Add(time.Hour)},
		},
		Services: []console.Service{
			{ID: 1, Name: "IG Followers (HQ)", Description: "High quality followers", Duration: 24, Min: 100, Max: 10000, Price: 3.5, SiteID: 1, Category: 1, APIID: 1, IsActive: true, CreatedAt: base},
			{ID: 2, Name: "TG Members", Description: "Real members", Duration: 48, Min: 500, Max: 0, Price: 8.0, SiteID: 1, Category: 2, APIID: 1, IsActive: true, CreatedAt: base.Add(time.Hour)},
		},
		Orders: []console.Order{
			{ID: 1, Service: console.Service{ID: 1, Name: "IG Followers (HQ)"}, Price: 35, URL: "https://instagram.com/someshop", Status: "completed", UserID: 1, Quantity: 1000, CreatedAt: base.Add(24 * time.Hour)},
			{ID: 2, Service: console.Service{ID: 2, Name: "TG Members"}, Price: 80, URL: "https://t.me/somechannel", Status: "pending", UserID: 2, Quantity: 1000, CreatedAt: base.Add(30 * time.Hour)},
		},
		Payments: []console.Payment{
			{ID: 1, Price: "50.00", User: console.User{ID: 1, Username: "akmal"}, PaymentType: console.PaymentType{ID: 1, Name: "card"}, IsActive: true, CreatedAt: base.Add(20 * time.Hour)},
		},
		Users: []console.User{
			{ID: 1, Username: "akmal", Email: "akmal@example.com", FirstName: "Akmal", LastName: "K", PhoneNumber: "+998901112233", Balance: "120.00"},
			{ID: 2, Username: "dilnoza", Email: "dilnoza@example.com", FirstName: "Dilnoza", LastName: "R", PhoneNumber: "+998909998877", Balance: "40.00"},
		},
		Stats: console.Statistics{
			Metrics: console.MetricsSnapshot{
				Orders:   console.MetricPair{Current: 128, Previous: 96},
				Revenue:  console.MetricPair{Current: 4120, Previous: 4480},
				Services: console.MetricPair{Current: 42, Previous: 42},
				Users:    console.MetricPair{Current: 77, Previous: 0},
			},
			Chart: []console.SeriesPoint{
				{Label: "Mon, Jan 5", Value: 12},
				{Label: "Tue, Jan 6", Value: 19},
				{Label: "Wed, Jan 7", Value: 9},
			},
		},
	}
}
