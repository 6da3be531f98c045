package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/goliatone/go-admin-console/pkg/apiclient"
)

type cli struct {
	Validate validateCmd `cmd:"" help:"Validate a screen manifest file."`
	Init     initCmd     `cmd:"" help:"Write the default screen manifest to a file."`
	List     listCmd     `cmd:"" help:"List rows of one admin collection from a live API."`
	Stats    statsCmd    `cmd:"" help:"Fetch dashboard statistics for a range tag."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Admin console utility for screen manifests and live API inspection."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type validateCmd struct {
	Path string `arg:"" type:"path" help:"Manifest YAML file to validate."`
}

func (cmd *validateCmd) Run(_ context.Context) error {
	doc, err := console.ReadScreenManifest(cmd.Path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	for _, screen := range doc.Screens {
		fmt.Fprintf(os.Stdout, "✓ %s (%d columns", screen.Kind, len(screen.Columns))
		if screen.PageSize > 0 {
			fmt.Fprintf(os.Stdout, ", page size %d", screen.PageSize)
		}
		fmt.Fprintln(os.Stdout, ")")
	}
	return nil
}

type initCmd struct {
	Path      string `arg:"" type:"path" help:"Destination manifest file."`
	Overwrite bool   `help:"Overwrite the file if it already exists."`
}

func (cmd *initCmd) Run(_ context.Context) error {
	if _, err := os.Stat(cmd.Path); err == nil && !cmd.Overwrite {
		return fmt.Errorf("consolectl: %s already exists (use --overwrite to replace)", cmd.Path)
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Path), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir %s: %w", filepath.Dir(cmd.Path), err)
	}
	file, err := os.Create(cmd.Path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("consolectl: create manifest %s: %w", cmd.Path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(console.DefaultScreenManifest()); err != nil {
		return fmt.Errorf("consolectl: write manifest: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote default manifest to %s\n", cmd.Path)
	return nil
}

type apiFlags struct {
	BaseURL  string `required:"" env:"CONSOLE_API_URL" help:"Base URL of the admin REST API."`
	Username string `env:"CONSOLE_API_USER" help:"Login username."`
	Password string `env:"CONSOLE_API_PASSWORD" help:"Login password."`
}

func (f apiFlags) client(ctx context.Context) (*apiclient.Client, error) {
	client, err := apiclient.NewClient(apiclient.Config{BaseURL: f.BaseURL})
	if err != nil {
		return nil, err
	}
	if f.Username != "" {
		if _, err := client.Login(ctx, f.Username, f.Password); err != nil {
			return nil, err
		}
	}
	return client, nil
}

type listCmd struct {
	apiFlags
	Kind  string `arg:"" enum:"apis,exchanges,categories,services,orders,payments,users" help:"Collection to list."`
	Page  int    `default:"1" help:"1-based page number."`
	Limit int    `default:"10" help:"Page size."`
	Type  string `help:"Payment type filter (payments only)."`
}

func (cmd *listCmd) Run(ctx context.Context) error {
	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}
	offset := console.PageOffset(cmd.Page, cmd.Limit)
	var count int
	var rows any
	switch console.EntityKind(cmd.Kind) {
	case console.KindAPIs:
		page, err := client.APIs().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindExchanges:
		page, err := client.Exchanges().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindCategories:
		page, err := client.Categories().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindServices:
		page, err := client.Services().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindOrders:
		page, err := client.Orders().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindPayments:
		page, err := client.Payments(cmd.Type).List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	case console.KindUsers:
		page, err := client.Users().List(ctx, cmd.Limit, offset)
		if err != nil {
			return err
		}
		count, rows = page.Count, page.Results
	}
	fmt.Fprintf(os.Stdout, "page %d of %d (%d rows total)\n", cmd.Page, console.TotalPages(count, cmd.Limit), count)
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

type statsCmd struct {
	apiFlags
	Range string `default:"30d" enum:"1d,7d,30d,90d,all" help:"Predefined range tag."`
}

func (cmd *statsCmd) Run(ctx context.Context) error {
	client, err := cmd.client(ctx)
	if err != nil {
		return err
	}
	tag := ""
	if cmd.Range != "all" {
		tag = strings.ToUpper(cmd.Range)
	}
	stats, err := client.Statistics(ctx, tag)
	if err != nil {
		return err
	}
	for _, card := range console.MetricCards(stats.Metrics) {
		fmt.Fprintf(os.Stdout, "%-10s %12.2f (%+.1f%%)\n", card.Name, card.Current, card.PercentChange)
	}
	return nil
}
