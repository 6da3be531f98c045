package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	console "github.com/goliatone/go-admin-console/components/console"
	"github.com/goliatone/go-admin-console/components/console/commands"
	"github.com/goliatone/go-admin-console/components/console/httpapi"
)

// Config wires go-router with the console commands and broadcast hook.
type Config[T any] struct {
	Router    router.Router[T]
	API       httpapi.Executor
	Broadcast *console.BroadcastHook
	BasePath  string
	Routes    RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Screens   string
	Screen    string
	Bulk      string
	Range     string
	Stats     string
	Metrics   string
	WebSocket string
}

// Register mounts console routes (JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	group := cfg.Router.Group(base)

	group.Post(routes.Screens, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.LoadScreenMessage
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.Load(ctx.Context(), payload); err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "loaded"})
	}))

	group.Get(routes.Screen, router.WrapHandler(func(ctx router.Context) error {
		kind := ctx.Param("kind")
		if kind == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("screen kind is required"))
		}
		snap, err := cfg.API.Snapshot(ctx.Context(), console.EntityKind(kind))
		if err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, snap)
	}))

	group.Post(routes.Bulk, router.WrapHandler(func(ctx router.Context) error {
		kind := ctx.Param("kind")
		if kind == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("screen kind is required"))
		}
		var payload commands.BulkActionMessage
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.Bulk(ctx.Context(), console.EntityKind(kind), payload); err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "applied"})
	}))

	group.Post(routes.Range, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetRangeMessage
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.SetRange(ctx.Context(), payload); err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "set"})
	}))

	group.Post(routes.Stats, router.WrapHandler(func(ctx router.Context) error {
		if err := cfg.API.RefreshStats(ctx.Context()); err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "refreshed"})
	}))

	group.Get(routes.Metrics, router.WrapHandler(func(ctx router.Context) error {
		metrics, err := cfg.API.Metrics(ctx.Context())
		if err != nil {
			return domainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, metrics)
	}))

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *console.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// domainError maps console failures onto HTTP statuses; everything else is a 500.
func domainError(ctx router.Context, err error) error {
	var validation *console.ValidationError
	if errors.As(err, &validation) {
		return ctx.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
	}
	switch {
	case errors.Is(err, console.ErrExchangeInUse):
		return respondError(ctx, http.StatusConflict, err)
	case errors.Is(err, commands.ErrBulkNotConfirmed):
		return respondError(ctx, http.StatusBadRequest, err)
	}
	return respondError(ctx, http.StatusInternalServerError, err)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Screens == "" {
		routes.Screens = "/screens/load"
	}
	if routes.Screen == "" {
		routes.Screen = "/screens/:kind"
	}
	if routes.Bulk == "" {
		routes.Bulk = "/screens/:kind/bulk"
	}
	if routes.Range == "" {
		routes.Range = "/range"
	}
	if routes.Stats == "" {
		routes.Stats = "/stats/refresh"
	}
	if routes.Metrics == "" {
		routes.Metrics = "/metrics"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
