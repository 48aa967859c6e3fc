package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	layout "github.com/intrakit/intraboard/components/layout"
	"github.com/intrakit/intraboard/components/layout/commands"
	"github.com/intrakit/intraboard/components/layout/httpapi"
	"github.com/intrakit/intraboard/components/layout/queries"
)

// Config wires go-router with the layout controller, API, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *layout.Controller
	API        httpapi.Executor
	Broadcast  *layout.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for layout endpoints.
type RouteConfig struct {
	Layout     string
	Catalog    string
	Move       string
	Size       string
	Visibility string
	Widgets    string
	Reset      string
	WebSocket  string
}

// Register mounts layout routes (JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/intranet"
	}

	layoutQuery := queries.NewLayoutQuery(cfg.Controller)
	catalogQuery := queries.NewCatalogQuery(cfg.Controller)

	group := cfg.Router.Group(base)

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		visibleOnly, _ := strconv.ParseBool(ctx.Query("visible"))
		out, err := layoutQuery.Query(ctx.Context(), queries.LayoutQueryInput{VisibleOnly: visibleOnly})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, out)
	}))

	group.Get(routes.Catalog, router.WrapHandler(func(ctx router.Context) error {
		out, err := catalogQuery.Query(ctx.Context(), queries.CatalogQueryInput{Category: ctx.Query("category")})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, out)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Move, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.MovePlacementInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Move(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "moved"})
	}))

	r.Post(routes.Size, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResizePlacementInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Resize(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "resized"})
	}))

	r.Post(routes.Visibility, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("placement id is required"))
		}
		if err := api.Visibility(ctx.Context(), commands.ToggleVisibilityInput{ID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddPlacementInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Reset(ctx.Context()); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *layout.BroadcastHook, path string) {
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

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Layout == "" {
		routes.Layout = "/layout"
	}
	if routes.Catalog == "" {
		routes.Catalog = "/layout/catalog"
	}
	if routes.Move == "" {
		routes.Move = "/layout/widgets/move"
	}
	if routes.Size == "" {
		routes.Size = "/layout/widgets/size"
	}
	if routes.Visibility == "" {
		routes.Visibility = "/layout/widgets/:id/visibility"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/layout/widgets"
	}
	if routes.Reset == "" {
		routes.Reset = "/layout/reset"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/layout/ws"
	}
	return routes
}
