package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/navigation"
	"upkeep-server/internal/navigation/httpapi/internal"
)

type PageResolver interface {
	Resolve(ctx context.Context, raw string) (navigation.Match, error)
	Menu() []navigation.MenuEntry
}

var _ PageResolver = (*navigation.Navigator)(nil)

func NewPageController(resolver PageResolver) *PageController {
	return &PageController{
		resolver: resolver,
	}
}

var _ httpserver.Controller = &PageController{}

type PageController struct {
	resolver PageResolver
}

func (c *PageController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/menu", c.menu())
	router.Handle("GET /v1/pages/{path...}", c.resolvePage())
}

func (c *PageController) menu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpserver.ReplyJSONResponse(w, http.StatusOK, map[string]any{
			"sections": internal.ToMenuResponse(c.resolver.Menu()),
		})
	}
}

// resolvePage answers with the page descriptor, or redirects to the list
// page when a detail route names a record that does not exist.
func (c *PageController) resolvePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := c.resolver.Resolve(r.Context(), "/"+r.PathValue("path"))
		if errors.Is(err, navigation.ErrRouteNotFound) {
			httpserver.ReplyWithError(w, http.StatusNotFound, "page not found")
			return
		}
		if err != nil {
			slog.Error("resolving page", slog.String("path", r.PathValue("path")), slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to resolve page")
			return
		}

		if match.Redirect != "" {
			w.Header().Set("Location", "/v1/pages"+match.Redirect)
			httpserver.ReplyJSONResponse(w, http.StatusSeeOther, map[string]string{"redirect": match.Redirect})
			return
		}
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToPageResponse(match))
	}
}
