// Package api provides the HTTP handlers for the ship architect REST API.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/marcelofalero/swse-architech/internal/access"
	"github.com/marcelofalero/swse-architech/internal/middleware"
	"github.com/marcelofalero/swse-architech/internal/service"
)

// Handler holds the services behind the REST endpoints.
type Handler struct {
	accounts  *service.AccountService
	resources *service.ResourceService
	sharing   *service.SharingService
	groups    *service.GroupService
	types     *service.TypeService
	logger    *slog.Logger
}

func NewHandler(
	accounts *service.AccountService,
	resources *service.ResourceService,
	sharing *service.SharingService,
	groups *service.GroupService,
	types *service.TypeService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:  accounts,
		resources: resources,
		sharing:   sharing,
		groups:    groups,
		types:     types,
		logger:    logger,
	}
}

// actorID returns the authenticated principal's id, or "" for anonymous
// requests.
func actorID(r *http.Request) string {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return ""
	}
	return p.ID
}

// link is a hypermedia entry in a resource's _links map.
type link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// resourceLinks builds the _links map for a resource according to the
// caller's rank: self always, update at write, share and delete at admin.
func resourceLinks(res *service.RankedResource) map[string]link {
	base := fmt.Sprintf("/%s/%s", res.Type, res.ID)
	links := map[string]link{
		"self": {Href: base, Rel: "self", Method: http.MethodGet},
	}
	if access.Authorize(res.Rank, access.RankWrite) {
		links["update"] = link{Href: base, Rel: "update", Method: http.MethodPut}
	}
	if access.Authorize(res.Rank, access.RankAdmin) {
		links["share"] = link{Href: base + "/share", Rel: "share", Method: http.MethodPatch}
		links["delete"] = link{Href: base, Rel: "delete", Method: http.MethodDelete}
	}
	return links
}

// resourceResponse is the wire form of a resource.
type resourceResponse struct {
	ID         string                 `json:"id"`
	OwnerID    string                 `json:"owner_id"`
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	Visibility string                 `json:"visibility"`
	CreatedAt  int64                  `json:"created_at"`
	UpdatedAt  int64                  `json:"updated_at"`
	Links      map[string]link        `json:"_links"`
}

func toResourceResponse(res *service.RankedResource) resourceResponse {
	return resourceResponse{
		ID:         res.ID,
		OwnerID:    res.OwnerID,
		Name:       res.Name,
		Type:       res.Type,
		Data:       res.Data,
		Visibility: res.Visibility,
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
		Links:      resourceLinks(res),
	}
}
