package domain

import (
	"encoding/json"
	"time"
)

// Resource visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Resource is a generic owned entity (ship, library, hangar,
// configuration). Its Data payload is opaque to the access-control core;
// it is validated against the ResourceType schema at the service edge.
type Resource struct {
	ID         string
	OwnerID    string
	Name       string
	Type       string
	Data       map[string]interface{}
	Visibility string
	CreatedAt  int64
	UpdatedAt  int64
}

// ResourceType names a resource kind and carries the JSON Schema its Data
// payload must satisfy.
type ResourceType struct {
	Name      string
	Schema    json.RawMessage
	CreatedAt time.Time
}

// CreateResourceRequest carries the caller-supplied fields for resource
// creation and update.
type CreateResourceRequest struct {
	Name       string                 `json:"name"`
	Data       map[string]interface{} `json:"data"`
	Visibility string                 `json:"visibility"`
}
