package client

import (
	"github.com/bnema/usergrid-go/internal/domain"
)

// CreateEntity posts entity to the collection named by its type property.
func (c *Client) CreateEntity(entity domain.Entity) *Call {
	if err := required(entity.Type(), "entity type"); err != nil {
		return c.invalid("create entity", err)
	}
	return c.jsonRequest("create entity", asEntity, domain.MethodPost, c.routes.Collection(entity.Type(), nil), entity)
}

// GetEntities reads collection. With a nil query the server answers its
// default page of domain.DefaultQueryLimit entities.
func (c *Client) GetEntities(collection string, q *domain.Query) *Call {
	if err := required(collection, "collection"); err != nil {
		return c.invalid("get entities", err)
	}
	return c.request("get entities", asEntities, domain.MethodGet, c.routes.Collection(collection, q), nil)
}

// UpdateEntity replaces the properties sent in entity. It is addressed by
// uuid, or by name when no uuid is set.
func (c *Client) UpdateEntity(entity domain.Entity) *Call {
	id := entity.UUID()
	if id == "" {
		id = entity.Name()
	}
	if err := firstError(required(entity.Type(), "entity type"), required(id, "entity uuid or name")); err != nil {
		return c.invalid("update entity", err)
	}
	return c.jsonRequest("update entity", asEntity, domain.MethodPut, c.routes.Entity(entity.Type(), id), entity)
}

func (c *Client) RemoveEntity(collection, id string) *Call {
	if err := firstError(required(collection, "collection"), required(id, "entity id")); err != nil {
		return c.invalid("remove entity", err)
	}
	return c.request("remove entity", asEntity, domain.MethodDelete, c.routes.Entity(collection, id), nil)
}

// ConnectEntities links connectee to connector under connectionType. The
// connectee is addressed by uuid alone.
func (c *Client) ConnectEntities(connectorType, connectorID, connectionType, connecteeID string) *Call {
	return c.connection("connect entities", domain.MethodPost, connectorType, connectorID, connectionType, "", connecteeID)
}

// ConnectEntitiesTyped links a connectee addressed by type and name or uuid.
func (c *Client) ConnectEntitiesTyped(connectorType, connectorID, connectionType, connecteeType, connecteeID string) *Call {
	if err := required(connecteeType, "connectee type"); err != nil {
		return c.invalid("connect entities", err)
	}
	return c.connection("connect entities", domain.MethodPost, connectorType, connectorID, connectionType, connecteeType, connecteeID)
}

func (c *Client) DisconnectEntities(connectorType, connectorID, connectionType, connecteeID string) *Call {
	return c.connection("disconnect entities", domain.MethodDelete, connectorType, connectorID, connectionType, "", connecteeID)
}

func (c *Client) connection(name string, method domain.Method, connectorType, connectorID, connectionType, connecteeType, connecteeID string) *Call {
	if err := firstError(
		required(connectorType, "connector type"),
		required(connectorID, "connector id"),
		required(connectionType, "connection type"),
		required(connecteeID, "connectee id"),
	); err != nil {
		return c.invalid(name, err)
	}
	url := c.routes.Connection(connectorType, connectorID, connectionType, connecteeType, connecteeID)
	return c.request(name, asEntity, method, url, nil)
}

func (c *Client) GetEntityConnections(connectorType, connectorID, connectionType string, q *domain.Query) *Call {
	if err := firstError(
		required(connectorType, "connector type"),
		required(connectorID, "connector id"),
		required(connectionType, "connection type"),
	); err != nil {
		return c.invalid("get entity connections", err)
	}
	url := c.routes.Connections(connectorType, connectorID, connectionType, q)
	return c.request("get entity connections", asEntities, domain.MethodGet, url, nil)
}
