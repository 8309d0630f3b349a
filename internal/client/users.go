package client

import (
	"github.com/bnema/usergrid-go/internal/domain"
)

// AddUser creates a user entity. The payload is the created domain.Entity.
func (c *Client) AddUser(username, name, email, password string) *Call {
	if err := required(username, "username"); err != nil {
		return c.invalid("add user", err)
	}

	body := domain.Entity{"type": "user", "username": username}
	for key, value := range map[string]string{"name": name, "email": email, "password": password} {
		if value != "" {
			body[key] = value
		}
	}
	return c.jsonRequest("add user", asEntity, domain.MethodPost, c.routes.Users(nil), body)
}

func (c *Client) UpdateUserPassword(username, oldPassword, newPassword string) *Call {
	if err := firstError(
		required(username, "username"),
		required(oldPassword, "old password"),
		required(newPassword, "new password"),
	); err != nil {
		return c.invalid("update user password", err)
	}
	return c.jsonRequest("update user password", asAPIResponse, domain.MethodPost, c.routes.UserPassword(username), map[string]string{
		"oldpassword": oldPassword,
		"newpassword": newPassword,
	})
}

// GetGroupsForUser returns the groups of userID keyed by group path.
func (c *Client) GetGroupsForUser(userID string) *Call {
	if err := required(userID, "user id"); err != nil {
		return c.invalid("get groups for user", err)
	}
	return c.request("get groups for user", asEntitiesByPath, domain.MethodGet, c.routes.GroupsForUser(userID), nil)
}

func (c *Client) GetUsers(q *domain.Query) *Call {
	return c.request("get users", asEntities, domain.MethodGet, c.routes.Users(q), nil)
}

// CreateGroup creates the group at path. title is optional.
func (c *Client) CreateGroup(path, title string) *Call {
	if err := required(path, "group path"); err != nil {
		return c.invalid("create group", err)
	}

	body := domain.Entity{"type": "group", "path": path}
	if title != "" {
		body["title"] = title
	}
	return c.jsonRequest("create group", asEntity, domain.MethodPost, c.routes.Groups(), body)
}

func (c *Client) AddUserToGroup(userID, groupID string) *Call {
	if err := firstError(required(userID, "user id"), required(groupID, "group id")); err != nil {
		return c.invalid("add user to group", err)
	}
	return c.request("add user to group", asEntity, domain.MethodPost, c.routes.GroupUser(groupID, userID), nil)
}

func (c *Client) RemoveUserFromGroup(userID, groupID string) *Call {
	if err := firstError(required(userID, "user id"), required(groupID, "group id")); err != nil {
		return c.invalid("remove user from group", err)
	}
	return c.request("remove user from group", asEntity, domain.MethodDelete, c.routes.GroupUser(groupID, userID), nil)
}

func (c *Client) GetUsersForGroup(groupID string, q *domain.Query) *Call {
	if err := required(groupID, "group id"); err != nil {
		return c.invalid("get users for group", err)
	}
	return c.request("get users for group", asEntities, domain.MethodGet, c.routes.UsersForGroup(groupID, q), nil)
}
