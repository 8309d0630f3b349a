package client

import (
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/multistep"
)

// CreateActivity creates an activity that is not posted anywhere yet.
func (c *Client) CreateActivity(activity domain.Activity) *Call {
	entity, err := activity.Entity()
	if err != nil {
		return c.invalid("create activity", err)
	}
	return c.jsonRequest("create activity", asEntity, domain.MethodPost, c.routes.Activities(), entity)
}

func (c *Client) compound(name string, target multistep.Target, targetID string, activity domain.Activity) *Call {
	entity, err := activity.Entity()
	if err != nil {
		return c.invalid(name, err)
	}
	return &Call{
		client: c,
		name:   name,
		plan: func(token string) (multistep.Plan, error) {
			return multistep.Plan{Target: target, TargetID: targetID, Activity: entity, Token: token}, nil
		},
	}
}

// PostUserActivity creates activity and posts it to the user in one call.
// A single envelope reports the post, or the first step that failed.
func (c *Client) PostUserActivity(userID string, activity domain.Activity) *Call {
	return c.compound("post user activity", multistep.TargetUser, userID, activity)
}

func (c *Client) PostUserActivityByUUID(userID, activityID string) *Call {
	if err := firstError(required(userID, "user id"), required(activityID, "activity id")); err != nil {
		return c.invalid("post user activity", err)
	}
	return c.request("post user activity", asEntity, domain.MethodPost, c.routes.UserActivity(userID, activityID), nil)
}

// PostGroupActivity creates activity and posts it to the group in one call.
func (c *Client) PostGroupActivity(groupID string, activity domain.Activity) *Call {
	return c.compound("post group activity", multistep.TargetGroup, groupID, activity)
}

func (c *Client) PostGroupActivityByUUID(groupID, activityID string) *Call {
	if err := firstError(required(groupID, "group id"), required(activityID, "activity id")); err != nil {
		return c.invalid("post group activity", err)
	}
	return c.request("post group activity", asEntity, domain.MethodPost, c.routes.GroupActivity(groupID, activityID), nil)
}

func (c *Client) GetActivitiesForUser(userID string, q *domain.Query) *Call {
	if err := required(userID, "user id"); err != nil {
		return c.invalid("get activities for user", err)
	}
	return c.request("get activities for user", asEntities, domain.MethodGet, c.routes.UserActivities(userID, q), nil)
}

func (c *Client) GetActivitiesForGroup(groupID string, q *domain.Query) *Call {
	if err := required(groupID, "group id"); err != nil {
		return c.invalid("get activities for group", err)
	}
	return c.request("get activities for group", asEntities, domain.MethodGet, c.routes.GroupActivities(groupID, q), nil)
}

func (c *Client) GetActivityFeedForUser(userID string, q *domain.Query) *Call {
	if err := required(userID, "user id"); err != nil {
		return c.invalid("get activity feed for user", err)
	}
	return c.request("get activity feed for user", asEntities, domain.MethodGet, c.routes.UserFeed(userID, q), nil)
}

func (c *Client) GetActivityFeedForGroup(groupID string, q *domain.Query) *Call {
	if err := required(groupID, "group id"); err != nil {
		return c.invalid("get activity feed for group", err)
	}
	return c.request("get activity feed for group", asEntities, domain.MethodGet, c.routes.GroupFeed(groupID, q), nil)
}

func (c *Client) RemoveActivity(activityID string) *Call {
	if err := required(activityID, "activity id"); err != nil {
		return c.invalid("remove activity", err)
	}
	return c.request("remove activity", asEntity, domain.MethodDelete, c.routes.Activity(activityID), nil)
}
