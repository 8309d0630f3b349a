// Package endpoint turns logical operations into request URLs.
package endpoint

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/usergrid-go/internal/domain"
)

// Builder addresses one application of one organization on one server.
type Builder struct {
	BaseURL string
	Org     string
	App     string
}

func New(baseURL, org, app string) Builder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = domain.DefaultBaseURL
	}
	return Builder{BaseURL: strings.TrimRight(baseURL, "/"), Org: org, App: app}
}

// Path joins escaped segments below the application root.
func (b Builder) Path(segments ...string) string {
	var sb strings.Builder
	sb.WriteString(b.BaseURL)
	for _, segment := range append([]string{b.Org, b.App}, segments...) {
		if segment == "" {
			continue
		}
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(segment))
	}
	return sb.String()
}

// Query appends the query language clause, paging and extra parameters of q
// to raw. A nil q leaves raw unchanged.
func Query(raw string, q *domain.Query) string {
	if q == nil {
		return raw
	}

	values := url.Values{}
	for key, value := range q.Params {
		values.Set(key, value)
	}
	if strings.TrimSpace(q.QL) != "" {
		values.Set("ql", q.QL)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Cursor != "" {
		values.Set("cursor", q.Cursor)
	}

	return withValues(raw, values)
}

func withValues(raw string, values url.Values) string {
	if len(values) == 0 {
		return raw
	}
	separator := "?"
	if strings.Contains(raw, "?") {
		separator = "&"
	}
	return raw + separator + values.Encode()
}

func (b Builder) Token() string { return b.Path("token") }

func (b Builder) FacebookAuth(accessToken string) string {
	return withValues(b.Path("auth", "facebook"), url.Values{"fb_access_token": {accessToken}})
}

func (b Builder) RevokeToken(username, token string) string {
	return withValues(b.Path("users", username, "revoketoken"), url.Values{"token": {token}})
}

func (b Builder) RevokeTokens(username string) string {
	return b.Path("users", username, "revoketokens")
}

func (b Builder) Collection(collection string, q *domain.Query) string {
	return Query(b.Path(collection), q)
}

func (b Builder) Entity(collection, id string) string {
	return b.Path(collection, id)
}

func (b Builder) Users(q *domain.Query) string { return b.Collection("users", q) }

func (b Builder) UserPassword(username string) string {
	return b.Path("users", username, "password")
}

func (b Builder) GroupsForUser(userID string) string {
	return b.Path("users", userID, "groups")
}

func (b Builder) Groups() string { return b.Path("groups") }

func (b Builder) GroupUser(groupID, userID string) string {
	return b.Path("groups", groupID, "users", userID)
}

func (b Builder) UsersForGroup(groupID string, q *domain.Query) string {
	return Query(b.Path("groups", groupID, "users"), q)
}

func (b Builder) Activities() string { return b.Path("activities") }

func (b Builder) Activity(activityID string) string {
	return b.Path("activities", activityID)
}

func (b Builder) UserActivities(userID string, q *domain.Query) string {
	return Query(b.Path("users", userID, "activities"), q)
}

func (b Builder) UserActivity(userID, activityID string) string {
	return b.Path("users", userID, "activities", activityID)
}

func (b Builder) UserFeed(userID string, q *domain.Query) string {
	return Query(b.Path("users", userID, "feed"), q)
}

func (b Builder) GroupActivities(groupID string, q *domain.Query) string {
	return Query(b.Path("groups", groupID, "activities"), q)
}

func (b Builder) GroupActivity(groupID, activityID string) string {
	return b.Path("groups", groupID, "activities", activityID)
}

func (b Builder) GroupFeed(groupID string, q *domain.Query) string {
	return Query(b.Path("groups", groupID, "feed"), q)
}

// Connection addresses connectee from connector. An empty connecteeType
// relies on the server resolving the uuid.
func (b Builder) Connection(connectorType, connectorID, connectionType, connecteeType, connecteeID string) string {
	return b.Path(connectorType, connectorID, connectionType, connecteeType, connecteeID)
}

func (b Builder) Connections(connectorType, connectorID, connectionType string, q *domain.Query) string {
	return Query(b.Path(connectorType, connectorID, connectionType), q)
}

func (b Builder) Device(deviceID string) string { return b.Path("devices", deviceID) }

// Notifications addresses the notification collection below a group, user or
// device path such as "groups/staff".
func (b Builder) Notifications(path string) string {
	segments := strings.Split(NormalizeQueuePath(path), "/")
	return b.Path(append(segments, "notifications")...)
}
