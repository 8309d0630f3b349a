package endpoint

import (
	"testing"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuilderPaths(t *testing.T) {
	t.Parallel()

	b := New("https://api.example.test/", "acme", "pets")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "token", got: b.Token(), want: "https://api.example.test/acme/pets/token"},
		{name: "entity", got: b.Entity("cats", "tom"), want: "https://api.example.test/acme/pets/cats/tom"},
		{name: "escaped segment", got: b.Entity("cats", "tom cat"), want: "https://api.example.test/acme/pets/cats/tom%20cat"},
		{name: "user activity", got: b.UserActivity("u1", "a1"), want: "https://api.example.test/acme/pets/users/u1/activities/a1"},
		{name: "group activity", got: b.GroupActivity("g1", "a1"), want: "https://api.example.test/acme/pets/groups/g1/activities/a1"},
		{name: "group user", got: b.GroupUser("g1", "u1"), want: "https://api.example.test/acme/pets/groups/g1/users/u1"},
		{name: "password", got: b.UserPassword("u1"), want: "https://api.example.test/acme/pets/users/u1/password"},
		{
			name: "typed connection",
			got:  b.Connection("users", "u1", "likes", "cats", "tom"),
			want: "https://api.example.test/acme/pets/users/u1/likes/cats/tom",
		},
		{
			name: "untyped connection",
			got:  b.Connection("users", "u1", "likes", "", "c-uuid"),
			want: "https://api.example.test/acme/pets/users/u1/likes/c-uuid",
		},
		{name: "facebook", got: b.FacebookAuth("fb tok"), want: "https://api.example.test/acme/pets/auth/facebook?fb_access_token=fb+tok"},
		{name: "revoke", got: b.RevokeToken("u1", "t1"), want: "https://api.example.test/acme/pets/users/u1/revoketoken?token=t1"},
		{name: "device", got: b.Device("d1"), want: "https://api.example.test/acme/pets/devices/d1"},
		{name: "notifications", got: b.Notifications("/groups/staff/"), want: "https://api.example.test/acme/pets/groups/staff/notifications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.DefaultBaseURL+"/o/a/users", New("", "o", "a").Users(nil))
}

func TestQueryEncoding(t *testing.T) {
	t.Parallel()

	b := New("http://h", "o", "a")

	assert.Equal(t, "http://h/o/a/cats", b.Collection("cats", nil))
	assert.Equal(t, "http://h/o/a/cats", b.Collection("cats", &domain.Query{}))
	assert.Equal(t,
		"http://h/o/a/cats?cursor=c1&limit=5&ql=select+%2A+where+name%3D%27tom%27",
		b.Collection("cats", &domain.Query{QL: "select * where name='tom'", Limit: 5, Cursor: "c1"}),
	)
	assert.Equal(t,
		"http://h/o/a/users/u1/feed?limit=2&reversed=true",
		b.UserFeed("u1", &domain.Query{Limit: 2, Params: map[string]string{"reversed": "true"}}),
	)
	assert.Equal(t,
		"http://h/o/a/auth/facebook?fb_access_token=x&limit=3",
		Query(b.FacebookAuth("x"), &domain.Query{Limit: 3}),
	)
}

func TestQueuePaths(t *testing.T) {
	t.Parallel()

	b := New("http://h", "o", "a")

	assert.Equal(t, "jobs/nightly", NormalizeQueuePath("/jobs//nightly/"))
	assert.Equal(t, "", NormalizeQueuePath("/"))
	assert.Equal(t, "http://h/o/a/queues/jobs/nightly", b.Queue("/jobs/nightly"))
	assert.Equal(t, "http://h/o/a/queues/jobs/subscribers/mail/out", b.QueueSubscriber("jobs", "/mail/out"))
	assert.Equal(t,
		"http://h/o/a/queues/jobs?consumer=c1&limit=20&pos=start&synchronized=true&update=true",
		b.QueueRead("jobs", QueueQuery{Consumer: "c1", Limit: 20, Position: QueuePositionStart, Update: true, Synchronized: true}),
	)
	assert.Equal(t, "http://h/o/a/queues/jobs", b.QueueRead("jobs", QueueQuery{}))
}
