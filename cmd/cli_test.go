package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/usergrid-go/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catsBody = `{"action":"get","entities":[{"uuid":"c1","type":"cat","name":"tom"},{"uuid":"c2","type":"cat","name":"felix"}]}`

type hit struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

type usergridServer struct {
	*httptest.Server

	mu   sync.Mutex
	hits []hit
}

func (s *usergridServer) recorded() []hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]hit(nil), s.hits...)
}

func newUsergridServer(t *testing.T, handler http.HandlerFunc) *usergridServer {
	t.Helper()

	srv := &usergridServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		srv.mu.Lock()
		srv.hits = append(srv.hits, hit{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		})
		srv.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func usergridHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/token"):
		_, _ = fmt.Fprint(w, `{"access_token":"tok-ann","expires_in":3600,"user":{"uuid":"u1","username":"ann"}}`)
	case strings.HasSuffix(r.URL.Path, "/activities"):
		_, _ = fmt.Fprint(w, `{"entities":[{"uuid":"a1","type":"activity","verb":"post"}]}`)
	case strings.Contains(r.URL.Path, "/devices/"):
		_, _ = fmt.Fprint(w, `{"entities":[{"uuid":"d1","type":"device","theme":"dark"}]}`)
	case strings.HasSuffix(r.URL.Path, "/dogs"):
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"error":"service_resource_not_found","error_description":"no dogs"}`)
	default:
		_, _ = fmt.Fprint(w, catsBody)
	}
}

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestProfileSetThenList(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "profile", "set", "work", "--org", "acme", "--app", "pets", "--base-url", "http://ug.local")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "profile", "set", "home", "--org", "me", "--app", "notes")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* work\tacme/pets\thttp://ug.local\t-")
	assert.Contains(t, stdout, "  home\tme/notes\thttps://api.usergrid.com\t-")

	_, _, err = executeCLI(t, home, "profile", "set", "home", "--org", "me", "--app", "notes", "--default")
	require.NoError(t, err)
	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* home")
}

func TestProfileSetRequiresOrgAndApp(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "profile", "set", "work", "--org", "acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"app\" not set")
}

func TestEntitiesGetRendersEnvelope(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, _, err := executeCLI(t, home, "entities", "get", "cats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usergrid response: get entities")
	assert.Contains(t, stdout, "transaction: sync")
	assert.Contains(t, stdout, "entities: 2")
	assert.Contains(t, stdout, "cat c1 tom")

	hits := srv.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, "/acme/pets/cats", hits[0].path)
	assert.Empty(t, hits[0].query)
}

func TestEntitiesGetJSONOutput(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, _, err := executeCLI(t, home, "entities", "get", "cats", "--limit", "2", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out envelopeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, int64(-1), out.TransactionID)
	assert.Equal(t, "success", out.State)
	assert.JSONEq(t, catsBody, out.Raw)

	hits := srv.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, "limit=2", hits[0].query)
}

func TestServerFailureIsRenderedAndReturned(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, _, err := executeCLI(t, home, "entities", "get", "dogs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get entities: server error 404: service_resource_not_found: no dogs")
	assert.Contains(t, stdout, "failure")
	assert.Contains(t, stdout, "raw:")
}

func TestLoginSavesTokenForLaterCalls(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, _, err := executeCLI(t, home, "login", "password", "--username", "ann", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, stdout, "user u1")
	assert.NotContains(t, stdout, "tok-ann")

	stdout, _, err = executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* work\tacme/pets\t"+srv.URL+"\tann")

	_, _, err = executeCLI(t, home, "entities", "get", "cats")
	require.NoError(t, err)

	hits := srv.recorded()
	require.Len(t, hits, 2)
	assert.Equal(t, "/acme/pets/token", hits[0].path)
	assert.Contains(t, hits[0].body, "grant_type=password")
	assert.Equal(t, "Bearer tok-ann", hits[1].auth)

	tokens, err := os.ReadFile(filepath.Join(home, ".usergrid", "tokens.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(tokens), "tok-ann")
}

func TestLoginJSONHidesToken(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, _, err := executeCLI(t, home, "login", "admin", "--client-id", "id", "--client-secret", "secret", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[REDACTED]")
	assert.NotContains(t, stdout, "tok-ann")
}

func TestLogoutRevokesAndForgetsToken(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	_, _, err := executeCLI(t, home, "login", "password", "--username", "ann", "--password", "pw")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "logout", "--revoke")
	require.NoError(t, err)

	hits := srv.recorded()
	require.Len(t, hits, 2)
	assert.Equal(t, http.MethodPut, hits[1].method)
	assert.Equal(t, "/acme/pets/users/ann/revoketoken", hits[1].path)
	assert.Equal(t, "token=tok-ann", hits[1].query)

	stdout, _, err := executeCLI(t, home, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* work\tacme/pets\t"+srv.URL+"\t-")

	_, _, err = executeCLI(t, home, "entities", "get", "cats")
	require.NoError(t, err)
	hits = srv.recorded()
	require.Len(t, hits, 3)
	assert.Empty(t, hits[2].auth)
}

func TestAsyncShowsWaitingSpinner(t *testing.T) {
	srv := newUsergridServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		usergridHandler(w, r)
	})
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	stdout, stderr, err := executeCLI(t, home, "entities", "get", "cats", "--async")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Waiting for get entities (transaction 1)")
	assert.Contains(t, stdout, "transaction: 1")
	assert.Contains(t, stdout, "entities: 2")
}

func TestActivityPostCreatesThenPosts(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	_, _, err := executeCLI(t, home, "activity", "post", "--user", "u1", "--content", "hi", "--actor-username", "ann")
	require.NoError(t, err)

	hits := srv.recorded()
	require.Len(t, hits, 2)
	assert.Equal(t, "/acme/pets/activities", hits[0].path)
	assert.Contains(t, hits[0].body, `"verb":"post"`)
	assert.Equal(t, "/acme/pets/users/u1/activities/a1", hits[1].path)
}

func TestActivityPostNeedsOneTarget(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "activity", "post", "--user", "u1", "--group", "staff", "--content", "hi")
	require.ErrorIs(t, err, errActivityTarget)
}

func TestStorageUsesPersistentDeviceID(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	_, _, err := executeCLI(t, home, "storage", "set", "--data", `{"theme":"dark"}`)
	require.NoError(t, err)
	stdout, _, err := executeCLI(t, home, "storage", "get")
	require.NoError(t, err)
	assert.Contains(t, stdout, "theme: dark")

	hits := srv.recorded()
	require.Len(t, hits, 2)
	assert.Equal(t, http.MethodPut, hits[0].method)
	assert.Equal(t, hits[0].path, hits[1].path)
	assert.True(t, strings.HasPrefix(hits[0].path, "/acme/pets/devices/"))

	id, err := os.ReadFile(filepath.Join(home, ".usergrid", "device_id"))
	require.NoError(t, err)
	assert.Equal(t, "/acme/pets/devices/"+strings.TrimSpace(string(id)), hits[0].path)
}

func TestRequestResolvesRelativeURL(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	configureProfile(t, home, srv.URL)

	_, _, err := executeCLI(t, home, "request", "post", "cats", "--data", `{"name":"tom"}`)
	require.NoError(t, err)

	hits := srv.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, http.MethodPost, hits[0].method)
	assert.Equal(t, "/acme/pets/cats", hits[0].path)
	assert.JSONEq(t, `{"name":"tom"}`, hits[0].body)
}

func TestEnvironmentTargetsWithoutProfile(t *testing.T) {
	srv := newUsergridServer(t, usergridHandler)
	home := t.TempDir()
	t.Setenv("UG_BASE_URL", srv.URL)
	t.Setenv("UG_ORG", "envorg")
	t.Setenv("UG_APP", "envapp")

	_, _, err := executeCLI(t, home, "queue", "get", "jobs", "--consumer", "w1", "--pos", "start")
	require.NoError(t, err)

	hits := srv.recorded()
	require.Len(t, hits, 1)
	assert.Equal(t, "/envorg/envapp/queues/jobs", hits[0].path)
	assert.Equal(t, "consumer=w1&pos=start", hits[0].query)
}

func TestMissingProfileExplainsSetup(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "entities", "get", "cats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ug profile set")
}

func TestQueueGetRejectsUnknownPosition(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "queue", "get", "jobs", "--pos", "middle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported --pos")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("UG_TOKEN_STORE", "file")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func configureProfile(t *testing.T, home, baseURL string) {
	t.Helper()

	_, _, err := executeCLI(t, home, "profile", "set", "work", "--org", "acme", "--app", "pets", "--base-url", baseURL)
	require.NoError(t, err)
}
