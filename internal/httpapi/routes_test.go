package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DoyleJ11/draft-room/internal/controls"
	"github.com/DoyleJ11/draft-room/internal/hub"
	"github.com/DoyleJ11/draft-room/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := httptest.NewServer(SetupRoutes(hub.NewHub(ctx, zap.NewNop()), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, commissioner bool) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, nil)
	require.NoError(t, err)
	if commissioner {
		req.Header.Set(commissionerHeader, "true")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createRoom(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/rooms", false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code := decode[types.RoomResponse](t, resp).Code
	require.Len(t, code, 6)
	return code
}

func controlsView(t *testing.T, srv *httptest.Server, code string, commissioner bool) types.ControlsResponse {
	t.Helper()
	resp := do(t, srv, http.MethodGet, "/api/rooms/"+code+"/controls", commissioner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[types.ControlsResponse](t, resp)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/healthz", false).StatusCode)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}

func TestHome(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/home", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[types.HomeResponse](t, resp)
	assert.Len(t, body.Features, 6)
	assert.Len(t, body.QuickActions, 3)

	page := do(t, srv, http.MethodGet, "/", false)
	require.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Header.Get("Content-Type"), "text/html")
}

func TestControls_ViewFollowsRoleAndLifecycle(t *testing.T) {
	srv := newTestServer(t)
	code := createRoom(t, srv)

	assert.Equal(t, controls.ViewWaiting, controlsView(t, srv, code, false).View)

	v := controlsView(t, srv, code, true)
	assert.Equal(t, controls.ViewStart, v.View)
	assert.Equal(t, 0, v.Version)

	resp := do(t, srv, http.MethodPost, "/rooms/"+code+"/start", true)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, types.IntentResponse{Intent: "start", Version: 1}, decode[types.IntentResponse](t, resp))
	assert.Equal(t, controls.ViewPause, controlsView(t, srv, code, true).View)

	resp = do(t, srv, http.MethodPost, "/rooms/"+code+"/pause", true)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, controls.ViewStart, controlsView(t, srv, code, true).View)

	resp = do(t, srv, http.MethodPost, "/rooms/"+code+"/complete", false)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	v = controlsView(t, srv, code, true)
	assert.Equal(t, controls.ViewComplete, v.View)
	assert.Equal(t, 3, v.Version)
}

func TestIntent_HiddenAffordanceIsRejected(t *testing.T) {
	srv := newTestServer(t)
	code := createRoom(t, srv)

	cases := []struct {
		name         string
		path         string
		commissioner bool
	}{
		{"viewer cannot start", "/start", false},
		{"pause not shown while paused", "/pause", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, "/rooms/"+code+tc.path, tc.commissioner)
			require.Equal(t, http.StatusConflict, resp.StatusCode)
			assert.Equal(t, controls.ErrAffordanceHidden.Error(), decode[types.ErrorResponse](t, resp).Error)
		})
	}

	assert.Equal(t, 0, controlsView(t, srv, code, true).Version)
}

func TestComplete_Twice(t *testing.T) {
	srv := newTestServer(t)
	code := createRoom(t, srv)

	require.Equal(t, http.StatusAccepted, do(t, srv, http.MethodPost, "/rooms/"+code+"/complete", false).StatusCode)
	resp := do(t, srv, http.MethodPost, "/rooms/"+code+"/complete", false)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownRoom(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/rooms/NOPE00/controls", "/rooms/NOPE00/controls"} {
		resp := do(t, srv, http.MethodGet, path, true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/rooms/NOPE00/start", true).StatusCode)
}

func TestControlsPage_FormPostRedirects(t *testing.T) {
	srv := newTestServer(t)
	code := createRoom(t, srv)

	page := do(t, srv, http.MethodGet, "/rooms/"+code+"/controls?commissioner=true", false)
	require.Equal(t, http.StatusOK, page.StatusCode)

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Post(srv.URL+"/rooms/"+code+"/start?commissioner=true",
		"application/x-www-form-urlencoded", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/rooms/"+code+"/controls?commissioner=true", resp.Header.Get("Location"))
	assert.Equal(t, controls.ViewPause, controlsView(t, srv, code, true).View)
}
