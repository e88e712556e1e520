package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"launchdash/internal/analytics"
	"launchdash/internal/cache"
	"launchdash/internal/config"
	"launchdash/internal/controller"
	"launchdash/internal/models"
	"launchdash/internal/render"
	"launchdash/internal/testutil"
)

type envelope struct {
	Status string                  `json:"status"`
	Error  string                  `json:"error"`
	Code   string                  `json:"code"`
	Data   models.SnapshotResponse `json:"data"`
}

func newTestServer(t *testing.T) (*Server, *controller.Controller) {
	t.Helper()

	cfg := &config.Config{
		Env:          "test",
		BaseURL:      "http://localhost:8050",
		ViewsDir:     "../../views",
		StaticDir:    "../../static",
		RateLimitMax: 1000,
		SiteTitle:    "Launch Records",
		SiteFooter:   "footer",
	}

	producer := analytics.NewProducer(testutil.TwoSiteStore(t))
	ctrl, err := controller.New(producer, nil)
	if err != nil {
		t.Fatalf("controller.New() error = %v", err)
	}

	srv := New(cfg, nil)
	srv.RegisterRoutes(Deps{
		Producer:   producer,
		Controller: ctrl,
		Charts:     &cache.Charts{Renderer: render.New(nil)},
	})
	return srv, ctrl
}

func doRequest(t *testing.T, srv *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return env
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, httptestRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	resp, _ = doRequest(t, srv, httptestRequest(http.MethodGet, "/readyz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("readyz status = %d, want 200 without a database", resp.StatusCode)
	}
}

func TestAPISelection_GetDefault(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/api/selection", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	env := decode(t, body)
	if env.Status != "ok" {
		t.Errorf("status field = %q, want ok", env.Status)
	}
	if env.Data.Selection.Site != models.SiteAll {
		t.Errorf("site = %q, want %q", env.Data.Selection.Site, models.SiteAll)
	}
	if env.Data.Selection.PayloadRange != (models.PayloadRange{Low: 0, High: 9600}) {
		t.Errorf("range = %+v, want full dataset range", env.Data.Selection.PayloadRange)
	}
	// Bounds are exclusive, so the lightest and heaviest launches drop out.
	if len(env.Data.Scatter) != 3 {
		t.Errorf("scatter points = %d, want 3", len(env.Data.Scatter))
	}
	for _, p := range env.Data.Scatter {
		if p.PayloadMassKg == 0 || p.PayloadMassKg == 9600 {
			t.Errorf("scatter includes boundary payload %v", p.PayloadMassKg)
		}
	}
}

func TestAPISelection_Patch(t *testing.T) {
	srv, ctrl := newTestServer(t)

	req := httptestRequest(http.MethodPatch, "/api/selection", strings.NewReader(`{"site":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	// Site names are matched exactly; "a" is a valid but unknown site.
	if got := ctrl.Current().Selection.Site; got != "a" {
		t.Errorf("site = %q, want a", got)
	}
	if len(ctrl.Current().Pie) != 0 {
		t.Errorf("pie = %v, want empty for unknown site", ctrl.Current().Pie)
	}

	req = httptestRequest(http.MethodPatch, "/api/selection", strings.NewReader(`{"site":"A","payload_range":{"low":1000,"high":5000}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	env := decode(t, body)
	if env.Data.Selection.Site != "A" {
		t.Errorf("site = %q, want A", env.Data.Selection.Site)
	}
	if len(env.Data.Scatter) != 1 {
		t.Errorf("scatter points = %d, want 1", len(env.Data.Scatter))
	}
}

func TestAPISelection_PatchInvalidRange(t *testing.T) {
	srv, ctrl := newTestServer(t)
	before := ctrl.Current()

	req := httptestRequest(http.MethodPatch, "/api/selection", strings.NewReader(`{"payload_range":{"low":5000,"high":1000}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", resp.StatusCode, body)
	}
	if env := decode(t, body); env.Status != "error" || env.Code != "invalid_range" {
		t.Errorf("envelope = %+v, want error with code invalid_range", env)
	}
	if ctrl.Current().Key != before.Key {
		t.Error("rejected update changed the selection")
	}
}

func TestAPISelection_PatchBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptestRequest(http.MethodPatch, "/api/selection", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAPIPreview_DoesNotChangeSelection(t *testing.T) {
	srv, ctrl := newTestServer(t)
	before := ctrl.Current()

	resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/api/preview?site=B&low=-100&high=20000", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	env := decode(t, body)
	if env.Data.Selection.Site != "B" {
		t.Errorf("site = %q, want B", env.Data.Selection.Site)
	}
	if env.Data.Selection.PayloadRange != (models.PayloadRange{Low: 0, High: 9600}) {
		t.Errorf("range = %+v, want clamped to dataset bounds", env.Data.Selection.PayloadRange)
	}
	if env.Data.Window != (models.PayloadRange{Low: -100, High: 20000}) {
		t.Errorf("filter_range = %+v, want the requested window", env.Data.Window)
	}
	// The requested window is wider than the data, so both B launches show.
	if len(env.Data.Scatter) != 2 {
		t.Errorf("scatter points = %d, want 2", len(env.Data.Scatter))
	}
	if ctrl.Current().Key != before.Key {
		t.Error("preview changed the shared selection")
	}

	resp, _ = doRequest(t, srv, httptestRequest(http.MethodGet, "/api/preview?low=10", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("partial range status = %d, want 400", resp.StatusCode)
	}

	resp, body = doRequest(t, srv, httptestRequest(http.MethodGet, "/api/preview?low=10&high=5", nil))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("inverted range status = %d, want 422", resp.StatusCode)
	}
	if env := decode(t, body); env.Code != "invalid_range" {
		t.Errorf("code = %q, want invalid_range", env.Code)
	}
}

func TestAPIDataset(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/api/dataset", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	var env struct {
		Data models.DatasetResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Records != 5 {
		t.Errorf("records = %d, want 5", env.Data.Records)
	}
	if len(env.Data.Sites) != 2 || env.Data.Sites[0] != "A" {
		t.Errorf("sites = %v, want [A B]", env.Data.Sites)
	}
	if env.Data.Successes["A"] != 2 || env.Data.Successes["B"] != 1 {
		t.Errorf("successes = %v", env.Data.Successes)
	}
}

func TestAPIUnknownRoute_JSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/api/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if env := decode(t, body); env.Status != "error" || env.Code != "not_found" {
		t.Errorf("envelope status = %q code = %q, want error/not_found", env.Status, env.Code)
	}
}

func TestChartPNG_ETag(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/charts/pie.png", "/charts/scatter.png"} {
		t.Run(path, func(t *testing.T) {
			resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, path, nil))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			if !strings.HasPrefix(string(body), "\x89PNG") {
				t.Error("body is not a PNG")
			}

			etag := resp.Header.Get("ETag")
			if etag == "" {
				t.Fatal("missing ETag")
			}

			req := httptestRequest(http.MethodGet, path, nil)
			req.Header.Set("If-None-Match", etag)
			resp, _ = doRequest(t, srv, req)
			if resp.StatusCode != http.StatusNotModified {
				t.Errorf("conditional status = %d, want 304", resp.StatusCode)
			}
		})
	}
}

func TestDashboard_Index(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	page := string(body)
	for _, want := range []string{
		"Launch Records",
		"All Sites",
		render.PieTitle(models.SiteAll),
		"/charts/pie.png?v=",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestDashboard_UpdateForm(t *testing.T) {
	srv, ctrl := newTestServer(t)

	form := url.Values{"site": {"B"}, "low": {"0"}, "high": {"5000"}}
	req := httptestRequest(http.MethodPost, "/selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	sel := ctrl.Current().Selection
	if sel.Site != "B" || sel.PayloadRange != (models.PayloadRange{Low: 0, High: 5000}) {
		t.Errorf("selection = %+v", sel)
	}
}

func TestDashboard_KeepsRequestedWindow(t *testing.T) {
	srv, ctrl := newTestServer(t)

	form := url.Values{"site": {"ALL"}, "low": {"0"}, "high": {"10000"}}
	req := httptestRequest(http.MethodPost, "/selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if resp, _ := doRequest(t, srv, req); resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}

	// 9600 is inside (0, 10000) even though the displayed range stops at it.
	if got := len(ctrl.Current().Scatter); got != 4 {
		t.Errorf("scatter points = %d, want 4", got)
	}

	_, body := doRequest(t, srv, httptestRequest(http.MethodGet, "/", nil))
	page := string(body)
	if !strings.Contains(page, `value="10000"`) {
		t.Error("form does not echo the requested upper bound")
	}
	if !strings.Contains(page, "Showing 0 to 9600 kg") {
		t.Error("page does not show the clamped range")
	}
}

func TestDashboard_UpdateFormInvalidRange(t *testing.T) {
	srv, ctrl := newTestServer(t)
	before := ctrl.Current()

	form := url.Values{"low": {"5000"}, "high": {"10"}}
	req := httptestRequest(http.MethodPost, "/selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, body := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if !strings.Contains(string(body), "payload range is invalid") {
		t.Error("page does not explain the rejected range")
	}
	if ctrl.Current().Key != before.Key {
		t.Error("rejected update changed the selection")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, srv, httptestRequest(http.MethodGet, "/metrics", nil))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBuildTLSConfig(t *testing.T) {
	tlsConfig, err := buildTLSConfig(&config.Config{TLSEnabled: true})
	if err != nil {
		t.Fatalf("buildTLSConfig() error = %v", err)
	}
	if tlsConfig.ClientCAs != nil {
		t.Error("ClientCAs set without a CA file")
	}

	if _, err := buildTLSConfig(&config.Config{TLSEnabled: true, TLSCAFile: "/does/not/exist.pem"}); err == nil {
		t.Error("expected error for missing CA file")
	}
}

func httptestRequest(method, target string, body io.Reader) *http.Request {
	req, _ := http.NewRequest(method, target, body)
	return req
}
