package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/savioss/FreeSupplierBuyer/internal/market"
	"github.com/savioss/FreeSupplierBuyer/internal/store"
	"github.com/savioss/FreeSupplierBuyer/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	server   *httptest.Server
	market   *market.Marketplace
	sessions *sessions.CookieStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	s, err := store.NewStore(context.Background(), store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	templates := NewTemplateCache()
	require.NoError(t, templates.Load(web.FS, "templates"))

	app := &testApp{
		market:   market.New(s),
		sessions: sessions.NewCookieStore([]byte(strings.Repeat("s", 32))),
	}
	h := &MarketHandler{Market: app.market, SessionStore: app.sessions, Templates: templates}
	app.server = httptest.NewServer(NewRouter(h, nil, nil))
	t.Cleanup(app.server.Close)
	return app
}

// client keeps its own cookie jar, i.e. its own workspace.
type client struct {
	t    *testing.T
	app  *testApp
	http *http.Client
}

func (app *testApp) newClient(t *testing.T) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, app: app, http: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

type page struct {
	status   int
	location string
	body     string
}

func (c *client) do(req *http.Request) page {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return page{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}

func (c *client) get(path string) page {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.app.server.URL+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) page {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.app.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) login(name, role string) {
	c.t.Helper()
	p := c.post("/login", url.Values{"method": {"name"}, "value": {name}, "role": {role}})
	require.Equal(c.t, http.StatusSeeOther, p.status, p.body)
}

// workspace decodes the workspace id from the client's session cookie.
func (c *client) workspace() string {
	c.t.Helper()
	u, err := url.Parse(c.app.server.URL)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range c.http.Jar.Cookies(u) {
		req.AddCookie(ck)
	}
	session, err := c.app.sessions.Get(req, sessionName)
	require.NoError(c.t, err)
	id, _ := session.Values[workspaceKey].(string)
	require.NotEmpty(c.t, id)
	return id
}

func TestIndexRedirects(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.get("/")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/login", p.location)

	c.login("Acme", "Supplier")
	p = c.get("/")
	assert.Equal(t, "/supplier", p.location)
}

func TestLoginPage(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.get("/login")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Global Trade Connect")
	assert.Contains(t, p.body, `placeholder="Enter your name or company"`)
	assert.Contains(t, p.body, `value="Buyer" checked`)

	p = c.get("/login?method=email")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, `type="email"`)
	assert.Contains(t, p.body, `placeholder="Enter your email address"`)

	p = c.get("/login?method=carrier-pigeon")
	assert.Contains(t, p.body, `type="text"`)
}

func TestLoginBuyer(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.post("/login", url.Values{"method": {"email"}, "value": {"  buyer@acme.test "}, "role": {"Buyer"}})
	require.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/buyer", p.location)

	p = c.get("/buyer")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Welcome, buyer@acme.test!")
	assert.Contains(t, p.body, "My Posted Requirements")
	assert.Contains(t, p.body, "Get started by posting a new requirement.")
	assert.Contains(t, p.body, "No messages yet")

	p = c.get("/buyer")
	assert.NotContains(t, p.body, "Welcome,")

	p = c.get("/login")
	assert.Equal(t, "/buyer", p.location)
}

func TestLoginRejected(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.post("/login", url.Values{"method": {"phone"}, "value": {"   "}, "role": {"Supplier"}})
	require.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, market.LoginErrorText)
	assert.Contains(t, p.body, `type="tel"`)
	assert.Contains(t, p.body, `value="Supplier" checked`)

	p = c.post("/login", url.Values{"value": {"Acme"}, "role": {"Admin"}})
	require.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, invalidRoleText)

	u, err := app.market.CurrentUser(context.Background(), c.workspace())
	require.NoError(t, err)
	assert.Nil(t, u)

	p = c.get("/buyer")
	assert.Equal(t, "/login", p.location)
}

func TestPostRequirement(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Acme Imports", "Buyer")

	p := c.get("/buyer?modal=post")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Post a New Requirement")

	p = c.post("/buyer/requirements", url.Values{
		"product":     {"Steel Pipes"},
		"description": {"Seamless carbon steel"},
		"quantity":    {"20 Tons"},
		"destination": {"Port of Antwerp"},
	})
	require.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/buyer", p.location)

	p = c.get("/buyer")
	assert.Contains(t, p.body, "Requirement for Steel Pipes posted.")
	assert.Contains(t, p.body, "Steel Pipes")
	assert.Contains(t, p.body, "Posted by <strong>Acme Imports</strong>")
	assert.Contains(t, p.body, "seconds ago")
	assert.NotContains(t, p.body, "Post a New Requirement")

	reqs, err := app.market.Requirements(context.Background(), c.workspace())
	require.NoError(t, err)
	require.Len(t, reqs, 4)
	assert.Equal(t, "Steel Pipes", reqs[0].Product)

	p = c.get("/buyer?q=pipes")
	assert.Contains(t, p.body, "Steel Pipes")
	p = c.get("/buyer?q=coffee")
	assert.Contains(t, p.body, "Try adjusting your search.")
}

func TestPostRequirementBlankField(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Acme Imports", "Buyer")

	p := c.post("/buyer/requirements", url.Values{
		"product":     {"Steel Pipes"},
		"description": {"Seamless carbon steel"},
		"quantity":    {"  "},
		"destination": {"Port of Antwerp"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, market.RequirementAlertText)
	assert.Contains(t, p.body, "Post a New Requirement")
	assert.Contains(t, p.body, `value="Steel Pipes"`)

	reqs, err := app.market.Requirements(context.Background(), c.workspace())
	require.NoError(t, err)
	assert.Len(t, reqs, 3)
}

func TestSupplierSendsMessage(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Loom Co", "Supplier")

	p := c.get("/supplier")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Marketplace Requirements")
	assert.Contains(t, p.body, "Hand-woven Cotton Textiles")
	assert.Contains(t, p.body, "High-Performance RAM Modules")
	assert.NotContains(t, p.body, "Contact Buyer")

	p = c.get("/supplier?compose=req-3")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Contact Buyer")
	assert.Contains(t, p.body, `name="requirement_id" value="req-3"`)

	p = c.get("/supplier?compose=req-404")
	assert.NotContains(t, p.body, "Contact Buyer")

	p = c.post("/supplier/messages", url.Values{"requirement_id": {"req-3"}, "content": {"We weave to order."}})
	require.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/supplier", p.location)

	p = c.get("/supplier")
	assert.Contains(t, p.body, "Message sent to Global Imports Inc.")

	msgs, err := app.market.Messages(context.Background(), c.workspace())
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "buyer-1", msgs[2].ReceiverID)
	assert.Equal(t, "Loom Co", msgs[2].SenderName)
}

func TestSendMessageRejected(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Loom Co", "Supplier")

	p := c.post("/supplier/messages", url.Values{"requirement_id": {"req-2"}, "content": {"\n\t"}})
	require.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, market.MessageAlertText)
	assert.Contains(t, p.body, "Contact Buyer")

	p = c.post("/supplier/messages", url.Values{"requirement_id": {"req-404"}, "content": {"Hello"}})
	require.Equal(t, http.StatusSeeOther, p.status)
	p = c.get("/supplier")
	assert.Contains(t, p.body, "That requirement is no longer available.")

	msgs, err := app.market.Messages(context.Background(), c.workspace())
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestRoleGuards(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.get("/supplier")
	assert.Equal(t, "/login", p.location)
	p = c.post("/buyer/requirements", url.Values{"product": {"x"}, "description": {"x"}, "quantity": {"x"}, "destination": {"x"}})
	assert.Equal(t, "/login", p.location)

	c.login("Acme", "Buyer")
	p = c.get("/supplier")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/", p.location)
	p = c.post("/supplier/messages", url.Values{"requirement_id": {"req-1"}, "content": {"Hi"}})
	assert.Equal(t, "/", p.location)

	msgs, err := app.market.Messages(context.Background(), c.workspace())
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	reqs, err := app.market.Requirements(context.Background(), c.workspace())
	require.NoError(t, err)
	assert.Len(t, reqs, 3)
}

func TestLogoutKeepsWorkspace(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Acme", "Buyer")
	ws := c.workspace()

	p := c.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/login", p.location)

	p = c.get("/login")
	assert.Contains(t, p.body, "Logged out successfully!")
	p = c.get("/buyer")
	assert.Equal(t, "/login", p.location)
	assert.Equal(t, ws, c.workspace())
}

func TestWorkspacesAreIsolated(t *testing.T) {
	app := newTestApp(t)
	alice := app.newClient(t)
	bob := app.newClient(t)
	alice.login("Alice", "Buyer")
	bob.login("Bob", "Supplier")
	require.NotEqual(t, alice.workspace(), bob.workspace())

	alice.post("/buyer/requirements", url.Values{
		"product":     {"Olive Oil"},
		"description": {"Extra virgin"},
		"quantity":    {"500 L"},
		"destination": {"Hamburg"},
	})

	p := bob.get("/supplier")
	assert.NotContains(t, p.body, "Olive Oil")
	p = alice.get("/buyer")
	assert.Contains(t, p.body, "Olive Oil")
}

func TestStaleWorkspaceCookieGetsFreshWorkspace(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)
	c.login("Acme", "Buyer")
	old := c.workspace()

	_, err := app.market.PurgeIdle(context.Background(), -1)
	require.NoError(t, err)

	p := c.get("/buyer")
	assert.Equal(t, "/login", p.location)
	assert.NotEqual(t, old, c.workspace())
}

func TestHealthzAndStatic(t *testing.T) {
	app := newTestApp(t)
	c := app.newClient(t)

	p := c.get("/healthz")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "ok", p.body)

	p = c.get("/static/app.css")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, ".card")
}
