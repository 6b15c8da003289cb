package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/export"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/testutil"
	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testServer struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newServer(t *testing.T) *testServer {
	t.Helper()

	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	rec := &events.Recorder{}
	names := &service.CategoryNames{Repo: r, Cache: cache.New[map[uint]string](time.Minute)}
	catalog := &service.CatalogService{Repo: r, Names: names, Events: rec}
	orders := &service.OrderService{Repo: r, Events: rec}
	auth := &service.AuthService{
		Repo:          r,
		AccessSecret:  testSecret,
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
		AdminEmails:   []string{"admin@example.com"},
	}

	e := echo.New()
	e.Validator = NewValidator()
	Register(e, &Deps{
		Catalog:   &CatalogHTTP{Svc: catalog},
		Cart:      &CartHTTP{Svc: &service.CartService{Repo: r, Events: rec}},
		Orders:    &OrderHTTP{Svc: orders},
		Wishlist:  &WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Auth:      &AuthHTTP{Svc: auth},
		Account:   &AccountHTTP{Svc: &service.AccountService{Repo: r}},
		Contact:   &ContactHTTP{Svc: &service.ContactService{Repo: r}},
		Admin:     &AdminHTTP{Catalog: catalog, Orders: orders, Seed: &service.SeedService{Repo: r, Names: names}},
		JWTSecret: testSecret,
		Refresher: auth,
		Ready:     r.Ping,
	})
	return &testServer{e: e, repo: r}
}

func accessCookie(t *testing.T, role string) (*http.Cookie, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	tok, err := tokens.SignAccess(id.String(), role, role+"@example.com", time.Now().Add(time.Minute), testSecret)
	require.NoError(t, err)
	return &http.Cookie{Name: jwthelp.AccessCookie, Value: tok}, id
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "").Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newServer(t)
	user, _ := accessCookie(t, tokens.RoleUser)
	body := `{"name":"Hex Bolt","category_type":"fasteners","price":"0.45"}`

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/admin/products", body).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/admin/products", body, user).Code)
}

func TestProductLifecycle(t *testing.T) {
	s := newServer(t)
	admin, _ := accessCookie(t, tokens.RoleAdmin)

	rec := s.do(http.MethodPost, "/admin/categories", `{"name":"Bolts","type":"fasteners"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/admin/categories", `{"name":"Bolts","type":"fasteners"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/admin/products", `{"category_type":"fasteners"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/admin/products",
		`{"name":"Hex Bolt","category_type":"fasteners","category_names":["Bolts"],"price":"0.45","stock":10}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, []any{"Bolts"}, created["categories"])
	id := int(created["id"].(float64))

	rec = s.do(http.MethodGet, "/catalog/products?type=fasteners&sort=name", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	assert.Len(t, list["data"], 1)
	assert.Equal(t, false, list["meta"].(map[string]any)["has_more"])

	rec = s.do(http.MethodGet, "/catalog/products?type=plumbing", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodGet, "/catalog/products?category_ids=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodGet, "/catalog/products/browse?category_ids=1,x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPatch, "/admin/products/"+itoa(id), `{"id":999,"stock":0}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode(t, rec)
	assert.EqualValues(t, id, patched["id"])
	assert.EqualValues(t, 0, patched["stock"])

	rec = s.do(http.MethodGet, "/catalog/products/browse?q=bolt&sort=name_asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/catalog/products/search", "").Code)
	rec = s.do(http.MethodGet, "/catalog/products/search?q=hex", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/catalog/products/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/catalog/products/999", "").Code)

	rec = s.do(http.MethodGet, "/admin/products/export", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.NotZero(t, rec.Body.Len())

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/admin/products/"+itoa(id), "", admin).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/catalog/products/"+itoa(id), "").Code)
}

func TestCartCheckoutFlow(t *testing.T) {
	s := newServer(t)
	admin, _ := accessCookie(t, tokens.RoleAdmin)
	user, _ := accessCookie(t, tokens.RoleUser)

	rec := s.do(http.MethodPost, "/admin/products", `{"name":"Hex Bolt","category_type":"fasteners","price":"5"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode(t, rec)["id"].(float64))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/cart", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/cart/checkout", "", user).Code)

	rec = s.do(http.MethodPost, "/cart/items", `{"product_id":`+itoa(id)+`,"quantity":2}`, user)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	itemID := int(decode(t, rec)["id"].(float64))

	rec = s.do(http.MethodPatch, "/cart/items/"+itoa(itemID), `{"quantity":0}`, user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["quantity"])

	rec = s.do(http.MethodGet, "/cart", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	total, err := decimal.NewFromString(decode(t, rec)["total"].(string))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(5)), total.String())

	rec = s.do(http.MethodPost, "/cart/checkout", "", user)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode(t, rec)
	assert.Equal(t, "pending", order["status"])
	orderID := int(order["id"].(float64))

	rec = s.do(http.MethodGet, "/orders", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["meta"].(map[string]any)["total"])

	rec = s.do(http.MethodPatch, "/admin/orders/"+itoa(orderID), `{"status":"delivered"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(http.MethodPost, "/orders/"+itoa(orderID)+"/cancel", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", decode(t, rec)["status"])

	rec = s.do(http.MethodGet, "/admin/stats", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 1, stats["orders"].(map[string]any)["cancelled"])
}

func TestWishlistToggle(t *testing.T) {
	s := newServer(t)
	admin, _ := accessCookie(t, tokens.RoleAdmin)
	user, _ := accessCookie(t, tokens.RoleUser)

	rec := s.do(http.MethodPost, "/admin/products", `{"name":"MCB 16A","category_type":"electrical","price":"4.20"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := itoa(int(decode(t, rec)["id"].(float64)))

	rec = s.do(http.MethodPost, "/wishlist/toggle", `{"product_id":`+id+`}`, user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["in_wishlist"])

	rec = s.do(http.MethodGet, "/wishlist/"+id, "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["in_wishlist"])

	rec = s.do(http.MethodPost, "/wishlist/toggle", `{"product_id":`+id+`}`, user)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["in_wishlist"])
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/auth/register", `{"email":"buyer@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/auth/register", `{"email":"buyer@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, "/auth/register", `{"email":"buyer@example.com","password":"secret-pass"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"email":"buyer@example.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"email":"buyer@example.com","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, jwthelp.AccessCookie)
	require.Contains(t, cookies, jwthelp.RefreshCookie)

	rec = s.do(http.MethodGet, "/me/profile", "", cookies[jwthelp.AccessCookie])
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/auth/refresh", "", cookies[jwthelp.RefreshCookie])
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["access_token"])

	rec = s.do(http.MethodPost, "/auth/refresh", "", cookies[jwthelp.RefreshCookie])
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/firebase", `{"id_token":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMigrateAndContact(t *testing.T) {
	s := newServer(t)
	admin, _ := accessCookie(t, tokens.RoleAdmin)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/admin/migrate", "", admin).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/admin/migrate", "", admin).Code)

	rec := s.do(http.MethodGet, "/catalog/products/all?type=electrical", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["data"])

	rec = s.do(http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","message":"Quote for 5k bolts"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/contact", `{"name":"Ada","email":"nope","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/admin/contacts", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
