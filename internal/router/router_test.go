package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/adapters/storage"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/platform/config"
	"github.com/godyclif/vet/internal/platform/metrics"
	"github.com/godyclif/vet/internal/ports/auth"
	"github.com/godyclif/vet/internal/router"
)

const (
	adminEmail    = "admin@universalis.com"
	adminPassword = "admin12345"
)

type testServer struct {
	*httptest.Server
	metrics *metrics.Metrics
	repos   *storage.Repositories
}

func newTestServer(t *testing.T, mutate func(*config.Config)) testServer {
	t.Helper()
	cfg := config.Defaults()
	if mutate != nil {
		mutate(cfg)
	}
	repos := storage.NewMemory()

	_, _, err := users.NewService(repos.Users, nil, nil).EnsureAdmin(context.Background(), users.SignupInput{
		Name: "Admin User", Email: adminEmail, Password: adminPassword,
	})
	require.NoError(t, err)

	m := metrics.New()
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: cfg, Repos: repos, Metrics: m}))
	t.Cleanup(ts.Close)
	return testServer{Server: ts, metrics: m, repos: repos}
}

func TestHTTP_EndToEnd_IssueAndVerify(t *testing.T) {
	ts := newTestServer(t, nil)

	// 1) Sin sesión no se emiten reportes
	{
		st, _ := doReq(t, ts.URL, http.MethodPost, "/api/med-reports", "", reportPayload())
		assert.Equal(t, http.StatusUnauthorized, st)
	}

	// 2) Un usuario común tampoco
	userToken := signup(t, ts.URL, "Jan de Vries", "jan@example.com", "password123")
	{
		st, _ := doReq(t, ts.URL, http.MethodPost, "/api/med-reports", userToken, reportPayload())
		assert.Equal(t, http.StatusUnauthorized, st)
	}

	// 3) Admin emite el reporte => certificado nuevo
	adminToken := login(t, ts.URL, adminEmail, adminPassword)
	var cert string
	{
		st, body := doReq(t, ts.URL, http.MethodPost, "/api/med-reports", adminToken, reportPayload())
		require.Equal(t, http.StatusCreated, st, string(body))
		var out struct {
			Success           bool   `json:"success"`
			CertificateNumber string `json:"certificateNumber"`
		}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.True(t, out.Success)
		assert.Regexp(t, `^VET-\d{4}-[0-9A-Z]{8}$`, out.CertificateNumber)
		cert = out.CertificateNumber
	}

	// 4) Verificación pública (sin sesión, certificado en minúsculas y con espacios)
	var animalID string
	{
		st, body := doReq(t, ts.URL, http.MethodGet, "/api/verify?certificate=+"+strings.ToLower(cert)+"+", "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var out struct {
			Data struct {
				Animal struct {
					ID                string `json:"id"`
					CertificateNumber string `json:"certificateNumber"`
					Name              string `json:"name"`
				} `json:"animal"`
				MedReports []struct {
					Diagnosis string `json:"diagnosis"`
				} `json:"medReports"`
				Costs struct {
					Reports float64 `json:"reports"`
					Total   float64 `json:"total"`
				} `json:"costs"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, cert, out.Data.Animal.CertificateNumber)
		assert.Equal(t, "Max", out.Data.Animal.Name)
		require.Len(t, out.Data.MedReports, 1)
		assert.Equal(t, "Ear infection", out.Data.MedReports[0].Diagnosis)
		assert.Equal(t, 85.5, out.Data.Costs.Reports)
		assert.Equal(t, 0.0, out.Data.Costs.Total, "el precio del reporte no suma al total")
		animalID = out.Data.Animal.ID
	}

	// 5) Admin agrega tratamiento y vacuna; los costos se recalculan
	{
		st, body := doReq(t, ts.URL, http.MethodPost, "/api/animals/"+animalID+"/treatments", adminToken, map[string]any{
			"type":         "checkup",
			"description":  "Follow-up visit",
			"date":         "2025-02-01",
			"veterinarian": "Dr. Anna Smit",
			"cost":         40,
		})
		require.Equal(t, http.StatusCreated, st, string(body))

		st, body = doReq(t, ts.URL, http.MethodPost, "/api/animals/"+animalID+"/vaccines", adminToken, map[string]any{
			"name":             "Rabies",
			"dateAdministered": "2025-01-10",
			"veterinarian":     "Dr. Anna Smit",
			"cost":             25,
		})
		require.Equal(t, http.StatusCreated, st, string(body))

		st, body = doReq(t, ts.URL, http.MethodGet, "/api/verify?certificate="+cert, "", nil)
		require.Equal(t, http.StatusOK, st)
		var out struct {
			Data struct {
				Costs struct {
					Treatments float64 `json:"treatments"`
					Vaccines   float64 `json:"vaccines"`
					Total      float64 `json:"total"`
				} `json:"costs"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, 40.0, out.Data.Costs.Treatments)
		assert.Equal(t, 25.0, out.Data.Costs.Vaccines)
		assert.Equal(t, 65.0, out.Data.Costs.Total)
	}

	// 6) PDF y página HTML
	{
		resp, err := http.Get(ts.URL + "/api/verify/pdf?certificate=" + cert)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "medical-report-"+cert+".pdf")
		b, _ := io.ReadAll(resp.Body)
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

		resp2, err := http.Get(ts.URL + "/verify?certificate=" + cert)
		require.NoError(t, err)
		defer resp2.Body.Close()
		require.Equal(t, http.StatusOK, resp2.StatusCode)
		page, _ := io.ReadAll(resp2.Body)
		assert.Contains(t, string(page), cert)
		assert.Contains(t, string(page), "Max")
	}

	// 7) Listado de reportes para el dashboard
	{
		st, body := doReq(t, ts.URL, http.MethodGet, "/api/med-reports", adminToken, nil)
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, string(body), cert)
	}

	assert.Contains(t, scrapeMetrics(t, ts.URL), "vetclinic_medical_reports_issued_total 1")
}

func TestHTTP_Verify_Errors(t *testing.T) {
	ts := newTestServer(t, nil)

	st, body := doReq(t, ts.URL, http.MethodGet, "/api/verify", "", nil)
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Contains(t, string(body), "Certificate number is required")

	st, body = doReq(t, ts.URL, http.MethodGet, "/api/verify?certificate=VET-2025-NOPE0000", "", nil)
	assert.Equal(t, http.StatusNotFound, st)
	assert.Contains(t, string(body), `"success":false`)

	// la página sin query muestra solo el formulario
	resp, err := http.Get(ts.URL + "/verify")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTP_Auth_SessionLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)

	st, body := doReq(t, ts.URL, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Contains(t, string(body), `"user":null`)

	token := signup(t, ts.URL, "Peter Jansen", "Peter@Example.com ", "password123")

	// email duplicado (normalizado)
	st, _ = doReq(t, ts.URL, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "Other", "email": "peter@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, st)

	st, body = doReq(t, ts.URL, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `"email":"peter@example.com"`)
	assert.Contains(t, string(body), `"role":"user"`)

	// mismo mensaje para email desconocido y contraseña incorrecta
	_, wrongPass := doReq(t, ts.URL, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "peter@example.com", "password": "nope-nope"})
	_, unknown := doReq(t, ts.URL, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ghost@example.com", "password": "nope-nope"})
	assert.JSONEq(t, string(wrongPass), string(unknown))

	// logout revoca el token
	st, _ = doReq(t, ts.URL, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, st)
	st, _ = doReq(t, ts.URL, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_Auth_RoleFollowsStoredUser(t *testing.T) {
	ts := newTestServer(t, nil)
	token := signup(t, ts.URL, "Staff Member", "staff@example.com", "password123")

	st, _ := doReq(t, ts.URL, http.MethodGet, "/api/animals", token, nil)
	require.Equal(t, http.StatusUnauthorized, st)

	// promovido con la sesión ya abierta
	_, created, err := users.NewService(ts.repos.Users, nil, nil).EnsureAdmin(context.Background(), users.SignupInput{
		Email: "staff@example.com",
	})
	require.NoError(t, err)
	require.False(t, created)

	st, body := doReq(t, ts.URL, http.MethodGet, "/api/animals", token, nil)
	assert.Equal(t, http.StatusOK, st, string(body))

	// degradado => pierde acceso sin cerrar sesión
	u, err := ts.repos.Users.GetByEmail(context.Background(), "staff@example.com")
	require.NoError(t, err)
	u.Role = auth.RoleUser
	require.NoError(t, ts.repos.Users.Update(context.Background(), u))

	st, _ = doReq(t, ts.URL, http.MethodGet, "/api/animals", token, nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_Contact_PublicSubmitAdminList(t *testing.T) {
	ts := newTestServer(t, nil)

	st, body := doReq(t, ts.URL, http.MethodPost, "/api/contact", "", map[string]any{
		"name":       "Sophie",
		"email":      " Sophie@Example.com ",
		"animalType": "bird",
		"message":    "My parrot stopped talking, can I book a visit?",
	})
	require.Equal(t, http.StatusCreated, st, string(body))

	st, body = doReq(t, ts.URL, http.MethodPost, "/api/contact", "", map[string]any{
		"name": "S", "email": "nope", "message": "short",
	})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Contains(t, string(body), `"errors"`)

	st, _ = doReq(t, ts.URL, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	admin := login(t, ts.URL, adminEmail, adminPassword)
	st, body = doReq(t, ts.URL, http.MethodGet, "/api/contacts?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "sophie@example.com")
}

func TestHTTP_Verify_RateLimited(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) {
		c.RateLimit.VerifyPerWindow = 2
	})

	for i := 0; i < 2; i++ {
		st, _ := doReq(t, ts.URL, http.MethodGet, "/api/verify?certificate=VET-2025-AAAAAAAA", "", nil)
		assert.Equal(t, http.StatusNotFound, st)
	}

	resp, err := http.Get(ts.URL + "/api/verify?certificate=VET-2025-AAAAAAAA")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	assert.Contains(t, scrapeMetrics(t, ts.URL), `vetclinic_rate_limited_total{bucket="verify"} 1`)
}

func TestHTTP_Verify_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) {
		c.RateLimit.VerifyPerWindow = 2
	})

	codes := map[int]int{}
	for i := 0; i < 20; i++ {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/verify?certificate=VET-2025-AAAAAAAA", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		codes[resp.StatusCode]++
	}
	assert.Equal(t, map[int]int{http.StatusNotFound: 2, http.StatusTooManyRequests: 18}, codes)
}

func TestHTTP_Verify_TrustedProxyUsesForwardedFor(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) {
		c.RateLimit.VerifyPerWindow = 1
		c.Server.TrustForwarded = true
	})

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/verify?certificate=VET-2025-AAAAAAAA", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, ip)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) { c.RateLimit.Disabled = true })
	st, body := doReq(t, ts.URL, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `"storage":"memory"`)
}

func reportPayload() map[string]any {
	return map[string]any{
		"animalName":   "Max",
		"species":      "dog",
		"breed":        "Golden Retriever",
		"dateOfBirth":  "2020-03-15",
		"weight":       32.5,
		"ownerName":    "Maria van der Berg",
		"ownerEmail":   "maria@example.com",
		"ownerPhone":   "+31 6 12345678",
		"reportType":   "general_checkup",
		"diagnosis":    "Ear infection",
		"symptoms":     "Scratching",
		"treatment":    "Ear drops",
		"veterinarian": "Dr. Thomas Klein",
		"price":        85.5,
		"followUpDate": time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
	}
}

func signup(t *testing.T, baseURL, name, email, password string) string {
	t.Helper()
	st, body := doReq(t, baseURL, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": name, "email": email, "password": password,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}
	return tokenFrom(t, body)
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	st, body := doReq(t, baseURL, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	return tokenFrom(t, body)
}

func tokenFrom(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Token == "" {
		t.Fatalf("missing token in body=%s", string(body))
	}
	return out.Token
}

func scrapeMetrics(t *testing.T, baseURL string) string {
	t.Helper()
	_, body := doReq(t, baseURL, http.MethodGet, "/metrics", "", nil)
	return string(body)
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
