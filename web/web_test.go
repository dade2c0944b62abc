package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apops/apops/adapters/auth"
	"github.com/apops/apops/adapters/clock"
	"github.com/apops/apops/adapters/hasher"
	"github.com/apops/apops/adapters/idgen"
	"github.com/apops/apops/adapters/memory"
	"github.com/apops/apops/app"
	"github.com/apops/apops/config"
	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/meter"
	"github.com/apops/apops/domain/tenant"
	"github.com/apops/apops/domain/unit"
	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/web"
)

type apiFixture struct {
	router http.Handler
	token  string
	store  *memory.WorkspaceStore
	ctx    context.Context
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()

	store := memory.NewWorkspaceStore()
	fc := clock.NewFake(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	svc := app.NewService(store, fc, idgen.NewSequential("id-"), zerolog.Nop())
	tokens := auth.NewTokenService("test-secret", time.Hour)

	cfg := &config.Config{Workspaces: []string{"A", "B"}}
	cfg.Auth.Username = "admin"
	cfg.Auth.PasswordHash = "secret" // hasher.Fake compares by equality

	h := web.NewHandler(web.Deps{
		Service: svc,
		Tokens:  tokens,
		Hasher:  hasher.Fake{},
		Config:  cfg,
		Logger:  zerolog.Nop(),
	})

	token, _, err := tokens.GenerateToken("admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	return &apiFixture{
		router: h.Router(),
		token:  token,
		store:  store,
		ctx:    context.Background(),
	}
}

// seedWorkspace installs one occupied unit with an active lease and an
// electric reading for 2026-08, enough to generate an invoice.
func (f *apiFixture) seedWorkspace(t *testing.T) {
	t.Helper()
	state := workspace.Empty()
	state.Units = []unit.Unit{
		{ID: "u1", Name: "P101", BaseRent: 5000000, Status: unit.StatusOccupied},
	}
	state.Tenants = []tenant.Tenant{
		{ID: "t1", FullName: "Nguyen Van A", Phone: "0900000001"},
	}
	state.Leases = []lease.Lease{
		{
			ID: "l1", UnitID: "u1", TenantID: "t1",
			StartDate: "2026-01-01", Months: 12, EndDate: "2027-01-01",
			Deposit: 5000000, RentMonthly: 5000000,
			Adults: 2, Children: 1,
			Status: lease.StatusActive,
		},
	}
	state.ElectricReadings = []meter.Reading{
		{ID: "r1", UnitID: "u1", Month: "2026-08", StartValue: 100, EndValue: 200, KWH: 100},
	}
	if err := f.store.Save(f.ctx, "A", state); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := setupAPI(t)
	f.token = "" // unauthenticated request

	rec := f.do(t, "POST", "/api/v1/login", map[string]string{
		"username": "admin", "password": "secret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.ExpiresAt == "" {
		t.Error("expected an expiry timestamp")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := setupAPI(t)
	f.token = ""

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"username": "admin", "password": "nope"}},
		{"wrong username", map[string]string{"username": "root", "password": "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, "POST", "/api/v1/login", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	f := setupAPI(t)
	f.token = ""

	rec := f.do(t, "GET", "/api/v1/workspaces/A/units", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	f.token = "not-a-jwt"
	rec = f.do(t, "GET", "/api/v1/workspaces/A/units", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for garbage token", rec.Code)
	}
}

func TestTokenCookieAccepted(t *testing.T) {
	f := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/v1/workspaces/A/units", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: f.token})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with token cookie", rec.Code)
	}
}

func TestUnknownWorkspace(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, "GET", "/api/v1/workspaces/Z/units", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for workspace outside the configured set", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	f := setupAPI(t)
	f.token = ""

	rec := f.do(t, "GET", "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 without auth", rec.Code)
	}
}

func TestListWorkspaces(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, "GET", "/api/v1/workspaces", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Workspaces []string `json:"workspaces"`
	}
	decode(t, rec, &resp)
	if len(resp.Workspaces) != 2 {
		t.Errorf("workspaces = %v, want the two configured ids", resp.Workspaces)
	}
}

func TestUnitLifecycle(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, "POST", "/api/v1/workspaces/A/units", map[string]any{
		"name": "P201", "baseRent": 4500000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created unit.Unit
	decode(t, rec, &created)
	if created.ID == "" || created.Status != unit.StatusVacant {
		t.Errorf("created = %+v, want generated id and Vacant default", created)
	}

	rec = f.do(t, "PUT", "/api/v1/workspaces/A/units/"+created.ID, map[string]any{
		"name": "P201", "baseRent": 4800000, "status": "Maintenance",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = f.do(t, "GET", "/api/v1/workspaces/A/units", nil)
	var list struct {
		Units []unit.Unit `json:"units"`
	}
	decode(t, rec, &list)
	if len(list.Units) != 1 || list.Units[0].BaseRent != 4800000 {
		t.Errorf("units = %+v", list.Units)
	}

	rec = f.do(t, "DELETE", "/api/v1/workspaces/A/units/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestValidationMapsToBadRequest(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, "POST", "/api/v1/workspaces/A/units", map[string]any{
		"name": "", "baseRent": 1000,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty unit name", rec.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &resp)
	if resp.Error.Code != "validation_failed" {
		t.Errorf("error code = %q, want validation_failed", resp.Error.Code)
	}
}

func TestNotFoundMapsTo404(t *testing.T) {
	f := setupAPI(t)
	f.seedWorkspace(t)

	rec := f.do(t, "GET", "/api/v1/workspaces/A/invoices/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for missing invoice", rec.Code)
	}
}

func TestGenerateAndPayFlow(t *testing.T) {
	f := setupAPI(t)
	f.seedWorkspace(t)

	rec := f.do(t, "POST", "/api/v1/workspaces/A/invoices/generate", map[string]string{
		"month": "2026-08",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body %s", rec.Code, rec.Body.String())
	}

	var batch app.BatchResult
	decode(t, rec, &batch)
	if len(batch.Created) != 1 || len(batch.Skipped) != 0 {
		t.Fatalf("batch = %+v, want one invoice and no skips", batch)
	}
	inv := batch.Created[0]
	if inv.Total != 5700000 {
		t.Errorf("Total = %d, want 5700000", inv.Total)
	}

	// A second run must be a no-op with a diagnostic.
	rec = f.do(t, "POST", "/api/v1/workspaces/A/invoices/generate", map[string]string{
		"month": "2026-08",
	})
	decode(t, rec, &batch)
	if len(batch.Created) != 0 || len(batch.Skipped) != 1 {
		t.Fatalf("rerun batch = %+v, want all skipped", batch)
	}
	if batch.Skipped[0].UnitName != "P101" {
		t.Errorf("skip names %q, want the unit name", batch.Skipped[0].UnitName)
	}

	rec = f.do(t, "POST", "/api/v1/workspaces/A/payments", map[string]any{
		"invoiceId": inv.ID, "amount": 6700000, "method": "Cash",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment status = %d, body %s", rec.Code, rec.Body.String())
	}

	var payRes app.PaymentResult
	decode(t, rec, &payRes)
	if payRes.Applied != 5700000 || payRes.Surplus != 1000000 {
		t.Errorf("result = %+v, want applied 5700000 surplus 1000000", payRes)
	}

	rec = f.do(t, "GET", "/api/v1/workspaces/A/invoices/"+inv.ID, nil)
	var got struct {
		Status string `json:"status"`
		Paid   int64  `json:"paid"`
	}
	decode(t, rec, &got)
	if got.Status != "Paid" || got.Paid != 5700000 {
		t.Errorf("invoice after payment = %+v", got)
	}
}

func TestGenerateBadMonth(t *testing.T) {
	f := setupAPI(t)
	f.seedWorkspace(t)

	rec := f.do(t, "POST", "/api/v1/workspaces/A/invoices/generate", map[string]string{
		"month": "08/2026",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed month", rec.Code)
	}
}

func TestReminderEndpoint(t *testing.T) {
	f := setupAPI(t)
	f.seedWorkspace(t)

	var batch app.BatchResult
	rec := f.do(t, "POST", "/api/v1/workspaces/A/invoices/generate", map[string]string{
		"month": "2026-08",
	})
	decode(t, rec, &batch)
	inv := batch.Created[0]

	rec = f.do(t, "GET", "/api/v1/workspaces/A/invoices/"+inv.ID+"/reminder?kind=today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	decode(t, rec, &resp)
	if resp.Kind != "today" || resp.Text == "" {
		t.Errorf("reminder = %+v", resp)
	}

	rec = f.do(t, "GET", "/api/v1/workspaces/A/invoices/"+inv.ID+"/reminder?kind=yesterday", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown kind", rec.Code)
	}
}

func TestSignLeaseOverHTTP(t *testing.T) {
	f := setupAPI(t)

	// A vacant unit plus a tenant is all signing needs.
	state := workspace.Empty()
	state.Units = []unit.Unit{{ID: "u2", Name: "P105", BaseRent: 3000000, Status: unit.StatusVacant}}
	state.Tenants = []tenant.Tenant{{ID: "t2", FullName: "Tran Thi B"}}
	if err := f.store.Save(f.ctx, "A", state); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := f.do(t, "POST", "/api/v1/workspaces/A/leases", map[string]any{
		"unitId": "u2", "tenantId": "t2",
		"startDate": "2026-08-15", "months": 6,
		"deposit": 3000000, "rentMonthly": 3000000,
		"adults": 1, "children": 0,
		"createInvoice": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result app.SignLeaseResult
	decode(t, rec, &result)
	if result.Lease.EndDate != "2027-02-15" {
		t.Errorf("EndDate = %s, want 2027-02-15", result.Lease.EndDate)
	}
	if result.Invoice == nil {
		t.Fatal("expected a move-in invoice")
	}
	if result.Invoice.DueDate != "2026-08-15" {
		t.Errorf("DueDate = %s, want the start date", result.Invoice.DueDate)
	}
}

func TestBackupRoundTripOverHTTP(t *testing.T) {
	f := setupAPI(t)
	f.seedWorkspace(t)

	rec := f.do(t, "GET", "/api/v1/workspaces/A/backup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	var snapshot workspace.State
	decode(t, rec, &snapshot)

	rec = f.do(t, "POST", "/api/v1/workspaces/B/backup", snapshot)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, "GET", "/api/v1/workspaces/B/units", nil)
	var list struct {
		Units []unit.Unit `json:"units"`
	}
	decode(t, rec, &list)
	if len(list.Units) != 1 || list.Units[0].Name != "P101" {
		t.Errorf("restored units = %+v", list.Units)
	}
}
