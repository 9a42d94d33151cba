package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fingate/fingate/internal/ledger/reports"
	"github.com/fingate/fingate/internal/shared"
	"github.com/fingate/fingate/internal/view"
)

func newTestHandler(t *testing.T, repo *stubRepo) *Handler {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	svc := newTestService(t, repo)
	return NewHandler(slog.Default(), svc, templates, shared.NewCSRFManager("csrfsecret"), nil)
}

func serveReports(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestBalanceSheetJSON(t *testing.T) {
	h := newTestHandler(t, &stubRepo{balances: testBalances()})

	req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?kind=monthly&date=2024-05-15&format=json", nil)
	res := httptest.NewRecorder()
	serveReports(h).ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var vm reports.BalanceSheetViewModel
	if err := json.Unmarshal(res.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.Totals.NetProfit != 600 {
		t.Errorf("net profit: got %.2f", vm.Totals.NetProfit)
	}
	if vm.Report.Assets.Total != 1500 {
		t.Errorf("assets: got %.2f", vm.Report.Assets.Total)
	}
	if vm.FilterKind != "monthly" || vm.FilterDate != "2024-05-15" {
		t.Errorf("filter echo: %s %s", vm.FilterKind, vm.FilterDate)
	}
}

func TestCashFlowJSON(t *testing.T) {
	h := newTestHandler(t, &stubRepo{
		balances: testBalances(),
		lines: []reports.EntryLine{
			{EntryID: 1, Account: reports.Account{Code: "1000", Name: "Main Bank", Type: "ASSET"}, Debit: 900},
			{EntryID: 1, Account: reports.Account{Code: "4000", Name: "Sales", Type: "REVENUE"}, Credit: 900},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reports/cash-flow?kind=quarterly&date=2024-05-15&format=json", nil)
	res := httptest.NewRecorder()
	serveReports(h).ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var vm reports.CashFlowViewModel
	if err := json.Unmarshal(res.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.Report.CashFlow.Operating != 900 {
		t.Errorf("operating: got %.2f", vm.Report.CashFlow.Operating)
	}
	if vm.PeriodLabel == "" {
		t.Errorf("period label missing")
	}
}

func TestReportRejectsUnknownFormat(t *testing.T) {
	h := newTestHandler(t, &stubRepo{balances: testBalances()})

	req := httptest.NewRequest(http.MethodGet, "/reports/profit-loss?format=xml", nil)
	res := httptest.NewRecorder()
	serveReports(h).ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUnknownKindFallsBackToMonthly(t *testing.T) {
	h := newTestHandler(t, &stubRepo{balances: testBalances()})

	req := httptest.NewRequest(http.MethodGet, "/reports/trial-balance?kind=fortnightly&date=2024-05-15&format=json", nil)
	res := httptest.NewRecorder()
	serveReports(h).ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var vm reports.TrialBalanceViewModel
	if err := json.Unmarshal(res.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.FilterKind != "monthly" {
		t.Errorf("kind fallback: got %s", vm.FilterKind)
	}
}
