package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fingate/fingate/internal/ledger/reports"
	"github.com/fingate/fingate/internal/platform/httpx"
	"github.com/fingate/fingate/internal/shared"
	"github.com/fingate/fingate/internal/view"
	"github.com/fingate/fingate/report"
)

const companyName = "Fingate"

// Handler serves the financial report pages and their JSON/PDF exports.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	templates   *view.Engine
	csrfManager *shared.CSRFManager
	pdf         *report.Client
	validator   *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, pdf *report.Client) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		templates:   templates,
		csrfManager: csrf,
		pdf:         pdf,
		validator:   validator.New(),
	}
}

// MountRoutes registers HTTP routes for the reporting module.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/balance-sheet", h.handleBalanceSheet)
	r.Get("/reports/profit-loss", h.handleProfitAndLoss)
	r.Get("/reports/trial-balance", h.handleTrialBalance)
	r.Get("/reports/cash-flow", h.handleCashFlow)
	r.Get("/accounts", h.handleAccounts)
}

func (h *Handler) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.Accounts(r.Context())
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, accounts)
}

type reportFilter struct {
	Kind   string
	Date   string
	Format string `validate:"omitempty,oneof=html json pdf"`
}

func (h *Handler) parseFilter(r *http.Request) (reportFilter, error) {
	filter := reportFilter{
		Kind:   r.URL.Query().Get("kind"),
		Date:   r.URL.Query().Get("date"),
		Format: r.URL.Query().Get("format"),
	}
	// Kind and date are deliberately lenient: unknown kinds fall back to
	// monthly and unparseable dates to today during period resolution.
	if err := h.validator.Struct(filter); err != nil {
		return reportFilter{}, err
	}
	if filter.Format == "" {
		filter.Format = "html"
	}
	return filter, nil
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unsupported format")
		return
	}
	period := h.service.ResolvePeriod(filter.Kind, filter.Date)
	bs, totals, err := h.service.BalanceSheet(r.Context(), period)
	if err != nil {
		h.logger.Error("build balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	vm := reports.BalanceSheetViewModel{
		CompanyName: companyName,
		PeriodLabel: period.Label(),
		FilterKind:  string(period.Kind),
		FilterDate:  period.To.Format("2006-01-02"),
		Report:      bs,
		Totals:      totals,
	}
	if filter.Format == "json" {
		httpx.JSON(w, http.StatusOK, vm)
		return
	}
	h.renderPage(w, r, "pages/report_bs.html", "Balance Sheet", vm)
}

func (h *Handler) handleProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unsupported format")
		return
	}
	period := h.service.ResolvePeriod(filter.Kind, filter.Date)
	pl, err := h.service.ProfitAndLoss(r.Context(), period)
	if err != nil {
		h.logger.Error("build profit and loss", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	vm := reports.ProfitAndLossViewModel{
		CompanyName: companyName,
		PeriodLabel: period.Label(),
		FilterKind:  string(period.Kind),
		FilterDate:  period.To.Format("2006-01-02"),
		Report:      pl,
	}
	if filter.Format == "json" {
		httpx.JSON(w, http.StatusOK, vm)
		return
	}
	h.renderPage(w, r, "pages/report_pl.html", "Profit & Loss", vm)
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unsupported format")
		return
	}
	period := h.service.ResolvePeriod(filter.Kind, filter.Date)
	tb, err := h.service.TrialBalance(r.Context(), period)
	if err != nil {
		h.logger.Error("build trial balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	vm := reports.TrialBalanceViewModel{
		CompanyName: companyName,
		PeriodLabel: period.Label(),
		FilterKind:  string(period.Kind),
		FilterDate:  period.To.Format("2006-01-02"),
		Report:      tb,
	}
	if filter.Format == "json" {
		httpx.JSON(w, http.StatusOK, vm)
		return
	}
	h.renderPage(w, r, "pages/report_tb.html", "Trial Balance", vm)
}

func (h *Handler) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unsupported format")
		return
	}
	period := h.service.ResolvePeriod(filter.Kind, filter.Date)
	stmt, err := h.service.CashFlowStatement(r.Context(), period)
	if err != nil {
		h.logger.Error("build cash flow statement", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	vm := reports.CashFlowViewModel{
		CompanyName: companyName,
		PeriodLabel: period.Label(),
		FilterKind:  string(period.Kind),
		FilterDate:  period.To.Format("2006-01-02"),
		Report:      stmt,
	}
	switch filter.Format {
	case "json":
		httpx.JSON(w, http.StatusOK, vm)
	case "pdf":
		h.renderPDF(w, r, vm)
	default:
		h.renderPage(w, r, "pages/report_cashflow.html", "Cash Flow Statement", vm)
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken := ""
	if h.csrfManager != nil && sess != nil {
		csrfToken, _ = h.csrfManager.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, name, viewData); err != nil {
		h.logger.Error("render report", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderPDF(w http.ResponseWriter, r *http.Request, vm reports.CashFlowViewModel) {
	if h.pdf == nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	html, err := h.templates.RenderString("pages/report_cashflow_print.html", view.TemplateData{Title: "Cash Flow Statement", Data: vm})
	if err != nil {
		h.logger.Error("render cash flow print view", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pdfBytes, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("convert cash flow pdf", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cash-flow.pdf"`)
	_, _ = w.Write(pdfBytes)
}
