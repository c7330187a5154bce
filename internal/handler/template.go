package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dukerupert/energydash/internal/chart"
	"github.com/dukerupert/energydash/internal/dashboard"
	"github.com/dukerupert/energydash/web"
)

const notFoundMessage = "Residência não encontrada"

var funcs = template.FuncMap{
	"kwh": func(v float64) string { return fmt.Sprintf("%.2f kWh", v) },
	"num": func(v float64) string { return fmt.Sprintf("%.4g", v) },
	"pct": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	"inc": func(i int) int { return i + 1 },
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.html")
}

type TemplateHandler struct {
	svc       *dashboard.Service
	templates *template.Template
	logger    *slog.Logger
}

func NewTemplateHandler(svc *dashboard.Service, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		svc:       svc,
		templates: template.Must(ParseTemplates()),
		logger:    logger,
	}
}

func (h *TemplateHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	households, err := h.svc.Households()
	if err != nil {
		h.logger.Error("list households", "error", err)
		http.Error(w, "failed to load households", http.StatusInternalServerError)
		return
	}

	h.render(w, "index.html", map[string]any{
		"Title":      "Painel de Energia",
		"Households": households,
	})
}

// Dashboard renders the summary page for one household.
func (h *TemplateHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	h.render(w, "dashboard.html", map[string]any{
		"Title":     report.Household.Name + " · Painel de Energia",
		"Household": report.Household,
		"Report":    report,
	})
}

// Details renders every statistic and chart for one household.
func (h *TemplateHandler) Details(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}

	charts := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		charts[i] = string(k)
	}

	h.render(w, "details.html", map[string]any{
		"Title":     report.Household.Name + " · Detalhes",
		"Household": report.Household,
		"Report":    report,
		"Charts":    charts,
	})
}

// report resolves the {id} path value and builds the household report,
// writing the error response itself when it cannot.
func (h *TemplateHandler) report(w http.ResponseWriter, r *http.Request) (*dashboard.Report, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, notFoundMessage, http.StatusNotFound)
		return nil, false
	}

	report, err := h.svc.Report(id)
	if errors.Is(err, dashboard.ErrHouseholdNotFound) {
		http.Error(w, notFoundMessage, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error("build report", "household_id", id, "error", err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return nil, false
	}
	return report, true
}

func (h *TemplateHandler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
