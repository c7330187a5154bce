package dashboard

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukerupert/energydash/internal/chart"
	"github.com/dukerupert/energydash/internal/database"
	"github.com/dukerupert/energydash/internal/store"
	"github.com/dukerupert/energydash/internal/websocket"
)

type recordingHub struct {
	messages []websocket.Message
}

func (h *recordingHub) Broadcast(msg websocket.Message) {
	h.messages = append(h.messages, msg)
}

func setupService(t *testing.T, hub Broadcaster) (*Service, string) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	staticDir := t.TempDir()
	svc := NewService(
		store.NewHouseholdStore(db),
		store.NewReadingStore(db),
		chart.NewRenderer(staticDir, slog.Default()),
		hub,
		slog.Default(),
	)
	return svc, staticDir
}

func TestHouseholds(t *testing.T) {
	svc, _ := setupService(t, nil)

	households, err := svc.Households()
	if err != nil {
		t.Fatalf("households: %v", err)
	}
	if len(households) != 2 {
		t.Fatalf("got %d households, want 2", len(households))
	}
}

func TestReport(t *testing.T) {
	svc, staticDir := setupService(t, nil)

	report, err := svc.Report(1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Household.Name != "André Loyer, 1276" {
		t.Errorf("household = %q", report.Household.Name)
	}
	if report.Stats.ProductionTotal != 424 || report.Stats.ConsumptionTotal != 294 {
		t.Errorf("totals = %v/%v, want 424/294", report.Stats.ProductionTotal, report.Stats.ConsumptionTotal)
	}
	if got := report.ChartURL("pie"); got != "/static/graphs/pie_graph_1.html" {
		t.Errorf("pie url = %q", got)
	}

	for _, kind := range chart.Kinds {
		path := filepath.Join(staticDir, chart.GraphsSubdir, chart.FileName(kind, 1))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("chart %s not written: %v", kind, err)
		}
	}
}

func TestReportUnknownHousehold(t *testing.T) {
	svc, staticDir := setupService(t, nil)

	_, err := svc.Report(3)
	if !errors.Is(err, ErrHouseholdNotFound) {
		t.Fatalf("err = %v, want ErrHouseholdNotFound", err)
	}

	if _, err := os.Stat(filepath.Join(staticDir, chart.GraphsSubdir)); !os.IsNotExist(err) {
		t.Error("no charts should be written for an unknown household")
	}
}

func TestStatsSecondHousehold(t *testing.T) {
	svc, _ := setupService(t, nil)

	home, stats, err := svc.Stats(2)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if home.ID != 2 {
		t.Errorf("household id = %d, want 2", home.ID)
	}
	if stats.Storage != 318 {
		t.Errorf("storage = %v, want 318", stats.Storage)
	}
}

func TestReportBroadcasts(t *testing.T) {
	hub := &recordingHub{}
	svc, _ := setupService(t, hub)

	if _, err := svc.Report(2); err != nil {
		t.Fatalf("report: %v", err)
	}

	if len(hub.messages) != 1 {
		t.Fatalf("got %d broadcasts, want 1", len(hub.messages))
	}
	got := hub.messages[0]
	if got.Type != "charts_updated" || got.ID != 2 {
		t.Errorf("got %+v", got)
	}
	if got.Extra["stacked"] != "/static/graphs/stacked_graph_2.html" {
		t.Errorf("extra = %v", got.Extra)
	}
}
