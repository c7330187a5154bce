// Package chart renders the dashboard charts for a household as standalone
// HTML files under the static graphs directory.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dukerupert/energydash/internal/metrics"
	"github.com/dukerupert/energydash/internal/model"
	"golang.org/x/sync/singleflight"
)

// Kind identifies one of the charts generated per household.
type Kind string

const (
	KindProduction  Kind = "production"
	KindConsumption Kind = "consumption"
	KindStacked     Kind = "stacked"
	KindScatter     Kind = "scatter"
	KindPie         Kind = "pie"
)

// Kinds lists every chart in generation order.
var Kinds = []Kind{KindProduction, KindConsumption, KindStacked, KindScatter, KindPie}

// GraphsSubdir is where chart files live relative to the static directory.
const GraphsSubdir = "graphs"

var ErrNoData = errors.New("chart: nothing to plot")

// FileName returns the chart file name for a household, e.g.
// "pie_graph_2.html".
func FileName(kind Kind, homeID int64) string {
	return fmt.Sprintf("%s_graph_%d.html", kind, homeID)
}

// URL returns the path the chart file is served from.
func URL(kind Kind, homeID int64) string {
	return "/static/" + GraphsSubdir + "/" + FileName(kind, homeID)
}

// Paths holds the file path of each chart written by Generate.
type Paths map[Kind]string

// Renderer writes chart files for households. Concurrent Generate calls for
// the same household share a single render.
type Renderer struct {
	dir    string
	group  singleflight.Group
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing into staticDir/graphs.
func NewRenderer(staticDir string, logger *slog.Logger) *Renderer {
	return &Renderer{
		dir:    filepath.Join(staticDir, GraphsSubdir),
		logger: logger,
	}
}

// Dir returns the directory chart files are written to.
func (r *Renderer) Dir() string {
	return r.dir
}

// Generate renders all five charts for the household and writes them to disk,
// replacing any previous files. Stats for a household are deterministic, so a
// caller joining an in-flight render receives that render's paths.
func (r *Renderer) Generate(homeID int64, s *model.Stats) (Paths, error) {
	v, err, shared := r.group.Do(strconv.FormatInt(homeID, 10), func() (any, error) {
		return r.generate(homeID, s)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("joined in-flight chart render", "household_id", homeID)
	}
	return v.(Paths), nil
}

func (r *Renderer) generate(homeID int64, s *model.Stats) (Paths, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create graphs dir: %w", err)
	}

	start := time.Now()
	paths := make(Paths, len(Kinds))
	for _, kind := range Kinds {
		path := filepath.Join(r.dir, FileName(kind, homeID))
		if err := r.write(kind, path, s); err != nil {
			metrics.RecordChartFailure(string(kind))
			return nil, fmt.Errorf("render %s chart: %w", kind, err)
		}
		metrics.RecordChartRender(string(kind))
		paths[kind] = path
	}

	r.logger.Debug("charts generated", "household_id", homeID, "duration", time.Since(start))
	return paths, nil
}

func (r *Renderer) write(kind Kind, path string, s *model.Stats) error {
	title := titles[kind]

	var svg bytes.Buffer
	err := renderSVG(kind, s, &svg)
	if errors.Is(err, ErrNoData) {
		svg.Reset()
		svg.WriteString(`<p class="empty">Sem dados para exibir.</p>`)
	} else if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := writePage(&page, title, svg.Bytes()); err != nil {
		return err
	}
	return writeFileAtomic(path, page.Bytes())
}

// writeFileAtomic replaces path with data so readers never observe a
// partially written chart.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename chart file: %w", err)
	}
	return nil
}
