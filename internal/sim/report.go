package sim

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vovakirdan/tui-blocks/internal/blocks"
)

// Report summarizes a simulation run.
type Report struct {
	Games    int
	Workers  int
	Elapsed  time.Duration
	Finished int // Games that reached game over
	Frames   int

	ScoreMean   float64
	ScoreStdDev float64
	ScoreMedian float64
	ScoreMax    int
	RowsMean    float64
	PiecesMean  float64

	Shapes    []ShapeCount
	ChiSquare float64 // Pearson statistic against a uniform distribution
	PValue    float64

	Results []GameResult
}

// ShapeCount is how often the randomizer produced a shape.
type ShapeCount struct {
	Shape blocks.Shape
	Count int
}

// drawSource replays a single raw draw.
type drawSource int

func (d drawSource) Intn(n int) int { return int(d) % n }

// Summarize aggregates per-game results.
func Summarize(results []GameResult) Report {
	rep := Report{Games: len(results), Results: results}
	if len(results) == 0 {
		return rep
	}

	scores := make([]float64, len(results))
	rows := make([]float64, len(results))
	pieces := make([]float64, len(results))
	var draws [7]int
	for i, r := range results {
		scores[i] = float64(r.Score)
		rows[i] = float64(r.Rows)
		pieces[i] = float64(r.Pieces)
		rep.ScoreMax = max(rep.ScoreMax, r.Score)
		rep.Frames += r.Frames
		if r.GameOver {
			rep.Finished++
		}
		for d, n := range r.Draws {
			draws[d] += n
		}
	}

	rep.ScoreMean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		rep.ScoreStdDev = stat.StdDev(scores, nil)
	}
	sort.Float64s(scores)
	rep.ScoreMedian = stat.Quantile(0.5, stat.Empirical, scores, nil)
	rep.RowsMean = stat.Mean(rows, nil)
	rep.PiecesMean = stat.Mean(pieces, nil)

	rep.Shapes = make([]ShapeCount, len(draws))
	for d, n := range draws {
		rep.Shapes[d] = ShapeCount{Shape: blocks.Random(drawSource(d)).Shape(), Count: n}
	}
	sort.Slice(rep.Shapes, func(i, j int) bool { return rep.Shapes[i].Shape < rep.Shapes[j].Shape })
	rep.ChiSquare, rep.PValue = uniformity(draws[:])
	return rep
}

// uniformity runs Pearson's chi-squared test of counts against the uniform
// distribution. With no observations the statistic is 0 and p is 1.
func uniformity(counts []int) (chi2, p float64) {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 || len(counts) < 2 {
		return 0, 1
	}
	obs := make([]float64, len(counts))
	exp := make([]float64, len(counts))
	for i, n := range counts {
		obs[i] = float64(n)
		exp[i] = float64(total) / float64(len(counts))
	}
	chi2 = stat.ChiSquare(obs, exp)
	p = distuv.ChiSquared{K: float64(len(counts) - 1)}.Survival(chi2)
	return chi2, p
}

var printer = message.NewPrinter(language.English)

// Table renders the summary as a boxed two-column table.
func (r Report) Table() string {
	keys := []string{
		"Games", "Finished", "Workers", "Frames", "Elapsed",
		"Score mean", "Score std-dev", "Score median", "Score max",
		"Rows mean", "Pieces mean",
	}
	vals := map[string]string{
		"Games":         printer.Sprintf("%d", r.Games),
		"Finished":      printer.Sprintf("%d", r.Finished),
		"Workers":       printer.Sprintf("%d", r.Workers),
		"Frames":        printer.Sprintf("%d", r.Frames),
		"Elapsed":       r.Elapsed.Round(time.Millisecond).String(),
		"Score mean":    printer.Sprintf("%.1f", r.ScoreMean),
		"Score std-dev": printer.Sprintf("%.1f", r.ScoreStdDev),
		"Score median":  printer.Sprintf("%.1f", r.ScoreMedian),
		"Score max":     printer.Sprintf("%d", r.ScoreMax),
		"Rows mean":     printer.Sprintf("%.2f", r.RowsMean),
		"Pieces mean":   printer.Sprintf("%.2f", r.PiecesMean),
	}
	return fmtTable("Simulation", keys, vals)
}

// ShapeTable renders the randomizer frequencies and the uniformity test.
func (r Report) ShapeTable() string {
	total := 0
	for _, s := range r.Shapes {
		total += s.Count
	}
	keys := make([]string, 0, len(r.Shapes)+2)
	vals := make(map[string]string, len(r.Shapes)+2)
	for _, s := range r.Shapes {
		k := s.Shape.String()
		share := 0.0
		if total > 0 {
			share = 100 * float64(s.Count) / float64(total)
		}
		keys = append(keys, k)
		vals[k] = printer.Sprintf("%d (%.2f%%)", s.Count, share)
	}
	keys = append(keys, "chi²", "p-value")
	vals["chi²"] = printer.Sprintf("%.3f", r.ChiSquare)
	vals["p-value"] = formatP(r.PValue)
	return fmtTable("Shapes", keys, vals)
}

// WriteTo writes both tables to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Table()+"\n"+r.ShapeTable())
	return int64(n), err
}

func formatP(p float64) string {
	if math.IsNaN(p) {
		return "n/a"
	}
	if p < 1e-4 {
		return fmt.Sprintf("%.2e", p)
	}
	return fmt.Sprintf("%.4f", p)
}

func fmtTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := runewidth.StringWidth(title), 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2

	inner := keyW + 1 + valW
	titleW := runewidth.StringWidth(title)
	left := (inner - titleW) / 2

	var b strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	b.WriteString(top)
	b.WriteString("|" + blank(left) + title + blank(inner-titleW-left) + "|\n")
	b.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		b.WriteString("| " + k + blank(keyW-2-runewidth.StringWidth(k)) +
			" | " + v + blank(valW-2-runewidth.StringWidth(v)) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
