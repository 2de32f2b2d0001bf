// Package report renders run artifacts to disk: one report per judge,
// the consolidated final results, a markdown summary, and the
// meta-analysis file.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/judges"
)

const sectionRule = "================================================================================"
const blockRule = "--------------------------------------------------------------------------------"

// Writer renders report files into a single output directory.
type Writer struct {
	outputDir string
	logger    *slog.Logger
}

// NewWriter creates a Writer. The directory is created on first write.
func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: logger}
}

// OutputDir returns the directory reports are written to.
func (w *Writer) OutputDir() string { return w.outputDir }

func (w *Writer) ensureDir() error {
	return os.MkdirAll(w.outputDir, 0o755)
}

// WriteJudgeReports writes judgeN.txt for every judge on the panel,
// each containing that judge's evaluation block for every essay in
// evaluation order. Files are independent, so they are written
// concurrently. Returns the written file paths in panel order.
func (w *Writer) WriteJudgeReports(panel []judges.Judge, evaluations []*domain.Evaluation, rubric domain.Rubric) ([]string, error) {
	if err := w.ensureDir(); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, len(panel))
	var g errgroup.Group
	for i, j := range panel {
		g.Go(func() error {
			path := filepath.Join(w.outputDir, fmt.Sprintf("judge%d.txt", j.ID()))
			content := formatJudgeReport(j, evaluations, rubric)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing judge %d report: %w", j.ID(), err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range paths {
		w.logger.Info("judge report saved", "path", p)
	}
	return paths, nil
}

func formatJudgeReport(j judges.Judge, evaluations []*domain.Evaluation, rubric domain.Rubric) string {
	var sb strings.Builder
	sb.WriteString(sectionRule + "\n")
	fmt.Fprintf(&sb, "JUDGE %d: %s\n", j.ID(), strings.ToUpper(j.Persona()))
	fmt.Fprintf(&sb, "Model: %s\n", j.Model())
	sb.WriteString(sectionRule + "\n\n")

	for _, eval := range evaluations {
		score, ok := eval.ScoreFor(j.ID())
		if !ok {
			continue
		}
		sb.WriteString(blockRule + "\n")
		fmt.Fprintf(&sb, "STUDENT: %s\n", eval.Essay.Label)
		fmt.Fprintf(&sb, "WORD COUNT: %d\n", eval.Essay.WordCount)
		if eval.Essay.Disqualified {
			fmt.Fprintf(&sb, "NOTE: %s\n", eval.Essay.DisqualificationReason)
		}
		sb.WriteString(blockRule + "\n\n")
		sb.WriteString("SCORES:\n")
		sb.WriteString(FormatScoreBreakdown(score, rubric))
		sb.WriteString("\n\nRATIONALE:\n")
		sb.WriteString(score.Rationale())
		sb.WriteString("\n\n\n")
	}
	return sb.String()
}

// FormatScoreBreakdown renders one score as "Category: n/max" lines
// followed by the total, in rubric order.
func FormatScoreBreakdown(score domain.Score, rubric domain.Rubric) string {
	lines := make([]string, 0, rubric.Len()+1)
	for _, c := range rubric.Categories() {
		lines = append(lines, fmt.Sprintf("%s: %d/%d", titleCase(c.Name), score.Value(c.Name), c.Max))
	}
	lines = append(lines, fmt.Sprintf("TOTAL: %d/%d", score.Total(), rubric.MaxPerJudge()))
	return strings.Join(lines, "\n")
}

// WriteFinalResults writes final_results.txt: winners with per-category
// breakdowns, the ranked table, and a detailed per-essay section.
func (w *Writer) WriteFinalResults(results *domain.Results) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, "final_results.txt")
	if err := os.WriteFile(path, []byte(formatFinalResults(results)), 0o644); err != nil {
		return "", fmt.Errorf("writing final results: %w", err)
	}
	w.logger.Info("final results saved", "path", path)
	return path, nil
}

func formatFinalResults(results *domain.Results) string {
	cfg := results.Config
	var sb strings.Builder

	sb.WriteString(sectionRule + "\n")
	sb.WriteString("ESSAY CONTEST - FINAL RESULTS\n")
	sb.WriteString(sectionRule + "\n\n")

	sb.WriteString("WINNERS:\n")
	sb.WriteString(blockRule + "\n")
	for _, win := range results.Winners() {
		eval := win.Evaluation
		fmt.Fprintf(&sb, "\n%s: %s\n", placeHeading(win.Place), eval.Essay.Label)
		fmt.Fprintf(&sb, "Total Score: %d/%d\n", eval.TotalScore(), cfg.MaxTotalScore())
		fmt.Fprintf(&sb, "Average Score: %.1f/%d\n\n", eval.AverageScore(), cfg.MaxScorePerJudge())
		sb.WriteString("Individual Judge Scores:\n")
		for _, id := range eval.JudgeIDs() {
			score, _ := eval.ScoreFor(id)
			fmt.Fprintf(&sb, "  Judge %d: %d/%d\n", id, score.Total(), cfg.MaxScorePerJudge())
			for _, c := range cfg.Rubric.Categories() {
				fmt.Fprintf(&sb, "    - %s: %d/%d\n", titleCase(c.Name), score.Value(c.Name), c.Max)
			}
		}
	}

	sb.WriteString("\n" + sectionRule + "\n")
	sb.WriteString("ALL ESSAYS - RANKED\n")
	sb.WriteString(sectionRule + "\n\n")
	sb.WriteString(rankedTable(results))

	sb.WriteString("\n" + sectionRule + "\n")
	sb.WriteString("DETAILED BREAKDOWN BY STUDENT\n")
	sb.WriteString(sectionRule + "\n\n")

	for _, entry := range results.Ranked() {
		eval := entry.Evaluation
		sb.WriteString(blockRule + "\n")
		fmt.Fprintf(&sb, "RANK #%d: %s\n", entry.Rank, eval.Essay.Label)
		fmt.Fprintf(&sb, "Word Count: %d\n", eval.Essay.WordCount)
		if eval.Essay.Disqualified {
			fmt.Fprintf(&sb, "Status: DISQUALIFIED (%s)\n", eval.Essay.DisqualificationReason)
		}
		fmt.Fprintf(&sb, "Total Score: %d/%d\n", eval.TotalScore(), cfg.MaxTotalScore())
		sb.WriteString(blockRule + "\n\n")
		for _, id := range eval.JudgeIDs() {
			score, _ := eval.ScoreFor(id)
			fmt.Fprintf(&sb, "Judge %d - Total: %d/%d\n", id, score.Total(), cfg.MaxScorePerJudge())
			for _, c := range cfg.Rubric.Categories() {
				fmt.Fprintf(&sb, "  - %s: %d/%d\n", titleCase(c.Name), score.Value(c.Name), c.Max)
			}
			fmt.Fprintf(&sb, "  Brief Rationale: %s\n\n", previewRationale(score.Rationale()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func rankedTable(results *domain.Results) string {
	cfg := results.Config
	var sb strings.Builder

	header := []string{fmt.Sprintf("%-8s", "Rank"), fmt.Sprintf("%-25s", "Student"), fmt.Sprintf("%-8s", "Words")}
	for i := 1; i <= cfg.NumJudges; i++ {
		header = append(header, fmt.Sprintf("J%-5d", i))
	}
	header = append(header, fmt.Sprintf("%-8s", "Total"), fmt.Sprintf("%-8s", "Avg"))
	sb.WriteString(strings.Join(header, " ") + "\n")
	sb.WriteString(blockRule + "\n")

	for _, entry := range results.Ranked() {
		eval := entry.Evaluation
		row := []string{
			fmt.Sprintf("%-8d", entry.Rank),
			fmt.Sprintf("%-25s", eval.Essay.Label),
			fmt.Sprintf("%-8d", eval.Essay.WordCount),
		}
		for i := 1; i <= cfg.NumJudges; i++ {
			total := 0
			if score, ok := eval.ScoreFor(i); ok {
				total = score.Total()
			}
			row = append(row, fmt.Sprintf("%-6d", total))
		}
		row = append(row,
			fmt.Sprintf("%-8d", eval.TotalScore()),
			fmt.Sprintf("%-8.1f", eval.AverageScore()))
		sb.WriteString(strings.Join(row, " ") + "\n")
	}
	return sb.String()
}

// WriteSummaryReport writes summary_report.md: a markdown table of all
// essays ordered by average score.
func (w *Writer) WriteSummaryReport(evaluations []*domain.Evaluation) (string, error) {
	if len(evaluations) == 0 {
		return "", nil
	}
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ordered := make([]*domain.Evaluation, len(evaluations))
	copy(ordered, evaluations)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AverageScore() > ordered[j].AverageScore()
	})

	var sb strings.Builder
	sb.WriteString("# Essay Evaluation Summary\n\n")
	sb.WriteString("| Rank | Student | Word Count | Avg. Score |\n")
	sb.WriteString("| ---- | ------- | ---------- | ---------- |\n")
	for i, eval := range ordered {
		fmt.Fprintf(&sb, "| %d | %s | %d | %.2f |\n",
			i+1, eval.Essay.Label, eval.Essay.WordCount, eval.AverageScore())
	}

	path := filepath.Join(w.outputDir, "summary_report.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing summary report: %w", err)
	}
	w.logger.Info("summary report saved", "path", path)
	return path, nil
}

// WriteMetaAnalysis writes the meta-analysis prose as judge{N}.txt where
// N is one past the highest panel judge id, following the convention of
// the panel reports.
func (w *Writer) WriteMetaAnalysis(analysis string, metaJudgeID int) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(sectionRule + "\n")
	sb.WriteString("META-ANALYSIS BY REVIEWING LLM JUDGE\n")
	sb.WriteString("Analyzing patterns, insights, and recommendations\n")
	sb.WriteString(sectionRule + "\n\n")
	sb.WriteString(analysis)
	sb.WriteString("\n\n" + sectionRule + "\n")
	sb.WriteString("END OF META-ANALYSIS\n")
	sb.WriteString(sectionRule + "\n")

	path := filepath.Join(w.outputDir, fmt.Sprintf("judge%d.txt", metaJudgeID))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing meta-analysis: %w", err)
	}
	w.logger.Info("meta-analysis saved", "path", path)
	return path, nil
}

func placeHeading(place int) string {
	switch place {
	case 1:
		return "1ST PLACE"
	case 2:
		return "2ND PLACE"
	case 3:
		return "3RD PLACE"
	default:
		return fmt.Sprintf("%dTH PLACE", place)
	}
}

func previewRationale(rationale string) string {
	runes := []rune(rationale)
	if len(runes) <= 200 {
		return rationale
	}
	return string(runes[:200]) + "..."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
