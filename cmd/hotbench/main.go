// Command hotbench runs the essay contest judging pipeline: it discovers
// essay submissions, has every configured judge score each one, writes
// the per-judge and consolidated reports, and generates the optional
// meta-analysis.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/hotbench/hotbench/infrastructure/discovery"
	"github.com/hotbench/hotbench/infrastructure/llm"
	"github.com/hotbench/hotbench/infrastructure/metrics"
	"github.com/hotbench/hotbench/infrastructure/report"
	"github.com/hotbench/hotbench/internal/config"
	"github.com/hotbench/hotbench/internal/domain"
	"github.com/hotbench/hotbench/internal/evaluator"
	"github.com/hotbench/hotbench/internal/judges"
	"github.com/hotbench/hotbench/internal/ports"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	stepStyle   = lipgloss.NewStyle().Bold(true)
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bannerBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 4)
)

var rootCmd = &cobra.Command{
	Use:   "hotbench",
	Short: "Automated essay contest judging with multiple independent LLM judges",
	Long: `hotbench evaluates a directory of essay submissions with a panel of
independent LLM judges, each bound to a persona and a rubric. Judges
whose provider credential is missing fall back to deterministic
simulated scores, so a run always completes.

Outputs one report per judge, a consolidated ranking with winners, a
markdown summary, and an optional meta-analysis of the judging itself.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	rootCmd.Flags().String("essays", "", "Essay directory (overrides HOTBENCH_ESSAY_DIR)")
	rootCmd.Flags().String("output", "", "Output directory (overrides HOTBENCH_OUTPUT_DIR)")
	rootCmd.Flags().Int("winners", 0, "Number of winners to declare (overrides HOTBENCH_NUM_WINNERS)")
	rootCmd.Flags().Bool("skip-meta", false, "Skip the meta-analysis stage")
	rootCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	fmt.Println(bannerBox.Render(titleStyle.Render("Essay Contest") + "\n" +
		"Automated Judging System\n\n" +
		"Multiple independent LLM judges scoring against a shared rubric."))

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("essays"); dir != "" {
		settings.EssayDir = dir
	}
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		settings.OutputDir = dir
	}
	if n, _ := cmd.Flags().GetInt("winners"); n > 0 {
		settings.NumWinners = n
	}

	rubric, err := settings.Rubric()
	if err != nil {
		return fmt.Errorf("loading rubric: %w", err)
	}

	collector := metrics.NewPrometheusCollector()
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		go serveMetrics(addr, logger)
	}

	fmt.Println(stepStyle.Render("\nStep 1: Discovering essays..."))
	scanner := discovery.NewScanner(settings.EssayDir, settings.MaxWordCount, settings.DuplicateThreshold, logger)
	essays, err := scanner.Discover()
	if err != nil {
		return fmt.Errorf("discovering essays: %w", err)
	}
	if len(essays) == 0 {
		fmt.Println(warnStyle.Render("No essays found to evaluate."))
		fmt.Printf("Place essay files as firstnameLastname.txt in %s/\n", settings.EssayDir)
		return nil
	}
	for _, e := range essays {
		status := ""
		if e.Disqualified {
			status = "  [DISQUALIFIED]"
		}
		fmt.Printf("  - %s (%d words)%s\n", e.Label, e.WordCount, status)
	}

	fmt.Println(stepStyle.Render("\nStep 2: Assembling the judge panel..."))
	panel := buildPanel(settings, rubric, collector, logger)
	for _, j := range panel {
		fmt.Printf("  - Judge %d: %s (%s, %s)\n", j.ID(), j.Persona(), j.Model(), j.Mode())
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirm(len(essays), len(panel)) {
		fmt.Println(warnStyle.Render("Evaluation cancelled."))
		return nil
	}

	fmt.Println(stepStyle.Render("\nStep 3: Evaluating essays..."))
	pipeline := evaluator.NewPipeline(panel, logger,
		evaluator.WithMetrics(collector),
		evaluator.WithTracer(otel.Tracer("hotbench/evaluator")))
	evaluations, err := pipeline.Run(ctx, essays)
	if err != nil {
		return fmt.Errorf("evaluation interrupted: %w", err)
	}

	fmt.Println(stepStyle.Render("\nStep 4: Saving judge reports..."))
	writer := report.NewWriter(settings.OutputDir, logger)
	judgeFiles, err := writer.WriteJudgeReports(panel, evaluations, rubric)
	if err != nil {
		return err
	}
	summaryFile, err := writer.WriteSummaryReport(evaluations)
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("\nStep 5: Consolidating scores..."))
	contest := domain.ContestConfig{
		Rubric:     rubric,
		NumJudges:  len(panel),
		NumWinners: settings.NumWinners,
	}
	results := domain.Consolidate(evaluations, contest)
	resultsFile, err := writer.WriteFinalResults(results)
	if err != nil {
		return err
	}

	files := append(judgeFiles, resultsFile)
	if summaryFile != "" {
		files = append(files, summaryFile)
	}

	if skip, _ := cmd.Flags().GetBool("skip-meta"); !skip {
		fmt.Println(stepStyle.Render("\nStep 6: Generating meta-analysis..."))
		analyzer := judges.NewMetaAnalyzer(metaClient(settings, collector, logger), settings.MetaModel, logger)
		analysis := analyzer.Analyze(ctx, results)
		metaFile, err := writer.WriteMetaAnalysis(analysis, len(panel)+1)
		if err != nil {
			return err
		}
		files = append(files, metaFile)
	}

	printSummary(results, files)
	return nil
}

// buildPanel wires provider clients into the judge panel. A provider
// with no credential gets a nil factory, which degrades its judges to
// simulated scoring.
func buildPanel(settings *config.Settings, rubric domain.Rubric, collector *metrics.PrometheusCollector, logger *slog.Logger) []judges.Judge {
	limit := rate.Limit(settings.RequestsPerSecond)

	factory := func(provider, apiKey, model string) judges.ClientFactory {
		if apiKey == "" {
			logger.Warn("credential missing, judges degrade to simulated scores", "provider", provider)
			return nil
		}
		return func() (ports.LLMClient, error) {
			return llm.NewClient(provider, llm.ClientConfig{
				APIKey: apiKey,
				Model:  model,
				Middleware: []llm.Middleware{
					llm.RateLimitMiddleware(limit, 1),
					llm.MetricsMiddleware(provider, collector),
				},
			})
		}
	}

	opts := judges.PanelOptions{
		Rubric:       rubric,
		Chat:         factory("openai", settings.OpenAIAPIKey, settings.OpenAIModel),
		Content:      factory("google", settings.GoogleAPIKey, settings.GoogleModel),
		ChatModel:    settings.OpenAIModel,
		ContentModel: settings.GoogleModel,
		Logger:       logger,
	}
	if settings.AnthropicJudge {
		opts.Messages = factory("anthropic", settings.AnthropicAPIKey, settings.AnthropicModel)
		opts.MessagesModel = settings.AnthropicModel
	}
	return judges.NewPanel(opts)
}

// metaClient builds the client for the meta-analysis stage, or nil when
// no credential is available.
func metaClient(settings *config.Settings, collector *metrics.PrometheusCollector, logger *slog.Logger) ports.LLMClient {
	if settings.OpenAIAPIKey == "" {
		return nil
	}
	client, err := llm.NewClient("openai", llm.ClientConfig{
		APIKey: settings.OpenAIAPIKey,
		Model:  settings.MetaModel,
		Middleware: []llm.Middleware{
			llm.MetricsMiddleware("openai", collector),
		},
	})
	if err != nil {
		logger.Warn("meta-analysis client construction failed", "error", err)
		return nil
	}
	return client
}

func confirm(numEssays, numJudges int) bool {
	fmt.Printf("\nAbout to evaluate %d essay(s) with %d judges.\n", numEssays, numJudges)
	fmt.Println("This will make API calls and may take several minutes.")
	fmt.Print("\nProceed? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "yes" || answer == "y"
}

// renderRankedTable draws the consolidated ranking for the console.
func renderRankedTable(results *domain.Results) string {
	headers := []string{"Rank", "Student", "Words"}
	for i := 1; i <= results.Config.NumJudges; i++ {
		headers = append(headers, fmt.Sprintf("Judge %d", i))
	}
	headers = append(headers, "Total", "Average")

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)

	for _, entry := range results.Ranked() {
		eval := entry.Evaluation
		row := []string{
			fmt.Sprintf("#%d", entry.Rank),
			eval.Essay.Label,
			fmt.Sprintf("%d", eval.Essay.WordCount),
		}
		for i := 1; i <= results.Config.NumJudges; i++ {
			total := 0
			if score, ok := eval.ScoreFor(i); ok {
				total = score.Total()
			}
			row = append(row, fmt.Sprintf("%d", total))
		}
		row = append(row,
			fmt.Sprintf("%d", eval.TotalScore()),
			fmt.Sprintf("%.1f", eval.AverageScore()))
		tbl.Row(row...)
	}
	return tbl.Render()
}

func printSummary(results *domain.Results, files []string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("EVALUATION COMPLETE"))
	fmt.Println()
	fmt.Println(renderRankedTable(results))
	fmt.Printf("\nTotal essays evaluated: %d\n", results.Len())
	fmt.Println("\nGenerated files:")
	for _, f := range files {
		fmt.Printf("  - %s\n", f)
	}

	winners := results.Winners()
	if len(winners) > 0 {
		fmt.Println("\nWinners:")
		for _, w := range winners {
			fmt.Println(winnerStyle.Render(fmt.Sprintf("  %s: %s (%d points)",
				ordinal(w.Place), w.Evaluation.Essay.Label, w.Evaluation.TotalScore())))
		}
	}
}

func ordinal(place int) string {
	switch place {
	case 1:
		return "1st Place"
	case 2:
		return "2nd Place"
	case 3:
		return "3rd Place"
	default:
		return fmt.Sprintf("%dth Place", place)
	}
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server stopped", "error", err)
	}
}
