// Package discovery locates essay submissions on disk and turns them
// into domain essays: derived student label, word count, and the
// informational disqualification and near-duplicate flags.
package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hotbench/hotbench/internal/domain"
)

// namePattern splits a camelCase file stem into its name parts:
// a run of lowercase letters, or a capital letter with its lowercase tail.
var namePattern = regexp.MustCompile(`[a-z]+|[A-Z][a-z]*`)

// maxFirstNameLen bounds the first name part of a derived label so
// report columns stay aligned.
const maxFirstNameLen = 11

var titleCaser = cases.Title(language.English)

// Scanner reads essay files from a directory.
type Scanner struct {
	dir                string
	maxWordCount       int
	duplicateThreshold float64
	logger             *slog.Logger
}

// NewScanner creates a scanner over dir. Essays longer than maxWordCount
// words are flagged as disqualified. Pairs of essays whose similarity
// meets duplicateThreshold (0..1) are flagged as near-duplicates; a
// threshold <= 0 disables the check. Neither flag excludes an essay
// from evaluation.
func NewScanner(dir string, maxWordCount int, duplicateThreshold float64, logger *slog.Logger) *Scanner {
	return &Scanner{
		dir:                dir,
		maxWordCount:       maxWordCount,
		duplicateThreshold: duplicateThreshold,
		logger:             logger,
	}
}

// Discover returns all valid essay submissions in the scanner's
// directory, sorted by derived label. Empty files and non-.txt files
// are skipped.
func (s *Scanner) Discover() ([]domain.Essay, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.dir, err)
	}

	essays := make([]domain.Essay, 0, len(paths))
	for _, path := range paths {
		essay, ok, err := s.load(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		essays = append(essays, essay)
	}

	sort.SliceStable(essays, func(i, j int) bool { return essays[i].Label < essays[j].Label })

	s.flagNearDuplicates(essays)

	for _, e := range essays {
		s.logger.Info("essay discovered",
			"label", e.Label, "words", e.WordCount, "disqualified", e.Disqualified)
	}
	return essays, nil
}

func (s *Scanner) load(path string) (domain.Essay, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Essay{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return domain.Essay{}, false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Essay{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	content := strings.TrimSpace(string(raw))
	if content == "" {
		return domain.Essay{}, false, nil
	}

	wordCount := CountWords(content)
	essay := domain.Essay{
		Label:     DeriveLabel(stem(path)),
		Content:   content,
		WordCount: wordCount,
	}
	if s.maxWordCount > 0 && wordCount > s.maxWordCount {
		essay.Disqualified = true
		essay.DisqualificationReason = fmt.Sprintf(
			"Exceeds word limit (%d/%d words)", wordCount, s.maxWordCount)
	}
	return essay, true, nil
}

// flagNearDuplicates marks essays whose content is nearly identical to
// an earlier essay. Comparison is case-folded; similarity is one minus
// the normalized edit distance.
func (s *Scanner) flagNearDuplicates(essays []domain.Essay) {
	if s.duplicateThreshold <= 0 {
		return
	}
	folder := cases.Fold()
	folded := make([]string, len(essays))
	for i, e := range essays {
		folded[i] = folder.String(e.Content)
	}
	for i := range essays {
		for j := 0; j < i; j++ {
			if similarity(folded[i], folded[j]) >= s.duplicateThreshold {
				essays[i].NearDuplicateOf = essays[j].Label
				s.logger.Warn("near-duplicate essay",
					"label", essays[i].Label, "duplicate_of", essays[j].Label)
				break
			}
		}
	}
}

func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// DeriveLabel converts a camelCase file stem such as "jamesBaldwin"
// into a display label such as "James Baldwin". The first name part is
// truncated to a fixed length. Stems that do not split into at least
// two name parts fall back to title-casing with separators replaced by
// spaces.
func DeriveLabel(fileStem string) string {
	parts := namePattern.FindAllString(fileStem, -1)
	if len(parts) >= 2 {
		formatted := make([]string, len(parts))
		for i, p := range parts {
			formatted[i] = titleCaser.String(p)
		}
		if first := []rune(formatted[0]); len(first) > maxFirstNameLen {
			formatted[0] = string(first[:maxFirstNameLen])
		}
		return strings.Join(formatted, " ")
	}
	raw := strings.NewReplacer("_", " ", "-", " ").Replace(fileStem)
	return titleCaser.String(raw)
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
