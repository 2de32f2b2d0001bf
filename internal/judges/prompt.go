package judges

import (
	"fmt"
	"strings"

	"github.com/hotbench/hotbench/internal/domain"
)

// BuildPrompt renders the evaluation instruction block for a judge. It is
// a pure function of persona, rubric, and essay text: identical inputs
// produce a byte-identical prompt, which all judge variants share.
func BuildPrompt(persona string, rubric domain.Rubric, essay string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an essay contest judge with the persona of '%s'.\n", persona)
	sb.WriteString("Your task is to evaluate a middle school student's essay for a Black History Month contest.\n\n")

	sb.WriteString("**Rubric:**\n")
	for _, c := range rubric.Categories() {
		fmt.Fprintf(&sb, "- %s: (1-%d points)\n", capitalize(c.Name), c.Max)
	}

	sb.WriteString("\n**Instructions:**\n")
	sb.WriteString("1. Read the essay carefully.\n")
	sb.WriteString("2. Score the essay based on each category in the rubric.\n")
	sb.WriteString("3. Provide a detailed rationale for your scores, citing specific examples from the essay.\n")
	sb.WriteString("4. Respond ONLY with a valid JSON object of exactly this shape:\n\n")

	sb.WriteString(scoreSchema(rubric))

	sb.WriteString("\n\n**Essay to Evaluate:**\n---\n")
	sb.WriteString(essay)
	sb.WriteString("\n---\n")

	return sb.String()
}

// scoreSchema renders the JSON object the judge must return: one integer
// field per rubric category plus a rationale string.
func scoreSchema(rubric domain.Rubric) string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, c := range rubric.Categories() {
		fmt.Fprintf(&sb, "%q: <integer 1-%d>, ", c.Name, c.Max)
	}
	sb.WriteString(`"rationale": "<detailed explanation>"}`)
	return sb.String()
}

// capitalize upper-cases the first letter of a category name for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
