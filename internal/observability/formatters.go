// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sitesmith/email-composer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLen truncates long copy in verbose dumps
	previewLen = 160
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBlogContent outputs a human-readable summary of the retrieved post.
func (p *Printer) PrintBlogContent(blog *types.BlogContent) {
	if blog == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:   %s\n", blog.Title))
	if blog.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("Source:  %s\n", blog.SourceURL))
	}
	sb.WriteString(fmt.Sprintf("Length:  %d chars\n", len(blog.Text)))
	sb.WriteString("\n")
	sb.WriteString(truncate(blog.Text, previewLen))

	p.printBox("BLOG CONTENT", sb.String())
}

// PrintStructureDecision outputs the lightweight planning result.
func (p *Printer) PrintStructureDecision(decision *types.StructureDecision) {
	if decision == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Goal:   %s\n", decision.EmailGoal))
	sb.WriteString(fmt.Sprintf("Cards:  %v\n", decision.UseSummaryCards))
	sb.WriteString("\nSequence:\n")
	for _, id := range decision.Sequence {
		sb.WriteString(fmt.Sprintf("  • %s\n", id))
	}
	if decision.Reasoning != "" {
		sb.WriteString("\n")
		sb.WriteString(truncate(decision.Reasoning, previewLen))
	}

	p.printBox("STRUCTURE DECISION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEmailPlan outputs the full content plan summary. Sections carrying a
// slot payload are marked with +.
func (p *Printer) PrintEmailPlan(plan *types.EmailPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Subject:  %s\n", plan.Subject))
	sb.WriteString(fmt.Sprintf("Preview:  %s\n", plan.Preview))
	sb.WriteString("\nSequence:\n")
	for _, id := range plan.Sequence {
		marker := " "
		if plan.Slots.Has(id) {
			marker = "+"
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", marker, id))
	}

	if blocks, err := plan.Slots.BodyBlocks(); err == nil && len(blocks) > 0 {
		sb.WriteString(fmt.Sprintf("\nBody blocks: %d\n", len(blocks)))
	}
	if cards, err := plan.Slots.SummaryCards(); err == nil && len(cards) > 0 {
		sb.WriteString("\nSummary cards:\n")
		count := min(len(cards), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", cards[i].Title))
		}
		if len(cards) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cards)-maxItemsToShow))
		}
	}

	p.printBox("EMAIL PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the self-healing corrections a stage reported.
func (p *Printer) PrintWarnings(stage string, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("  • %s\n", w))
	}

	p.printBox(strings.ToUpper(stage)+" WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// truncate shortens text for box display.
func truncate(text string, limit int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) <= limit {
		return text
	}
	return text[:limit-3] + "..."
}
