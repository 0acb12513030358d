package planning

import (
	"github.com/sitesmith/email-composer/internal/links"
	"github.com/sitesmith/email-composer/internal/prompts"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

// promptFile is the prompt bundle for the planning stage.
const promptFile = prompts.FilePlanning

// Input carries everything the planner needs for one run.
type Input struct {
	Blog *types.BlogContent
	// Brand is the brand guidelines text. May be empty when the guidelines
	// file is missing; the prompt degrades gracefully.
	Brand string
	// Available lists the section ids with an on-disk template.
	Available []string
}

// StructurePrompt builds the lightweight-mode prompt. Exported so callers
// that persist the raw model output can drive the model call themselves.
func StructurePrompt(in Input) string {
	template := prompts.MustGet(promptFile, "structure_system")
	return prompts.Format(template, map[string]string{
		"Title":   in.Blog.Title,
		"Content": in.Blog.Text,
		"Brand":   brandOrDefault(in.Brand),
		"Catalog": sections.PromptText(in.Available),
	})
}

// PlanPrompt builds the full-mode prompt. When structure is non-nil the model
// is asked to write copy for that sequence instead of choosing its own.
func PlanPrompt(in Input, structure *types.StructureDecision) string {
	data := map[string]string{
		"Title":   in.Blog.Title,
		"Content": in.Blog.Text,
		"Brand":   brandOrDefault(in.Brand),
		"Catalog": sections.PromptText(in.Available),
		"Links":   links.PromptText(),
	}

	if structure != nil {
		data["Sequence"] = DescribeSequence(structure.Sequence)
		data["Goal"] = structure.EmailGoal
		return prompts.Format(prompts.MustGet(promptFile, "plan_seeded_system"), data)
	}
	return prompts.Format(prompts.MustGet(promptFile, "plan_system"), data)
}

func brandOrDefault(brand string) string {
	if brand == "" {
		return "Write in a clear, friendly, practical voice. Short sentences. No hype."
	}
	return brand
}
