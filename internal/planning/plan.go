package planning

import (
	"context"
	"encoding/json"

	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/schemas"
	"github.com/sitesmith/email-composer/internal/types"
)

// GeneratePlan runs the full planning call: subject, preview, sequence and
// per-section copy. When a structure decision is supplied the model is asked
// to write copy for that sequence instead of choosing its own. The returned
// plan satisfies every ordering and slot invariant.
func GeneratePlan(ctx context.Context, client llm.Client, in Input, structure *types.StructureDecision) (*types.EmailPlan, []string, error) {
	prompt := PlanPrompt(in, structure)

	raw, err := client.GenerateJSONWithSchema(ctx, prompt, llm.TierAdvanced, llm.EmailPlanSchema())
	if err != nil {
		return nil, nil, err
	}

	return DecodePlan(raw, in.Available)
}

// DecodePlan validates raw model JSON against the email plan schema, decodes
// it, checks the fatal shape contract and normalizes the result. Split from
// GeneratePlan so a persisted raw plan can be re-processed offline.
func DecodePlan(raw string, available []string) (*types.EmailPlan, []string, error) {
	if err := schemas.ValidateJSONString(schemas.EmailPlanDocument(), raw); err != nil {
		return nil, nil, &MalformedOutputError{Message: "email plan failed schema validation", Cause: err}
	}

	var plan types.EmailPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, nil, &MalformedOutputError{Message: "email plan is not valid JSON", Cause: err}
	}

	if err := plan.Validate(); err != nil {
		return nil, nil, &ShapeError{Message: "email plan is missing required fields", Cause: err}
	}

	warnings := NormalizePlan(&plan, available)
	return &plan, warnings, nil
}
