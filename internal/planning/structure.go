package planning

import (
	"context"
	"encoding/json"

	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/schemas"
	"github.com/sitesmith/email-composer/internal/types"
)

// GenerateStructure runs the lightweight planning call: the model picks a
// section sequence and states the email's goal, without writing any copy.
// The returned decision is already normalized; warnings list the corrections
// normalization had to make.
func GenerateStructure(ctx context.Context, client llm.Client, in Input) (*types.StructureDecision, []string, error) {
	prompt := StructurePrompt(in)

	raw, err := client.GenerateJSONWithSchema(ctx, prompt, llm.TierStandard, llm.StructureDecisionSchema())
	if err != nil {
		return nil, nil, err
	}

	dec, warnings, err := DecodeStructure(raw, in.Available)
	if err != nil {
		return nil, nil, err
	}
	return dec, warnings, nil
}

// DecodeStructure validates raw model JSON against the structure decision
// schema, decodes it, checks the shape contract and normalizes the result.
// Split from GenerateStructure so persisted raw output can be re-processed.
func DecodeStructure(raw string, available []string) (*types.StructureDecision, []string, error) {
	if err := schemas.ValidateJSONString(schemas.StructureDecisionDocument(), raw); err != nil {
		return nil, nil, &MalformedOutputError{Message: "structure decision failed schema validation", Cause: err}
	}

	var dec types.StructureDecision
	if err := json.Unmarshal([]byte(raw), &dec); err != nil {
		return nil, nil, &MalformedOutputError{Message: "structure decision is not valid JSON", Cause: err}
	}

	if err := dec.Validate(); err != nil {
		return nil, nil, &ShapeError{Message: "structure decision is missing required fields", Cause: err}
	}

	warnings := NormalizeStructure(&dec, available)
	return &dec, warnings, nil
}
