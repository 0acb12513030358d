// Package schemas - embed.go exposes the embedded schema documents.
package schemas

import (
	_ "embed"
)

//go:embed structure_decision.schema.json
var structureDecisionSchema string

//go:embed email_plan.schema.json
var emailPlanSchema string

// StructureDecisionDocument returns the JSON Schema for the lightweight
// structure decision the model returns.
func StructureDecisionDocument() string {
	return structureDecisionSchema
}

// EmailPlanDocument returns the JSON Schema for the full email plan the
// model returns. Slot keys are validated in their wire form (underscore
// style); canonicalization happens after this gate.
func EmailPlanDocument() string {
	return emailPlanSchema
}
