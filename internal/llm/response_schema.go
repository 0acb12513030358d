// Package llm - response_schema.go declares the Gemini response schemas for
// every structured call the pipeline makes.
package llm

import "github.com/google/generative-ai-go/genai"

// StructureDecisionSchema constrains the lightweight structure call: section
// order and intent, no copy.
func StructureDecisionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sequence": {
				Type:        genai.TypeArray,
				Description: "Ordered section ids for the email, chosen from the catalog",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"email_goal": {
				Type:        genai.TypeString,
				Description: "One sentence stating what this email is trying to achieve",
			},
			"use_summary_cards": {
				Type:        genai.TypeBoolean,
				Description: "Whether the post breaks into six crisp takeaway cards",
			},
			"reasoning": {
				Type:        genai.TypeString,
				Description: "Short explanation of the chosen structure",
			},
		},
		Required: []string{"sequence", "email_goal", "use_summary_cards", "reasoning"},
	}
}

// EmailPlanSchema constrains the full planning call. Slot keys use underscore
// naming on the wire; normalization maps them to the hyphenated section ids.
func EmailPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"subject": {
				Type:        genai.TypeString,
				Description: "Email subject line, under 60 characters",
			},
			"preview": {
				Type:        genai.TypeString,
				Description: "Inbox preview text, under 100 characters",
			},
			"sequence": {
				Type:        genai.TypeArray,
				Description: "Ordered section ids for the email",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"slots": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"hero": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":    {Type: genai.TypeString, Description: "Headline"},
							"subtitle": {Type: genai.TypeString, Description: "Supporting subheadline"},
							"cta_text": {Type: genai.TypeString, Description: "Button label"},
							"cta_url":  {Type: genai.TypeString, Description: "Button destination, from the approved link list"},
						},
						Required: []string{"title", "subtitle", "cta_text", "cta_url"},
					},
					"simple_body": {
						Type:        genai.TypeArray,
						Description: "Paragraph blocks carrying the main message",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"html": {Type: genai.TypeString, Description: "One block of simple HTML (p, strong, em, a)"},
							},
							Required: []string{"html"},
						},
					},
					"six_summary_cards": {
						Type:        genai.TypeArray,
						Description: "Exactly six takeaway cards, or an empty list to omit the section",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"title":       {Type: genai.TypeString},
								"description": {Type: genai.TypeString},
								"emoji":       {Type: genai.TypeString},
							},
							Required: []string{"title", "description", "emoji"},
						},
					},
				},
				Required: []string{"hero", "simple_body"},
			},
		},
		Required: []string{"subject", "preview", "sequence", "slots"},
	}
}

// DraftedPostSchema constrains the prompt-mode call that writes a blog post
// from a free-text brief.
func DraftedPostSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "Blog post title",
			},
			"text": {
				Type:        genai.TypeString,
				Description: "Full blog post body as plain text paragraphs",
			},
		},
		Required: []string{"title", "text"},
	}
}
