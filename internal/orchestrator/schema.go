package orchestrator

import genai "google.golang.org/genai"

var questionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":       {Type: genai.TypeString, Description: "Unique identifier for this question (e.g., 'q-scale')"},
		"question": {Type: genai.TypeString, Description: "The question to ask the user (clear, concise)"},
		"context":  {Type: genai.TypeString, Description: "Why this question matters for the design"},
		"options": {
			Type:        genai.TypeArray,
			Description: "Predefined options for quick selection (2-5 options)",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":    {Type: genai.TypeString},
					"label": {Type: genai.TypeString, Description: "Display text for the option (2-5 words)"},
					"value": {Type: genai.TypeString, Description: "Value to use when selected"},
				},
				Required: []string{"id", "label", "value"},
			},
		},
		"allowCustom": {Type: genai.TypeBoolean, Description: "Whether to show 'Other' option with custom text input"},
		"multiSelect": {Type: genai.TypeBoolean, Description: "Allow selecting multiple options"},
	},
	Required: []string{"id", "question", "options", "allowCustom", "multiSelect"},
}

// outputSchema constrains the per-turn decision call. Mode-specific field
// consistency is enforced afterwards by sanitation and dispatch, not here.
var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"mode": {
			Type: genai.TypeString,
			Enum: []string{"clarify", "research", "design", "respond"},
		},
		"message": {
			Type:        genai.TypeString,
			Description: "Response message to show the user - keep it concise",
		},
		"question": questionSchema,
		"researchTopic": {
			Type:        genai.TypeString,
			Description: "SINGLE topic keyword (e.g., 'database', 'cache', 'auth') - ONE word only",
		},
		"researchQuery": {
			Type:        genai.TypeString,
			Description: "Brief search query for research (e.g., 'best database for chat apps')",
		},
		"researchContext": {
			Type:        genai.TypeString,
			Description: "Brief context about user requirements",
		},
		"designRequirements": {
			Type:        genai.TypeObject,
			Description: "Requirements for design agent (required when mode='design')",
			Properties: map[string]*genai.Schema{
				"systemType":   {Type: genai.TypeString, Description: "Type of system (e.g., 'chat app', 'e-commerce', 'API')"},
				"scale":        {Type: genai.TypeString, Description: "Expected scale/load"},
				"requirements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"decisions": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"topic":     {Type: genai.TypeString},
							"choice":    {Type: genai.TypeString},
							"reasoning": {Type: genai.TypeString},
						},
						Required: []string{"topic", "choice"},
					},
				},
				"constraints": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"systemType", "scale", "requirements", "decisions"},
		},
		"readyForDesign": {
			Type:        genai.TypeBoolean,
			Description: "Whether enough information has been gathered to generate design",
		},
		"missingInfo": {
			Type:        genai.TypeArray,
			Description: "What information is still needed",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"mode", "message", "readyForDesign"},
}
