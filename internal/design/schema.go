package design

import genai "google.golang.org/genai"

// outputSchema constrains the design generation call to a node/edge graph.
var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"nodes": {
			Type:        genai.TypeArray,
			Description: "Architecture nodes (3-15 nodes for clarity)",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        genai.TypeString,
						Description: "Unique identifier (kebab-case, e.g., 'user-service', 'postgres-main')",
					},
					"label": {
						Type:        genai.TypeString,
						Description: "Display label (technology name or component name)",
					},
					"type": {
						Type: genai.TypeString,
						Enum: []string{
							"client", "cdn", "gateway", "server", "service", "api",
							"queue", "cache", "database", "storage", "auth", "monitoring", "external",
						},
					},
					"tier": {
						Type:        genai.TypeInteger,
						Description: "Layout tier: 1=Clients, 2=Edge, 3=Gateway, 4=Services, 5=Data",
					},
					"technology": {
						Type:        genai.TypeString,
						Description: "Specific technology (e.g., 'postgresql', 'redis', 'kafka', 'nextjs')",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "Brief description of component's role",
					},
				},
				Required: []string{"id", "label", "type", "tier"},
			},
		},
		"edges": {
			Type:        genai.TypeArray,
			Description: "Connections between nodes",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":     {Type: genai.TypeString},
					"source": {Type: genai.TypeString, Description: "Source node ID"},
					"target": {Type: genai.TypeString, Description: "Target node ID"},
					"label":  {Type: genai.TypeString, Description: "Edge label (keep short: 1-2 words)"},
				},
				Required: []string{"id", "source", "target"},
			},
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "Brief summary of the architecture (2-3 sentences)",
		},
	},
	Required: []string{"nodes", "edges", "summary"},
}
