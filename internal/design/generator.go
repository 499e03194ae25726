package design

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"architect/internal/agent"
	"architect/internal/llm"
)

const (
	minNodes = 3
	maxNodes = 15
)

const designSystemPrompt = `You are a Design Agent - an expert system architect that converts requirements into visual architecture diagrams.

## YOUR ROLE
You receive structured requirements from the Orchestrating Agent and output a tier-based architecture diagram.
You do NOT interact with users directly. Your output is used to render a canvas visualization.

## TIER SYSTEM (CRITICAL)
You MUST assign each node a tier (1-5) for automatic layout:
- Tier 1: CLIENTS - Web browsers, mobile apps, desktop apps, external users
- Tier 2: EDGE - CDN, DNS, WAF, external APIs, push notification services
- Tier 3: GATEWAY - Load balancers, API gateways, reverse proxies, auth services
- Tier 4: SERVICES - Application servers, microservices, workers, background jobs
- Tier 5: DATA - Databases, caches, message queues, object storage

## NODE TYPES
Use these exact types for proper icon rendering:
"client", "cdn", "gateway", "server", "service", "api", "queue", "cache", "database", "storage", "auth", "monitoring", "external"

## TECHNOLOGY FIELD
Always specify the technology when known:
- Databases: "postgresql", "mongodb", "mysql", "dynamodb", "redis"
- Queues: "kafka", "rabbitmq", "sqs", "redis-streams"
- Gateways: "nginx", "kong", "aws-alb", "cloudflare"
- Clients: "react", "nextjs", "flutter", "ios", "android"
- Services: "nodejs", "python", "go", "java"

## OUTPUT RULES
1. MINIMUM NODES: 5 (a meaningful architecture needs at least 5 components)
2. MAXIMUM NODES: 15 (keep it focused and readable)
3. EDGE CONNECTIONS: Every node (except tier 1) should have at least one incoming connection
4. ID FORMAT: Use kebab-case (e.g., "user-service", "postgres-primary")
5. LABEL FORMAT: Use technology name or clear component name
6. SUMMARY: 2-3 sentences describing the architecture

## WHAT NOT TO DO (ANTI-PATTERNS)
1. DON'T create generic labels like "Database 1" or "Service A" - be specific
2. DON'T skip tiers - if you have tier 1 and tier 4, include tier 3
3. DON'T create disconnected nodes - every component should connect to something
4. DON'T overcomplicate - a chat app doesn't need 15 microservices
5. DON'T forget the technology field - it's used for icon rendering
6. DON'T use absolute positions - only use tiers (1-5)
7. DON'T create duplicate IDs - each node must have a unique ID`

// Generator turns gathered requirements into a validated, laid-out
// architecture graph.
type Generator struct {
	LLM    llm.Client
	Layout LayoutOptions
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{LLM: client, Layout: DefaultLayout}
}

// Generate invokes structured generation, validates the returned graph, and
// computes node positions. Tier repair never fails; a node count outside the
// 3-15 range is a recoverable generation error.
func (g *Generator) Generate(ctx context.Context, in agent.DesignRequirements) (agent.DesignOutput, error) {
	if g == nil || g.LLM == nil {
		return agent.DesignOutput{}, fmt.Errorf("design: llm client is nil")
	}

	raw, err := g.LLM.GenerateObject(ctx, designSystemPrompt, buildDesignPrompt(in), outputSchema)
	if err != nil {
		return agent.DesignOutput{}, err
	}

	var out agent.DesignOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return agent.DesignOutput{}, llm.NewRecoverableError(fmt.Errorf("design: invalid JSON: %w", err))
	}
	if len(out.Nodes) < minNodes || len(out.Nodes) > maxNodes {
		return agent.DesignOutput{}, llm.NewRecoverableError(
			fmt.Errorf("design: node count %d outside [%d,%d]", len(out.Nodes), minNodes, maxNodes))
	}

	validated := Validate(out)
	validated.Nodes = Layout(validated.Nodes, g.Layout)
	return validated, nil
}

// Validate drops edges whose endpoints are missing and repairs node tiers:
// values outside [1,5] are clamped, and a missing tier falls back to the
// type's canonical band. Repair, never rejection.
func Validate(d agent.DesignOutput) agent.DesignOutput {
	ids := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = struct{}{}
	}

	edges := make([]agent.DesignEdge, 0, len(d.Edges))
	for _, e := range d.Edges {
		if _, ok := ids[e.Source]; !ok {
			continue
		}
		if _, ok := ids[e.Target]; !ok {
			continue
		}
		edges = append(edges, e)
	}

	nodes := make([]agent.DesignNode, len(d.Nodes))
	copy(nodes, d.Nodes)
	for i := range nodes {
		switch {
		case nodes[i].Tier == 0:
			nodes[i].Tier = tierForType(nodes[i].Type)
		case nodes[i].Tier < minTier:
			nodes[i].Tier = minTier
		case nodes[i].Tier > maxTier:
			nodes[i].Tier = maxTier
		}
	}

	return agent.DesignOutput{Nodes: nodes, Edges: edges, Summary: d.Summary}
}

func buildDesignPrompt(in agent.DesignRequirements) string {
	var b strings.Builder

	b.WriteString("Generate an architecture diagram for the following system:\n\n")
	b.WriteString("## System Type\n" + in.SystemType + "\n\n")
	b.WriteString("## Scale\n" + in.Scale + "\n\n")

	b.WriteString("## Requirements\n")
	for _, r := range in.Requirements {
		b.WriteString("- " + r + "\n")
	}

	b.WriteString("\n## Technology Decisions\n")
	if len(in.Decisions) == 0 {
		b.WriteString("No specific technology decisions made - use sensible defaults\n")
	}
	for _, d := range in.Decisions {
		b.WriteString("- " + d.Topic + ": " + d.Choice)
		if d.Reasoning != "" {
			b.WriteString(" (" + d.Reasoning + ")")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Constraints\n")
	if len(in.Constraints) == 0 {
		b.WriteString("No specific constraints\n")
	}
	for _, c := range in.Constraints {
		b.WriteString("- " + c + "\n")
	}

	b.WriteString("\nCreate a clear, production-ready architecture with appropriate components and connections.\n")
	b.WriteString("Use the tier system (1-5) for positioning and specify technologies for each component.\n")
	return b.String()
}
