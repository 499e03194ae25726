package design

import (
	"sort"

	"architect/internal/agent"
)

// LayoutOptions control the tiered grid geometry.
type LayoutOptions struct {
	StartX float64
	StartY float64
	GapX   float64
	GapY   float64
}

// DefaultLayout spreads tiers left-to-right with enough room for node cards.
var DefaultLayout = LayoutOptions{StartX: 80, StartY: 60, GapX: 260, GapY: 120}

// Layout assigns a deterministic position to every node: tiers become columns
// ordered left-to-right, and each tier's nodes are vertically centered as a
// block against the tallest tier. Same input always yields the same positions.
func Layout(nodes []agent.DesignNode, opts LayoutOptions) []agent.DesignNode {
	byTier := make(map[int][]int, maxTier)
	for i, n := range nodes {
		byTier[n.Tier] = append(byTier[n.Tier], i)
	}

	tiers := make([]int, 0, len(byTier))
	tallest := 0
	for tier, idxs := range byTier {
		tiers = append(tiers, tier)
		if len(idxs) > tallest {
			tallest = len(idxs)
		}
	}
	sort.Ints(tiers)

	out := make([]agent.DesignNode, len(nodes))
	copy(out, nodes)

	for col, tier := range tiers {
		idxs := byTier[tier]
		x := opts.StartX + float64(col)*opts.GapX
		// Center this tier's block within the reference band of the tallest tier.
		offset := (float64(tallest)*opts.GapY - float64(len(idxs))*opts.GapY) / 2
		for row, i := range idxs {
			out[i].Position = &agent.Position{
				X: x,
				Y: opts.StartY + offset + float64(row)*opts.GapY,
			}
		}
	}
	return out
}
