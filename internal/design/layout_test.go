package design

import (
	"reflect"
	"testing"

	"architect/internal/agent"
)

func layoutFixture() []agent.DesignNode {
	return []agent.DesignNode{
		{ID: "web", Type: agent.NodeClient, Tier: 1},
		{ID: "mobile", Type: agent.NodeClient, Tier: 1},
		{ID: "cdn", Type: agent.NodeCDN, Tier: 2},
		{ID: "chat-svc", Type: agent.NodeService, Tier: 3},
		{ID: "user-svc", Type: agent.NodeService, Tier: 3},
		{ID: "presence-svc", Type: agent.NodeService, Tier: 3},
	}
}

func TestLayoutDeterministic(t *testing.T) {
	opts := LayoutOptions{StartX: 100, StartY: 50, GapX: 250, GapY: 120}

	first := Layout(layoutFixture(), opts)
	second := Layout(layoutFixture(), opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("layout must be a pure function of its input")
	}
}

func TestLayoutTierColumnsStrictlyIncreaseX(t *testing.T) {
	opts := LayoutOptions{StartX: 100, StartY: 50, GapX: 250, GapY: 120}
	nodes := Layout(layoutFixture(), opts)

	xByTier := make(map[int]float64)
	for _, n := range nodes {
		if n.Position == nil {
			t.Fatalf("node %s has no position", n.ID)
		}
		if x, seen := xByTier[n.Tier]; seen && x != n.Position.X {
			t.Fatalf("tier %d nodes must share an x, got %v and %v", n.Tier, x, n.Position.X)
		}
		xByTier[n.Tier] = n.Position.X
	}

	if !(xByTier[1] < xByTier[2] && xByTier[2] < xByTier[3]) {
		t.Fatalf("x must strictly increase by tier index: %v", xByTier)
	}
}

func TestLayoutNoVerticalOverlapWithinTier(t *testing.T) {
	opts := LayoutOptions{StartX: 100, StartY: 50, GapX: 250, GapY: 120}
	nodes := Layout(layoutFixture(), opts)

	seen := make(map[int]map[float64]string)
	for _, n := range nodes {
		if seen[n.Tier] == nil {
			seen[n.Tier] = make(map[float64]string)
		}
		if other, dup := seen[n.Tier][n.Position.Y]; dup {
			t.Fatalf("nodes %s and %s share y=%v in tier %d", other, n.ID, n.Position.Y, n.Tier)
		}
		seen[n.Tier][n.Position.Y] = n.ID
	}
}

func TestLayoutCentersShorterTiers(t *testing.T) {
	opts := LayoutOptions{StartX: 0, StartY: 0, GapX: 200, GapY: 100}
	nodes := Layout(layoutFixture(), opts)

	// Tallest tier has 3 nodes; the single-node tier 2 block is centered
	// within the 3-slot band: (3*100 - 1*100)/2 = 100.
	for _, n := range nodes {
		if n.ID == "cdn" && n.Position.Y != 100 {
			t.Fatalf("expected centered y=100 for cdn, got %v", n.Position.Y)
		}
	}
}
