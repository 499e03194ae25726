package design

import "architect/internal/agent"

const (
	minTier = 1
	maxTier = 5

	// defaultTier is where genuinely unknown component types land.
	defaultTier = 4
)

// tierByType maps each node type to its layout band. An explicit table keeps
// tier repair independent of whatever free text the model puts in labels.
var tierByType = map[agent.NodeType]int{
	agent.NodeClient:     1,
	agent.NodeCDN:        2,
	agent.NodeGateway:    3,
	agent.NodeServer:     4,
	agent.NodeService:    4,
	agent.NodeAPI:        4,
	agent.NodeAuth:       4,
	agent.NodeMonitoring: 4,
	agent.NodeExternal:   4,
	agent.NodeQueue:      5,
	agent.NodeCache:      5,
	agent.NodeDatabase:   5,
	agent.NodeStorage:    5,
}

// tierForType returns the canonical tier for a node type, or defaultTier for
// types outside the taxonomy.
func tierForType(t agent.NodeType) int {
	if tier, ok := tierByType[t]; ok {
		return tier
	}
	return defaultTier
}
