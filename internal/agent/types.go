package agent

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// QuestionOption is one quick-select answer for a clarifying question.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ClarifyingQuestion is emitted by the orchestrator when it needs more
// information before it can proceed. At most one question is active at a time.
type ClarifyingQuestion struct {
	ID          string           `json:"id"`
	Question    string           `json:"question"`
	Context     string           `json:"context,omitempty"`
	Options     []QuestionOption `json:"options"`
	AllowCustom bool             `json:"allowCustom"`
	MultiSelect bool             `json:"multiSelect"`
}

// SelectedOption records which option the user picked for a question or a
// research comparison.
type SelectedOption struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
	Value      string `json:"value"`
}

// AgentMessage is one turn of dialogue. The sequence is append-only; the only
// in-place mutation is attaching SelectedOption to the message that carried the
// open question or research prompt.
type AgentMessage struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`

	Question       *ClarifyingQuestion `json:"question,omitempty"`
	Research       *ResearchOutput     `json:"research,omitempty"`
	SelectedOption *SelectedOption     `json:"selectedOption,omitempty"`
}

// Decision is one settled technology choice.
type Decision struct {
	Topic     string `json:"topic"`
	Choice    string `json:"choice"`
	Reasoning string `json:"reasoning,omitempty"`
}

// GatheredState accumulates what the conversation has established so far. It is
// owned by the client, sent with every turn request, and only ever appended to.
type GatheredState struct {
	Requirements      []string   `json:"requirements"`
	Decisions         []Decision `json:"decisions"`
	QuestionsAnswered int        `json:"questionsAnswered"`
}

// EmptyGatheredState returns the zero conversation state with non-nil slices so
// it serializes as empty arrays.
func EmptyGatheredState() GatheredState {
	return GatheredState{Requirements: []string{}, Decisions: []Decision{}}
}

// Mode selects the orchestrator's action for one turn.
type Mode string

const (
	ModeClarify  Mode = "clarify"
	ModeResearch Mode = "research"
	ModeDesign   Mode = "design"
	ModeRespond  Mode = "respond"
)

// DesignRequirements is the input contract for the design generator, assembled
// by the orchestrator once enough context exists.
type DesignRequirements struct {
	SystemType   string     `json:"systemType"`
	Scale        string     `json:"scale"`
	Requirements []string   `json:"requirements"`
	Decisions    []Decision `json:"decisions"`
	Constraints  []string   `json:"constraints,omitempty"`
}

// OrchestratorOutput is the structured value obtained from the generation step
// each turn. The model populates mode-specific fields; the sanitation pass, not
// the schema, is what keeps them within bounds.
type OrchestratorOutput struct {
	Mode    Mode   `json:"mode"`
	Message string `json:"message"`

	Question *ClarifyingQuestion `json:"question,omitempty"`

	ResearchTopic   string `json:"researchTopic,omitempty"`
	ResearchQuery   string `json:"researchQuery,omitempty"`
	ResearchContext string `json:"researchContext,omitempty"`

	DesignRequirements *DesignRequirements `json:"designRequirements,omitempty"`

	ReadyForDesign bool     `json:"readyForDesign"`
	MissingInfo    []string `json:"missingInfo,omitempty"`
}

// NodeType is the fixed taxonomy of architecture components.
type NodeType string

const (
	NodeClient     NodeType = "client"
	NodeCDN        NodeType = "cdn"
	NodeGateway    NodeType = "gateway"
	NodeServer     NodeType = "server"
	NodeService    NodeType = "service"
	NodeAPI        NodeType = "api"
	NodeQueue      NodeType = "queue"
	NodeCache      NodeType = "cache"
	NodeDatabase   NodeType = "database"
	NodeStorage    NodeType = "storage"
	NodeAuth       NodeType = "auth"
	NodeMonitoring NodeType = "monitoring"
	NodeExternal   NodeType = "external"
)

// Position is a 2-D canvas coordinate computed by the layout pass.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DesignNode is one component of a generated architecture. Tier is the
// horizontal layout band: 1=clients, 2=edge, 3=gateway, 4=services, 5=data.
type DesignNode struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        NodeType  `json:"type"`
	Tier        int       `json:"tier"`
	Technology  string    `json:"technology,omitempty"`
	Description string    `json:"description,omitempty"`
	Position    *Position `json:"position,omitempty"`
}

// DesignEdge connects two nodes by id.
type DesignEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// DesignOutput is a validated, laid-out architecture graph.
type DesignOutput struct {
	Nodes   []DesignNode `json:"nodes"`
	Edges   []DesignEdge `json:"edges"`
	Summary string       `json:"summary"`
}

// Citation is a source reference attached to a research option.
type Citation struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// ResearchOption is one candidate technology in a comparison set.
type ResearchOption struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Summary   string     `json:"summary"`
	Pros      []string   `json:"pros"`
	Cons      []string   `json:"cons"`
	BestFor   string     `json:"bestFor"`
	Citations []Citation `json:"citations"`
}

// ResearchOutput bundles a comparison set with a recommendation.
type ResearchOutput struct {
	Topic          string           `json:"topic"`
	Question       string           `json:"question"`
	Options        []ResearchOption `json:"options"`
	Recommendation string           `json:"recommendation"`
}
