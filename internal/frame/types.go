package frame

import (
	"fmt"
	"strings"
)

// Material and section constants shared by every member of the model.
// Units are kN and m.
const (
	ElasticModulus = 210e6   // E - steel modulus of elasticity (kPa)
	SectionArea    = 0.01    // A - cross-section area (m²)
	SecondMoment   = 8.33e-6 // I - second moment of area (m⁴)
)

// DOFPerNode is the number of global degrees of freedom owned by each node:
// translation-x, translation-y and rotation-z.
const DOFPerNode = 3

// DOF offsets within a node block
const (
	DOFX = iota
	DOFY
	DOFRZ
)

// Node is a joint of the frame
type Node struct {
	ID string  `json:"id" yaml:"id" validate:"required"`
	X  float64 `json:"x" yaml:"x"` // m
	Y  float64 `json:"y" yaml:"y"` // m
}

// Member is a prismatic straight beam-column element between two nodes
type Member struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	StartNodeID string `json:"startNodeId" yaml:"startNodeId" validate:"required"`
	EndNodeID   string `json:"endNodeId" yaml:"endNodeId" validate:"required"`
}

// SupportType is the kind of restraint a support applies to its node
type SupportType int

const (
	Pin SupportType = iota + 1
	Roller
	Fixed
)

// SupportTypes lists every support kind in declaration order
var SupportTypes = []SupportType{Pin, Roller, Fixed}

// String returns the lowercase name used in structure files
func (t SupportType) String() string {
	switch t {
	case Pin:
		return "pin"
	case Roller:
		return "roller"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("SupportType(%d)", int(t))
}

// Valid reports whether t is one of the declared support kinds
func (t SupportType) Valid() bool {
	return t >= Pin && t <= Fixed
}

// RestrainedOffsets returns the DOF offsets (DOFX, DOFY, DOFRZ) held by the support.
// Rollers always slide horizontally; inclined rollers are not modelled.
func (t SupportType) RestrainedOffsets() []int {
	switch t {
	case Fixed:
		return []int{DOFX, DOFY, DOFRZ}
	case Pin:
		return []int{DOFX, DOFY}
	case Roller:
		return []int{DOFY}
	}
	return nil
}

// ParseSupportType converts a name such as "pin" into a SupportType
func ParseSupportType(s string) (SupportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pin", "pinned", "hinge":
		return Pin, nil
	case "roller":
		return Roller, nil
	case "fixed":
		return Fixed, nil
	}
	return 0, fmt.Errorf("unknown support type %q (expected pin, roller or fixed)", s)
}

// MarshalText implements encoding.TextMarshaler
func (t SupportType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid support type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *SupportType) UnmarshalText(text []byte) error {
	parsed, err := ParseSupportType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Support restrains one node
type Support struct {
	ID     string      `json:"id" yaml:"id" validate:"required"`
	NodeID string      `json:"nodeId" yaml:"nodeId" validate:"required"`
	Type   SupportType `json:"type" yaml:"type" validate:"required"`
}

// PointLoad is a concentrated force applied at a node
type PointLoad struct {
	ID     string  `json:"id" yaml:"id" validate:"required"`
	NodeID string  `json:"nodeId" yaml:"nodeId" validate:"required"`
	Fx     float64 `json:"fx" yaml:"fx"`                         // kN
	Fy     float64 `json:"fy" yaml:"fy"`                         // kN
	Case   string  `json:"case,omitempty" yaml:"case,omitempty"` // load case tag (D, L, W, ...)
}

// MomentLoad is a concentrated moment applied at a node
type MomentLoad struct {
	ID     string  `json:"id" yaml:"id" validate:"required"`
	NodeID string  `json:"nodeId" yaml:"nodeId" validate:"required"`
	Mz     float64 `json:"mz" yaml:"mz"`                         // kN-m, counter-clockwise positive
	Case   string  `json:"case,omitempty" yaml:"case,omitempty"` // load case tag
}

// Structure is a read-only snapshot of a planar frame.
// The position of a node in Nodes defines its DOF numbering.
type Structure struct {
	Nodes       []Node       `json:"nodes" yaml:"nodes" validate:"dive"`
	Members     []Member     `json:"members" yaml:"members" validate:"dive"`
	Supports    []Support    `json:"supports" yaml:"supports" validate:"dive"`
	PointLoads  []PointLoad  `json:"pointLoads" yaml:"pointLoads" validate:"dive"`
	MomentLoads []MomentLoad `json:"momentLoads" yaml:"momentLoads" validate:"dive"`
}

// Clone returns a deep copy of the structure
func (s Structure) Clone() Structure {
	return Structure{
		Nodes:       append([]Node(nil), s.Nodes...),
		Members:     append([]Member(nil), s.Members...),
		Supports:    append([]Support(nil), s.Supports...),
		PointLoads:  append([]PointLoad(nil), s.PointLoads...),
		MomentLoads: append([]MomentLoad(nil), s.MomentLoads...),
	}
}

// DOFCount returns the size of the global system
func (s Structure) DOFCount() int {
	return len(s.Nodes) * DOFPerNode
}

// NodeIndex maps node ids to their position in Nodes
func (s Structure) NodeIndex() map[string]int {
	index := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		index[n.ID] = i
	}
	return index
}

// Reaction is the force and moment a support exerts on the structure
type Reaction struct {
	ID     string  `json:"id" yaml:"id"`         // id of the originating support
	NodeID string  `json:"nodeId" yaml:"nodeId"` // supported node
	Fx     float64 `json:"fx" yaml:"fx"`         // kN
	Fy     float64 `json:"fy" yaml:"fy"`         // kN
	Mz     float64 `json:"mz" yaml:"mz"`         // kN-m
}

// AnalysisResults holds one reaction per support, in support order
type AnalysisResults struct {
	Reactions []Reaction `json:"reactions" yaml:"reactions"`

	// Members excluded from assembly because they have no length
	SkippedMembers []DegenerateMemberSkipped `json:"skippedMembers,omitempty" yaml:"skippedMembers,omitempty"`
}

// Reaction returns the reaction of the support with the given id
func (r *AnalysisResults) Reaction(supportID string) (Reaction, bool) {
	for _, rx := range r.Reactions {
		if rx.ID == supportID {
			return rx, true
		}
	}
	return Reaction{}, false
}
