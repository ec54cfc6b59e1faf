// Package model holds the editable frame structure. Commands mutate it between
// solves; the solver only ever sees deep-copied snapshots.
package model

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/google/uuid"
)

// DefaultSnapTolerance is the pick radius used by FindNodeNear when the
// caller passes a non-positive tolerance.
const DefaultSnapTolerance = 15.0

var (
	ErrUnknownNode           = errors.New("unknown node")
	ErrDuplicateID           = errors.New("duplicate id")
	ErrSelfReferencingMember = errors.New("member must connect two different nodes")
	ErrInvalidSupportType    = errors.New("invalid support type")
)

// StructureModel is the owned, mutable structure being edited.
// It is safe for concurrent use.
type StructureModel struct {
	mu sync.RWMutex

	nodes       []frame.Node
	members     []frame.Member
	supports    []frame.Support
	pointLoads  []frame.PointLoad
	momentLoads []frame.MomentLoad

	ids      map[entityKind]map[string]bool
	results  *frame.AnalysisResults
	revision uint64
}

// entityKind scopes id uniqueness: a node and a member may share an id
type entityKind string

const (
	kindNode       entityKind = "node"
	kindMember     entityKind = "member"
	kindSupport    entityKind = "support"
	kindPointLoad  entityKind = "point load"
	kindMomentLoad entityKind = "moment load"
)

func newIDSets() map[entityKind]map[string]bool {
	return map[entityKind]map[string]bool{
		kindNode:       {},
		kindMember:     {},
		kindSupport:    {},
		kindPointLoad:  {},
		kindMomentLoad: {},
	}
}

// New creates an empty model
func New() *StructureModel {
	return &StructureModel{ids: newIDSets()}
}

// FromStructure builds a model by replaying every entity of s through the
// Put commands, in order. Repeated supports or loads on a node collapse to
// the first one, as they would in the editor.
func FromStructure(s frame.Structure) (*StructureModel, error) {
	m := New()
	for _, n := range s.Nodes {
		if err := m.PutNode(n); err != nil {
			return nil, err
		}
	}
	for _, mem := range s.Members {
		if err := m.PutMember(mem); err != nil {
			return nil, err
		}
	}
	for _, sp := range s.Supports {
		if _, err := m.PutSupport(sp); err != nil {
			return nil, err
		}
	}
	for _, pl := range s.PointLoads {
		if _, err := m.PutPointLoad(pl); err != nil {
			return nil, err
		}
	}
	for _, ml := range s.MomentLoads {
		if _, err := m.PutMomentLoad(ml); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func newID() string {
	return uuid.New().String()
}

// claim reserves an id among entities of the same kind and marks the
// model as edited; callers hold the write lock
func (m *StructureModel) claim(kind entityKind, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty %s id", ErrDuplicateID, kind)
	}
	if m.ids[kind][id] {
		return fmt.Errorf("%w: %s %q", ErrDuplicateID, kind, id)
	}
	m.ids[kind][id] = true
	m.revision++
	return nil
}

func (m *StructureModel) hasNode(id string) bool {
	for _, n := range m.nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// AddNode appends a node at (x, y) with a generated id
func (m *StructureModel) AddNode(x, y float64) frame.Node {
	n := frame.Node{ID: newID(), X: x, Y: y}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[kindNode][n.ID] = true
	m.revision++
	m.nodes = append(m.nodes, n)
	return n
}

// PutNode appends a node with a caller-chosen id
func (m *StructureModel) PutNode(n frame.Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.claim(kindNode, n.ID); err != nil {
		return err
	}
	m.nodes = append(m.nodes, n)
	return nil
}

// AddMember connects two different existing nodes with a new member
func (m *StructureModel) AddMember(startNodeID, endNodeID string) (frame.Member, error) {
	mem := frame.Member{ID: newID(), StartNodeID: startNodeID, EndNodeID: endNodeID}
	if startNodeID == endNodeID {
		return frame.Member{}, fmt.Errorf("member %s: %w", mem.ID, ErrSelfReferencingMember)
	}
	if err := m.PutMember(mem); err != nil {
		return frame.Member{}, err
	}
	return mem, nil
}

// PutMember appends a member with a caller-chosen id. Self-referencing
// members loaded from files are kept; the solver skips them.
func (m *StructureModel) PutMember(mem frame.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range []string{mem.StartNodeID, mem.EndNodeID} {
		if !m.hasNode(id) {
			return fmt.Errorf("member %s: %w %q", mem.ID, ErrUnknownNode, id)
		}
	}
	if err := m.claim(kindMember, mem.ID); err != nil {
		return err
	}
	m.members = append(m.members, mem)
	return nil
}

// AddSupport restrains a node. When the node already has a support the
// model is left unchanged and the existing support is returned with
// added == false.
func (m *StructureModel) AddSupport(nodeID string, typ frame.SupportType) (frame.Support, bool, error) {
	sp := frame.Support{ID: newID(), NodeID: nodeID, Type: typ}
	added, err := m.PutSupport(sp)
	if err != nil || added {
		return sp, added, err
	}
	existing, _ := m.SupportAt(nodeID)
	return existing, false, nil
}

// PutSupport adds a support with a caller-chosen id, reporting whether it
// was added. A second support on the same node is a no-op.
func (m *StructureModel) PutSupport(sp frame.Support) (bool, error) {
	if !sp.Type.Valid() {
		return false, fmt.Errorf("support %s: %w", sp.ID, ErrInvalidSupportType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasNode(sp.NodeID) {
		return false, fmt.Errorf("support %s: %w %q", sp.ID, ErrUnknownNode, sp.NodeID)
	}
	for _, existing := range m.supports {
		if existing.NodeID == sp.NodeID {
			return false, nil
		}
	}
	if err := m.claim(kindSupport, sp.ID); err != nil {
		return false, err
	}
	m.supports = append(m.supports, sp)
	return true, nil
}

// SupportAt returns the support on a node, if any
func (m *StructureModel) SupportAt(nodeID string) (frame.Support, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sp := range m.supports {
		if sp.NodeID == nodeID {
			return sp, true
		}
	}
	return frame.Support{}, false
}

// AddPointLoad applies a force to a node. A node that is already loaded is
// left unchanged and its existing load is returned with added == false.
func (m *StructureModel) AddPointLoad(nodeID string, fx, fy float64) (frame.PointLoad, bool, error) {
	pl := frame.PointLoad{ID: newID(), NodeID: nodeID, Fx: fx, Fy: fy}
	added, err := m.PutPointLoad(pl)
	if err != nil || added {
		return pl, added, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, existing := range m.pointLoads {
		if existing.NodeID == nodeID {
			return existing, false, nil
		}
	}
	return frame.PointLoad{}, false, nil
}

// PutPointLoad adds a point load with a caller-chosen id
func (m *StructureModel) PutPointLoad(pl frame.PointLoad) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasNode(pl.NodeID) {
		return false, fmt.Errorf("point load %s: %w %q", pl.ID, ErrUnknownNode, pl.NodeID)
	}
	for _, existing := range m.pointLoads {
		if existing.NodeID == pl.NodeID {
			return false, nil
		}
	}
	if err := m.claim(kindPointLoad, pl.ID); err != nil {
		return false, err
	}
	m.pointLoads = append(m.pointLoads, pl)
	return true, nil
}

// AddMomentLoad applies a moment to a node, with the same one-per-node rule
// as AddPointLoad.
func (m *StructureModel) AddMomentLoad(nodeID string, mz float64) (frame.MomentLoad, bool, error) {
	ml := frame.MomentLoad{ID: newID(), NodeID: nodeID, Mz: mz}
	added, err := m.PutMomentLoad(ml)
	if err != nil || added {
		return ml, added, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, existing := range m.momentLoads {
		if existing.NodeID == nodeID {
			return existing, false, nil
		}
	}
	return frame.MomentLoad{}, false, nil
}

// PutMomentLoad adds a moment load with a caller-chosen id
func (m *StructureModel) PutMomentLoad(ml frame.MomentLoad) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasNode(ml.NodeID) {
		return false, fmt.Errorf("moment load %s: %w %q", ml.ID, ErrUnknownNode, ml.NodeID)
	}
	for _, existing := range m.momentLoads {
		if existing.NodeID == ml.NodeID {
			return false, nil
		}
	}
	if err := m.claim(kindMomentLoad, ml.ID); err != nil {
		return false, err
	}
	m.momentLoads = append(m.momentLoads, ml)
	return true, nil
}

// FindNodeNear returns the first node within tol of (x, y)
func (m *StructureModel) FindNodeNear(x, y, tol float64) (frame.Node, bool) {
	if tol <= 0 {
		tol = DefaultSnapTolerance
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.nodes {
		if math.Hypot(n.X-x, n.Y-y) <= tol {
			return n, true
		}
	}
	return frame.Node{}, false
}

// Reset clears the structure and any stored results
func (m *StructureModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = nil
	m.members = nil
	m.supports = nil
	m.pointLoads = nil
	m.momentLoads = nil
	m.ids = newIDSets()
	m.results = nil
	m.revision++
}

// Snapshot returns a deep copy of the current structure
func (m *StructureModel) Snapshot() frame.Structure {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *StructureModel) snapshotLocked() frame.Structure {
	return frame.Structure{
		Nodes:       m.nodes,
		Members:     m.members,
		Supports:    m.supports,
		PointLoads:  m.pointLoads,
		MomentLoads: m.momentLoads,
	}.Clone()
}

// Analyze solves the current snapshot. On success the results are stored
// and returned; on failure any previously stored results are discarded.
// Results of a snapshot that was edited during the solve are returned but
// not stored. A nil solver uses the package defaults.
func (m *StructureModel) Analyze(solver *frame.Solver) (*frame.AnalysisResults, error) {
	if solver == nil {
		solver = frame.NewSolver(nil)
	}

	m.mu.RLock()
	snapshot := m.snapshotLocked()
	revision := m.revision
	m.mu.RUnlock()

	results, err := solver.Solve(snapshot)
	return m.commit(revision, results, err)
}

// commit records the outcome of a solve of the snapshot taken at revision
func (m *StructureModel) commit(revision uint64, results *frame.AnalysisResults, err error) (*frame.AnalysisResults, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.results = nil
		return nil, err
	}
	if m.revision == revision {
		m.results = results
	}
	return results, nil
}

// Results returns the outcome of the last successful Analyze, or nil
func (m *StructureModel) Results() *frame.AnalysisResults {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.results
}
