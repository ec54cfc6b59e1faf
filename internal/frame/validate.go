package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that a structure honours the snapshot contract: every
// entity has an id, node ids are unique, every reference resolves to a node,
// support types are known, each node carries at most one support, one point
// load and one moment load, and every number is finite.
func (s Structure) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}

	index := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		if _, dup := index[n.ID]; dup {
			return invalidf("duplicate node id %q", n.ID)
		}
		if !finite(n.X, n.Y) {
			return invalidf("node %s has a non-finite coordinate", n.ID)
		}
		index[n.ID] = i
	}

	for _, m := range s.Members {
		if _, ok := index[m.StartNodeID]; !ok {
			return invalidf("member %s references unknown start node %q", m.ID, m.StartNodeID)
		}
		if _, ok := index[m.EndNodeID]; !ok {
			return invalidf("member %s references unknown end node %q", m.ID, m.EndNodeID)
		}
	}

	supported := make(map[string]string, len(s.Supports))
	for _, sp := range s.Supports {
		if _, ok := index[sp.NodeID]; !ok {
			return invalidf("support %s references unknown node %q", sp.ID, sp.NodeID)
		}
		if !sp.Type.Valid() {
			return invalidf("support %s has unknown type %d", sp.ID, int(sp.Type))
		}
		if other, dup := supported[sp.NodeID]; dup {
			return invalidf("node %s carries supports %s and %s", sp.NodeID, other, sp.ID)
		}
		supported[sp.NodeID] = sp.ID
	}

	forced := make(map[string]string, len(s.PointLoads))
	for _, pl := range s.PointLoads {
		if _, ok := index[pl.NodeID]; !ok {
			return invalidf("point load %s references unknown node %q", pl.ID, pl.NodeID)
		}
		if !finite(pl.Fx, pl.Fy) {
			return invalidf("point load %s has a non-finite component", pl.ID)
		}
		if other, dup := forced[pl.NodeID]; dup {
			return invalidf("node %s carries point loads %s and %s", pl.NodeID, other, pl.ID)
		}
		forced[pl.NodeID] = pl.ID
	}

	moved := make(map[string]string, len(s.MomentLoads))
	for _, ml := range s.MomentLoads {
		if _, ok := index[ml.NodeID]; !ok {
			return invalidf("moment load %s references unknown node %q", ml.ID, ml.NodeID)
		}
		if !finite(ml.Mz) {
			return invalidf("moment load %s is not finite", ml.ID)
		}
		if other, dup := moved[ml.NodeID]; dup {
			return invalidf("node %s carries moment loads %s and %s", ml.NodeID, other, ml.ID)
		}
		moved[ml.NodeID] = ml.ID
	}

	return nil
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{msg: err.Error(), err: err}
	}

	// Report the first failing field
	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s: field is required", fe.Namespace())
	default:
		msg = fmt.Sprintf("%s: validation failed (%s)", fe.Namespace(), fe.Tag())
	}
	return &ValidationError{msg: msg, err: err}
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
