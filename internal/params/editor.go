// Edit controller: per-leaf edit lifecycle with parse-or-revert commits
package params

import (
	"fmt"
	"math"
	"strconv"
)

// EditorKind selects the widget variant appropriate to a leaf's category.
type EditorKind int

const (
	EditorText EditorKind = iota
	EditorIntSpin
	EditorFloatSpin
	EditorToggle
)

// EditorSpec describes the editor to instantiate for one leaf: its kind,
// numeric bounds and the typed value to seed it with.
type EditorSpec struct {
	Kind     EditorKind
	Min      float64
	Max      float64
	Decimals int
	Seed     Value
}

// Edit is one in-flight edit of a single leaf. Only one edit per leaf is
// active at a time; the edit ends on the first Commit or Cancel.
type Edit struct {
	set  *Set
	node *Node
	spec EditorSpec
	done bool
}

// BeginEdit starts an edit on the leaf at path, returning the editor
// specification seeded with the current typed value. Unknown paths and
// edits attempted during a refresh are refused.
func (s *Set) BeginEdit(path string) (*Edit, error) {
	if s.refreshing {
		return nil, ErrRefreshing
	}
	leaf, ok := s.leaves[path]
	if !ok {
		return nil, ErrNotFound
	}
	spec := EditorSpec{Kind: EditorText, Seed: leaf.value}
	switch leaf.Category {
	case CategoryInt:
		spec.Kind = EditorIntSpin
		spec.Min = math.MinInt32
		spec.Max = math.MaxInt32
	case CategoryFloat:
		spec.Kind = EditorFloatSpin
		spec.Min = -1e6
		spec.Max = 1e6
		spec.Decimals = 4
	case CategoryBool:
		spec.Kind = EditorToggle
	}
	return &Edit{set: s, node: leaf, spec: spec}, nil
}

func (e *Edit) Spec() EditorSpec { return e.spec }

// constrain applies the editor's bounds to a parsed value: out-of-range
// numerics are rejected like parse failures, floats are rounded to the
// editor's precision.
func (spec EditorSpec) constrain(v Value) (Value, error) {
	switch spec.Kind {
	case EditorIntSpin:
		if v.Int() < int64(spec.Min) || v.Int() > int64(spec.Max) {
			return Value{}, fmt.Errorf("%w: %d is outside %.0f..%.0f",
				ErrOutOfRange, v.Int(), spec.Min, spec.Max)
		}
	case EditorFloatSpin:
		if v.Float() < spec.Min || v.Float() > spec.Max {
			return Value{}, fmt.Errorf("%w: %s is outside %.0f..%.0f",
				ErrOutOfRange, v.Display(), spec.Min, spec.Max)
		}
		scale := math.Pow(10, float64(spec.Decimals))
		v = FloatValue(math.Round(v.Float()*scale) / scale)
	}
	return v, nil
}

// SeedText is the text form the editor starts from: the typed seed for
// numeric and string editors, fixed-precision for floats.
func (e *Edit) SeedText() string {
	if e.spec.Kind == EditorFloatSpin {
		return strconv.FormatFloat(e.spec.Seed.Float(), 'f', e.spec.Decimals, 64)
	}
	return e.spec.Seed.Display()
}

// Commit parses the editor's raw text into the leaf's category and
// applies the editor's bounds. On success the leaf's value, rollback
// value and display text are updated and one change event is emitted. On
// parse failure or an out-of-range value the display snaps back to the
// previous-accepted value and no event is emitted.
func (e *Edit) Commit(text string) error {
	if e.done {
		return nil
	}
	e.done = true
	if cur, ok := e.set.leaves[e.node.Path]; !ok || cur != e.node {
		// tree was rebuilt under the editor; nothing to write to
		return ErrNotFound
	}
	v, err := ParseInCategory(text, e.node.Category)
	if err == nil {
		v, err = e.spec.constrain(v)
	}
	if err != nil {
		e.node.display = e.node.prev.Display()
		e.node.value = e.node.prev
		return err
	}
	e.accept(v)
	return nil
}

// CommitBool is the toggle editor's immediate commit: no text, no parse.
func (e *Edit) CommitBool(checked bool) {
	if e.done {
		return
	}
	e.done = true
	if cur, ok := e.set.leaves[e.node.Path]; !ok || cur != e.node {
		return
	}
	e.accept(BoolValue(checked))
}

// Cancel abandons the edit without touching the leaf.
func (e *Edit) Cancel() { e.done = true }

func (e *Edit) accept(v Value) {
	e.node.value = v
	e.node.prev = v
	e.node.display = v.Display()
	e.set.emit(e.node.Path, v)
}
