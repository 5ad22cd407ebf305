package ocp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/openmotionlab/trajopt/optvar"
)

// Segment is one named span of the assembled decision vector.
type Segment struct {
	Phase  int
	Kind   optvar.Kind
	Node   int
	Name   string
	Offset int
	Length int
}

// Layout is the ordered decision-vector layout of a problem: phase by
// phase, states then controls then algebraic states, each variable's
// nodes contiguous. State derivatives are not decision variables and
// borrowed variables occupy no space of their own; both are left out.
type Layout struct {
	segments []Segment
	size     int
}

// vectorKinds are the variable kinds that occupy decision-vector space,
// in layout order.
var vectorKinds = []optvar.Kind{optvar.KindStates, optvar.KindControls, optvar.KindAlgebraicStates}

// nodeCount returns how many per-node value sets kind occupies in the
// decision vector. Symbol sharing across a phase never changes this;
// the solver still optimizes one value set per node.
func (p *Phase) nodeCount(kind optvar.Kind) int {
	if kind == optvar.KindControls {
		return p.ControlNodes()
	}
	return p.StateNodes()
}

// Layout assembles the problem's decision-vector layout.
func (prob *Problem) Layout() *Layout {
	layout := &Layout{}
	for _, ph := range prob.phases {
		for _, kind := range vectorKinds {
			nodes := ph.nodeCount(kind)
			if nodes < 1 {
				continue
			}
			list := ph.container(kind).Unscaled(0)
			for _, name := range list.Keys() {
				if ph.Borrowed(kind, name) {
					continue
				}
				v, err := list.Get(optvar.ByName(name))
				if err != nil {
					continue
				}
				for node := 0; node < nodes; node++ {
					layout.segments = append(layout.segments, Segment{
						Phase:  ph.index,
						Kind:   kind,
						Node:   node,
						Name:   name,
						Offset: layout.size,
						Length: v.Len(),
					})
					layout.size += v.Len()
				}
			}
		}
	}
	return layout
}

// Segments returns the layout's segments in vector order.
func (l *Layout) Segments() []Segment {
	out := make([]Segment, len(l.segments))
	copy(out, l.segments)
	return out
}

// Size returns the total decision-vector length.
func (l *Layout) Size() int {
	return l.size
}

// Find returns the segment of name at the given phase, kind and node.
func (l *Layout) Find(phase int, kind optvar.Kind, node int, name string) (Segment, bool) {
	for _, seg := range l.segments {
		if seg.Phase == phase && seg.Kind == kind && seg.Node == node && seg.Name == name {
			return seg, true
		}
	}
	return Segment{}, false
}

func (l *Layout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "decision vector: %d entries\n", l.size)
	for _, seg := range l.segments {
		fmt.Fprintf(&b, "  [%4d:%4d] phase %d %s node %d %s\n",
			seg.Offset, seg.Offset+seg.Length, seg.Phase, seg.Kind, seg.Node, seg.Name)
	}
	return b.String()
}

// InitialVector assembles the numeric starting point of the decision
// vector from the per-phase initial-guess stores, each variable's guess
// repeated across its nodes.
func (prob *Problem) InitialVector() (*mat.VecDense, error) {
	layout := prob.Layout()
	out := mat.NewVecDense(layout.size, nil)
	for _, seg := range layout.segments {
		ph := prob.phases[seg.Phase]
		store := ph.guessStore(seg.Kind)
		if store == nil {
			continue
		}
		guess, err := store.Get(seg.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "phase %d %s", seg.Phase, seg.Kind)
		}
		if len(guess) != seg.Length {
			return nil, errors.Errorf("the initial guess of %q has %d entries but the variable has %d",
				seg.Name, len(guess), seg.Length)
		}
		for i, v := range guess {
			out.SetVec(seg.Offset+i, v)
		}
	}
	return out, nil
}

// ScaleVector assembles the per-entry scale factors of the decision
// vector. Each variable's scaling is tiled across its nodes, which are
// contiguous in the layout.
func (prob *Problem) ScaleVector() (*mat.VecDense, error) {
	layout := prob.Layout()
	out := mat.NewVecDense(layout.size, nil)
	for _, ph := range prob.phases {
		for _, kind := range vectorKinds {
			nodes := ph.nodeCount(kind)
			if nodes < 1 {
				continue
			}
			for _, name := range ph.container(kind).Unscaled(0).Keys() {
				if ph.Borrowed(kind, name) {
					continue
				}
				first, ok := layout.Find(ph.index, kind, 0, name)
				if !ok {
					continue
				}
				scaling, err := ph.scalingStore(kind).Get(name)
				if err != nil {
					return nil, errors.Wrapf(err, "phase %d %s", ph.index, kind)
				}
				tile, err := scaling.ToVector(first.Length, nodes)
				if err != nil {
					return nil, errors.Wrapf(err, "phase %d %s", ph.index, kind)
				}
				for i := 0; i < tile.Len(); i++ {
					out.SetVec(first.Offset+i, tile.AtVec(i))
				}
			}
		}
	}
	return out, nil
}

// guessStore returns the initial-guess store of kind, nil for state
// derivatives, which carry no guesses.
func (p *Phase) guessStore(kind optvar.Kind) *InitialGuessSet {
	switch kind {
	case optvar.KindStates:
		return p.stateInit
	case optvar.KindControls:
		return p.controlInit
	case optvar.KindAlgebraicStates:
		return p.algebraicInit
	default:
		return nil
	}
}

func (p *Phase) scalingStore(kind optvar.Kind) *optvar.ScalingSet {
	switch kind {
	case optvar.KindStates:
		return p.stateScaling
	case optvar.KindStatesDot:
		return p.stateDotScaling
	case optvar.KindControls:
		return p.controlScaling
	case optvar.KindAlgebraicStates:
		return p.algebraicScaling
	default:
		return nil
	}
}
