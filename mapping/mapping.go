// Package mapping provides bidirectional index mappings between the
// reduced space a variable is optimized in and the full physical space of
// its model elements. Entries can point at a source index as-is, with the
// sign flipped, or mark an output slot as always zero.
package mapping

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Index is a single entry of a Mapping: where the output slot takes its
// value from and how. The zero variant carries no source at all, which
// removes the sign ambiguity a signed-integer encoding would have around
// index zero.
type Index struct {
	source int
	flip   bool
	zero   bool
}

// NewIndex returns an entry that copies the value at source.
func NewIndex(source int) Index {
	return Index{source: source}
}

// NewFlippedIndex returns an entry that copies the value at source with
// its sign flipped.
func NewFlippedIndex(source int) Index {
	return Index{source: source, flip: true}
}

// ZeroIndex returns an entry whose output slot is always zero.
func ZeroIndex() Index {
	return Index{zero: true}
}

// Source returns the source position of the entry. It is meaningless for
// zero entries.
func (idx Index) Source() int {
	return idx.source
}

// Flipped reports whether the copied value changes sign.
func (idx Index) Flipped() bool {
	return idx.flip
}

// IsZero reports whether the output slot is always zero.
func (idx Index) IsZero() bool {
	return idx.zero
}

func (idx Index) String() string {
	if idx.zero {
		return "zero"
	}
	if idx.flip {
		return fmt.Sprintf("-%d", idx.source)
	}
	return fmt.Sprintf("%d", idx.source)
}

// Mapping is an ordered list of index entries. One output value is
// produced per entry; it is storage plus validation only, never
// computation beyond the sign flip.
type Mapping struct {
	entries []Index
}

// NewMapping builds a mapping from the given entries. Non-zero entries
// must have non-negative sources.
func NewMapping(entries ...Index) (*Mapping, error) {
	for i, entry := range entries {
		if !entry.zero && entry.source < 0 {
			return nil, errors.Errorf("mapping entry %d has negative source %d", i, entry.source)
		}
	}
	owned := make([]Index, len(entries))
	copy(owned, entries)
	return &Mapping{entries: owned}, nil
}

// NewIdentityMapping returns the mapping 0..n-1.
func NewIdentityMapping(n int) *Mapping {
	entries := make([]Index, n)
	for i := range entries {
		entries[i] = NewIndex(i)
	}
	return &Mapping{entries: entries}
}

// Len returns the number of entries, which is the length of the mapped
// output.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// At returns entry i. It panics when i is out of range.
func (m *Mapping) At(i int) Index {
	return m.entries[i]
}

// Entries returns a copy of the entry list.
func (m *Mapping) Entries() []Index {
	out := make([]Index, len(m.entries))
	copy(out, m.entries)
	return out
}

// Map applies the mapping to a numeric vector: each output slot picks its
// source value, flips the sign when asked, and zero entries yield zero.
func (m *Mapping) Map(values []float64) ([]float64, error) {
	out := make([]float64, len(m.entries))
	for i, entry := range m.entries {
		if entry.zero {
			continue
		}
		if entry.source >= len(values) {
			return nil, errors.Errorf("mapping entry %d needs source %d but only %d values were given",
				i, entry.source, len(values))
		}
		v := values[entry.source]
		if entry.flip {
			v = -v
		}
		out[i] = v
	}
	return out, nil
}

// Shifted returns a copy of the mapping with every non-zero source moved
// by offset. It is used when mappings of stacked variables are
// concatenated into one.
func (m *Mapping) Shifted(offset int) *Mapping {
	entries := make([]Index, len(m.entries))
	for i, entry := range m.entries {
		if entry.zero {
			entries[i] = entry
			continue
		}
		entries[i] = Index{source: entry.source + offset, flip: entry.flip}
	}
	return &Mapping{entries: entries}
}

func (m *Mapping) String() string {
	parts := make([]string, len(m.entries))
	for i, entry := range m.entries {
		parts[i] = entry.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BiMapping binds the two directions of a variable's index mapping:
// ToFirst maps the full space onto the reduced space, ToSecond maps the
// reduced space back onto the full space. It is immutable once built.
type BiMapping struct {
	toFirst  *Mapping
	toSecond *Mapping
}

// NewBiMapping binds a full-to-reduced and a reduced-to-full mapping.
func NewBiMapping(toFirst, toSecond *Mapping) (*BiMapping, error) {
	if toFirst == nil || toSecond == nil {
		return nil, errors.New("both directions of a bimapping must be provided")
	}
	return &BiMapping{toFirst: toFirst, toSecond: toSecond}, nil
}

// NewIdentityBiMapping returns the identity over n elements in both
// directions.
func NewIdentityBiMapping(n int) *BiMapping {
	return &BiMapping{
		toFirst:  NewIdentityMapping(n),
		toSecond: NewIdentityMapping(n),
	}
}

// ToFirst returns the full-to-reduced direction.
func (b *BiMapping) ToFirst() *Mapping {
	return b.toFirst
}

// ToSecond returns the reduced-to-full direction.
func (b *BiMapping) ToSecond() *Mapping {
	return b.toSecond
}

// ConcatBiMappings stacks per-variable bimappings into one covering the
// concatenation of their spaces. Sources of each ToFirst are shifted by
// the full sizes already stacked, sources of each ToSecond by the reduced
// sizes already stacked.
func ConcatBiMappings(bims ...*BiMapping) *BiMapping {
	var first, second []Index
	fullLen, reducedLen := 0, 0
	for _, bim := range bims {
		first = append(first, bim.toFirst.Shifted(fullLen).entries...)
		second = append(second, bim.toSecond.Shifted(reducedLen).entries...)
		fullLen += bim.toSecond.Len()
		reducedLen += bim.toFirst.Len()
	}
	return &BiMapping{
		toFirst:  &Mapping{entries: first},
		toSecond: &Mapping{entries: second},
	}
}
