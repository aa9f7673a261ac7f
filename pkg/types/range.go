package types

import "fmt"

// Position is a single point in a file, 0-based in both line and column (as
// produced by tree-sitter). UI boundaries add 1 when displaying either.
type Position struct {
	Line   uint32
	Column uint32
}

// Range is a half-open span of source positions, start inclusive and end
// exclusive, with 0-based line numbers.
type Range struct {
	Start Position
	End   Position
}

// NewRange validates that start <= end (lexicographic on line then column)
// and constructs a Range.
func NewRange(start, end Position) (Range, error) {
	if start.Line > end.Line || (start.Line == end.Line && start.Column > end.Column) {
		return Range{}, fmt.Errorf("types: range start %+v is after end %+v", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether p falls within r (start inclusive, end exclusive).
func (r Range) Contains(p Position) bool {
	after := p.Line > r.Start.Line || (p.Line == r.Start.Line && p.Column >= r.Start.Column)
	before := p.Line < r.End.Line || (p.Line == r.End.Line && p.Column < r.End.Column)
	return after && before
}

// DisplayString renders the range 1-based, the convention used at UI
// boundaries (spec §3: "Displayed 1-based at UI boundaries").
func (r Range) DisplayString() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line+1, r.Start.Column+1, r.End.Line+1, r.End.Column+1)
}
