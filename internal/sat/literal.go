package sat

import "fmt"

// VarID identifies a Boolean variable. Valid IDs are in [1, N]; zero is
// reserved to mean "no variable".
type VarID int

// Literal is a signed form of a VarID, encoded so that the two polarities of
// a variable are adjacent: positive = 2v, negative = 2v+1. This keeps a
// Literal usable directly as an index into per-literal slices (assignments,
// watch-list heads, touched flags) without a branch.
type Literal int

// NullLiteral is the zero value, used where "no literal" must be
// representable (e.g. analyzer bookkeeping before the first iteration).
const NullLiteral Literal = 0

// PositiveLiteral returns the literal asserting v.
func PositiveLiteral(v VarID) Literal {
	return Literal(v) * 2
}

// NegativeLiteral returns the literal asserting the negation of v.
func NegativeLiteral(v VarID) Literal {
	return Literal(v)*2 + 1
}

// VarID returns the variable this literal refers to.
func (l Literal) VarID() VarID {
	return VarID(l / 2)
}

// IsPositive reports whether l asserts its variable's positive polarity.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}

// IntLiteral converts a nonzero signed DIMACS literal into a Literal.
func IntLiteral(x int) Literal {
	if x < 0 {
		return NegativeLiteral(VarID(-x))
	}
	return PositiveLiteral(VarID(x))
}

// Int converts l back into a signed DIMACS literal.
func (l Literal) Int() int {
	if l.IsPositive() {
		return int(l.VarID())
	}
	return -int(l.VarID())
}
