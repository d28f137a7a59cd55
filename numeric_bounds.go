package jsonproto

import (
	"fmt"
	"math/big"
)

// numericBounds is the tightest consolidated lower/upper bound extracted
// from a Constraints bag's value_lt/value_le/value_gt/value_ge/value_eq
// constraints (or, through consolidateLength, from length_eq/length_ge/
// length_le), computed once at handler Build time with exact big.Rat
// arithmetic so float rounding never silently loosens a bound.
type numericBounds struct {
	isLength   bool // bounds a length, so violations are length issues
	hasMin     bool
	min        *big.Rat
	minExclusive bool
	hasMax     bool
	max        *big.Rat
	maxExclusive bool
	hasEQ      bool
	eq         *big.Rat
	hasMultipleOf bool
	multipleOf *big.Rat
}

func ratFromInt(n int) *big.Rat { return new(big.Rat).SetInt64(int64(n)) }

func toRat(v any) (*big.Rat, bool) {
	r := new(big.Rat)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case float32:
		if _, ok := r.SetString(fmt.Sprintf("%v", n)); !ok {
			return nil, false
		}
	case float64:
		if _, ok := r.SetString(fmt.Sprintf("%v", n)); !ok {
			return nil, false
		}
	case string:
		if _, ok := r.SetString(n); !ok {
			return nil, false
		}
	default:
		return nil, false
	}
	return r, true
}

func consolidateBounds(c *Constraints) numericBounds {
	var b numericBounds
	if c == nil {
		return b
	}
	if con, ok := c.Get("value_ge"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasMin, b.min, b.minExclusive = true, r, false
		}
	}
	if con, ok := c.Get("value_gt"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			if !b.hasMin || r.Cmp(b.min) >= 0 {
				b.hasMin, b.min, b.minExclusive = true, r, true
			}
		}
	}
	if con, ok := c.Get("value_le"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasMax, b.max, b.maxExclusive = true, r, false
		}
	}
	if con, ok := c.Get("value_lt"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			if !b.hasMax || r.Cmp(b.max) <= 0 {
				b.hasMax, b.max, b.maxExclusive = true, r, true
			}
		}
	}
	if con, ok := c.Get("value_eq"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasEQ, b.eq = true, r
		}
	}
	if con, ok := c.Get("value_multiple_of"); ok {
		if r, ok := toRat(con.Args[0]); ok {
			b.hasMultipleOf, b.multipleOf = true, r
		}
	}
	return b
}

// check validates a numeric value (as *big.Rat) against the consolidated
// bounds, returning an issue for the first bound it violates, if any: a
// length issue carrying the measured length for length bounds, a number
// issue otherwise.
func (b numericBounds) check(ptr *Pointer, value *big.Rat, original any) *Issue {
	issue := b.checkValue(ptr, value, original)
	if issue != nil && b.isLength {
		return NewLengthIssue(ptr, issue.Comparator, issue.Limit, int(value.Num().Int64()))
	}
	return issue
}

func (b numericBounds) checkValue(ptr *Pointer, value *big.Rat, original any) *Issue {
	if b.hasEQ && value.Cmp(b.eq) != 0 {
		return NewNumberIssue(ptr, "==", ratString(b.eq), original)
	}
	if b.hasMin {
		cmp := value.Cmp(b.min)
		if (b.minExclusive && cmp <= 0) || (!b.minExclusive && cmp < 0) {
			comparator := ">="
			if b.minExclusive {
				comparator = ">"
			}
			return NewNumberIssue(ptr, comparator, ratString(b.min), original)
		}
	}
	if b.hasMax {
		cmp := value.Cmp(b.max)
		if (b.maxExclusive && cmp >= 0) || (!b.maxExclusive && cmp > 0) {
			comparator := "<="
			if b.maxExclusive {
				comparator = "<"
			}
			return NewNumberIssue(ptr, comparator, ratString(b.max), original)
		}
	}
	if b.hasMultipleOf {
		quotient := new(big.Rat).Quo(value, b.multipleOf)
		if !quotient.IsInt() {
			return NewNumberIssue(ptr, "multiple_of", ratString(b.multipleOf), original)
		}
	}
	return nil
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	// A denominator of the form 2^a*5^b has an exact decimal expansion with
	// max(a, b) fractional digits; any other rational is formatted via float64.
	d, digits := new(big.Int).Set(r.Denom()), 0
	for _, f := range []int64{2, 5} {
		n, q, m := 0, new(big.Int), new(big.Int)
		for q.QuoRem(d, big.NewInt(f), m); m.Sign() == 0; q.QuoRem(d, big.NewInt(f), m) {
			d.Set(q)
			n++
		}
		if n > digits {
			digits = n
		}
	}
	if d.IsInt64() && d.Int64() == 1 {
		return r.FloatString(digits)
	}
	f, _ := r.Float64()
	return fmt.Sprintf("%v", f)
}
