package symmetry

import (
	"slices"
	"sort"

	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/reflection"
)

// Operator is an integer 3×3 rotation matrix acting on row vectors.
type Operator [3][3]int

// Identity is the identity operator.
var Identity = Operator{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Apply returns hkl · op, i.e. h'_j = sum_i h_i op[i][j].
func (op Operator) Apply(hkl reflection.HKL) reflection.HKL {
	v := [3]int{hkl.H, hkl.K, hkl.L}
	var out [3]int
	for j := 0; j < 3; j++ {
		out[j] = v[0]*op[0][j] + v[1]*op[1][j] + v[2]*op[2][j]
	}
	return reflection.HKL{H: out[0], K: out[1], L: out[2]}
}

// Mul returns the product op · other, the operator equivalent to applying op
// and then other to a row vector.
func (op Operator) Mul(other Operator) Operator {
	var out Operator
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += op[i][k] * other[k][j]
			}
		}
	}
	return out
}

// Determinant is +1 for proper and -1 for improper rotations.
func (op Operator) Determinant() int {
	return op[0][0]*(op[1][1]*op[2][2]-op[1][2]*op[2][1]) -
		op[0][1]*(op[1][0]*op[2][2]-op[1][2]*op[2][0]) +
		op[0][2]*(op[1][0]*op[2][1]-op[1][1]*op[2][0])
}

// OperatorSet is a named Laue class.
type OperatorSet struct {
	Label     string
	Operators []Operator
}

// Order is the number of operators in the set.
func (s *OperatorSet) Order() int {
	return len(s.Operators)
}

// Orbit returns the distinct images of hkl under the set, ascending.
func (s *OperatorSet) Orbit(hkl reflection.HKL) []reflection.HKL {
	orbit := make([]reflection.HKL, 0, len(s.Operators))
	for _, op := range s.Operators {
		orbit = append(orbit, op.Apply(hkl))
	}
	slices.SortFunc(orbit, reflection.HKL.Compare)
	return slices.Compact(orbit)
}

// Canonicalize returns the lexicographically greatest member of hkl's orbit.
// Both datasets of a comparison must be reduced with the same set.
func (s *OperatorSet) Canonicalize(hkl reflection.HKL) reflection.HKL {
	best := hkl
	if len(s.Operators) == 0 {
		return best
	}
	best = s.Operators[0].Apply(hkl)
	for _, op := range s.Operators[1:] {
		if img := op.Apply(hkl); best.Less(img) {
			best = img
		}
	}
	return best
}

// Lookup returns a copy of the registered set for label.
func Lookup(label string) (*OperatorSet, error) {
	ops, ok := registry[label]
	if !ok {
		return nil, apperrors.NewUnknownSymmetryError(label)
	}
	return &OperatorSet{Label: label, Operators: slices.Clone(ops)}, nil
}

// MustLookup is Lookup for labels known at compile time.
func MustLookup(label string) *OperatorSet {
	set, err := Lookup(label)
	if err != nil {
		panic(err)
	}
	return set
}

// Labels returns the registered Laue class labels, sorted.
func Labels() []string {
	labels := make([]string, 0, len(registry))
	for label := range registry {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
