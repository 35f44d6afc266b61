package assign

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any room size in 2..30, Assignments must return a derangement: a
// bijection over the input names with no fixed point.
func TestProperty_AssignmentsAreDerangements(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("assignments form a derangement for any size 2..30", prop.ForAll(
		func(n int, seed int64) bool {
			names := make([]string, n)
			for i := range names {
				names[i] = fmt.Sprintf("participant-%d", i)
			}
			e := New(rand.New(rand.NewSource(seed)))
			assignments, err := e.Assignments(names)
			if err != nil || len(assignments) != n {
				return false
			}
			receivers := make(map[string]int, n)
			for i, a := range assignments {
				if a.Name != names[i] || a.AssignedTo == a.Name {
					return false
				}
				receivers[a.AssignedTo]++
			}
			for _, name := range names {
				if receivers[name] != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 30),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// GiftNumbers must return exactly the set {1..n} for any n, identity included
// as a legal outcome.
func TestProperty_GiftNumbersArePermutations(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("gift numbers are a permutation of 1..n", prop.ForAll(
		func(n int, seed int64) bool {
			e := New(rand.New(rand.NewSource(seed)))
			nums := e.GiftNumbers(n)
			if len(nums) != n {
				return false
			}
			seen := make(map[int]bool, n)
			for _, v := range nums {
				if v < 1 || v > n || seen[v] {
					return false
				}
				seen[v] = true
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
