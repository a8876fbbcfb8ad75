package perm_test

import (
	"fmt"

	"github.com/matzehuels/relabel/pkg/perm"
)

func ExampleInvert() {
	// Position 0 now holds old vertex 2, position 1 holds 0, position 2 holds 1.
	newToOld := []int{2, 0, 1}
	oldToNew, _ := perm.Invert(newToOld)
	fmt.Println(oldToNew)
	// Output:
	// [1 2 0]
}

func ExampleInvert_invalid() {
	_, err := perm.Invert([]int{0, 2, 2})
	fmt.Println(err)
	// Output:
	// INVALID_PERMUTATION: value 2 appears more than once
}

func ExampleAll() {
	for p := range perm.All(3) {
		fmt.Println(p)
	}
	// Output:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleIdentity() {
	fmt.Println(perm.Identity(5))
	// Output:
	// [0 1 2 3 4]
}
