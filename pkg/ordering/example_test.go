package ordering_test

import (
	"fmt"

	"github.com/matzehuels/relabel/pkg/arrangement"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/ordering"
)

func ExampleCuthillMcKee() {
	// Star with centre 0. Starting from a leaf pulls the centre next to it.
	g, _ := csr.FromAdjacency([][]int{{1, 2, 3, 4}, {0}, {0}, {0}, {0}})

	for _, o := range []ordering.Orderer{
		ordering.CuthillMcKee{Start: ordering.StartFirst},
		ordering.CuthillMcKee{Start: ordering.StartLast},
	} {
		p, _ := o.Order(g)
		cost, _ := arrangement.CostUnder(g, p)
		fmt.Println(o.Name(), p, cost)
	}
	// Output:
	// cm-first [0 1 2 3 4] 10
	// cm-last [4 0 1 2 3] 7
}

func ExampleRun_unavailable() {
	// Morton ordering needs coordinates; this graph has none.
	g, _ := csr.FromAdjacency([][]int{{1}, {0}})

	_, err := ordering.Run(ordering.Morton{}, g)
	fmt.Println(err)
	// Output:
	// ORDERER_UNAVAILABLE: morton ordering needs vertex coordinates
}

func ExampleSpectral() {
	// K4: the spectral bound is exact for complete graphs.
	g, _ := csr.FromAdjacency([][]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}})

	lb, _ := ordering.Spectral{}.Bound(g)
	fmt.Println("Spectral bound:", lb)
	fmt.Println("Cost:", arrangement.Cost(g))
	// Output:
	// Spectral bound: 10
	// Cost: 10
}

func ExampleRegistry() {
	r := ordering.DefaultRegistry(ordering.Options{})
	fmt.Println(r.BounderNames())
	// Output:
	// [edges degree spectral]
}
