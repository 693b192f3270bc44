package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

func ExampleVisualize() {
	w := func(f float64) *float64 { return &f }
	data := graph.Data{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "isolated"}},
		Links: []graph.Link{
			{Source: "a", Target: "b", Weight: w(2)},
			{Source: "b", Target: "c", Value: w(0.5)},
		},
	}

	fig, err := pipeline.Visualize(context.Background(), data, pipeline.Options{WeightScale: 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("nodes:", fig.Graph().Nodes())
	fmt.Println("widths:", fig.EdgeWidths())
	// Output:
	// nodes: [a b c]
	// widths: [8 2]
}
