package layout_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
)

func ExampleCompute() {
	g, err := layout.Compute(layout.Request{Width: 600, Height: 300, Items: 5}, layout.DefaultConstants())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Columns:", g.Columns, "Rows:", g.Rows)
	fmt.Println("Radius:", g.HexagonRadius)
	fmt.Println("Label:", g.ShowLabel)
	fmt.Printf("Box 2 at: %.1f,%.1f\n", g.Placement(2).X, g.Placement(2).Y)
	// Output:
	// Columns: 5 Rows: 1
	// Radius: 57
	// Label: true
	// Box 2 at: 240.8,34.0
}

func ExampleCompute_infeasible() {
	_, err := layout.Compute(layout.Request{Width: 20, Height: 20, Items: 3}, layout.DefaultConstants())

	var ie *layout.InfeasibleError
	if errors.As(err, &ie) {
		fmt.Println("Reason:", ie.Reason)
	}
	fmt.Println("Infeasible:", errors.Is(err, layout.ErrInfeasible))
	// Output:
	// Reason: area too small
	// Infeasible: true
}

func ExampleGeometry_Hit() {
	g, _ := layout.Compute(layout.Request{Width: 600, Height: 300, Items: 5}, layout.DefaultConstants())

	fmt.Println(g.Hit(layout.Point{X: 300, Y: 150}))
	fmt.Println(g.Hit(layout.Point{X: 300, Y: 10}))
	// Output:
	// 2
	// -1
}
