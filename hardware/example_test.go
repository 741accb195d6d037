package hardware_test

import (
	"fmt"

	"github.com/sadpig70/QNS/hardware"
)

// A 5-qubit chain couples only nearest neighbors; routing distance
// grows with label separation.
func ExampleProfile_ShortestPath() {
	p := hardware.Linear(5)

	fmt.Println(p.AreConnected(0, 1))
	fmt.Println(p.AreConnected(0, 3))

	path, _ := p.ShortestPath(0, 3)
	fmt.Println(path)
	// Output:
	// true
	// false
	// [0 1 2 3]
}
