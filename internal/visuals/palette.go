package visuals

import (
	"hash/fnv"

	"github.com/lucasb-eyer/go-colorful"
)

var operationColors = map[string]string{
	"CUT":      "#4299e1",
	"SEW":      "#48bb78",
	"DISPATCH": "#ed8936",
	"NEW":      "#9f7aea",
}

// OperationColor returns the chart colour of an operation. Unknown operations get a
// colour derived from their name, so they keep it across renders.
func OperationColor(op string) string {
	if c, ok := operationColors[op]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(op))
	hue := float64(h.Sum32() % 360)
	return colorful.Hcl(hue, 0.55, 0.65).Clamped().Hex()
}
