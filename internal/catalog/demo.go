package catalog

import "sync"

// demoGTINs is the fallback rotation shown before any folder is curated.
// Real production GTINs so registers resolve them to known goods.
var demoGTINs = []string{
	"4810099003310",
	"4006381333931",
	"4811234567896",
	"4607034170745",
	"5449000000996",
	"4820024700016",
}

// DemoSequence hands out demo GTINs round-robin.
type DemoSequence struct {
	mu     sync.Mutex
	values []string
	next   int
}

// NewDemoSequence creates a sequence over the built-in demo GTIN list.
func NewDemoSequence() *DemoSequence {
	return &DemoSequence{values: demoGTINs}
}

// NextDemoValue returns the next demo GTIN, wrapping around the list.
func (d *DemoSequence) NextDemoValue() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := d.values[d.next]
	d.next = (d.next + 1) % len(d.values)
	return v
}

// Values returns a copy of the demo list.
func (d *DemoSequence) Values() []string {
	out := make([]string, len(demoGTINs))
	copy(out, demoGTINs)
	return out
}
