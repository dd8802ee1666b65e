package points

import "errors"

// ErrCounterUnderflow reports a Decrement on a zero counter. It always
// indicates a controller bug: an entity was removed that was never
// counted.
var ErrCounterUnderflow = errors.New("population counter underflow")

// PopulationCounter tracks how many points currently have a visual
// representation, in any lifecycle phase. It is a derived summary: only
// the controller mutates it, exactly once per creation and once per
// final removal.
type PopulationCounter struct {
	value int
}

// Increment records one created point.
func (c *PopulationCounter) Increment() {
	c.value++
}

// Decrement records one fully removed point. Underflow returns
// ErrCounterUnderflow with the counter left at zero.
func (c *PopulationCounter) Decrement() error {
	if c.value == 0 {
		return ErrCounterUnderflow
	}
	c.value--
	return nil
}

// Value returns the current population.
func (c *PopulationCounter) Value() int {
	return c.value
}
