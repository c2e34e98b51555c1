package nn

import "fmt"

// Sensor is a pull-based source of one input value.
type Sensor interface {
	Reading() float64
}

// SensorFunc adapts a plain function to the Sensor interface.
type SensorFunc func() float64

// Reading calls f.
func (f SensorFunc) Reading() float64 {
	return f()
}

// ConstantSensor always reads the same value.
type ConstantSensor float64

// Reading returns the constant.
func (c ConstantSensor) Reading() float64 {
	return float64(c)
}

// Feed holds the most recent integer snapshot pushed for one source of observable state
// (a hand, the table, the match). The game pushes with Observe; input units pull through
// the sensors returned by Sensor.
//
// A Feed is owned by a single contestant for a single match and is not safe for concurrent use.
type Feed struct {
	Name   string
	values []int
}

// NewFeed creates a zero-filled feed with a fixed number of slots.
func NewFeed(name string, width int) *Feed {
	return &Feed{Name: name, values: make([]int, width)}
}

// Observe replaces the snapshot. Values beyond the feed's width are dropped and missing
// trailing slots are zeroed.
func (f *Feed) Observe(values []int) {
	n := copy(f.values, values)
	for i := n; i < len(f.values); i++ {
		f.values[i] = 0
	}
}

// Values returns a copy of the current snapshot.
func (f *Feed) Values() []int {
	out := make([]int, len(f.values))
	copy(out, f.values)
	return out
}

// Occupied counts slots holding a positive value.
func (f *Feed) Occupied() int {
	n := 0
	for _, v := range f.values {
		if v > 0 {
			n++
		}
	}
	return n
}

// Sensor returns a sensor reading slot i of the feed at evaluation time.
func (f *Feed) Sensor(i int) Sensor {
	if i < 0 || i >= len(f.values) {
		panic(fmt.Sprintf("nn: feed %q has no slot %d", f.Name, i))
	}
	return SensorFunc(func() float64 {
		return float64(f.values[i])
	})
}

// Sensors returns one sensor per slot, in slot order.
func (f *Feed) Sensors() []Sensor {
	sensors := make([]Sensor, len(f.values))
	for i := range f.values {
		sensors[i] = f.Sensor(i)
	}
	return sensors
}

// SensorsOf concatenates the sensors of several feeds, in order.
func SensorsOf(feeds ...*Feed) []Sensor {
	var sensors []Sensor
	for _, f := range feeds {
		sensors = append(sensors, f.Sensors()...)
	}
	return sensors
}
