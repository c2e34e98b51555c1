package nn

// Unit is any node of a network that can produce an output value.
type Unit interface {
	Output() float64
}

// edge is a weighted link from a predecessor unit.
type edge struct {
	from   Unit
	weight float64
}

// Perceptron is a hidden or output unit. Its output is the sigmoid of the weighted sum of its
// predecessors' outputs.
//
// Edges are kept in insertion order so that repeated evaluations sum in the same order and
// produce bit-identical results.
type Perceptron struct {
	ID    string
	edges []edge
	index map[Unit]int // predecessor -> position in edges
}

// NewPerceptron creates a perceptron with no inputs. Its output is Sigmoid(0) = 0.5 until
// predecessors are added.
func NewPerceptron(id string) *Perceptron {
	return &Perceptron{
		ID:    id,
		index: make(map[Unit]int),
	}
}

// AddInput links a predecessor with the given weight.
// Adding the same predecessor again replaces its weight and does not create a second edge.
func (p *Perceptron) AddInput(from Unit, weight float64) {
	if i, ok := p.index[from]; ok {
		p.edges[i].weight = weight
		return
	}
	p.index[from] = len(p.edges)
	p.edges = append(p.edges, edge{from: from, weight: weight})
}

// NumInputs returns the number of distinct predecessors.
func (p *Perceptron) NumInputs() int {
	return len(p.edges)
}

// Weight returns the weight of the edge from the given predecessor.
func (p *Perceptron) Weight(from Unit) (float64, bool) {
	i, ok := p.index[from]
	if !ok {
		return 0, false
	}
	return p.edges[i].weight, true
}

// Output recursively evaluates all predecessors and squashes the weighted sum.
// Nothing is cached, so the result always reflects the current sensor readings.
func (p *Perceptron) Output() float64 {
	sum := 0.0
	for _, e := range p.edges {
		sum += e.weight * e.from.Output()
	}
	return Sigmoid(sum)
}

// InputPerceptron wraps an external sensor. It has no weighted predecessors.
type InputPerceptron struct {
	ID     string
	Sensor Sensor
}

// NewInputPerceptron creates an input unit reading from sensor.
func NewInputPerceptron(id string, sensor Sensor) *InputPerceptron {
	return &InputPerceptron{ID: id, Sensor: sensor}
}

// Output returns the squashed sensor reading. The raw reading is never used directly.
func (ip *InputPerceptron) Output() float64 {
	return Sigmoid(ip.Sensor.Reading())
}
