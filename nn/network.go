package nn

import "fmt"

// Network is a layered feed-forward graph of perceptrons built from a WeightSet.
// It holds no state of its own: every output is computed on demand from the current
// sensor readings, so a network is built per match and thrown away afterwards.
type Network struct {
	Shape      Shape
	Inputs     []*InputPerceptron
	Hidden     []*Perceptron
	OutputKeys []string               // Output names, in output-unit order
	Outputs    map[string]*Perceptron // Output name -> terminal unit
}

// NewNetwork wires input, hidden and output units according to ws.
// There must be exactly one sensor per input unit and one key per output unit.
func NewNetwork(ws *WeightSet, sensors []Sensor, outputKeys []string) (*Network, error) {
	shape := ws.Shape
	if len(sensors) != shape.Inputs {
		return nil, fmt.Errorf("%w: %d sensors for %d input units", ErrConfiguration, len(sensors), shape.Inputs)
	}
	if len(outputKeys) != shape.Outputs {
		return nil, fmt.Errorf("%w: %d output keys for %d output units", ErrConfiguration, len(outputKeys), shape.Outputs)
	}

	net := &Network{
		Shape:      shape,
		Inputs:     make([]*InputPerceptron, shape.Inputs),
		Hidden:     make([]*Perceptron, shape.Hidden),
		OutputKeys: append([]string(nil), outputKeys...),
		Outputs:    make(map[string]*Perceptron, shape.Outputs),
	}

	for i, s := range sensors {
		net.Inputs[i] = NewInputPerceptron(fmt.Sprintf("input%d", i), s)
	}

	for h := range net.Hidden {
		p := NewPerceptron(fmt.Sprintf("hidden%d", h))
		for i, in := range net.Inputs {
			p.AddInput(in, ws.InputHidden[h][i])
		}
		net.Hidden[h] = p
	}

	for o, key := range outputKeys {
		if _, dup := net.Outputs[key]; dup {
			return nil, fmt.Errorf("%w: duplicate output key %q", ErrConfiguration, key)
		}
		p := NewPerceptron(key)
		for h, hidden := range net.Hidden {
			p.AddInput(hidden, ws.HiddenOutput[o][h])
		}
		net.Outputs[key] = p
	}

	return net, nil
}

// Build decodes genes with shape and wires the result to sensors.
func Build(genes []float64, shape Shape, sensors []Sensor, outputKeys []string) (*Network, error) {
	ws, err := DecodeWeights(genes, shape)
	if err != nil {
		return nil, err
	}
	return NewNetwork(ws, sensors, outputKeys)
}

// Output evaluates the unit registered under key.
func (net *Network) Output(key string) (float64, bool) {
	p, ok := net.Outputs[key]
	if !ok {
		return 0, false
	}
	return p.Output(), true
}

// Activate evaluates every output unit.
func (net *Network) Activate() map[string]float64 {
	values := make(map[string]float64, len(net.Outputs))
	for key, p := range net.Outputs {
		values[key] = p.Output()
	}
	return values
}
