package nn

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks fatal shape/genome mismatches. It is never retried.
var ErrConfiguration = errors.New("configuration error")

// Shape describes a fully connected three-layer network.
type Shape struct {
	Inputs  int
	Hidden  int
	Outputs int
}

// CanonicalShape sizes the hidden layer at two thirds of (inputs + outputs), rounded down.
func CanonicalShape(inputs, outputs int) Shape {
	return Shape{
		Inputs:  inputs,
		Hidden:  (inputs + outputs) * 2 / 3,
		Outputs: outputs,
	}
}

// Validate checks that every layer has at least one unit.
func (s Shape) Validate() error {
	if s.Inputs <= 0 || s.Hidden <= 0 || s.Outputs <= 0 {
		return fmt.Errorf("%w: network shape %s must have positive layer sizes", ErrConfiguration, s)
	}
	return nil
}

// WeightCount is the number of genes needed to decode a network of this shape.
func (s Shape) WeightCount() int {
	return s.Inputs*s.Hidden + s.Hidden*s.Outputs
}

func (s Shape) String() string {
	return fmt.Sprintf("%d-%d-%d", s.Inputs, s.Hidden, s.Outputs)
}

// WeightSet holds the decoded per-edge weights of a three-layer network.
//
//	InputHidden[h][i]  weight from input i into hidden unit h
//	HiddenOutput[o][h] weight from hidden unit h into output unit o
type WeightSet struct {
	Shape        Shape
	InputHidden  [][]float64
	HiddenOutput [][]float64
}

// DecodeWeights partitions a flat gene sequence into the two weight blocks of shape.
//
// The first Inputs*Hidden genes fill InputHidden hidden-unit-major (gene h*Inputs+i), the next
// Hidden*Outputs genes fill HiddenOutput output-unit-major. Genes beyond WeightCount are ignored.
// A sequence shorter than WeightCount is a configuration error.
func DecodeWeights(genes []float64, shape Shape) (*WeightSet, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if need := shape.WeightCount(); len(genes) < need {
		return nil, fmt.Errorf("%w: genome has %d genes, shape %s needs %d", ErrConfiguration, len(genes), shape, need)
	}

	ws := &WeightSet{
		Shape:        shape,
		InputHidden:  make([][]float64, shape.Hidden),
		HiddenOutput: make([][]float64, shape.Outputs),
	}

	offset := 0
	for h := 0; h < shape.Hidden; h++ {
		ws.InputHidden[h] = make([]float64, shape.Inputs)
		copy(ws.InputHidden[h], genes[offset:offset+shape.Inputs])
		offset += shape.Inputs
	}
	for o := 0; o < shape.Outputs; o++ {
		ws.HiddenOutput[o] = make([]float64, shape.Hidden)
		copy(ws.HiddenOutput[o], genes[offset:offset+shape.Hidden])
		offset += shape.Hidden
	}
	return ws, nil
}
