package space

import (
	"fmt"
	"math"
)

// Param is a single named dimension of a ParamSpace. Decode maps a
// unit-interval position to a native value; Encode inverts it.
type Param interface {
	Name() string
	Decode(u float64) any
	Encode(v any) (float64, error)

	validate() error
}

// Float is a continuous parameter on [Min, Max], optionally sampled on
// a log scale (Min must then be positive).
type Float struct {
	Key      string
	Min, Max float64
	Log      bool
}

func (p Float) Name() string { return p.Key }

func (p Float) Decode(u float64) any {
	if p.Log {
		return p.Min * math.Pow(p.Max/p.Min, u)
	}
	return p.Min + u*(p.Max-p.Min)
}

func (p Float) Encode(v any) (float64, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	f = Clamp(f, p.Min, p.Max)
	if p.Log {
		return math.Log(f/p.Min) / math.Log(p.Max/p.Min), nil
	}
	return (f - p.Min) / (p.Max - p.Min), nil
}

func (p Float) validate() error {
	if !(p.Min < p.Max) {
		return fmt.Errorf("min %v must be below max %v", p.Min, p.Max)
	}
	if p.Log && p.Min <= 0 {
		return fmt.Errorf("log scale requires a positive min, got %v", p.Min)
	}
	return nil
}

// Int is an integer parameter on [Min, Max], both inclusive.
type Int struct {
	Key      string
	Min, Max int
}

func (p Int) Name() string { return p.Key }

func (p Int) Decode(u float64) any {
	span := float64(p.Max - p.Min + 1)
	return Clamp(p.Min+int(u*span), p.Min, p.Max)
}

func (p Int) Encode(v any) (float64, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	n := Clamp(int(math.Round(f)), p.Min, p.Max)
	// Center of the integer's bucket in the unit interval.
	span := float64(p.Max - p.Min + 1)
	return (float64(n-p.Min) + 0.5) / span, nil
}

func (p Int) validate() error {
	if p.Min > p.Max {
		return fmt.Errorf("min %d must not exceed max %d", p.Min, p.Max)
	}
	return nil
}

// Categorical is an unordered choice among string values.
type Categorical struct {
	Key     string
	Choices []string
}

func (p Categorical) Name() string { return p.Key }

func (p Categorical) Decode(u float64) any {
	i := Clamp(int(u*float64(len(p.Choices))), 0, len(p.Choices)-1)
	return p.Choices[i]
}

func (p Categorical) Encode(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("expected string, got %T", v)
	}
	for i, c := range p.Choices {
		if c == s {
			return (float64(i) + 0.5) / float64(len(p.Choices)), nil
		}
	}
	return 0, fmt.Errorf("unknown choice %q", s)
}

func (p Categorical) validate() error {
	if len(p.Choices) == 0 {
		return fmt.Errorf("no choices defined")
	}
	return nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}
