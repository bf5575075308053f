package hpo

// FidelityKind is the numeric type of a fidelity dimension.
type FidelityKind int

const (
	FidelityFloat FidelityKind = iota
	FidelityInt
)

// FidelityDef bounds a single fidelity dimension, e.g. training epochs
// in [1, 81].
type FidelityDef struct {
	Min, Max float64
	Kind     FidelityKind
}

// FidelitySpec describes the fidelity shape of a problem. It is a
// sealed sum over three shapes: a nil FidelitySpec (the problem has no
// fidelity), SingleFidelity, and ManyFidelities. Optimizers switch on
// the concrete type and must reject shapes they do not support.
type FidelitySpec interface {
	isFidelitySpec()
}

// SingleFidelity is one named, scalar fidelity dimension.
type SingleFidelity struct {
	Key string
	Def FidelityDef
}

func (SingleFidelity) isFidelitySpec() {}

// ManyFidelities maps several named fidelity dimensions. No shipped
// optimizer supports this shape yet; it exists so problems can declare
// it and optimizers can reject it explicitly.
type ManyFidelities map[string]FidelityDef

func (ManyFidelities) isFidelitySpec() {}

// FidelityValue is the concrete fidelity chosen for one evaluation.
// Value holds an int for integer-kinded fidelities and a float64
// otherwise.
type FidelityValue struct {
	Key   string
	Value any
}

// AsFloat returns the fidelity value as a float64 regardless of kind.
func (f FidelityValue) AsFloat() float64 {
	switch v := f.Value.(type) {
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}
