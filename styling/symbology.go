package styling

import (
	"math"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
)

// AttributeValue is one resolved attribute as the classifier sees it. Raw
// carries the trimmed string form, Number the parsed numeric form when the
// attribute was numeric.
type AttributeValue struct {
	Raw       string
	Number    float64
	HasNumber bool
}

func NumberValue(n float64) AttributeValue {
	return AttributeValue{Number: n, HasNumber: true}
}

func StringValue(s string) AttributeValue {
	return AttributeValue{Raw: s}
}

func AbsentValue() AttributeValue {
	return AttributeValue{}
}

// SymbologyRule is the closed set of per-dataset classification policies.
// The three variants below are the only implementations; new policies are
// added here, not as loose option bags on layer specs.
type SymbologyRule interface {
	classify(value AttributeValue) (mapaescolar.SymbolDescriptor, bool)
}

// Classify runs a rule against one resolved attribute value. ok is false
// only when the rule excludes the feature outright, which categorical rules
// do for values that classify as neither affirmative nor negative.
func Classify(rule SymbologyRule, value AttributeValue) (mapaescolar.SymbolDescriptor, bool) {
	return rule.classify(value)
}

// Bucket is one (inclusive upper bound, descriptor) step of a
// ThresholdBucketed rule.
type Bucket struct {
	UpperBound float64
	Descriptor mapaescolar.SymbolDescriptor
}

// ThresholdBucketed evaluates its buckets in order; the first bucket whose
// upper bound the value does not exceed wins. Buckets must be ordered by
// ascending bound and end with a +Inf bound so every finite value lands in
// exactly one bucket. Missing or non-positive values map to the Missing
// descriptor so records are never visually dropped.
type ThresholdBucketed struct {
	Buckets []Bucket
	Missing mapaescolar.SymbolDescriptor
}

func (r *ThresholdBucketed) classify(value AttributeValue) (mapaescolar.SymbolDescriptor, bool) {
	if !value.HasNumber || value.Number <= 0 {
		return r.Missing, true
	}

	for _, bucket := range r.Buckets {
		if value.Number <= bucket.UpperBound {
			return bucket.Descriptor, true
		}
	}

	return r.Buckets[len(r.Buckets)-1].Descriptor, true
}

// ContinuousScaled maps a value to a radius via square-root scaling. Values
// at or below Threshold are not distinguished and take MinRadius; above it,
// radius = clamp(sqrt(value) * Factor, MinRadius, MaxRadius). Missing values
// take MinRadius too.
type ContinuousScaled struct {
	Threshold float64
	Factor    float64
	MinRadius float64
	MaxRadius float64

	// Base supplies everything but the radius.
	Base mapaescolar.SymbolDescriptor
}

func (r *ContinuousScaled) classify(value AttributeValue) (mapaescolar.SymbolDescriptor, bool) {
	descriptor := r.Base

	if !value.HasNumber || value.Number <= r.Threshold {
		descriptor.Radius = r.MinRadius
		return descriptor, true
	}

	radius := math.Sqrt(value.Number) * r.Factor
	if radius < r.MinRadius {
		radius = r.MinRadius
	}
	if radius > r.MaxRadius {
		radius = r.MaxRadius
	}
	descriptor.Radius = radius

	return descriptor, true
}

// Categorical colors a feature by the affirmative/negative classification of
// a flag attribute. Features whose flag is neither are excluded from the
// layer rather than defaulted.
type Categorical struct {
	Affirmative mapaescolar.SymbolDescriptor
	Negative    mapaescolar.SymbolDescriptor
}

func (r *Categorical) classify(value AttributeValue) (mapaescolar.SymbolDescriptor, bool) {
	switch ClassifyFlag(value.Raw) {
	case FlagAffirmative:
		return r.Affirmative, true
	case FlagNegative:
		return r.Negative, true
	}

	return mapaescolar.SymbolDescriptor{}, false
}
