package viewer

import (
	"context"

	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/labeling"
	"github.com/mapaescolar/mapaescolar-app/layerdal"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/popups"
	"github.com/mapaescolar/mapaescolar-app/styling"
	"github.com/paulmach/orb/geojson"
)

// LayerBuilder materializes a layer from its spec. The toggle controller
// invokes it at most once per key per session.
type LayerBuilder interface {
	BuildLayer(ctx context.Context, spec *mapaescolar.LayerSpec) (*BuiltLayer, errorsx.Error)
}

// PipelineBuilder is the production LayerBuilder: fetch and normalize the
// dataset, classify every feature, compose its popup card, and derive the
// centroid labels for layers that carry them.
type PipelineBuilder struct {
	logger *logpkg.Logger
	loader *layerdal.DatasetLoader
}

func NewPipelineBuilder(logger *logpkg.Logger, loader *layerdal.DatasetLoader) *PipelineBuilder {
	return &PipelineBuilder{logger: logger, loader: loader}
}

func (b *PipelineBuilder) BuildLayer(ctx context.Context, spec *mapaescolar.LayerSpec) (*BuiltLayer, errorsx.Error) {
	if spec.Kind == mapaescolar.LayerKindGroup {
		return nil, errorsx.Errorf("layer %q is a group and has nothing to build", spec.Key)
	}

	loadSpan := startSpan(ctx, "load dataset "+string(spec.Key))
	fc, err := b.loader.LoadDataset(ctx, spec)
	endSpan(ctx, loadSpan)
	if err != nil {
		return nil, err
	}

	built := &BuiltLayer{
		Spec: spec,
		Key:  spec.Key,
		Kind: spec.Kind,
	}

	classifySpan := startSpan(ctx, "classify features "+string(spec.Key))
	rule := styling.RuleFor(spec.Key)
	excluded := 0
	for _, feature := range fc.Features {
		symbol, ok := b.classifyFeature(spec, rule, feature.Properties)
		if !ok {
			excluded++
			continue
		}

		built.Features = append(built.Features, &BuiltFeature{
			Feature: feature,
			Symbol:  symbol,
			Card:    popups.Compose(feature.Properties),
		})
	}
	endSpan(ctx, classifySpan)

	if excluded > 0 {
		b.logger.Debug("layer %q: %d features excluded by classification", spec.Key, excluded)
	}

	if spec.HasLabels {
		built.Labels = labeling.BuildLabels(fc, spec.NameFields)
		rule := labeling.DefaultZoomRule()
		built.LabelRule = &rule
	}

	return built, nil
}

func (b *PipelineBuilder) classifyFeature(spec *mapaescolar.LayerSpec, rule styling.SymbologyRule, props geojson.Properties) (mapaescolar.SymbolDescriptor, bool) {
	if rule == nil {
		if spec.Kind == mapaescolar.LayerKindPolygon {
			return styling.VeredasPolygonStyle(), true
		}
		return mapaescolar.SymbolDescriptor{}, true
	}

	value := styling.AbsentValue()
	switch {
	case len(spec.ValueFields) != 0:
		if num, ok := mapaescolar.ResolveNumber(props, spec.ValueFields); ok {
			value = styling.NumberValue(num)
		}
	case len(spec.FlagFields) != 0:
		if raw, ok := mapaescolar.ResolveAttribute(props, spec.FlagFields); ok {
			value = styling.StringValue(raw)
		}
	}

	return styling.Classify(rule, value)
}

// startSpan begins a tracing span when the context was set up by the
// tracing middleware; builds triggered from the CLI carry no tracer.
func startSpan(ctx context.Context, name string) *tracing.Span {
	if ctx.Value(tracing.TracerCtxKey) == nil || ctx.Value(tracing.TraceCtxKey) == nil {
		return nil
	}
	return tracing.StartSpan(ctx, name)
}

func endSpan(ctx context.Context, span *tracing.Span) {
	if span == nil {
		return
	}
	span.End(ctx)
}
