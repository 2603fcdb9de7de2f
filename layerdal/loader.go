package layerdal

import (
	"context"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/paulmach/orb/geojson"
)

// DatasetLoader runs the source-resolution → fetch → decode → normalize
// pipeline for one layer spec. It holds no per-dataset state; caching of
// the result is the layer registry's job.
type DatasetLoader struct {
	logger     *logpkg.Logger
	sources    *SourcesConfig
	fetcher    *DataFetcher
	normalizer *GeometryNormalizer
}

func NewDatasetLoader(logger *logpkg.Logger, sources *SourcesConfig, fetcher *DataFetcher, normalizer *GeometryNormalizer) *DatasetLoader {
	return &DatasetLoader{logger, sources, fetcher, normalizer}
}

func (l *DatasetLoader) LoadDataset(ctx context.Context, spec *mapaescolar.LayerSpec) (*geojson.FeatureCollection, errorsx.Error) {
	location, ok := l.sources.Resolve(spec.SourceKey)
	if !ok {
		return nil, NewConfigurationError("no source URL resolves for layer %q (source key %q)", spec.Key, spec.SourceKey)
	}

	data, ferr := l.fetcher.Fetch(ctx, location)
	if ferr != nil {
		return nil, ferr
	}

	var fc *geojson.FeatureCollection
	if spec.TopologyEncoded {
		objectName := spec.TopologyObject
		if objectName == "" {
			objectName = spec.SourceKey
		}

		decoded, derr := DecodeTopology(data, objectName)
		if derr != nil {
			return nil, derr
		}
		fc = decoded
	} else {
		decoded, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, NewFormatError("undecodable feature collection from %q: %s", location, err)
		}
		fc = decoded
	}

	if spec.PotentiallyProjected {
		normalized, err := l.normalizer.Normalize(fc)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
		fc = normalized
	}

	l.logger.Debug("loaded dataset for layer %q: %d features", spec.Key, len(fc.Features))

	return fc, nil
}
