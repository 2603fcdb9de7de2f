package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/layerdal"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/styling"
	"github.com/mapaescolar/mapaescolar-app/viewer"
	"github.com/mapaescolar/mapaescolar-app/webservices"
	"gopkg.in/alecthomas/kingpin.v2"
)

const DEFAULT_PORT = 9000

var logger *logpkg.Logger

func main() {
	verbose := kingpin.Flag("v", "verbose logging").Bool()

	logLevel := logpkg.LogLevelInfo
	if *verbose {
		logLevel = logpkg.LogLevelDebug
	}
	logger = logpkg.NewLogger(os.Stderr, logLevel)

	setupServe()
	setupDumpLayer()

	kingpin.Parse()
}

var addrHelp = fmt.Sprintf(
	`address to serve on. Ex: ':%d' listen on port %d to traffic from anywhere. 'localhost:%d' listen on port %d to traffic from localhost`,
	DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT,
)

func setupServe() {
	cmd := kingpin.Command("serve", "serve the map viewer API and web client")
	addr := cmd.Flag("addr", addrHelp).Default(fmt.Sprintf(":%d", DEFAULT_PORT)).String()
	configPath := cmd.Flag("config", "path to a sources config JSON file").String()
	useLocalData := cmd.Flag("use-local-data", "prefer the local-path override table over remote releases").Bool()
	shouldProfile := cmd.Flag("profile", "profile the toggle request performance").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			sources, err := loadSources(*configPath, *useLocalData)
			if err != nil {
				return errorsx.Wrap(err)
			}

			controller, surface := createController(sources)

			router, err := createServer(controller, surface, *shouldProfile)
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = *addr
			server.Handler = router

			logger.Info("about to start serving on %q", *addr)
			listenErr := server.ListenAndServe()
			if listenErr != nil {
				return errorsx.Wrap(listenErr)
			}

			return nil
		}

		err := run()
		if err != nil {
			logger.Error("failed to serve: %q. Stack:\n%s", err.Error(), err.Stack())
			os.Exit(1)
		}

		return nil
	})
}

func setupDumpLayer() {
	cmd := kingpin.Command("dump-layer", "build one layer and dump its payload as JSON to stdout")
	layerKey := cmd.Arg("layer-key", "layer to build, e.g. 'sedes' or 'veredas'").Required().String()
	configPath := cmd.Flag("config", "path to a sources config JSON file").String()
	useLocalData := cmd.Flag("use-local-data", "prefer the local-path override table over remote releases").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			sources, err := loadSources(*configPath, *useLocalData)
			if err != nil {
				return errorsx.Wrap(err)
			}

			var spec *mapaescolar.LayerSpec
			for _, candidate := range styling.BuiltinLayerSpecs() {
				if candidate.Key == mapaescolar.LayerKey(*layerKey) {
					spec = candidate
					break
				}
			}
			if spec == nil {
				return errorsx.Errorf("unknown layer %q", *layerKey)
			}

			loader := layerdal.NewDatasetLoader(
				logger,
				sources,
				layerdal.NewDataFetcher(logger, nil),
				layerdal.NewGeometryNormalizer(logger),
			)
			builder := viewer.NewPipelineBuilder(logger, loader)

			built, err := builder.BuildLayer(context.Background(), spec)
			if err != nil {
				return errorsx.Wrap(err)
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			encodeErr := encoder.Encode(built)
			if encodeErr != nil {
				return errorsx.Wrap(encodeErr)
			}

			return nil
		}

		err := run()
		if err != nil {
			logger.Error("failed to dump layer: %q. Stack:\n%s", err.Error(), err.Stack())
			os.Exit(1)
		}

		return nil
	})
}

func loadSources(configPath string, useLocalData bool) (*layerdal.SourcesConfig, errorsx.Error) {
	if configPath == "" {
		sources := layerdal.DefaultSourcesConfig()
		sources.UseLocalData = useLocalData
		return sources, nil
	}

	sources, err := layerdal.LoadSourcesConfig(configPath)
	if err != nil {
		return nil, err
	}

	if useLocalData {
		sources.UseLocalData = true
	}

	return sources, nil
}

func createController(sources *layerdal.SourcesConfig) (*viewer.ToggleController, *viewer.InMemorySurface) {
	loader := layerdal.NewDatasetLoader(
		logger,
		sources,
		layerdal.NewDataFetcher(logger, nil),
		layerdal.NewGeometryNormalizer(logger),
	)

	surface := viewer.NewInMemorySurface()
	controller := viewer.NewToggleController(
		logger,
		viewer.NewPipelineBuilder(logger, loader),
		surface,
		viewer.NewMemoryStatusSink(),
		viewer.NewControlPanel(),
		styling.BuiltinLayerSpecs(),
	)

	return controller, surface
}

func createServer(controller *viewer.ToggleController, surface *viewer.InMemorySurface, shouldProfile bool) (chi.Router, errorsx.Error) {
	traceDirPath, err := ioutil.TempDir("", "")
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	traceFilePath := filepath.Join(traceDirPath, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__03_04_05")))
	logger.Info("tracing at %q", traceFilePath)

	traceFile, err := os.Create(traceFilePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	tracer := tracing.NewTracer(traceFile)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	router.Use(tracing.Middleware(tracer))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, controller))
		r.Mount("/layers/", webservices.NewLayerService(logger, controller, shouldProfile))
		r.Mount("/surface", webservices.NewSurfaceService(logger, surface))
	})

	router.Mount("/", http.FileServer(http.Dir("web-client")))

	return router, nil
}
