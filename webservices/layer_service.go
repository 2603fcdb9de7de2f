package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/layerdal"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/viewer"
	"github.com/pkg/profile"
)

func NewLayerService(logger *logpkg.Logger, controller *viewer.ToggleController, shouldProfile bool) *LayerService {
	ws := &LayerService{logger, controller, shouldProfile, chi.NewRouter()}
	ws.Post("/{layerKey}/toggle", ws.handleToggle)
	ws.Get("/{layerKey}", ws.handleGetLayer)

	return ws
}

type LayerService struct {
	logger        *logpkg.Logger
	controller    *viewer.ToggleController
	shouldProfile bool
	chi.Router
}

type toggleRequestType struct {
	On bool `json:"on"`
}

type toggleResponseType struct {
	States  map[mapaescolar.LayerKey]string `json:"states"`
	Message string                          `json:"message,omitempty"`
}

func (ws *LayerService) handleToggle(w http.ResponseWriter, r *http.Request) {
	if ws.shouldProfile {
		defer profile.Start().Stop()
	}

	key := mapaescolar.LayerKey(chi.URLParam(r, "layerKey"))

	var body toggleRequestType
	err := render.DecodeJSON(r.Body, &body)
	if err != nil {
		errorsx.HTTPError(w, ws.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	toggleErr := ws.controller.Toggle(r.Context(), key, body.On)

	response := toggleResponseType{States: map[mapaescolar.LayerKey]string{}}
	for stateKey, state := range ws.controller.States() {
		response.States[stateKey] = state.String()
	}

	if toggleErr != nil {
		ws.logger.Warn("toggle of layer %q to %t failed: %s", key, body.On, toggleErr.Error())
		response.Message = toggleErr.Error()

		switch layerdal.ClassifyError(toggleErr) {
		case layerdal.ErrorClassConfiguration:
			w.WriteHeader(http.StatusUnprocessableEntity)
		case layerdal.ErrorClassTransport:
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}

	render.JSON(w, r, response)
}

func (ws *LayerService) handleGetLayer(w http.ResponseWriter, r *http.Request) {
	key := mapaescolar.LayerKey(chi.URLParam(r, "layerKey"))

	layer, state, ok := ws.controller.Layer(key)
	if !ok {
		errorsx.HTTPError(w, ws.logger, errorsx.Errorf("unknown layer %q", key), http.StatusNotFound)
		return
	}

	switch state {
	case mapaescolar.ToggleStateLoading:
		errorsx.HTTPError(w, ws.logger, errorsx.Errorf("layer %q is still loading", key), http.StatusConflict)
		return
	case mapaescolar.ToggleStateBuiltHidden, mapaescolar.ToggleStateBuiltVisible:
		render.JSON(w, r, layer)
		return
	}

	errorsx.HTTPError(w, ws.logger, errorsx.Errorf("layer %q has not been built", key), http.StatusNotFound)
}
