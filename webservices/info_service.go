package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/styling"
	"github.com/mapaescolar/mapaescolar-app/viewer"
)

func NewInfoService(logger *logpkg.Logger, controller *viewer.ToggleController) *InfoService {
	ws := &InfoService{logger, controller, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger     *logpkg.Logger
	controller *viewer.ToggleController
	chi.Router
}

type layerInfoType struct {
	Key       mapaescolar.LayerKey `json:"key"`
	Name      string               `json:"name"`
	Kind      string               `json:"kind"`
	ParentKey mapaescolar.LayerKey `json:"parentKey,omitempty"`
	HasLabels bool                 `json:"hasLabels"`
	LegendID  string               `json:"legendId,omitempty"`
	State     string               `json:"state"`
}

type getInfoResponseType struct {
	PolygonStyle mapaescolar.SymbolDescriptor `json:"polygonStyle"`
	Layers       []*layerInfoType             `json:"layers"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	states := ws.controller.States()

	layers := []*layerInfoType{}
	for _, spec := range ws.controller.Specs() {
		layers = append(layers, &layerInfoType{
			Key:       spec.Key,
			Name:      spec.Name,
			Kind:      spec.Kind.String(),
			ParentKey: spec.ParentKey,
			HasLabels: spec.HasLabels,
			LegendID:  spec.LegendID,
			State:     states[spec.Key].String(),
		})
	}

	render.JSON(w, r, getInfoResponseType{
		PolygonStyle: styling.VeredasPolygonStyle(),
		Layers:       layers,
	})
}
