package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/viewer"
)

func NewSurfaceService(logger *logpkg.Logger, surface *viewer.InMemorySurface) *SurfaceService {
	ws := &SurfaceService{logger, surface, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type SurfaceService struct {
	logger  *logpkg.Logger
	surface *viewer.InMemorySurface
	chi.Router
}

type getSurfaceResponseType struct {
	// Layers lists attached layers bottom-up in draw order.
	Layers []viewer.SurfaceEntry `json:"layers"`
}

func (ws *SurfaceService) handleGet(w http.ResponseWriter, r *http.Request) {
	entries := ws.surface.DrawOrder()
	if entries == nil {
		entries = []viewer.SurfaceEntry{}
	}

	render.JSON(w, r, getSurfaceResponseType{Layers: entries})
}
