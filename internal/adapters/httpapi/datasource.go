package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/souraizuni/ffxiv-best-craft/internal/app"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/httpjson"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

type DataSourceHandler struct {
	settings *app.SettingsService
}

func NewDataSourceHandler(settings *app.SettingsService) *DataSourceHandler {
	return &DataSourceHandler{settings: settings}
}

func (h *DataSourceHandler) Routes(r chi.Router) {
	r.Get("/catalog", h.catalog)
	r.Get("/datasource", h.current)
	r.Get("/items/{id}", h.item)
	r.Get("/craft-types", h.craftTypes)
}

type catalogResponse struct {
	Platform domain.Platform       `json:"platform"`
	Sources  []domain.CatalogEntry `json:"sources"`
}

type dataSourceResponse struct {
	ID   domain.DataSourceID     `json:"id"`
	Lang domain.DataSourceLangID `json:"lang,omitempty"`
}

func (h *DataSourceHandler) catalog(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, catalogResponse{
		Platform: h.settings.Platform(),
		Sources:  h.settings.Catalog(),
	})
}

// current décrit la source qui sera réellement construite.
func (h *DataSourceHandler) current(w http.ResponseWriter, r *http.Request) {
	src, err := h.settings.DataSource(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, dataSourceResponse{ID: src.ID(), Lang: src.Lang()})
}

func (h *DataSourceHandler) item(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	src, err := h.settings.DataSource(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}
	item, err := src.ItemInfo(r.Context(), id)
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, item)
}

func (h *DataSourceHandler) craftTypes(w http.ResponseWriter, r *http.Request) {
	src, err := h.settings.DataSource(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}
	types, err := src.CraftTypes(r.Context())
	if err != nil {
		h.upstreamError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, types)
}

func (h *DataSourceHandler) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		httpjson.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	hlog.FromRequest(r).Warn().Err(err).Msg("data source request failed")
	httpjson.WriteError(w, http.StatusBadGateway, err.Error())
}
