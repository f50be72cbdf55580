package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souraizuni/ffxiv-best-craft/internal/app"
	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/httpjson"
	"github.com/souraizuni/ffxiv-best-craft/internal/locale"
	"github.com/souraizuni/ffxiv-best-craft/internal/validation"
)

const maxSettingsBody = 64 << 10

type SettingsHandler struct {
	settings  *app.SettingsService
	validator *validation.Validator
}

func NewSettingsHandler(settings *app.SettingsService, validator *validation.Validator) *SettingsHandler {
	if validator == nil {
		validator = validation.New()
	}
	return &SettingsHandler{settings: settings, validator: validator}
}

func (h *SettingsHandler) Routes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Patch("/settings", h.patch)
	r.Put("/settings", h.put)
	r.Get("/settings/export", h.export)
	r.Get("/settings/defaults", h.defaults)
	// Variante avec slash final (utile selon reverse-proxy / clients).
	r.Get("/settings/", h.get)
	r.Patch("/settings/", h.patch)
	r.Put("/settings/", h.put)
}

// patchRules borne la taille des champs avant LoadSettings.
// Les valeurs inconnues restent acceptées: le store les corrige.
type patchRules struct {
	Language       string `json:"language" validate:"omitempty,max=64,printascii"`
	DataSource     string `json:"dataSource" validate:"omitempty,max=32,printascii"`
	DataSourceLang string `json:"dataSourceLang" validate:"omitempty,max=16,printascii"`
}

func rulesFor(p domain.SettingsPatch) patchRules {
	var out patchRules
	if p.Language != nil {
		out.Language = *p.Language
	}
	if p.DataSource != nil {
		out.DataSource = string(*p.DataSource)
	}
	if p.DataSourceLang != nil {
		out.DataSourceLang = string(*p.DataSourceLang)
	}
	return out
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.settings.Get())
}

func (h *SettingsHandler) export(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteRaw(w, http.StatusOK, []byte(h.settings.Export()))
}

func (h *SettingsHandler) defaults(w http.ResponseWriter, r *http.Request) {
	lang := locale.FromAcceptLanguage(r.Header.Get("Accept-Language"))
	httpjson.Write(w, http.StatusOK, h.settings.Defaults(lang))
}

func (h *SettingsHandler) patch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingsBody))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	p, err := domain.DecodeSettingsPatch(body)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Validate(rulesFor(p)); err != nil {
		var ferr *validation.FieldsError
		if errors.As(err, &ferr) {
			httpjson.WriteErrorDetails(w, http.StatusBadRequest, "validation failed", ferr.Fields)
			return
		}
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.settings.Patch(r.Context(), p)
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// put importe un blob complet (même chemin que la lecture du stockage).
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingsBody))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	updated, err := h.settings.Import(r.Context(), body)
	if err != nil {
		if errors.Is(err, app.ErrParse) {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}
