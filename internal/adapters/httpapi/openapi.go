package httpapi

import (
	"net/http"

	"github.com/souraizuni/ffxiv-best-craft/internal/domain"
	"github.com/souraizuni/ffxiv-best-craft/internal/httpjson"
)

// handleOpenAPI renvoie une spec OpenAPI minimale de l'API v1.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}
	jsonBody := func(schemaRef string) map[string]any {
		return map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	sourceIDs := []any{
		string(domain.DataSourceLocal),
		string(domain.DataSourceYYYYGames),
		string(domain.DataSourceYYYYBeta),
		string(domain.DataSourceCafe),
		string(domain.DataSourceXivAPI),
	}
	langIDs := []any{
		string(domain.LangZhCN),
		string(domain.LangZhTW),
		string(domain.LangEN),
		string(domain.LangDE),
		string(domain.LangFR),
		string(domain.LangJA),
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "BestCraft settings API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error":   map[string]any{"type": "string"},
						"details": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
					},
					"required": []any{"error"},
				},
				"DataSourceID": map[string]any{
					"type": "string",
					"enum": sourceIDs,
				},
				"DataSourceLangID": map[string]any{
					"type": "string",
					"enum": langIDs,
				},
				"Settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"language":       map[string]any{"type": "string", "description": "Langue de l'interface (\"system\" ou tag BCP 47)."},
						"dataSource":     map[string]any{"$ref": "#/components/schemas/DataSourceID"},
						"dataSourceLang": map[string]any{"$ref": "#/components/schemas/DataSourceLangID"},
					},
					"required": []any{"language", "dataSource"},
				},
				"SettingsPatch": map[string]any{
					"type":        "object",
					"description": "Champs optionnels; les valeurs invalides sont corrigées, pas rejetées.",
					"properties": map[string]any{
						"language":       map[string]any{"type": "string", "maxLength": 64},
						"dataSource":     map[string]any{"type": "string", "maxLength": 32},
						"dataSourceLang": map[string]any{"type": "string", "maxLength": 16},
					},
					"additionalProperties": true,
				},
				"Catalog": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"platform": map[string]any{"type": "string", "enum": []any{string(domain.PlatformNative), string(domain.PlatformWeb)}},
						"sources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":    map[string]any{"$ref": "#/components/schemas/DataSourceID"},
									"langs": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/DataSourceLangID"}},
								},
							},
						},
					},
				},
				"DataSource": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"$ref": "#/components/schemas/DataSourceID"},
						"lang": map[string]any{"$ref": "#/components/schemas/DataSourceLangID"},
					},
				},
				"Item": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "integer"},
						"name": map[string]any{"type": "string"},
					},
				},
				"CraftTypeList": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":   map[string]any{"type": "integer"},
							"name": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/openapi.json": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIDocument")}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "SSE (settings.updated)"}}},
			},
			"/api/v1/settings": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{"200": jsonOK("#/components/schemas/Settings")},
				},
				"patch": map[string]any{
					"requestBody": jsonBody("#/components/schemas/SettingsPatch"),
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Settings"),
						"400": jsonErr,
						"500": jsonErr,
					},
				},
				"put": map[string]any{
					"description": "Importe un blob complet (normalisé comme au chargement).",
					"requestBody": jsonBody("#/components/schemas/SettingsPatch"),
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Settings"),
						"400": jsonErr,
						"500": jsonErr,
					},
				},
			},
			"/api/v1/settings/export": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Settings")}},
			},
			"/api/v1/settings/defaults": map[string]any{
				"get": map[string]any{
					"description": "Valeurs initiales dérivées de l'en-tête Accept-Language.",
					"responses":   map[string]any{"200": jsonOK("#/components/schemas/Settings")},
				},
			},
			"/api/v1/catalog": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Catalog")}},
			},
			"/api/v1/datasource": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/DataSource"),
						"502": jsonErr,
					},
				},
			},
			"/api/v1/items/{id}": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Item"),
						"400": jsonErr,
						"404": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/craft-types": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/CraftTypeList"),
						"502": jsonErr,
					},
				},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
