// Package docs Isochrone Map API.
//
// Строит изохроны (зоны доступности на автомобиле) через openrouteservice,
// рисует их поверх подложки OpenStreetMap и отдаёт карту как PDF, PNG или GeoJSON.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/isochrones": {
            "post": {
                "description": "Запрашивает полигоны доступности у openrouteservice и возвращает их как GeoJSON FeatureCollection вместе со сводкой",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["isochrones"],
                "summary": "Isochrone polygons as GeoJSON",
                "parameters": [
                    {
                        "description": "Origin and comma-separated minutes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.IsochroneRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.IsochroneGeoJSONResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/isochrones/map.pdf": {
            "get": {
                "description": "Строит карту изохрон поверх подложки OpenStreetMap и возвращает её как PDF",
                "produces": ["application/pdf"],
                "tags": ["isochrones"],
                "summary": "Isochrone map as PDF",
                "parameters": [
                    {"type": "number", "example": 25.00307729247567, "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "example": 55.167526256190804, "description": "Longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "example": "5,10,15,20", "description": "Comma-separated minutes", "name": "minutes", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/isochrones/map.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["isochrones"],
                "summary": "Isochrone map preview as PNG",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "description": "Comma-separated minutes", "name": "minutes", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Coordinate": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "domain.PolygonSummary": {
            "type": "object",
            "properties": {
                "max_reach_km": {"type": "number"},
                "minutes": {"type": "integer"},
                "seconds": {"type": "integer"},
                "vertices": {"type": "integer"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "dto.IsochroneGeoJSONResponse": {
            "type": "object",
            "properties": {
                "crs": {"type": "string"},
                "isochrones": {"type": "object"},
                "origin": {"$ref": "#/definitions/domain.Coordinate"},
                "summaries": {"type": "array", "items": {"$ref": "#/definitions/domain.PolygonSummary"}}
            }
        },
        "dto.IsochroneRequest": {
            "type": "object",
            "required": ["lat", "lon", "minutes"],
            "properties": {
                "lat": {"type": "number", "maximum": 90, "minimum": -90},
                "lon": {"type": "number", "maximum": 180, "minimum": -180},
                "minutes": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "kind": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "time_ms": {"type": "number"},
                "total": {"type": "integer"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Isochrone Map API",
	Description:      "Изохроны openrouteservice поверх подложки OpenStreetMap: GeoJSON, PNG и PDF.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
