// Package docs registers the OpenAPI document served under /swagger.
// It mirrors the handler annotations in internal/api; keep both in step.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/calculate": {
            "post": {
                "description": "Scores a dimension set, classifies its stage and intervention window and matches it against the historical baseline",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessment"],
                "summary": "Assess a technology",
                "parameters": [
                    {
                        "type": "string",
                        "description": "weighted7 or equal9; inferred from the keys when omitted",
                        "name": "strategy",
                        "in": "query"
                    },
                    {
                        "description": "dimension name to 0-100 rating",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "number"}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lockin.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/dimensions": {
            "get": {
                "description": "Labels, descriptions and weights of every dimension of both schemas",
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Dimension catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DimensionCatalog"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["operations"],
                "summary": "Liveness and dataset summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/presets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Example assessments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.PresetList"}}
                }
            }
        },
        "/ratelimit": {
            "get": {
                "description": "Configured per-IP budget of the caller and the state of the limiter backend",
                "produces": ["application/json"],
                "tags": ["operations"],
                "summary": "Rate limit status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/trajectories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trajectories"],
                "summary": "Trajectory index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TrajectoryIndex"}}
                }
            }
        },
        "/trajectory": {
            "get": {
                "description": "Returns the recorded lock-in trajectory of a technology for a species",
                "produces": ["application/json"],
                "tags": ["trajectories"],
                "summary": "Historical trajectory",
                "parameters": [
                    {"type": "string", "default": "chickens", "description": "species name", "name": "species", "in": "query"},
                    {"type": "string", "default": "factoryFarming", "description": "technology name", "name": "tech", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/trajectory.Trajectory"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.DimensionCatalog": {
            "type": "object",
            "properties": {
                "schemas": {"type": "array", "items": {"$ref": "#/definitions/lockin.SchemaInfo"}}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Species data not found for unicorns"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "baselinePoints": {"type": "integer"},
                "metrics": {"type": "object", "additionalProperties": true},
                "rateLimit": {"type": "object", "additionalProperties": true},
                "species": {"type": "integer"},
                "status": {"type": "string"},
                "technologies": {"type": "integer"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "api.PresetList": {
            "type": "object",
            "properties": {
                "presets": {"type": "array", "items": {"$ref": "#/definitions/lockin.Preset"}}
            }
        },
        "api.TrajectoryIndex": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "species": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            }
        },
        "lockin.DimensionInfo": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "key": {"type": "string"},
                "label": {"type": "string"},
                "weight": {"type": "number"}
            }
        },
        "lockin.KeyMetrics": {
            "type": "object",
            "properties": {
                "advocacyOrgs": {"type": "integer"},
                "animalsAffected": {"type": "string"},
                "expectedLockIn": {"type": "string"},
                "sufferingHours": {"type": "string"}
            }
        },
        "lockin.Preset": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "strategy": {"type": "string"},
                "values": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "lockin.Result": {
            "type": "object",
            "properties": {
                "clampedDimensions": {"type": "array", "items": {"type": "string"}},
                "dimensions": {"type": "object", "additionalProperties": {"type": "integer"}},
                "historicalMatch": {"$ref": "#/definitions/trajectory.Point"},
                "interventionWindow": {"type": "string", "enum": ["Monitor", "Act Soon", "Act Now"]},
                "keyMetrics": {"$ref": "#/definitions/lockin.KeyMetrics"},
                "message": {"type": "string"},
                "range": {"type": "array", "items": {"type": "integer"}},
                "schemaVersion": {"type": "integer"},
                "score": {"type": "integer"},
                "stage": {
                    "type": "string",
                    "enum": ["Early Research", "Early Commercialization", "Scaling", "Infrastructure Building", "Lock-in/Regulatory Capture"]
                },
                "strategy": {"type": "string", "enum": ["weighted7", "equal9"]},
                "timeUntilLockin": {"type": "string"}
            }
        },
        "lockin.SchemaInfo": {
            "type": "object",
            "properties": {
                "dimensions": {"type": "array", "items": {"$ref": "#/definitions/lockin.DimensionInfo"}},
                "schemaVersion": {"type": "integer"},
                "scoring": {"type": "string"},
                "strategy": {"type": "string"}
            }
        },
        "trajectory.Point": {
            "type": "object",
            "properties": {
                "milestone": {"type": "string"},
                "score": {"type": "integer"},
                "stage": {"type": "string"},
                "uncertainty": {"type": "string", "enum": ["low", "medium", "high"]},
                "year": {"type": "integer"}
            }
        },
        "trajectory.Trajectory": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "technology": {"type": "string"},
                "trajectory": {"type": "array", "items": {"$ref": "#/definitions/trajectory.Point"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lock-in Early Warning Service API",
	Description:      "Scores how close an emerging animal-use technology is to irreversible lock-in.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
