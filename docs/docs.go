// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/confidence-score": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["confidence"],
                "summary": "Score an opener",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.ConfidenceScoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ConfidenceScoreResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/generate-icebreaker": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["icebreaker"],
                "summary": "Generate three openers",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.GenerateResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.GenerateResponse"}}
                }
            }
        },
        "/v1/extract-interests": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["icebreaker"],
                "summary": "Extract interest tags from profile text",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.ExtractInterestsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ExtractInterestsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ExtractInterestsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ExtractInterestsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "model.ConfidenceScoreRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "targetInterests": {"type": "array", "items": {"type": "string"}},
                "targetProfile": {"type": "string"},
                "mode": {"type": "string", "enum": ["client-only", "full"]}
            }
        },
        "model.ConfidenceScoreResult": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "clientScore": {"type": "object"},
                "semanticScore": {"type": "object"},
                "finalScore": {"type": "integer"},
                "confidence": {"type": "string", "enum": ["low", "medium", "high", "very-high"]},
                "recommendation": {"type": "string"}
            }
        },
        "model.GenerateRequest": {
            "type": "object",
            "properties": {
                "interests": {"type": "array", "items": {"type": "string"}},
                "profileInfo": {"type": "string"},
                "style": {"type": "string"}
            }
        },
        "model.GenerateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "topics": {"type": "array", "items": {"type": "object"}},
                "error": {"type": "string"}
            }
        },
        "model.ExtractInterestsRequest": {
            "type": "object",
            "properties": {
                "profileText": {"type": "string"}
            }
        },
        "model.ExtractInterestsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "interests": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Icebreak API",
	Description:      "Opener generation and confidence scoring",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
