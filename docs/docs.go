// Package docs registers the OpenAPI document served under /swagger. It
// follows the swag output layout and mirrors the handler annotations; keep
// both in sync when routes change.
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
        "/detect/": {
            "post": {
                "description": "Runs the model over one uploaded image and logs every detection.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["detection"],
                "summary": "Detect masks",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Image (JPEG, PNG, GIF, BMP, TIFF or WebP)",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DetectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "413": {"description": "Request Entity Too Large", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/detections/log": {
            "get": {
                "description": "Total log size and the most recent entries, oldest first.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Recent detections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LogPage"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/export": {
            "get": {
                "description": "The whole log as CSV with header timestamp,label,confidence.",
                "produces": ["text/csv"],
                "tags": ["logs"],
                "summary": "Export detection log",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/mute/": {
            "post": {
                "description": "Suppresses alerts for one window. Muting again restarts the window.",
                "produces": ["application/json"],
                "tags": ["mute"],
                "summary": "Mute alerts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MuteResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/mute/status": {
            "get": {
                "description": "Reports whether alerts are muted. An elapsed window is cleared on read.",
                "produces": ["application/json"],
                "tags": ["mute"],
                "summary": "Mute status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mask_monitor.MuteState"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/status": {
            "get": {
                "description": "Uptime, host CPU and RAM, model name and total logged detections. Blocks ~200ms while sampling CPU.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mask_monitor.Status"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/summary": {
            "get": {
                "description": "Counts of logged detections per mask category.",
                "produces": ["application/json"],
                "tags": ["detection"],
                "summary": "Detection summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/mask_monitor.Summary"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket stream of status and summary. interval (Go duration) or interval_ms, at most 10s, default 2s.",
                "tags": ["system"],
                "summary": "Live snapshots",
                "parameters": [
                    {"type": "string", "example": "2s", "description": "Push interval", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Push interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.DetectResponse": {
            "type": "object",
            "properties": {
                "detections": {"type": "array", "items": {"$ref": "#/definitions/mask_monitor.Detection"}}
            }
        },
        "handlers.MuteResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Alerts muted for 5 minutes"},
                "until": {"type": "string", "example": "2025-08-27T15:09:05+02:00"}
            }
        },
        "mask_monitor.Detection": {
            "type": "object",
            "properties": {
                "bbox": {"type": "array", "items": {"type": "number"}},
                "confidence": {"type": "number", "example": 0.93},
                "label": {"type": "string", "example": "with_mask"}
            }
        },
        "mask_monitor.LogEntry": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number", "example": 0.87},
                "label": {"type": "string", "example": "without_mask"},
                "timestamp": {"type": "string", "example": "2025-08-27 15:04:05"}
            }
        },
        "mask_monitor.MuteState": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "until": {"type": "string", "x-nullable": true}
            }
        },
        "mask_monitor.Status": {
            "type": "object",
            "properties": {
                "cpu": {"type": "number"},
                "detections_logged": {"type": "integer"},
                "model": {"type": "string"},
                "ram": {"type": "number"},
                "uptime": {"type": "integer"}
            }
        },
        "mask_monitor.Summary": {
            "type": "object",
            "properties": {
                "incorrect": {"type": "integer"},
                "no_mask": {"type": "integer"},
                "with_mask": {"type": "integer"}
            }
        },
        "service.LogPage": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "logs": {"type": "array", "items": {"$ref": "#/definitions/mask_monitor.LogEntry"}}
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
	Title:            "Mask Monitor API",
	Description:      "Face-mask detection over uploaded frames, with a detection log, summary, host status and alert muting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
