// Package docs holds the OpenAPI document served at /docs/*.
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
        "/": {
            "get": {
                "description": "Returns the service name, version, VLAN ID range and the available endpoints",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Endpoint directory",
                "responses": {
                    "200": {
                        "description": "Endpoint directory",
                        "schema": {"$ref": "#/definitions/api.IndexResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports liveness, the number of registered VLANs and memory usage",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {"$ref": "#/definitions/api.HealthResponse"}
                    }
                }
            }
        },
        "/vlans": {
            "get": {
                "description": "Returns every registered VLAN ordered by ID",
                "produces": ["application/json"],
                "tags": ["vlans"],
                "summary": "List VLANs",
                "responses": {
                    "200": {
                        "description": "Registered VLANs",
                        "schema": {"$ref": "#/definitions/api.VLANsResponse"}
                    }
                }
            },
            "post": {
                "description": "Registers a VLAN ID between 2 and 4094. The name defaults to VLAN_<id>",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vlans"],
                "summary": "Register a VLAN",
                "parameters": [
                    {
                        "description": "VLAN to register",
                        "name": "vlan",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/registry.CreateRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "VLAN created",
                        "schema": {"$ref": "#/definitions/api.CreateVLANResponse"}
                    },
                    "400": {
                        "description": "id missing, not an integer, or out of range",
                        "schema": {"$ref": "#/definitions/api.APIError"}
                    },
                    "409": {
                        "description": "VLAN already registered",
                        "schema": {"$ref": "#/definitions/api.APIError"}
                    },
                    "415": {
                        "description": "Body is not a JSON object",
                        "schema": {"$ref": "#/definitions/api.APIError"}
                    }
                }
            }
        },
        "/vlans/{id}": {
            "get": {
                "description": "Returns a single registered VLAN",
                "produces": ["application/json"],
                "tags": ["vlans"],
                "summary": "Get a VLAN",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "VLAN ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "VLAN details",
                        "schema": {"$ref": "#/definitions/models.VLAN"}
                    },
                    "404": {
                        "description": "VLAN not registered",
                        "schema": {"$ref": "#/definitions/api.APIError"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            },
            "additionalProperties": true
        },
        "api.CreateVLANResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "vlan": {"$ref": "#/definitions/models.VLAN"},
                "total_vlans": {"type": "integer"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "version": {"type": "string"},
                "total_vlans": {"type": "integer"},
                "memory": {
                    "type": "object",
                    "properties": {
                        "heap_alloc_bytes": {"type": "integer"},
                        "sys_bytes": {"type": "integer"},
                        "goroutines": {"type": "integer"}
                    }
                },
                "uptime": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "api.IndexResponse": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "version": {"type": "string"},
                "vlan_range": {
                    "type": "object",
                    "properties": {
                        "min": {"type": "integer"},
                        "max": {"type": "integer"}
                    }
                },
                "endpoints": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "timestamp": {"type": "string"}
            }
        },
        "api.VLANsResponse": {
            "type": "object",
            "properties": {
                "total_vlans": {"type": "integer"},
                "count": {"type": "integer"},
                "vlans": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/models.VLAN"}
                }
            }
        },
        "models.VLAN": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "registry.CreateRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer", "minimum": 2, "maximum": 4094},
                "name": {"type": "string"}
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
	Title:            "vlanreg API",
	Description:      "In-memory registry of 802.1Q VLAN IDs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
