package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Repair Shop API",
        "description": "Repair job tracking for the shop front end",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Repairs", "description": "Repair job CRUD"}
    ],
    "paths": {
        "/healthcheck": {
            "get": {
                "summary": "Plain health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check (pings the database)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/api/v1/repairs": {
            "get": {
                "tags": ["Repairs"],
                "summary": "List repair jobs, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RepairJob"}}}
                }
            },
            "post": {
                "tags": ["Repairs"],
                "summary": "Add a repair job",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRepairRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreateRepairResponse"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/v1/repairs/{id}": {
            "put": {
                "tags": ["Repairs"],
                "summary": "Update a repair job's status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRepairStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RepairJob"}},
                    "400": {"description": "Missing status", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Repair not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "patch": {
                "tags": ["Repairs"],
                "summary": "Update a repair job's status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRepairStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RepairJob"}}
                }
            },
            "delete": {
                "tags": ["Repairs"],
                "summary": "Delete a repair job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Repair not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        }
    },
    "definitions": {
        "RepairJob": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "customerName": {"type": "string"},
                "repairType": {"type": "string"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High", "Emergency"]},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed", "On Hold"]},
                "estimatedCost": {"type": "number", "x-nullable": true},
                "dateAdded": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "CreateRepairRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "customerName": {"type": "string"},
                "repairType": {"type": "string"},
                "priority": {"type": "string"},
                "status": {"type": "string"},
                "estimatedCost": {"type": "number", "x-nullable": true},
                "dateAdded": {"type": "string"}
            },
            "required": ["title", "customerName", "repairType"]
        },
        "UpdateRepairStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            },
            "required": ["status"]
        },
        "CreateRepairResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "repairId": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
