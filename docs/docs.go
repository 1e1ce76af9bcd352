// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/verify": {
            "post": {
                "tags": ["Auth"],
                "summary": "Verify email",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.VerifyRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/resend-code": {
            "post": {
                "tags": ["Auth"],
                "summary": "Resend verification code",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ResendRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Get current account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/requests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "List all requests",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "Submit certificate request",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/requests/mine": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "List my requests",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/requests/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "Get request",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/requests/{id}/decide": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "Approve or reject a request",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DecideRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/certificates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Requests"],
                "summary": "List my certificates",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/grievances": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Grievances"],
                "summary": "List all grievances",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Grievances"],
                "summary": "File grievance",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FileRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/grievances/mine": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Grievances"],
                "summary": "List my grievances",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/grievances/{id}/resolve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Grievances"],
                "summary": "Resolve grievance",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ResolveRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Reports"],
                "summary": "System report",
                "parameters": [{"type": "string", "default": "all", "name": "period", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.VerifyRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "code": {"type": "string"}}
        },
        "handlers.ResendRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "identifier": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "officer", "supervisor"]}
            }
        },
        "handlers.DecideRequest": {
            "type": "object",
            "properties": {
                "decision": {"type": "string", "enum": ["approved", "rejected"]},
                "comment": {"type": "string"}
            }
        },
        "handlers.FileRequest": {
            "type": "object",
            "properties": {"description": {"type": "string"}}
        },
        "handlers.ResolveRequest": {
            "type": "object",
            "properties": {"response": {"type": "string"}}
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Certificate Portal API",
	Description:      "Birth and death certificate issuance portal",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
