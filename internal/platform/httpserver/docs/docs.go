// Package docs holds the generated swagger document served at /swagger/.
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
        "/campaigns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List campaigns for the authenticated owner",
                "parameters": [
                    {"type": "string", "name": "clientId", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "429": {"description": "Too Many Requests"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Create a campaign",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"},
                    "429": {"description": "Too Many Requests"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Reorder campaigns",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/campaigns/events": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["campaigns"],
                "summary": "Stream campaign lifecycle events",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/campaigns/{campaign_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Fetch one campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Partially update a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Delete a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients for the authenticated owner",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Create a client",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/clients/{client_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Fetch one client",
                "parameters": [
                    {"type": "string", "name": "client_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Partially update a client",
                "parameters": [
                    {"type": "string", "name": "client_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Delete a client",
                "parameters": [
                    {"type": "string", "name": "client_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SocialDesk Agency API",
	Description:      "Campaign and client management for social media agencies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
