// Package docs registers the OpenAPI document served at /api/docs.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/schema.PostResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [
                    {"description": "New post", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schema.PostCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/schema.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schema.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            },
            "put": {
                "description": "user_id must match the stored author, otherwise 203 is returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Replace a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Replacement post", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schema.PostCreate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schema.PostResponse"}},
                    "203": {"description": "Non-Authoritative Information", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["posts"],
                "summary": "Delete a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Partially update a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "post", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schema.PostUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schema.PostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "New user", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schema.UserCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/schema.UserResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schema.UserResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user and their posts",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Only fields present in the body are applied; image_file may be null to reset the picture.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Partially update a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schema.UserUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/schema.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List a user's posts",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/schema.PostResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/schema.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "schema.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {}
            }
        },
        "schema.PostCreate": {
            "type": "object",
            "required": ["content", "title", "user_id"],
            "properties": {
                "content": {"type": "string", "minLength": 50},
                "title": {"type": "string", "maxLength": 100},
                "user_id": {"type": "integer", "minimum": 1}
            }
        },
        "schema.PostResponse": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/schema.UserResponse"},
                "content": {"type": "string"},
                "date_posted": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "user_id": {"type": "integer"}
            }
        },
        "schema.PostUpdate": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "schema.UserCreate": {
            "type": "object",
            "required": ["email", "username"],
            "properties": {
                "email": {"type": "string", "maxLength": 120},
                "password": {"type": "string"},
                "username": {"type": "string", "maxLength": 50}
            }
        },
        "schema.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "image_file": {"type": "string"},
                "image_path": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "schema.UserUpdate": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "image_file": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Inkwell API",
	Description:      "Blog API with users and posts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
