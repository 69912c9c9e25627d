package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Kanban Académico API",
        "description": "Kanban-style project management backend with role-based auth",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Registration and token issuance"},
        {"name": "Boards", "description": "Board management, membership and export"},
        {"name": "Lists", "description": "Board columns"},
        {"name": "Cards", "description": "Cards, filters and the move operation"},
        {"name": "Comments", "description": "Card comments"},
        {"name": "Labels", "description": "Board and global labels"},
        {"name": "Checklist", "description": "Card checklist items"},
        {"name": "Attachments", "description": "Card attachments"},
        {"name": "Activities", "description": "Read-only activity feed"},
        {"name": "Courses", "description": "Fixed default-course catalogue"},
        {"name": "Admin", "description": "Staff-only account management"}
    ],
    "paths": {
        "/register/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/token/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Obtain a token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/token/student/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Obtain a token pair, student accounts only",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "400": {"description": "Role mismatch", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/token/teacher/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Obtain a token pair, teacher accounts only",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TokenResponse"}},
                    "400": {"description": "Role mismatch", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/token/refresh/": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh the access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Expired or revoked", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/default-courses/": {
            "get": {
                "tags": ["Courses"],
                "summary": "List the default courses (teacher only)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/boards/": {
            "get": {
                "tags": ["Boards"],
                "summary": "List the caller's boards",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Boards"],
                "summary": "Create a board",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/boards/{id}/invite/": {
            "post": {
                "tags": ["Boards"],
                "summary": "Invite a user to a board",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InviteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/boards/{id}/members/": {
            "get": {
                "tags": ["Boards"],
                "summary": "List board members",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/boards/{id}/export/": {
            "get": {
                "tags": ["Boards"],
                "summary": "Export the board's cards as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cards/": {
            "get": {
                "tags": ["Cards"],
                "summary": "List visible cards",
                "parameters": [
                    {"name": "label", "in": "query", "type": "integer"},
                    {"name": "assignee", "in": "query", "type": "integer"},
                    {"name": "due_before", "in": "query", "type": "string"},
                    {"name": "due_after", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Cards"],
                "summary": "Create a card",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/cards/{id}/move/": {
            "patch": {
                "tags": ["Cards"],
                "summary": "Move a card to a list position",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "403": {"description": "Not a member of the destination board", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Card or list not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/activities/": {
            "get": {
                "tags": ["Activities"],
                "summary": "List activities on the caller's boards, newest first",
                "parameters": [
                    {"name": "board", "in": "query", "type": "integer"},
                    {"name": "card", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/": {
            "get": {
                "tags": ["Admin"],
                "summary": "List accounts (staff only)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create an account (staff only)",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/users/{id}/set_password/": {
            "post": {
                "tags": ["Admin"],
                "summary": "Set an account password directly",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Empty password", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TokenRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TokenResponse": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"},
                "user_id": {"type": "integer"},
                "is_staff": {"type": "boolean"}
            }
        },
        "TokenRefreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {
                "refresh": {"type": "string"}
            }
        },
        "InviteRequest": {
            "type": "object",
            "required": ["username"],
            "properties": {
                "username": {"type": "string"}
            }
        },
        "MoveCardRequest": {
            "type": "object",
            "required": ["list", "position"],
            "properties": {
                "list": {"type": "integer"},
                "position": {"type": "integer"}
            }
        },
        "SetPasswordRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "status": {"type": "integer"}
                    }
                }
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
