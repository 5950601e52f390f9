// Package docs registers the swagger document served at /swagger.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Registered", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Tokens", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Rotate tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "Tokens", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "401": {"description": "Invalid token", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {"200": {"description": "User", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Revoke the refresh token",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Logged out", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["accounts"],
                "summary": "List accounts",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Search by name", "name": "q", "in": "query"},
                    {"type": "boolean", "description": "Active flag", "name": "is_active", "in": "query"}
                ],
                "responses": {"200": {"description": "Accounts", "schema": {"$ref": "#/definitions/handlers.AccountListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["accounts"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.AccountInput"}}],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/accounts/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["accounts"],
                "summary": "Get an account",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Account", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["accounts"],
                "summary": "Update an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.AccountUpdateFields"}}
                ],
                "responses": {
                    "200": {"description": "Account updated", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["accounts"],
                "summary": "Delete an account",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Account deleted", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Account has transactions", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "income or expense", "name": "type", "in": "query"}],
                "responses": {"200": {"description": "Categories", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CategoryInput"}}],
                "responses": {
                    "201": {"description": "Category created", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Get a category",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Category", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Update a category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.CategoryUpdateFields"}}
                ],
                "responses": {"200": {"description": "Category updated", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Category deleted", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Category in use", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List transactions",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "account_id", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "from_date", "in": "query"},
                    {"type": "string", "name": "to_date", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "min_amount", "in": "query"},
                    {"type": "string", "name": "max_amount", "in": "query"},
                    {"type": "string", "name": "sort_by", "in": "query"},
                    {"type": "string", "name": "sort_order", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "Transactions", "schema": {"$ref": "#/definitions/handlers.TransactionListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.TransactionInput"}}],
                "responses": {
                    "201": {"description": "Transaction created", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/transactions/transfer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Create a transfer",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.TransferInput"}}],
                "responses": {
                    "201": {"description": "Transfer created", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.TransactionUpdateFields"}}
                ],
                "responses": {
                    "200": {"description": "Transaction updated", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Validation failed or transfer leg", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction deleted", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/transactions/{id}/attachments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "List attachments",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Attachments", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Upload an attachment",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "JPEG, PNG or PDF receipt", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Attachment stored", "schema": {"$ref": "#/definitions/handlers.Response"}},
                    "422": {"description": "Invalid file", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/attachments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Download an attachment",
                "produces": ["application/octet-stream"],
                "parameters": [{"type": "string", "description": "Attachment ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Attachment content", "schema": {"type": "file"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["attachments"],
                "summary": "Delete an attachment",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Attachment ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Attachment deleted", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/transactions-statistics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Transaction statistics",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "from_date", "in": "query"},
                    {"type": "string", "name": "to_date", "in": "query"},
                    {"type": "string", "name": "account_id", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"}
                ],
                "responses": {"200": {"description": "Statistics", "schema": {"$ref": "#/definitions/handlers.Response"}}}
            }
        },
        "/reports/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Transactions report",
                "produces": ["application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "name": "from_date", "in": "query"},
                    {"type": "string", "name": "to_date", "in": "query"},
                    {"type": "string", "name": "account_id", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"},
                    {"type": "string", "description": "pdf (default) or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "Report document", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "handlers.Response": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "data": {}}
        },
        "handlers.TransactionListResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"type": "object"}},
                "pagination": {"$ref": "#/definitions/pagination.Meta"}
            }
        },
        "handlers.AccountListResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"type": "object"}},
                "meta": {"type": "object"}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "pagination.Meta": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "last_page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "from": {"type": "integer"},
                "to": {"type": "integer"}
            }
        },
        "services.AccountInput": {
            "type": "object",
            "required": ["name", "type", "starting_balance"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["cash", "bank", "ewallet", "other"]},
                "starting_balance": {"type": "string", "example": "150.00"},
                "is_active": {"type": "boolean"}
            }
        },
        "services.AccountUpdateFields": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["cash", "bank", "ewallet", "other"]},
                "starting_balance": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "services.CategoryInput": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "parent_id": {"type": "string"}
            }
        },
        "services.CategoryUpdateFields": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "parent_id": {"type": "string"}
            }
        },
        "services.TransactionInput": {
            "type": "object",
            "required": ["account_id", "category_id", "type", "date", "amount"],
            "properties": {
                "account_id": {"type": "string"},
                "category_id": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "date": {"type": "string", "example": "2024-01-15"},
                "amount": {"type": "string", "example": "12.50"},
                "note": {"type": "string"},
                "counterparty": {"type": "string"}
            }
        },
        "services.TransactionUpdateFields": {
            "type": "object",
            "properties": {
                "account_id": {"type": "string"},
                "category_id": {"type": "string"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "date": {"type": "string"},
                "amount": {"type": "string"},
                "note": {"type": "string"},
                "counterparty": {"type": "string"}
            }
        },
        "services.TransferInput": {
            "type": "object",
            "required": ["from_account_id", "to_account_id", "amount"],
            "properties": {
                "from_account_id": {"type": "string"},
                "to_account_id": {"type": "string"},
                "amount": {"type": "string", "example": "100.00"},
                "date": {"type": "string"},
                "note": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Brewbooks API",
	Description:      "Bookkeeping for coffee businesses: accounts, categories, transactions, transfers, statistics and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
