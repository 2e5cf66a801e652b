package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enrollment Platform API",
        "description": "Education enrollment platform: accounts, course catalog, applications, payments",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "User and admin registration and login"},
        {"name": "Courses", "description": "Course catalog"},
        {"name": "Applications", "description": "Enrollment application lifecycle"},
        {"name": "Payments", "description": "Payment ledger and installment plans"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Echo profile claims",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses grouped by program",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/dashboard/create-course": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Course id already exists"}
                }
            }
        },
        "/enroll": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit enrollment application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Course not found"},
                    "409": {"description": "Duplicate application number"}
                }
            }
        },
        "/applications/{applicationNumber}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Fetch application status",
                "parameters": [
                    {"name": "applicationNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/applications/{applicationId}/details": {
            "get": {
                "tags": ["Applications"],
                "summary": "Application joined with its course",
                "parameters": [
                    {"name": "applicationId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/dashboard/applications": {
            "get": {
                "tags": ["Applications"],
                "summary": "List in-processing applications",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/dashboard/applications/export": {
            "get": {
                "tags": ["Applications"],
                "summary": "Export pending applications as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/dashboard/applications/{applicationNumber}/approve": {
            "put": {
                "tags": ["Applications"],
                "summary": "Apply a review decision",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "applicationNumber", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/dashboard/applications/{applicationNumber}/deny": {
            "put": {
                "tags": ["Applications"],
                "summary": "Deny an application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "applicationNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record a payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Unknown payment option"}
                }
            }
        },
        "/payments/{applicationId}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Check whether a payment exists",
                "parameters": [
                    {"name": "applicationId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard/enrolled-courses": {
            "get": {
                "tags": ["Payments"],
                "summary": "Courses paid toward by the caller",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["full_name", "email", "password"],
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["id", "program", "title", "price", "duration", "start_date"],
            "properties": {
                "id": {"type": "string"},
                "program": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string"},
                "duration": {"type": "string"},
                "start_date": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "SubmitApplicationRequest": {
            "type": "object",
            "required": ["application_number", "full_name", "email", "phone", "qualification", "course_id", "statement_of_purpose"],
            "properties": {
                "application_number": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "qualification": {"type": "string"},
                "degree_type": {"type": "string"},
                "qualification_score": {"type": "number"},
                "course_id": {"type": "string"},
                "statement_of_purpose": {"type": "string"}
            }
        },
        "DecisionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Approved", "Denied"]}
            }
        },
        "RecordPaymentRequest": {
            "type": "object",
            "required": ["application_id", "full_name", "email", "course_id", "course_name", "fee", "payment_method", "payment_option", "card_number", "expiration_date", "cvv"],
            "properties": {
                "application_id": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "course_id": {"type": "string"},
                "course_name": {"type": "string"},
                "fee": {"type": "string"},
                "payment_method": {"type": "string"},
                "payment_option": {"type": "string", "enum": ["full_payment", "payment_plan"]},
                "card_number": {"type": "string"},
                "expiration_date": {"type": "string"},
                "cvv": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
