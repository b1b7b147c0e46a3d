package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AEWS API",
        "description": "Academic early-warning system backend",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Auth", "description": "Signup, login and token lifecycle"},
        {"name": "Users", "description": "Account administration"},
        {"name": "Students", "description": "Legacy student directory"},
        {"name": "Classes", "description": "Classes and enrollments"},
        {"name": "Interventions", "description": "Intervention tracking"},
        {"name": "Notifications", "description": "Per-role notifications"},
        {"name": "Admin", "description": "Aggregated dashboards, reports and moderation"}
    ],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register an account and send the verification email",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Duplicate or invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Email not verified"}
                }
            }
        },
        "/auth/verify-email": {
            "get": {
                "tags": ["Auth"],
                "summary": "Confirm an email address",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Verified"},
                    "400": {"description": "Invalid or expired link"}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Start the password reset flow",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generic acknowledgement"}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Set a new password with a reset token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password updated"},
                    "400": {"description": "Invalid or expired link"}
                }
            }
        },
        "/auth/email-status": {
            "get": {
                "tags": ["Auth"],
                "summary": "Report whether SMTP delivery is configured",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/test-email": {
            "post": {
                "tags": ["Auth"],
                "summary": "Send a test email through the configured relay",
                "parameters": [
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Delivery attempt result"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List accounts",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create an account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get an account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Users"],
                "summary": "Update an account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete an account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List directory students",
                "parameters": [
                    {"name": "risk", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create a directory student",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a directory student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Students"],
                "summary": "Update a directory student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a directory student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "parameters": [
                    {"name": "instructor_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create a class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/classes/risk-alerts": {
            "get": {
                "tags": ["Classes"],
                "summary": "List at-risk enrollments across an instructor's classes",
                "parameters": [
                    {"name": "instructor_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes/instructor-students": {
            "get": {
                "tags": ["Classes"],
                "summary": "List every student across an instructor's classes",
                "parameters": [
                    {"name": "instructor_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/classes/{id}/students": {
            "get": {
                "tags": ["Classes"],
                "summary": "List the class roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Enroll a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Enrolled"},
                    "400": {"description": "Already enrolled"}
                }
            }
        },
        "/classes/{id}/students/batch": {
            "post": {
                "tags": ["Classes"],
                "summary": "Enroll many students, skipping duplicates",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Added and skipped counts"}
                }
            }
        },
        "/classes/{id}/students/{email}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Update an enrollment's grade, risk or note",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Enrollment not found"}
                }
            }
        },
        "/classes/{id}/risk-summary": {
            "get": {
                "tags": ["Classes"],
                "summary": "Risk counts and at-risk roster for a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/interventions": {
            "get": {
                "tags": ["Interventions"],
                "summary": "List interventions",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Interventions"],
                "summary": "Create an intervention",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/interventions/{id}": {
            "get": {
                "tags": ["Interventions"],
                "summary": "Get an intervention",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "patch": {
                "tags": ["Interventions"],
                "summary": "Update an intervention",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"}
                }
            },
            "delete": {
                "tags": ["Interventions"],
                "summary": "Delete an intervention",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications for a role",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Create a notification",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/notifications/{id}/read": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark one notification read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Marked"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/notifications/{role}/mark-all-read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark every unread notification for a role",
                "parameters": [
                    {"name": "role", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated count"}
                }
            }
        },
        "/admin/overview": {
            "get": {
                "tags": ["Admin"],
                "summary": "Campus-wide KPI overview",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/overview/students-at-risk": {
            "get": {
                "tags": ["Admin"],
                "summary": "At-risk enrollments across the campus",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/overview/departments": {
            "get": {
                "tags": ["Admin"],
                "summary": "Per-department risk breakdown",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/overview/instructors": {
            "get": {
                "tags": ["Admin"],
                "summary": "Per-instructor breakdown",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/overview/trends": {
            "get": {
                "tags": ["Admin"],
                "summary": "Risk trend data points",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/departments": {
            "get": {
                "tags": ["Admin"],
                "summary": "Distinct department names",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/students/{email}": {
            "get": {
                "tags": ["Admin"],
                "summary": "Cross-class profile for one student email",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No enrollments"}
                }
            }
        },
        "/admin/analytics/department-chart": {
            "get": {
                "tags": ["Admin"],
                "summary": "Department dataset for charting",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/analytics/risk-distribution": {
            "get": {
                "tags": ["Admin"],
                "summary": "High/Medium/Low distribution",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/analytics/accuracy": {
            "get": {
                "tags": ["Admin"],
                "summary": "Model accuracy series (always empty)",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/reports": {
            "get": {
                "tags": ["Admin"],
                "summary": "List downloadable reports",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/reports/{id}/download": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download a report as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File attachment"},
                    "404": {"description": "Unknown or non-downloadable report"}
                }
            }
        },
        "/admin/pending-accounts": {
            "get": {
                "tags": ["Admin"],
                "summary": "List accounts awaiting moderation",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/pending-accounts/{id}/approve": {
            "post": {
                "tags": ["Admin"],
                "summary": "Approve a pending account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Approved"},
                    "404": {"description": "Not pending"}
                }
            }
        },
        "/admin/pending-accounts/{id}/decline": {
            "post": {
                "tags": ["Admin"],
                "summary": "Decline a pending account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Declined"},
                    "404": {"description": "Not pending"}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["instructor", "admin", "amu-staff"]},
                "department": {"type": "string"},
                "contact_number": {"type": "string"}
            },
            "required": ["name", "email", "password", "role"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            },
            "required": ["email", "password", "role"]
        },
        "ForgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["token", "password"]
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "subject_code": {"type": "string"},
                "subject_name": {"type": "string"},
                "instructor_id": {"type": "string"}
            },
            "required": ["subject_code", "subject_name", "instructor_id"]
        },
        "AddStudentRequest": {
            "type": "object",
            "properties": {
                "student_email": {"type": "string"}
            },
            "required": ["student_email"]
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
