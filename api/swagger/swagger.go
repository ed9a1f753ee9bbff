package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scholarship Portal API",
        "description": "Application portal for a summer scholarship program",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "https"
    ],
    "tags": [
        {"name": "Authentication", "description": "Google OAuth login flow"},
        {"name": "Applications", "description": "Applicant record lifecycle"},
        {"name": "Settings", "description": "Submission gate"},
        {"name": "Roster", "description": "Admin and reviewer membership"},
        {"name": "Assignments", "description": "Review assignment distribution"},
        {"name": "Reviews", "description": "Review workflow and grading"},
        {"name": "Exports", "description": "CSV and PDF exports"},
        {"name": "Maintenance", "description": "End-of-cycle cleanup"}
    ],
    "paths": {
        "/auth/google": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Start Google login",
                "responses": {
                    "307": {"description": "Redirect to the Google consent screen"}
                }
            }
        },
        "/auth/callback": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Complete Google login",
                "parameters": [
                    {"name": "code", "in": "query", "type": "string", "required": true},
                    {"name": "state", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "307": {"description": "Session cookie set, redirect to dashboard"},
                    "400": {"description": "Invalid or expired state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Code exchange failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the current session",
                "responses": {
                    "204": {"description": "Session cookie expired"}
                }
            }
        },
        "/applications/me": {
            "get": {
                "tags": ["Applications"],
                "summary": "Get own application",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No application on file", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/draft": {
            "put": {
                "tags": ["Applications"],
                "summary": "Save application draft",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "Draft saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already submitted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Applications"],
                "summary": "Delete application draft",
                "responses": {
                    "204": {"description": "Draft removed"}
                }
            }
        },
        "/applications/submit": {
            "post": {
                "tags": ["Applications"],
                "summary": "Submit application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "303": {"description": "Redirect back to dashboard with outcome code"},
                    "400": {"description": "Incomplete payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get submission gate status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/settings": {
            "put": {
                "tags": ["Settings"],
                "summary": "Toggle the submission gate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/roster": {
            "get": {
                "tags": ["Roster"],
                "summary": "List the roster",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/roster/reviewers": {
            "post": {
                "tags": ["Roster"],
                "summary": "Add a reviewer",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddReviewerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Reviewer added", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already holds a role", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/roster/admins/{email}": {
            "delete": {
                "tags": ["Roster"],
                "summary": "Remove an admin",
                "parameters": [
                    {"name": "email", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Admin removed, assignments reverted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Admin not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Self-removal rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/assignments": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign applications manually",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignApplicationsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/assignments/auto": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Distribute unassigned applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/assignments/unassign-all": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Unassign every application",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reviews/{id}/status": {
            "patch": {
                "tags": ["Reviews"],
                "summary": "Update review status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReviewStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not assigned to caller", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/reviews/{id}": {
            "put": {
                "tags": ["Reviews"],
                "summary": "Save a review",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/export/csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export submissions as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV attachment"},
                    "404": {"description": "Nothing to export", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications/{id}/pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export one application as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF attachment"},
                    "404": {"description": "Application not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/wipe": {
            "post": {
                "tags": ["Maintenance"],
                "summary": "Wipe all application data",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WipeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Wipe completed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Confirmation code mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Admin roster empty", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SaveDraftRequest": {
            "type": "object",
            "properties": {
                "essay_one": {"type": "string"},
                "essay_two": {"type": "string"},
                "programming_experience": {"type": "string"},
                "languages": {"type": "array", "items": {"type": "string"}},
                "research_experience": {"type": "string"},
                "grade_level": {"type": "string"},
                "clubs_activities": {"type": "string"},
                "final_thoughts": {"type": "string"}
            }
        },
        "SubmitApplicationRequest": {
            "type": "object",
            "required": ["essay_one", "essay_two", "programming_experience", "languages", "research_experience", "grade_level", "needs_financial_aid", "clubs_activities", "final_thoughts", "first_name", "last_name", "preferred_email", "location"],
            "properties": {
                "essay_one": {"type": "string"},
                "essay_two": {"type": "string"},
                "programming_experience": {"type": "string"},
                "languages": {"type": "array", "items": {"type": "string"}},
                "research_experience": {"type": "string"},
                "grade_level": {"type": "string"},
                "needs_financial_aid": {"type": "boolean"},
                "clubs_activities": {"type": "string"},
                "final_thoughts": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "preferred_email": {"type": "string"},
                "location": {"type": "string"}
            }
        },
        "ToggleSettingsRequest": {
            "type": "object",
            "required": ["open"],
            "properties": {
                "open": {"type": "boolean"}
            }
        },
        "AddReviewerRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"}
            }
        },
        "AssignApplicationsRequest": {
            "type": "object",
            "required": ["application_ids", "assign_to_email"],
            "properties": {
                "application_ids": {"type": "array", "items": {"type": "string"}},
                "assign_to_email": {"type": "string"}
            }
        },
        "UpdateReviewStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["assigned", "in_review", "completed"]}
            }
        },
        "SaveReviewRequest": {
            "type": "object",
            "properties": {
                "grade": {"type": "integer", "minimum": 1, "maximum": 5},
                "notes": {"type": "string"}
            }
        },
        "WipeRequest": {
            "type": "object",
            "required": ["confirmation_code"],
            "properties": {
                "confirmation_code": {"type": "string"}
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
