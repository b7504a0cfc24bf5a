package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EL Timetable",
        "description": "Tutoring timetable, payments and attendance",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Exports",
            "description": "CSV, Excel and PDF downloads"
        },
        {
            "name": "Search",
            "description": "Autocomplete for form inputs"
        },
        {
            "name": "Ops",
            "description": "Probes"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Health"
                        }
                    },
                    "503": {
                        "description": "Database unreachable",
                        "schema": {
                            "$ref": "#/definitions/Health"
                        }
                    }
                }
            }
        },
        "/search_students": {
            "get": {
                "tags": [
                    "Search"
                ],
                "summary": "Search students by name",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Case-insensitive substring"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Lookup"
                            }
                        }
                    }
                }
            }
        },
        "/search_teachers": {
            "get": {
                "tags": [
                    "Search"
                ],
                "summary": "Search teachers by name",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Case-insensitive substring"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Lookup"
                            }
                        }
                    }
                }
            }
        },
        "/search_subjects": {
            "get": {
                "tags": [
                    "Search"
                ],
                "summary": "Search subjects by name",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Case-insensitive substring"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Lookup"
                            }
                        }
                    }
                }
            }
        },
        "/download_weekly/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download this week's sessions",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        },
        "/download_payments/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download this month's dues per student",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        },
        "/download_totals/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download this month's teacher totals",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    },
                    {
                        "name": "metric",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "students",
                            "sessions"
                        ],
                        "description": "Per-subject column, students by default"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        },
        "/export/students/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export the student roster",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        },
        "/export/payments/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export recorded payments",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "format": "date",
                        "description": "First day, inclusive"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "format": "date",
                        "description": "Last day, inclusive"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        },
        "/export/attendance/{format}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export attendance",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "format",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "csv",
                            "excel",
                            "pdf"
                        ]
                    },
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "format": "date",
                        "description": "First day, inclusive"
                    },
                    {
                        "name": "to",
                        "in": "query",
                        "type": "string",
                        "format": "date",
                        "description": "Last day, inclusive"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "302": {
                        "description": "Invalid request, flashed on the originating page"
                    }
                }
            }
        }
    },
    "definitions": {
        "Lookup": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "Health": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "database": {
                    "type": "string"
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
