// Package docs holds the swag-generated OpenAPI description of the report API.
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
        "/baixar-laudo/{arquivo}": {
            "get": {
                "produces": [
                    "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
                ],
                "tags": [
                    "laudos"
                ],
                "summary": "Download report document",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Document file name (<uuid>.docx)",
                        "name": "arquivo",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/gerar-laudo-tireoide": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "laudos"
                ],
                "summary": "Generate thyroid ultrasound report",
                "parameters": [
                    {
                        "description": "Exam measurements",
                        "name": "exam",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/model.ExamInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.generateResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.errorPayload"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.FieldError"
                    }
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/handler.errorEnvelope"
                },
                "request_id": {
                    "type": "string"
                }
            }
        },
        "handler.generateResponse": {
            "type": "object",
            "properties": {
                "download_docx": {
                    "type": "string"
                },
                "laudo_txt": {
                    "type": "string"
                }
            }
        },
        "model.ExamInput": {
            "type": "object",
            "properties": {
                "espessura_istmo": {
                    "type": "number"
                },
                "idade": {
                    "type": "integer"
                },
                "medidas_lobo_direito": {
                    "$ref": "#/definitions/model.Measurements"
                },
                "medidas_lobo_esquerdo": {
                    "$ref": "#/definitions/model.Measurements"
                },
                "nodulos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Nodule"
                    }
                },
                "sexo": {
                    "type": "string"
                }
            }
        },
        "model.FieldError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "model.Measurements": {
            "type": "object",
            "properties": {
                "comprimento": {
                    "type": "number"
                },
                "espessura": {
                    "type": "number"
                },
                "largura": {
                    "type": "number"
                }
            }
        },
        "model.Nodule": {
            "type": "object",
            "properties": {
                "calcificacoes": {
                    "type": "string"
                },
                "composicao": {
                    "type": "string"
                },
                "dimensoes_mm": {
                    "type": "string"
                },
                "ecogenicidade": {
                    "type": "string"
                },
                "formato": {
                    "type": "string"
                },
                "local": {
                    "type": "string"
                },
                "margens": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Thyroid Report API",
	Description:      "Generates thyroid ultrasound reports as text and DOCX.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
