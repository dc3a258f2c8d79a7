// Package docs is generated by swag from the handler annotations.
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "헬스 체크 (Healthz)",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/onboarding": {
            "post": {
                "description": "학생 프로필을 만들고 세션 토큰과 첫 인사 메시지를 반환합니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "온보딩 (Onboarding)",
                "parameters": [
                    {"type": "string", "description": "수업 코드 (CLASS_CODE 설정 시 필수)", "name": "X-Class-Code", "in": "header"},
                    {"description": "온보딩 정보", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OnboardingData"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OnboardingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "잘못된 수업 코드", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "저장된 프로필을 불러옵니다. 404이면 온보딩이 필요합니다.",
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "프로필 및 세션 조회 (Profile)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tutor.Session"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "프로필 없음", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "프로필과 대화 기록을 모두 삭제합니다.",
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "프로필 리셋 (Reset)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/messages": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "대화 기록 조회 (Messages)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessagesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "프로필 없음", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "질문을 보내고 튜터의 답변을 받습니다. JSON 또는 multipart(text, image) 모두 지원합니다.\n답변 생성 실패 시에도 200과 함께 안내 문구가 반환됩니다.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "메시지 전송 (Send)",
                "parameters": [
                    {"description": "JSON 요청", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.SendMessageRequest"}},
                    {"type": "string", "description": "질문 (multipart)", "name": "text", "in": "formData"},
                    {"type": "file", "description": "문제 사진 (multipart)", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tutor.Exchange"}},
                    "400": {"description": "빈 메시지 또는 잘못된 사진", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "프로필 없음", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "이전 요청 처리 중", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "사진 용량 초과", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/messages/{id}/audio": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "튜터 메시지를 MP3로 읽어 줍니다. VOICE_ENABLED일 때만 사용 가능합니다.",
                "produces": ["audio/mpeg"],
                "tags": ["Voice"],
                "summary": "답변 음성 듣기 (Narrate)",
                "parameters": [
                    {"type": "string", "description": "메시지 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "음성 기능 비활성화", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/voice": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "녹음(WEBM/Opus)을 텍스트로 변환한 뒤 일반 메시지처럼 전송합니다.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Voice"],
                "summary": "음성 질문 (Voice)",
                "parameters": [
                    {"type": "file", "description": "녹음 파일", "name": "audio", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VoiceResponse"}},
                    "400": {"description": "녹음 누락 또는 인식 실패", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "이전 요청 처리 중", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "음성 기능 비활성화", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/ws/chat": {
            "get": {
                "description": "튜터와 실시간으로 대화하기 위한 WebSocket 연결을 시작합니다.\n<br>\n**참고: 이것은 표준 HTTP API가 아닙니다.**\n클라이언트는 ` + "`" + `ws://` + "`" + ` 또는 ` + "`" + `wss://` + "`" + ` 스킴을 사용하여 이 엔드포인트에 연결해야 합니다.\n인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.\n연결 직후 기존 대화 기록이 ` + "`" + `message` + "`" + ` 프레임으로 전송됩니다.",
                "tags": ["WebSocket (Chat)"],
                "summary": "실시간 채팅 WebSocket 연결",
                "parameters": [
                    {"type": "string", "description": "온보딩 시 발급받은 JWT 토큰", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "101": {"description": "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)", "schema": {"type": "string"}},
                    "401": {"description": "토큰 누락 또는 유효하지 않은 토큰", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "프로필 없음", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "에러 원인 및 설명"}}
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Profile reset"}}
        },
        "handler.SendMessageRequest": {
            "type": "object",
            "properties": {
                "image": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo..."},
                "text": {"type": "string", "example": "What is 3/4 of 20?"}
            }
        },
        "handler.MessagesResponse": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}},
                "processing": {"type": "boolean"}
            }
        },
        "handler.OnboardingResponse": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}},
                "processing": {"type": "boolean"},
                "profile": {"$ref": "#/definitions/models.UserProfile"},
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        },
        "handler.VoiceResponse": {
            "type": "object",
            "properties": {
                "reply": {"$ref": "#/definitions/models.ChatMessage"},
                "transcript": {"type": "string", "example": "what is seven times eight"},
                "user": {"$ref": "#/definitions/models.ChatMessage"}
            }
        },
        "models.ChatMessage": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "imageUrl": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "model"]},
                "text": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "models.OnboardingData": {
            "type": "object",
            "properties": {
                "bio": {"type": "string", "example": "I like math"},
                "dreamJob": {"type": "string", "example": "Astronaut"},
                "favoredCelebrity": {"type": "string", "example": "MrBeast"},
                "gradeLevel": {"type": "string", "example": "Grade 8"},
                "hobby": {"type": "string", "example": "Gaming"}
            }
        },
        "models.UserProfile": {
            "type": "object",
            "properties": {
                "bio": {"type": "string"},
                "displayName": {"type": "string"},
                "dreamJob": {"type": "string"},
                "favoredCelebrity": {"type": "string"},
                "gradeLevel": {"type": "string"},
                "hobby": {"type": "string"},
                "isProfileComplete": {"type": "boolean"},
                "uid": {"type": "string"}
            }
        },
        "tutor.Exchange": {
            "type": "object",
            "properties": {
                "reply": {"$ref": "#/definitions/models.ChatMessage"},
                "user": {"$ref": "#/definitions/models.ChatMessage"}
            }
        },
        "tutor.Session": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}},
                "processing": {"type": "boolean"},
                "profile": {"$ref": "#/definitions/models.UserProfile"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Geleza Smart API",
	Description:      "Personalized math tutor for students: onboarding, chat, photo and voice questions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
