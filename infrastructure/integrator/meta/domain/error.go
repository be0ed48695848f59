package metadomain

import (
	"fmt"
	"strings"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// Códigos de rate limit da Graph API e da Marketing API
var rateLimitCodes = map[int]struct{}{
	4:     {}, // Application request limit
	17:    {}, // User request limit
	32:    {}, // Page request limit
	613:   {}, // Calls within one hour exceeded
	80000: {},
	80001: {},
	80002: {},
	80003: {},
	80004: {},
	80005: {},
	80006: {},
	80008: {},
	80009: {},
	80014: {},
}

// Subcódigos que indicam orçamento de chamadas da conta esgotado, não apenas rajada
var hardRateLimitSubcodes = map[int]struct{}{
	2446079: {},
	1487742: {},
}

// APIError é o erro tipado devolvido pelo client para respostas não-200
type APIError struct {
	HTTPStatus int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string
}

func NewAPIError(status int, resp *ErrorResponse) *APIError {
	return &APIError{
		HTTPStatus: status,
		Code:       resp.Error.Code,
		Subcode:    resp.Error.ErrorSubcode,
		Type:       resp.Error.Type,
		Message:    resp.Error.Message,
		FBTraceID:  resp.Error.FBTraceID,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api error (status %d, code %d, subcode %d): %s", e.HTTPStatus, e.Code, e.Subcode, e.Message)
}

func (e *APIError) IsRateLimit() bool {
	_, ok := rateLimitCodes[e.Code]
	return ok || e.IsHardRateLimit()
}

func (e *APIError) IsHardRateLimit() bool {
	_, ok := hardRateLimitSubcodes[e.Subcode]
	return ok
}

// IsNotFound cobre objetos removidos ou inexistentes (code 100 / subcode 33)
func (e *APIError) IsNotFound() bool {
	return e.HTTPStatus == 404 || (e.Code == 100 && e.Subcode == 33)
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *APIError) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.Subcode == 460 || e.Subcode == 463 || e.Subcode == 467)) ||
		ContainsTokenExpirationMessage(e.Message)
}

// ContainsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func ContainsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
