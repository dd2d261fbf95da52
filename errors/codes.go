package errors

import "strconv"

// ErrorCode is the stable, client-facing error identifier returned in the
// "code" field of every error response.
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1005

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Meetings
	ErrorCode_MEETING_NOT_FOUND        ErrorCode = 3000
	ErrorCode_MEETING_INVALID_STATE    ErrorCode = 3001
	ErrorCode_MEETING_UPLOAD_FAILED    ErrorCode = 3002
	ErrorCode_MEETING_MISSING_ASSET    ErrorCode = 3003
	ErrorCode_MEETING_EMPTY_TRANSCRIPT ErrorCode = 3004

	// AI providers
	ErrorCode_AI_PROVIDER_FAILED      ErrorCode = 4000
	ErrorCode_AI_MALFORMED_RESPONSE   ErrorCode = 4001

	// Share links
	ErrorCode_SHARE_NOT_FOUND     ErrorCode = 5000
	ErrorCode_SHARE_EXPIRED       ErrorCode = 5001
	ErrorCode_SHARE_NOT_SHAREABLE ErrorCode = 5002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6001

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 7000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                "UNSPECIFIED",
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_STATE:      "MEETING_INVALID_STATE",
	ErrorCode_MEETING_UPLOAD_FAILED:      "MEETING_UPLOAD_FAILED",
	ErrorCode_MEETING_MISSING_ASSET:      "MEETING_MISSING_ASSET",
	ErrorCode_MEETING_EMPTY_TRANSCRIPT:   "MEETING_EMPTY_TRANSCRIPT",
	ErrorCode_AI_PROVIDER_FAILED:         "AI_PROVIDER_FAILED",
	ErrorCode_AI_MALFORMED_RESPONSE:      "AI_MALFORMED_RESPONSE",
	ErrorCode_SHARE_NOT_FOUND:            "SHARE_NOT_FOUND",
	ErrorCode_SHARE_EXPIRED:              "SHARE_EXPIRED",
	ErrorCode_SHARE_NOT_SHAREABLE:        "SHARE_NOT_SHAREABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
