package logx

const (
	FieldAction          = "action"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldAssetID         = "asset-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldOfferID         = "offer-id"
	FieldPartnerID       = "partner-id"
	FieldReason          = "reason"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldSKU             = "sku"
	FieldStack           = "stack"
	FieldState           = "state"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
