package response

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Error(code, message string, details interface{}) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	}
}
