package models

// Every JSON response carries a status field with one of these values.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// StatusResponse is the minimal envelope used for warnings and errors.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// CollectResponse reports the outcome of a fetch-and-save run.
type CollectResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// PricesResponse carries the stored history for one ticker.
type PricesResponse struct {
	Status string      `json:"status"`
	Ticker string      `json:"ticker"`
	Count  int         `json:"count"`
	Prices []*PriceBar `json:"prices"`
}

func GetErrorResponse(message, detail string) StatusResponse {
	return StatusResponse{
		Status:  StatusError,
		Message: message,
		Detail:  detail,
	}
}

func GetWarningResponse(message string) StatusResponse {
	return StatusResponse{
		Status:  StatusWarning,
		Message: message,
	}
}
