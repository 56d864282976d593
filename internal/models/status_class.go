package models

import "fmt"

// StatusClass is the HTTP status range a record is counted under.
type StatusClass string

const (
	StatusSuccess     StatusClass = "2xx"
	StatusClientError StatusClass = "4xx"
	StatusServerError StatusClass = "5xx"
	StatusOther       StatusClass = "other"
)

// ClassifyStatus maps an HTTP status code onto its StatusClass.
// Codes outside [200,300), [400,500) and [500,600) are StatusOther.
func ClassifyStatus(status int) StatusClass {
	switch {
	case status >= 500 && status < 600:
		return StatusServerError
	case status >= 400 && status < 500:
		return StatusClientError
	case status >= 200 && status < 300:
		return StatusSuccess
	default:
		return StatusOther
	}
}

// IsError reports whether the class has a per-URL error table.
func (c StatusClass) IsError() bool {
	return c == StatusClientError || c == StatusServerError
}

func (c StatusClass) String() string {
	switch c {
	case StatusSuccess, StatusClientError, StatusServerError, StatusOther:
		return string(c)
	default:
		panic(fmt.Sprintf("invalid StatusClass: %q", string(c)))
	}
}
