package aggregators

import (
	"fmt"
	"math"
	"strings"

	"github.com/bytedance/sonic"

	"log-stats/internal/models"
)

const (
	fieldURL    = "url"
	fieldStatus = "status"
)

// recordDecoder keeps integral JSON numbers as int64 so status codes are not
// routed through float64.
var recordDecoder = sonic.Config{UseInt64: true}.Froze()

//go:generate mockgen -source=record_parser.go -destination=./mocks/record_parser_mock.go -package=mocks
type RecordParser interface {
	// Parse decodes one raw payload. Fields other than url and status are kept in Attributes.
	Parse(raw []byte) (*models.LogRecord, error)
}

type recordParser struct{}

func NewRecordParser() RecordParser {
	return &recordParser{}
}

func (p *recordParser) Parse(raw []byte) (*models.LogRecord, error) {
	var fields map[string]any
	if err := recordDecoder.Unmarshal(raw, &fields); err != nil {
		return nil, errMalformedRecord("invalid json", err)
	}
	if fields == nil {
		return nil, errMalformedRecord("record is not an object", nil)
	}

	url, err := p.parseURL(fields)
	if err != nil {
		return nil, err
	}
	status, err := p.parseStatus(fields)
	if err != nil {
		return nil, err
	}

	delete(fields, fieldURL)
	delete(fields, fieldStatus)

	return &models.LogRecord{
		URL:        url,
		Status:     status,
		Attributes: fields,
	}, nil
}

func (p *recordParser) parseURL(fields map[string]any) (string, error) {
	urlVal, ok := fields[fieldURL]
	if !ok {
		return "", errMalformedRecord("missing url", nil)
	}
	url, ok := urlVal.(string)
	if !ok {
		return "", errMalformedRecord("url must be a string", nil)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", errMalformedRecord("url must not be empty", nil)
	}
	return url, nil
}

func (p *recordParser) parseStatus(fields map[string]any) (int, error) {
	statusVal, ok := fields[fieldStatus]
	if !ok {
		return 0, errMalformedRecord("missing status", nil)
	}

	switch status := statusVal.(type) {
	case int64:
		if status < math.MinInt32 || status > math.MaxInt32 {
			return 0, errMalformedRecord(fmt.Sprintf("status out of range: %d", status), nil)
		}
		return int(status), nil
	case float64:
		if status != math.Trunc(status) || math.Abs(status) > math.MaxInt32 {
			return 0, errMalformedRecord(fmt.Sprintf("status must be an integer: %v", status), nil)
		}
		return int(status), nil
	default:
		return 0, errMalformedRecord("status must be an integer", nil)
	}
}
