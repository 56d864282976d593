package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldWorkerID   = "worker_id"
	FieldBatchID    = "batch_id"
	FieldBatchSize  = "batch_size"
	FieldRound      = "round"
	FieldSnapshotID = "snapshot_id"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldStream     = "stream"
)
