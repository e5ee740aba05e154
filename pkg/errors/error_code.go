package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidMode          ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeSessionFailed         ErrorCode = 203

	// Strategy errors (300-399)
	ErrCodeStrategyNotFound ErrorCode = 300

	// Engine errors (400-499)
	ErrCodeEngineNoStrategies ErrorCode = 400
	ErrCodeScanCanceled       ErrorCode = 401

	// Pool errors (500-599)
	ErrCodePoolFileNotFound      ErrorCode = 500
	ErrCodePoolFileInvalid       ErrorCode = 501
	ErrCodePoolMissingCodeColumn ErrorCode = 502

	// Sink errors (600-699)
	ErrCodeSinkWriteFailed ErrorCode = 600
)
