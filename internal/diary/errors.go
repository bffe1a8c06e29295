package diary

import "fmt"

// ValidationError reports bad client input. Surfaced as a 400 with a
// user-actionable message; never retried
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError reports a missing required credential. Operator-fixable,
// not user-fixable; surfaced as a 500 with a generic message
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError reports that the AI service returned an explicit error or an
// unparseable success payload. The wrapped error keeps the upstream detail
// for server-side logging; clients only ever see a generic retry-later message
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a storage operation failure. During ingestion it
// is swallowed after logging; during a history read it is a hard error
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
