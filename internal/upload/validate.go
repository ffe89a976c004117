package upload

import "fmt"

type Reason string

const (
	ReasonNoFile   Reason = "no-file"
	ReasonBadType  Reason = "bad-type"
	ReasonTooLarge Reason = "too-large"
)

// ValidationError is a user-correctable problem with the selected file.
type ValidationError struct {
	Reason Reason
	File   string
}

var (
	ErrNoFile   = &ValidationError{Reason: ReasonNoFile}
	ErrBadType  = &ValidationError{Reason: ReasonBadType}
	ErrTooLarge = &ValidationError{Reason: ReasonTooLarge}
)

func (e *ValidationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.File, e.Reason)
}

// Is matches any ValidationError with the same reason, so callers can use
// errors.Is(err, upload.ErrBadType).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// Message is the text shown inline next to the upload control.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonNoFile:
		return "Please select a PDF first."
	case ReasonBadType:
		return "Please select a valid PDF file."
	case ReasonTooLarge:
		return fmt.Sprintf("File too large. Maximum size is %dMB.", MaxSize/(1024*1024))
	}
	return string(e.Reason)
}

// Validate checks presence, type and size, in that order.
func Validate(f *File) error {
	if f == nil {
		return &ValidationError{Reason: ReasonNoFile}
	}
	if f.MIMEType != PDFMIMEType {
		return &ValidationError{Reason: ReasonBadType, File: f.Name}
	}
	if f.Size > MaxSize {
		return &ValidationError{Reason: ReasonTooLarge, File: f.Name}
	}
	return nil
}
