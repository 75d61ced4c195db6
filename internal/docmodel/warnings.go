package docmodel

import "fmt"

// WarningCode identifies a non-fatal conversion condition. Warnings are
// collected during a run and returned alongside the produced result.
type WarningCode string

const (
	// WarnAnnotationRestore: speaker-note metadata was missing or
	// malformed; restoration degraded to best-effort.
	WarnAnnotationRestore WarningCode = "annotation_restore"

	// WarnFieldCodeHyperlink: a hyperlink stored in the legacy
	// field-code form was copied as plain text.
	WarnFieldCodeHyperlink WarningCode = "field_code_hyperlink"

	// WarnHeadingFormattingLoss: inline character formatting on a
	// heading paragraph's runs was dropped; only the heading itself
	// survives.
	WarnHeadingFormattingLoss WarningCode = "heading_formatting_loss"
)

// Warning is a non-fatal condition surfaced to the caller.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Warnf builds a Warning with a formatted message.
func Warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
