package diag

import "fmt"

// Severity captures how impactful a diagnostic is. Fatal diagnostics are the
// only class that aborts the stage that raised them.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityFatal   Severity = "fatal"
)

// Code is a stable identifier for a diagnostic. The leading letter names the
// taxonomy bucket: L lexical, S syntax, T type, M semantic, F FFI, I io,
// C internal, G generic.
type Code string

const (
	// Lexical errors
	CodeLexUnterminatedString  Code = "L001"
	CodeLexUnterminatedComment Code = "L002"
	CodeLexIllegalCharacter    Code = "L003"

	// Type errors
	CodeTypeUndefinedName     Code = "T001"
	CodeTypeUndefinedType     Code = "T002"
	CodeTypeMismatch          Code = "T003"
	CodeTypeInferenceFailure  Code = "T004"
	CodeTypeBadReturn         Code = "T005"
	CodeTypeBadCast           Code = "T006"
	CodeTypeBadOperand        Code = "T007"
	CodeTypeBadCall           Code = "T008"
	CodeTypeBadCondition      Code = "T009"
	CodeTypeOrPatternBindings Code = "T010"
	CodeTypeTraitIncomplete   Code = "T011"

	// Semantic errors
	CodeSemNotImplemented    Code = "M001"
	CodeSemUndefinedVariable Code = "M002"
	CodeSemLoweringDeferred  Code = "M003"

	// I/O errors
	CodeIOReadFailure Code = "I001"

	// Internal errors
	CodeInternalNilType Code = "C001"

	// Generic errors
	CodeGeneric Code = "G001"
)

// Diagnostic is a single compiler diagnostic. Appended once, never mutated.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	File     string
	Line     int
	Column   int
}

// String renders the diagnostic in file:line:column form.
func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", d.File, d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s[%s]: %s", d.Line, d.Column, d.Severity, d.Code, d.Message)
}
