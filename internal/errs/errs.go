// Package errs defines the diagnostic taxonomy shared by the scanner,
// parser, resolver and interpreter.
package errs

import (
	"fmt"

	"github.com/cbowman/loxi/internal/token"
)

// Category groups a Diagnostic by the pipeline stage that raised it.
type Category string

const (
	CategoryScanner  Category = "scanner"
	CategoryParser   Category = "parser"
	CategoryResolver Category = "resolver"
	CategoryRuntime  Category = "runtime"
)

// Code names a specific static or runtime error condition, so tests and
// callers can assert on "which error" without parsing message text.
type Code string

const (
	// Parser codes.
	CodeExpectedExpression  Code = "ExpectedExpression"
	CodeInvalidConsumeType  Code = "InvalidConsumeType"
	CodeInvalidAssignTarget Code = "InvalidAssignTarget"
	CodeMaxArgNumber        Code = "MaxArgNumber"

	// Resolver codes.
	CodeVariableNotInitialized Code = "VariableNotInitialized"
	CodeVariableAlreadyExists  Code = "VariableAlreadyExists"
	CodeTopLevelReturn         Code = "TopLevelReturn"
	CodeReturnFromInit         Code = "ReturnFromInit"
	CodeThisOutsideClass       Code = "ThisOutsideClass"
	CodeSuperOutsideClass      Code = "SuperOutsideClass"
	CodeClassInheritItself     Code = "ClassInheritItself"

	// Runtime codes.
	CodeUnreachableCode         Code = "UnreachableCode"
	CodeExpectedNumberOperand   Code = "ExpectedNumberOperand"
	CodeExpectedNumberOperands  Code = "ExpectedNumberOperands"
	CodeExpectedAddableOperands Code = "ExpectedAddableOperands"
	CodeInvalidCallObjectType   Code = "InvalidCallObjectType"
	CodeInvalidArgsCount        Code = "InvalidArgsCount"
	CodeUnknownVariable         Code = "UnknownVariable"
	CodeUndefinedProperty       Code = "UndefinedProperty"
	CodeNativeArgumentType      Code = "NativeArgumentType"
)

// Diagnostic is a single reported problem, carrying the category, a
// machine-checkable Code, the offending token's position and a
// human-readable message.
type Diagnostic struct {
	Category Category
	Code     Code
	Message  string
	Pos      token.Position
	Err      error // wrapped lower-level cause, if any
}

// Error renders the single-line diagnostic format required by the CLI:
// "line N -> <message>".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("line %d -> %s", d.Pos.Line, d.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (d *Diagnostic) Unwrap() error { return d.Err }

// New constructs a Diagnostic.
func New(cat Category, code Code, pos token.Position, msg string) *Diagnostic {
	return &Diagnostic{Category: cat, Code: code, Pos: pos, Message: msg}
}

// Newf constructs a Diagnostic with a formatted message.
func Newf(cat Category, code Code, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Category: cat, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches stage context to a lower-level error.
func Wrap(err error, cat Category, code Code, pos token.Position) *Diagnostic {
	return &Diagnostic{Category: cat, Code: code, Pos: pos, Message: err.Error(), Err: err}
}
