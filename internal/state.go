package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
)

// Reporter collects the diagnostics produced by every stage of the pipeline
type Reporter interface {
	// Error reports a problem tied to a source line
	Error(line int, message string)
	// ErrorAt reports a problem tied to a token
	ErrorAt(tk *Token, message string)
	// RuntimeError reports an error that aborted interpretation
	RuntimeError(err *RuntimeError)
	HasError() bool
	HasRuntimeError() bool
	Diagnostics() []Diagnostic
	Reset()
}

// Diagnostic is a single reported problem
type Diagnostic struct {
	Line    int
	Where   string
	Message string
	Runtime bool
}

func (d Diagnostic) String() string {
	if d.Runtime {
		return fmt.Sprintf("[%d]: Runtime Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[%d]: Error%s: %s", d.Line, d.Where, d.Message)
}

// errorContext is the default Reporter. Every diagnostic is written as soon
// as it is reported.
type errorContext struct {
	diagnostics     []Diagnostic
	hadError        bool
	hadRuntimeError bool

	logger IPrinter
	out    io.Writer
	colors *color.Color
}

// NewErrorContext creates a Reporter that prints through p to out.
// Colors are only used when colored is set and out is a terminal.
func NewErrorContext(p IPrinter, out io.Writer, colored bool) Reporter {
	c := color.New()
	c.SetOutput(out)
	if !colored {
		c.Disable()
	}
	return &errorContext{
		logger: p,
		out:    out,
		colors: c,
	}
}

func (s *errorContext) Error(line int, message string) {
	s.report(Diagnostic{Line: line, Message: message})
}

func (s *errorContext) ErrorAt(tk *Token, message string) {
	if tk.Type == tkEOF {
		s.report(Diagnostic{Line: tk.Line, Where: " at end", Message: message})
		return
	}
	s.report(Diagnostic{Line: tk.Line, Where: fmt.Sprintf(" at '%s'", tk.Lexeme), Message: message})
}

func (s *errorContext) RuntimeError(err *RuntimeError) {
	line := 0
	if err.Token != nil {
		line = err.Token.Line
	}
	d := Diagnostic{Line: line, Message: err.Message, Runtime: true}
	s.diagnostics = append(s.diagnostics, d)
	s.hadRuntimeError = true
	s.logger.Fprintf(s.out, "[%d]: %s: %s\n", d.Line, s.colors.Red("Runtime Error"), d.Message)
}

func (s *errorContext) report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
	s.hadError = true
	s.logger.Fprintf(s.out, "[%d]: %s%s: %s\n", d.Line, s.colors.Red("Error"), d.Where, d.Message)
}

func (s *errorContext) HasError() bool {
	return s.hadError
}

func (s *errorContext) HasRuntimeError() bool {
	return s.hadRuntimeError
}

func (s *errorContext) Diagnostics() []Diagnostic {
	return s.diagnostics
}

func (s *errorContext) Reset() {
	s.diagnostics = nil
	s.hadError = false
	s.hadRuntimeError = false
}

// Pipeline errors
var (
	ErrStaticErrors = errors.New("source contains errors")
	ErrRuntime      = errors.New("runtime error")
)

// Runtime errors
var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedProperty = errors.New("undefined property")
	ErrInvalidType       = errors.New("invalid type")
	ErrNotCallable       = errors.New("not callable")
	ErrArityMismatch     = errors.New("arity mismatch")
)

// RuntimeError is raised while executing statements. Err is one of the
// runtime sentinels above and Token marks where it happened.
type RuntimeError struct {
	Err     error
	Token   *Token
	Message string
}

func newRuntimeError(err error, tk *Token, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{
		Err:     err,
		Token:   tk,
		Message: fmt.Sprintf(format, a...),
	}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
