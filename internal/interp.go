package internal

import (
	"io"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Executor runs source code through the whole pipeline. The interpreter
// is kept between calls so consecutive sources share globals.
type Executor struct {
	state  Reporter
	interp *Interpreter
	logger *logrus.Logger
}

// ExecutorOptions configures NewExecutor. Zero fields get defaults: the
// reporter writes to stderr and the logger is built from Config.
type ExecutorOptions struct {
	Config   Config
	Printer  IPrinter
	Reporter Reporter
	Logger   *logrus.Logger
}

// NewExecutor creates an executor printing program output through
// opts.Printer
func NewExecutor(opts ExecutorOptions) *Executor {
	e := &Executor{
		state:  opts.Reporter,
		logger: opts.Logger,
	}
	if e.logger == nil {
		e.logger = newLogger(opts.Config)
	}
	if e.state == nil {
		e.state = NewErrorContext(opts.Printer, os.Stderr, opts.Config.Color)
	}
	e.interp = NewInterpreter(opts.Printer, e.state, e.logger)
	return e
}

// Exec runs source. With exitOnError set, nothing is interpreted when the
// lexer, parser or resolver reported a problem and ErrStaticErrors is
// returned. The reporter is reset before Exec returns.
func (e *Executor) Exec(source string, exitOnError bool) error {
	start := time.Now()
	defer e.state.Reset()

	stmts := newParser(newLexer(source, e.state), e.state).parse()
	e.logger.WithFields(logrus.Fields{
		"stage":      "parser",
		"statements": len(stmts),
		"errors":     len(e.state.Diagnostics()),
	}).Debug("parsed source")

	newResolver(e.interp, e.state).resolve(stmts)
	e.logger.WithFields(logrus.Fields{
		"stage":  "resolver",
		"locals": len(e.interp.locals),
		"errors": len(e.state.Diagnostics()),
	}).Debug("resolved source")

	if exitOnError && e.state.HasError() {
		return ErrStaticErrors
	}

	ok := e.interp.Interpret(stmts)
	e.logger.WithFields(logrus.Fields{
		"stage":   "interpreter",
		"ok":      ok,
		"elapsed": time.Since(start),
	}).Debug("interpreted source")

	if !ok {
		return ErrRuntime
	}
	return nil
}

// Tokens returns the token stream of source, one token per line
func (e *Executor) Tokens(source string) string {
	var out strings.Builder
	for _, tk := range newLexer(source, e.state).scan() {
		out.WriteString(tk.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Tree returns the parsed statements of source, one per line
func (e *Executor) Tree(source string) string {
	var out strings.Builder
	for _, st := range newParser(newLexer(source, e.state), e.state).parse() {
		out.WriteString(stmtString(st))
		out.WriteString("\n")
	}
	return out.String()
}

// HasError reports whether the last source had static errors
func (e *Executor) HasError() bool {
	return e.state.HasError()
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(source string, p IPrinter) bool {
	cfg := DefaultConfig()
	exec := NewExecutor(ExecutorOptions{
		Config:   cfg,
		Printer:  p,
		Reporter: NewErrorContext(p, os.Stderr, false),
	})
	return exec.Exec(source, cfg.ExitOnError) == nil
}

func newLogger(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := cfg.Level()
	if err != nil {
		logger.WithError(err).Warn("invalid log level, using warn")
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

func newDiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}
