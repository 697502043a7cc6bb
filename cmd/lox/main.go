package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/mliezun/lox/internal"
)

// Exit codes
const (
	exitOK      = 0
	exitUsage   = 64
	exitData    = 65
	exitNoInput = 66
	exitRuntime = 70
)

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(w, a...)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default $HOME/.loxrc.yaml)")
	dumpTokens := fs.Bool("tokens", false, "print the tokens of the script and exit")
	dumpTree := fs.Bool("ast", false, "print the syntax tree of the script and exit")
	verbose := fs.Bool("v", false, "log every pipeline stage")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: lox [flags] [/path/to/script.lox]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	exec := internal.NewExecutor(internal.ExecutorOptions{
		Config:  cfg,
		Printer: stdPrinter{},
	})

	switch fs.NArg() {
	case 0:
		return repl(exec, cfg)
	case 1:
		source, code := readSource(fs.Arg(0))
		if code != exitOK {
			return code
		}
		if *dumpTokens || *dumpTree {
			return dump(exec, source, *dumpTokens)
		}
		return runSource(exec, source, cfg.ExitOnError)
	default:
		fs.Usage()
		return exitUsage
	}
}

func loadConfig(path string) (internal.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return internal.DefaultConfig(), err
		}
		return internal.LoadConfig(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return internal.DefaultConfig(), nil
	}
	return internal.LoadConfig(filepath.Join(home, ".loxrc.yaml"))
}

func readSource(path string) (string, int) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", exitNoInput
	}

	file, err := os.Open(absPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' not found.\n", absPath)
		return "", exitNoInput
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", exitNoInput
	}
	defer file.Close()

	b, err := ioutil.ReadAll(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return "", exitNoInput
	}

	return string(b), exitOK
}

func dump(exec *internal.Executor, source string, tokens bool) int {
	if tokens {
		fmt.Print(exec.Tokens(source))
	} else {
		fmt.Print(exec.Tree(source))
	}
	if exec.HasError() {
		return exitData
	}
	return exitOK
}

func runSource(exec *internal.Executor, source string, exitOnError bool) int {
	err := exec.Exec(source, exitOnError)
	switch {
	case errors.Is(err, internal.ErrStaticErrors):
		return exitData
	case errors.Is(err, internal.ErrRuntime):
		return exitRuntime
	}
	return exitOK
}
