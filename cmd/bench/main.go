package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mliezun/lox/internal"
)

var source string = `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}

var start = clock();
print fib(%d);
`

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
	n := flag.Int("n", 27, "fibonacci number to compute")
	flag.Parse()

	start := time.Now()
	internal.RunSourceWithPrinter(fmt.Sprintf(source, *n), stdPrinter{})
	fmt.Println("Time elapsed is:", time.Since(start))
}
