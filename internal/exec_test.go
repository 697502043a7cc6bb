package internal

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"testing"
)

type testPrinter struct {
	printed string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	t.printed += fmt.Sprintf(format, a...)
	return 0, nil
}

func (t *testPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return t.Println(a...)
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
}

func checkExpression(t *testing.T, exp string, result ...string) {
	t.Helper()
	source := "print " + exp + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	any := false
	for _, r := range result {
		if tp.Equals(r) {
			any = true
			break
		}
	}
	if !any {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %s",
			exp,
			result,
			tp.printed,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("[%d]: Runtime Error: %s", line, errorMsg)

	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----",
			source,
			result,
			tp.printed,
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	t.Helper()
	source := code + "\nprint " + resultVar + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %s",
			code,
			resultVar,
			result,
			tp.printed,
		)
	}
}

// runtimeError runs source statement by statement and returns the first
// runtime error instead of reporting it
func runtimeError(t *testing.T, source string) error {
	t.Helper()
	tp := &testPrinter{}
	state := NewErrorContext(tp, ioutil.Discard, false)
	interp := NewInterpreter(tp, state, nil)

	stmts := newParser(newLexer(source, state), state).parse()
	newResolver(interp, state).resolve(stmts)
	if state.HasError() {
		t.Fatalf("unexpected static errors in %q: %s", source, tp.printed)
	}

	for _, s := range stmts {
		if _, err := interp.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		// Number
		checkExpression(t, "1", "1")
		checkExpression(t, "2.50", "2.5")

		// Negative
		checkExpression(t, "-1", "-1")
		checkExpression(t, "--1", "1")

		// Add numbers
		checkExpression(t, "1 + 2 + 3", "6")

		// Subtract numbers
		checkExpression(t, "8 - 2", "6")
		checkExpression(t, "1 - 2 - 3", "-4")

		// Multiply numbers
		checkExpression(t, "1 * 2 * 3", "6")

		// Divide numbers
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "1 / 4", "0.25")
		checkExpression(t, "1 / 3", "0.3333333333333333")

		// Precedence
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "(1 + 2) * 3", "9")
	}

	// IEEE-754
	{
		checkExpression(t, "1 / 0", "Infinity")
		checkExpression(t, "-1 / 0", "-Infinity")
		checkExpression(t, "0 / 0", "NaN")
		checkExpression(t, "0 / 0 == 0 / 0", "false")
		checkExpression(t, "0 / 0 != 0 / 0", "true")
	}

	// Logical
	{
		// 'true' literal
		checkExpression(t, "true", "true")

		// 'false' literal
		checkExpression(t, "false", "false")

		// 'nil' literal
		checkExpression(t, "nil", "nil")

		// not
		checkExpression(t, "!false", "true")
		checkExpression(t, "!true", "false")
		checkExpression(t, "!nil", "true")
		checkExpression(t, `!""`, "false")
		checkExpression(t, `!0`, "false")

		// and
		checkExpression(t, "true and true", "true")
		checkExpression(t, "false and true", "false")
		checkExpression(t, "true and false", "false")
		checkExpression(t, "1 and 2", "2")
		checkExpression(t, "nil and 2", "nil")

		// or
		checkExpression(t, "false or false", "false")
		checkExpression(t, "false or true", "true")
		checkExpression(t, `nil or "yes"`, "yes")
		checkExpression(t, `1 or "no"`, "1")

		// Short circuit never touches the right operand
		checkExpression(t, "false and undefined", "false")
		checkExpression(t, "true or undefined", "true")
	}

	// Strings
	{
		// String literal
		checkExpression(t, `"test"`, "test")

		// String concat
		checkExpression(t, `"te" + "st"`, "test")

		// Multiline string
		checkExpression(t, "\"a\nb\"", "a\nb")
	}

	// Comparisons
	{
		// Equality never coerces
		checkExpression(t, `"test" == "test"`, "true")
		checkExpression(t, `"test" != "test"`, "false")
		checkExpression(t, `1 == "1"`, "false")
		checkExpression(t, `nil == false`, "false")
		checkExpression(t, `nil == nil`, "true")
		checkExpression(t, `true == true`, "true")

		// Number Equality
		checkExpression(t, `2*2 == 8-4`, "true")
		checkExpression(t, `2*2 != 8-4`, "false")

		// Number gt
		checkExpression(t, `10 > 5`, "true")

		// Number lt
		checkExpression(t, `10 < 5`, "false")

		// Number gte
		checkExpression(t, `5 >= 5`, "true")
		checkExpression(t, `4 >= 5`, "false")

		// Number lte
		checkExpression(t, `5 <= 5`, "true")
		checkExpression(t, `10 <= 5`, "false")

		// Grouping
		checkExpression(t, `(5 <= 5) and (!true or ((1*(1+4)) == 5))`, "true")
	}

	// Natives
	{
		checkExpression(t, "clock", "<native fn>")
		checkExpression(t, "clock() > 0", "true")
	}
}

func TestRuntimeErrors(t *testing.T) {
	checkErrorMsg(t, `print -"a";`, "Operand must be a number.", 1)
	checkErrorMsg(t, `print 1 < "a";`, "Operands must be numbers.", 1)
	checkErrorMsg(t, `print nil * 2;`, "Operands must be numbers.", 1)
	checkErrorMsg(t, `print 1 + "a";`, "Operands must be two numbers or two strings.", 1)
	checkErrorMsg(t, `print x;`, "Undefined variable 'x'.", 1)
	checkErrorMsg(t, `x = 1;`, "Undefined variable 'x'.", 1)
	checkErrorMsg(t, `"a"();`, "Can only call functions and classes.", 1)
	checkErrorMsg(t, "fun f(a) {}\nf();", "Expected 1 arguments but got 0.", 2)
	checkErrorMsg(t, "class A {}\nA(1);", "Expected 0 arguments but got 1.", 2)
	checkErrorMsg(t, "class A {}\nprint A().x;", "Undefined property 'x'.", 2)
	checkErrorMsg(t, "var a = 1;\nprint a.x;", "Only instances have properties.", 2)
	checkErrorMsg(t, "var a = 1;\na.x = 2;", "Only instances have fields.", 2)
	checkErrorMsg(t, "var A = 1;\nclass B < A {}", "Superclass must be a class.", 2)
	checkErrorMsg(t, "class A {}\nclass B < A { m() { return super.m(); } }\nB().m();", "Undefined property 'm'.", 2)

	// Errors raised inside a call are reported where they happened
	checkErrorMsg(t, "fun f() {\n  return -nil;\n}\nf();", "Operand must be a number.", 2)
}

func TestRuntimeErrorKinds(t *testing.T) {
	tests := []struct {
		source string
		err    error
	}{
		{"print x;", ErrUndefinedVariable},
		{"x = 1;", ErrUndefinedVariable},
		{"class A {} A().x;", ErrUndefinedProperty},
		{`-"a";`, ErrInvalidType},
		{`1 + nil;`, ErrInvalidType},
		{`1 > "1";`, ErrInvalidType},
		{"var a = 1; a.x;", ErrInvalidType},
		{"var a = 1; a.x = 1;", ErrInvalidType},
		{"var A = 1; class B < A {}", ErrInvalidType},
		{`"a"();`, ErrNotCallable},
		{"nil();", ErrNotCallable},
		{"fun f(a, b) {} f(1);", ErrArityMismatch},
		{"clock(1);", ErrArityMismatch},
		{"class A { init(a) {} } A();", ErrArityMismatch},
	}

	for _, test := range tests {
		err := runtimeError(t, test.source)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: expected %v, got %v", test.source, test.err, err)
		}
		var runtimeErr *RuntimeError
		if !errors.As(err, &runtimeErr) || runtimeErr.Token == nil {
			t.Errorf("%q: expected a runtime error with a token, got %#v", test.source, err)
		}
	}
}

func TestRuntimeErrorStopsInterpretation(t *testing.T) {
	tp := &testPrinter{}
	if RunSourceWithPrinter("print 1;\nprint x;\nprint 2;", tp) {
		t.Error("expected a failed run")
	}
	if !tp.Equals("1\n[2]: Runtime Error: Undefined variable 'x'.") {
		t.Errorf("unexpected output %q", tp.printed)
	}
}

func TestStaticErrorsSkipInterpretation(t *testing.T) {
	tp := &testPrinter{}
	if RunSourceWithPrinter("print 1;\nprint ;", tp) {
		t.Error("expected a failed run")
	}
	if !tp.Equals("[2]: Error at ';': Expect expression.") {
		t.Errorf("unexpected output %q", tp.printed)
	}
}

func TestGlobals(t *testing.T) {
	checkStatements(t, "var a;", "a", "nil")
	checkStatements(t, "var a = 1;", "a", "1")
	checkStatements(t, "var a = 1; a = a + 1;", "a", "2")
	checkStatements(t, "var a = 1; var b = a = 3;", "a + b", "6")

	// Redeclaring a global replaces it
	checkStatements(t, "var a = 1; var a = 2;", "a", "2")

	checkStatements(t, "var t = clock();", "t > 0", "true")
}

func TestStatements(t *testing.T) {

	// Blocks and scoping
	{
		checkStatements(t, `var a = "outer"; { var a = "inner"; }`, "a", "outer")
		checkStatements(t, `var a = "outer"; { a = "inner"; }`, "a", "inner")
		checkStatements(t, `
			var r;
			{
				var a = 1;
				{
					var b = 2;
					{
						r = a + b;
					}
				}
			}
		`, "r", "3")
	}

	// If
	{
		checkStatements(t, "var r; if (true) r = 1; else r = 2;", "r", "1")
		checkStatements(t, "var r; if (nil) r = 1; else r = 2;", "r", "2")
		checkStatements(t, "var r = 0; if (false) r = 1;", "r", "0")

		// Dangling else binds to the nearest if
		checkStatements(t, "var r = 0; if (true) if (false) r = 1; else r = 2;", "r", "2")
	}

	// While
	{
		checkStatements(t, `
			var i = 0;
			var sum = 0;
			while (i < 5) {
				sum = sum + i;
				i = i + 1;
			}
		`, "sum", "10")
		checkStatements(t, "var r = 0; while (false) r = 1;", "r", "0")
	}

	// For
	{
		checkStatements(t, `
			var sum = 0;
			for (var i = 0; i < 5; i = i + 1) {
				sum = sum + i;
			}
		`, "sum", "10")

		// The loop variable does not leak
		checkStatements(t, `
			var i = "outer";
			for (var i = 0; i < 3; i = i + 1) {}
		`, "i", "outer")

		checkStatements(t, `
			var i = 0;
			for (; i < 3;) i = i + 1;
		`, "i", "3")
	}

	// Functions
	{
		checkStatements(t, "fun add(a, b) { return a + b; }", "add(1, 2)", "3")
		checkStatements(t, "fun f() {}", "f()", "nil")
		checkStatements(t, "fun f() { return; }", "f()", "nil")
		checkStatements(t, "fun f() {}", "f", "<fn f>")

		// Return unwinds loops and blocks
		checkStatements(t, `
			fun find() {
				for (var i = 0; i < 10; i = i + 1) {
					for (var j = 0; j < 10; j = j + 1) {
						if (i * j == 12) return i + j;
					}
				}
			}
		`, "find()", "8")
		checkStatements(t, `
			fun first() {
				var i = 0;
				while (true) {
					{
						if (i == 3) return i;
					}
					i = i + 1;
				}
			}
		`, "first()", "3")

		// Recursion
		checkStatements(t, `
			fun fib(n) {
				if (n < 2) return n;
				return fib(n - 1) + fib(n - 2);
			}
		`, "fib(15)", "610")

		// Functions are values
		checkStatements(t, `
			fun twice(f, x) { return f(f(x)); }
			fun inc(x) { return x + 1; }
		`, "twice(inc, 1)", "3")
	}

	// Closures
	{
		checkStatements(t, `
			fun makeCounter() {
				var i = 0;
				fun count() {
					i = i + 1;
					return i;
				}
				return count;
			}
			var counter = makeCounter();
			counter();
		`, "counter()", "2")

		// Every call creates a new environment
		checkStatements(t, `
			fun makeCounter() {
				var i = 0;
				fun count() {
					i = i + 1;
					return i;
				}
				return count;
			}
			var a = makeCounter();
			var b = makeCounter();
			a();
			a();
		`, "b()", "1")

		// A closure keeps the binding it resolved to
		checkStatements(t, `
			var a = "global";
			var r;
			{
				fun show() {
					return a;
				}
				show();
				var a = "block";
				r = show();
			}
		`, "r", "global")
	}
}

func TestClasses(t *testing.T) {
	checkStatements(t, "class A {}", "A", "A")
	checkStatements(t, "class A {}", "A()", "A instance")
	checkStatements(t, "class A { m() {} }", "A().m", "<fn m>")

	// Fields
	checkStatements(t, "class P {} var p = P(); p.x = 3;", "p.x", "3")
	checkStatements(t, "class P {} var p = P(); p.x = 3; p.x = p.x + 1;", "p.x", "4")

	// Fields shadow methods
	checkStatements(t, `
		class A {
			m() { return "method"; }
		}
		var a = A();
		a.m = "field";
	`, "a.m", "field")

	// Methods and this
	checkStatements(t, `
		class Cake {
			taste() {
				return "The " + this.flavor + " cake is delicious!";
			}
		}
		var cake = Cake();
		cake.flavor = "chocolate";
	`, "cake.taste()", "The chocolate cake is delicious!")

	// Bound methods remember their receiver
	checkStatements(t, `
		class Person {
			name() { return this.n; }
		}
		var jane = Person();
		jane.n = "Jane";
		var bill = Person();
		bill.n = "Bill";
		bill.name = jane.name;
	`, "bill.name()", "Jane")

	// this inside a closure
	checkStatements(t, `
		class Thing {
			getCallback() {
				fun localFunction() {
					return this;
				}
				return localFunction;
			}
		}
		var callback = Thing().getCallback();
	`, "callback()", "Thing instance")

	// Initializers
	checkStatements(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
		}
		var p = Point(1, 2);
	`, "p.x + p.y", "3")
	checkStatements(t, `
		class Point {
			init(x) {
				this.x = x;
			}
		}
		var p = Point(1);
		var q = p.init(5);
	`, "q == p and p.x == 5", "true")
	checkStatements(t, `
		class A {
			init() {
				this.ok = true;
				return;
				this.ok = false;
			}
		}
	`, "A().ok", "true")

	// Instances compare by identity
	checkStatements(t, "class A {} var a = A(); var b = A();", "a == b", "false")
	checkStatements(t, "class A {} var a = A(); var b = a;", "a == b", "true")
}

func TestInheritance(t *testing.T) {
	checkStatements(t, `
		class A {
			m() { return "A"; }
		}
		class B < A {}
	`, "B().m()", "A")

	checkStatements(t, `
		class A {
			m() { return "A"; }
		}
		class B < A {
			m() { return "B" + super.m(); }
		}
	`, "B().m()", "BA")

	// super is bound to the class holding the method, not to the receiver
	checkStatements(t, `
		class A {
			method() { return "A method"; }
		}
		class B < A {
			method() { return "B method"; }
			test() { return super.method(); }
		}
		class C < B {}
	`, "C().test()", "A method")

	// Initializers are inherited
	checkStatements(t, `
		class A {
			init(x) { this.x = x; }
		}
		class B < A {
			init(x, y) {
				super.init(x);
				this.y = y;
			}
		}
		var b = B(1, 2);
	`, "b.x + b.y", "3")

	// super methods are bound to this
	checkStatements(t, `
		class A {
			name() { return this.n; }
		}
		class B < A {
			name() {
				var f = super.name;
				return "B:" + f();
			}
		}
		var b = B();
		b.n = "bee";
	`, "b.name()", "B:bee")
}
