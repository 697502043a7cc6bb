package internal

import "fmt"

// callable is implemented by exactly three types: *nativeFn, *loxFunction
// and *loxClass
type callable interface {
	arity() int
	call(interp *Interpreter, arguments []interface{}) (interface{}, error)
}

type nativeFn struct {
	name       string
	arityValue int
	callFn     func(interp *Interpreter, arguments []interface{}) (interface{}, error)
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(interp *Interpreter, arguments []interface{}) (interface{}, error) {
	return n.callFn(interp, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}

type loxFunction struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

func (f *loxFunction) call(interp *Interpreter, arguments []interface{}) (interface{}, error) {
	environment := newEnv(f.closure)
	for i, param := range f.declaration.params {
		environment.define(param.Lexeme, arguments[i])
	}

	ret, err := interp.executeBlock(f.declaration.body, environment)
	if err != nil {
		return nil, err
	}

	// An initializer always hands back the instance, even on an early return
	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	if ret != nil {
		return ret.value, nil
	}
	return nil, nil
}

// bind returns a copy of the method whose closure has this set to object.
// f itself is left untouched.
func (f *loxFunction) bind(object *loxInstance) *loxFunction {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &loxFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.Lexeme)
}
