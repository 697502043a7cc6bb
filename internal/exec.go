package internal

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// returnValue is produced by a return statement and travels up through
// blocks and loops until the enclosing function call consumes it. A nil
// *returnValue means the statement completed normally.
type returnValue struct {
	value interface{}
}

// Interpreter executes resolved statements
type Interpreter struct {
	globals *env
	env     *env
	locals  map[exprID]int

	printer IPrinter
	state   Reporter
	logger  *logrus.Logger
}

// NewInterpreter creates an interpreter with a fresh global environment
// holding the native functions
func NewInterpreter(p IPrinter, state Reporter, logger *logrus.Logger) *Interpreter {
	if logger == nil {
		logger = newDiscardLogger()
	}
	globals := newEnv(nil)
	defineGlobals(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[exprID]int),
		printer: p,
		state:   state,
		logger:  logger,
	}
}

// resolve stores the scope distance the resolver found for an expression
func (i *Interpreter) resolve(id exprID, depth int) {
	i.locals[id] = depth
}

// Interpret runs stmts in order. The first runtime error is reported and
// stops the remaining statements.
func (i *Interpreter) Interpret(stmts []stmt) bool {
	for _, s := range stmts {
		ret, err := i.execute(s)
		if err != nil {
			var runtimeErr *RuntimeError
			if !errors.As(err, &runtimeErr) {
				runtimeErr = &RuntimeError{Err: err, Message: err.Error()}
			}
			i.state.RuntimeError(runtimeErr)
			return false
		}
		if ret != nil {
			return true
		}
	}
	return true
}

func (i *Interpreter) execute(s stmt) (*returnValue, error) {
	switch st := s.(type) {
	case *blockStmt:
		return i.executeBlock(st.stmts, newEnv(i.env))
	case *classStmt:
		return nil, i.executeClass(st)
	case *exprStmt:
		_, err := i.evaluate(st.expression)
		return nil, err
	case *fnStmt:
		i.env.define(st.name.Lexeme, &loxFunction{
			declaration:   st,
			closure:       i.env,
			isInitializer: false,
		})
		return nil, nil
	case *ifStmt:
		cond, err := i.evaluate(st.condition)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return i.execute(st.thenBranch)
		}
		if st.elseBranch != nil {
			return i.execute(st.elseBranch)
		}
		return nil, nil
	case *printStmt:
		value, err := i.evaluate(st.expression)
		if err != nil {
			return nil, err
		}
		i.printer.Println(stringify(value))
		return nil, nil
	case *returnStmt:
		var value interface{}
		if st.value != nil {
			var err error
			if value, err = i.evaluate(st.value); err != nil {
				return nil, err
			}
		}
		return &returnValue{value: value}, nil
	case *varStmt:
		var value interface{}
		if st.initializer != nil {
			var err error
			if value, err = i.evaluate(st.initializer); err != nil {
				return nil, err
			}
		}
		i.env.define(st.name.Lexeme, value)
		return nil, nil
	case *whileStmt:
		for {
			cond, err := i.evaluate(st.condition)
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				return nil, nil
			}
			ret, err := i.execute(st.body)
			if err != nil || ret != nil {
				return ret, err
			}
		}
	}
	return nil, nil
}

// executeBlock runs stmts inside environment and always restores the
// previous environment, whether the block completes, returns or fails
func (i *Interpreter) executeBlock(stmts []stmt, environment *env) (*returnValue, error) {
	previous := i.env
	defer func() {
		i.env = previous
	}()
	i.env = environment
	for _, s := range stmts {
		ret, err := i.execute(s)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

func (i *Interpreter) executeClass(st *classStmt) error {
	var superclass *loxClass
	if st.superclass != nil {
		value, err := i.evaluate(st.superclass)
		if err != nil {
			return err
		}
		class, ok := value.(*loxClass)
		if !ok {
			return newRuntimeError(ErrInvalidType, st.superclass.name, "Superclass must be a class.")
		}
		superclass = class
	}

	i.env.define(st.name.Lexeme, nil)

	// Methods of a subclass close over a scope holding super
	closure := i.env
	if superclass != nil {
		closure = newEnv(i.env)
		closure.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(st.methods))
	for _, m := range st.methods {
		methods[m.name.Lexeme] = &loxFunction{
			declaration:   m,
			closure:       closure,
			isInitializer: m.name.Lexeme == "init",
		}
	}

	i.env.define(st.name.Lexeme, &loxClass{
		name:       st.name.Lexeme,
		superclass: superclass,
		methods:    methods,
	})
	return nil
}

func (i *Interpreter) evaluate(e expr) (interface{}, error) {
	switch ex := e.(type) {
	case *assignExpr:
		value, err := i.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[ex.id]; ok {
			i.env.assignAt(distance, ex.name, value)
			return value, nil
		}
		if err := i.globals.assign(ex.name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *binaryExpr:
		return i.evaluateBinary(ex)
	case *callExpr:
		return i.evaluateCall(ex)
	case *getExpr:
		object, err := i.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		if obj, ok := object.(*loxInstance); ok {
			return obj.get(ex.name)
		}
		return nil, newRuntimeError(ErrInvalidType, ex.name, "Only instances have properties.")
	case *groupingExpr:
		return i.evaluate(ex.expression)
	case *literalExpr:
		return ex.value, nil
	case *logicalExpr:
		left, err := i.evaluate(ex.left)
		if err != nil {
			return nil, err
		}
		if ex.operator.Type == tkOr {
			if truthy(left) {
				return left, nil
			}
		} else if !truthy(left) {
			return left, nil
		}
		return i.evaluate(ex.right)
	case *setExpr:
		object, err := i.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		obj, ok := object.(*loxInstance)
		if !ok {
			return nil, newRuntimeError(ErrInvalidType, ex.name, "Only instances have fields.")
		}
		value, err := i.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		obj.set(ex.name, value)
		return value, nil
	case *superExpr:
		return i.evaluateSuper(ex)
	case *thisExpr:
		return i.lookUpVariable(ex.id, ex.keyword)
	case *unaryExpr:
		right, err := i.evaluate(ex.right)
		if err != nil {
			return nil, err
		}
		switch ex.operator.Type {
		case tkBang:
			return !truthy(right), nil
		case tkMinus:
			num, ok := right.(float64)
			if !ok {
				return nil, newRuntimeError(ErrInvalidType, ex.operator, "Operand must be a number.")
			}
			return -num, nil
		}
		return nil, newRuntimeError(ErrInvalidType, ex.operator, "Unknown unary operator '%s'.", ex.operator.Lexeme)
	case *variableExpr:
		return i.lookUpVariable(ex.id, ex.name)
	}
	return nil, nil
}

func (i *Interpreter) evaluateBinary(ex *binaryExpr) (interface{}, error) {
	left, err := i.evaluate(ex.left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(ex.right)
	if err != nil {
		return nil, err
	}

	switch ex.operator.Type {
	case tkEqualEqual:
		return isEqual(left, right), nil
	case tkBangEqual:
		return !isEqual(left, right), nil
	case tkPlus:
		if leftNum, ok := left.(float64); ok {
			if rightNum, ok := right.(float64); ok {
				return leftNum + rightNum, nil
			}
		}
		if leftStr, ok := left.(string); ok {
			if rightStr, ok := right.(string); ok {
				return leftStr + rightStr, nil
			}
		}
		return nil, newRuntimeError(ErrInvalidType, ex.operator, "Operands must be two numbers or two strings.")
	}

	leftNum, rightNum, err := getNums(ex.operator, left, right)
	if err != nil {
		return nil, err
	}
	switch ex.operator.Type {
	case tkGreater:
		return leftNum > rightNum, nil
	case tkGreaterEqual:
		return leftNum >= rightNum, nil
	case tkLess:
		return leftNum < rightNum, nil
	case tkLessEqual:
		return leftNum <= rightNum, nil
	case tkMinus:
		return leftNum - rightNum, nil
	case tkSlash:
		return leftNum / rightNum, nil
	case tkStar:
		return leftNum * rightNum, nil
	}
	return nil, newRuntimeError(ErrInvalidType, ex.operator, "Unknown binary operator '%s'.", ex.operator.Lexeme)
}

func getNums(operator *Token, left, right interface{}) (float64, float64, error) {
	leftNum, leftOk := left.(float64)
	rightNum, rightOk := right.(float64)
	if !leftOk || !rightOk {
		return 0, 0, newRuntimeError(ErrInvalidType, operator, "Operands must be numbers.")
	}
	return leftNum, rightNum, nil
}

func (i *Interpreter) evaluateCall(ex *callExpr) (interface{}, error) {
	callee, err := i.evaluate(ex.callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, len(ex.arguments))
	for n, argument := range ex.arguments {
		if arguments[n], err = i.evaluate(argument); err != nil {
			return nil, err
		}
	}

	fn, isFn := callee.(callable)
	if !isFn {
		return nil, newRuntimeError(ErrNotCallable, ex.paren, "Can only call functions and classes.")
	}

	if len(arguments) != fn.arity() {
		return nil, newRuntimeError(
			ErrArityMismatch,
			ex.paren,
			"Expected %d arguments but got %d.",
			fn.arity(),
			len(arguments),
		)
	}

	if i.logger.IsLevelEnabled(logrus.TraceLevel) {
		i.logger.WithFields(logrus.Fields{
			"callee": stringify(callee),
			"args":   len(arguments),
			"line":   ex.paren.Line,
		}).Trace("call")
	}

	return fn.call(i, arguments)
}

// evaluateSuper finds the method on the superclass captured when the class
// was declared and binds it to the current receiver
func (i *Interpreter) evaluateSuper(ex *superExpr) (interface{}, error) {
	distance, ok := i.locals[ex.id]
	if !ok {
		return nil, newRuntimeError(ErrUndefinedVariable, ex.keyword, "Undefined variable 'super'.")
	}
	superclass, _ := i.env.getAt(distance, "super").(*loxClass)
	// this always lives in the scope right inside the one holding super
	object, _ := i.env.getAt(distance-1, "this").(*loxInstance)
	if superclass == nil || object == nil {
		return nil, newRuntimeError(ErrUndefinedVariable, ex.keyword, "Undefined variable 'super'.")
	}

	method := superclass.findMethod(ex.method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(ErrUndefinedProperty, ex.method, "Undefined property '%s'.", ex.method.Lexeme)
	}
	return method.bind(object), nil
}

func (i *Interpreter) lookUpVariable(id exprID, name *Token) (interface{}, error) {
	if distance, ok := i.locals[id]; ok {
		return i.env.getAt(distance, name.Lexeme), nil
	}
	return i.globals.get(name)
}
