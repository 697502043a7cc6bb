package internal

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// resolver computes, for every variable access, how many scopes away its
// binding lives. Globals are never put on the scope stack, so a name found
// in no scope is left unresolved and looked up in the globals at runtime.
type resolver struct {
	interp *Interpreter
	state  Reporter

	// each scope maps a name to whether its initializer has finished
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

func newResolver(interp *Interpreter, state Reporter) *resolver {
	return &resolver{
		interp: interp,
		state:  state,
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	switch st := s.(type) {
	case *blockStmt:
		r.beginScope()
		r.resolve(st.stmts)
		r.endScope()
	case *classStmt:
		r.resolveClass(st)
	case *exprStmt:
		r.resolveExpr(st.expression)
	case *fnStmt:
		r.declare(st.name)
		r.define(st.name)
		r.resolveFunction(st, fnFunction)
	case *ifStmt:
		r.resolveExpr(st.condition)
		r.resolveStmt(st.thenBranch)
		if st.elseBranch != nil {
			r.resolveStmt(st.elseBranch)
		}
	case *printStmt:
		r.resolveExpr(st.expression)
	case *returnStmt:
		if r.currentFunction == fnNone {
			r.state.ErrorAt(st.keyword, "Cannot return from top-level code")
		}
		if st.value != nil {
			if r.currentFunction == fnInitializer {
				r.state.ErrorAt(st.keyword, "Cannot return a value from an initializer")
			}
			r.resolveExpr(st.value)
		}
	case *varStmt:
		r.declare(st.name)
		if st.initializer != nil {
			r.resolveExpr(st.initializer)
		}
		r.define(st.name)
	case *whileStmt:
		r.resolveExpr(st.condition)
		r.resolveStmt(st.body)
	}
}

func (r *resolver) resolveClass(st *classStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() {
		r.currentClass = enclosingClass
	}()

	r.declare(st.name)
	r.define(st.name)

	if st.superclass != nil {
		if st.name.Lexeme == st.superclass.name.Lexeme {
			r.state.ErrorAt(st.superclass.name, "A class cannot inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveExpr(st.superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range st.methods {
		declaration := fnMethod
		if method.name.Lexeme == "init" {
			declaration = fnInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
}

func (r *resolver) resolveFunction(fn *fnStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(fn.body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) resolveExpr(e expr) {
	switch ex := e.(type) {
	case *assignExpr:
		r.resolveExpr(ex.value)
		r.resolveLocal(ex.id, ex.name)
	case *binaryExpr:
		r.resolveExpr(ex.left)
		r.resolveExpr(ex.right)
	case *callExpr:
		r.resolveExpr(ex.callee)
		for _, argument := range ex.arguments {
			r.resolveExpr(argument)
		}
	case *getExpr:
		r.resolveExpr(ex.object)
	case *groupingExpr:
		r.resolveExpr(ex.expression)
	case *literalExpr:
	case *logicalExpr:
		r.resolveExpr(ex.left)
		r.resolveExpr(ex.right)
	case *setExpr:
		r.resolveExpr(ex.value)
		r.resolveExpr(ex.object)
	case *superExpr:
		if r.currentClass == classNone {
			r.state.ErrorAt(ex.keyword, "Cannot use 'super' outside of a class")
		} else if r.currentClass != classSubclass {
			r.state.ErrorAt(ex.keyword, "Cannot use 'super' in a class with no superclass")
		}
		r.resolveLocal(ex.id, ex.keyword)
	case *thisExpr:
		if r.currentClass == classNone {
			r.state.ErrorAt(ex.keyword, "Cannot use 'this' outside of a class")
		}
		r.resolveLocal(ex.id, ex.keyword)
	case *unaryExpr:
		r.resolveExpr(ex.right)
	case *variableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.peekScope()[ex.name.Lexeme]; ok && !defined {
				r.state.ErrorAt(ex.name, "Cannot read local variable in its own initializer")
			}
		}
		r.resolveLocal(ex.id, ex.name)
	}
}

// resolveLocal records the distance to the innermost scope binding name.
// Nothing is recorded for globals.
func (r *resolver) resolveLocal(id exprID, name *Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.interp.resolve(id, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare adds name to the innermost scope as not yet usable. Redeclaring
// in the same local scope is an error, redeclaring a global is not.
func (r *resolver) declare(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.state.ErrorAt(name, "Already a variable with this name in this scope")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name *Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}
