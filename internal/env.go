package internal

// env is one lexical scope. Closures keep a pointer to the env they were
// created in, so a scope lives for as long as something references it.
type env struct {
	enclosing *env
	values    map[string]interface{}
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *Token) (interface{}, error) {
	if value, ok := e.values[name.Lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, newRuntimeError(ErrUndefinedVariable, name, "Undefined variable '%s'.", name.Lexeme)
}

// define binds name in this scope only, replacing any previous binding
func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

func (e *env) assign(name *Token, value interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return newRuntimeError(ErrUndefinedVariable, name, "Undefined variable '%s'.", name.Lexeme)
}

// getAt and assignAt trust the distance computed by the resolver
func (e *env) getAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

func (e *env) assignAt(distance int, name *Token, value interface{}) {
	e.ancestor(distance).values[name.Lexeme] = value
}

func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance; i++ {
		environment = environment.enclosing
	}
	return environment
}
