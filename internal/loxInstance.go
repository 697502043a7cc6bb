package internal

import "fmt"

type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newInstance(class *loxClass) *loxInstance {
	return &loxInstance{
		class:  class,
		fields: make(map[string]interface{}),
	}
}

// get prefers fields over methods. Methods come back bound to o.
func (o *loxInstance) get(name *Token) (interface{}, error) {
	if val, ok := o.fields[name.Lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(name.Lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, newRuntimeError(ErrUndefinedProperty, name, "Undefined property '%s'.", name.Lexeme)
}

func (o *loxInstance) set(name *Token, value interface{}) {
	o.fields[name.Lexeme] = value
}

func (o *loxInstance) String() string {
	return fmt.Sprintf("%s instance", o.class.name)
}
