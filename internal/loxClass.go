package internal

type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

// findMethod looks the method up on the class and then on its ancestors
func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(interp *Interpreter, arguments []interface{}) (interface{}, error) {
	obj := newInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(obj).call(interp, arguments); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c *loxClass) String() string {
	return c.name
}
