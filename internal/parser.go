package internal

// parseError unwinds the parser back to the last statement boundary.
// It has already been reported when it is raised.
type parseError struct {
	token   *Token
	message string
}

// parser pulls tokens from the lexer on demand, keeping only the current
// and previous token
type parser struct {
	lexer    *lexer
	current  *Token
	previous *Token

	state Reporter
}

const maxFunctionParams = 255

func newParser(l *lexer, state Reporter) *parser {
	return &parser{
		lexer:   l,
		current: l.next(),
		state:   state,
	}
}

func (p *parser) parse() []stmt {
	var stmts []stmt
	for !p.isAtEnd() {
		// A statement that failed to parse is dropped
		if st := p.parseStmt(); st != nil {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

func (p *parser) parseStmt() (st stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*parseError); !ok {
				panic(r)
			}
			p.synchronize()
			st = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() stmt {
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.function("function")
	}
	if p.match(tkVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, "Expect class name.")

	var superclass *variableExpr
	if p.match(tkLess) {
		p.consume(tkIdentifier, "Expect superclass name.")
		superclass = &variableExpr{
			id:   newExprID(),
			name: p.previous,
		}
	}

	p.consume(tkLeftBrace, "Expect '{' before class body.")

	var methods []*fnStmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(tkRightBrace, "Expect '}' after class body.")

	return &classStmt{
		name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

// function parses the rest of a function or method declaration. kind only
// changes the wording of error messages.
func (p *parser) function(kind string) *fnStmt {
	name := p.consume(tkIdentifier, "Expect "+kind+" name.")

	p.consume(tkLeftParen, "Expect '(' after "+kind+" name.")

	var params []*Token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.ErrorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(tkIdentifier, "Expect parameter name."))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, "Expect ')' after parameters.")

	p.consume(tkLeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(tkIdentifier, "Expect variable name.")

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}

	p.consume(tkSemicolon, "Expect ';' after variable declaration.")
	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars a for statement into a while loop, wrapped in a block
// when there is an initializer
func (p *parser) forLoop() stmt {
	p.consume(tkLeftParen, "Expect '(' after 'for'.")

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDeclaration()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, "Expect ';' after loop condition.")

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if inc != nil {
		body = &blockStmt{
			stmts: []stmt{body, &exprStmt{expression: inc}},
		}
	}
	if cond == nil {
		cond = &literalExpr{value: true}
	}
	body = &whileStmt{
		condition: cond,
		body:      body,
	}
	if init != nil {
		body = &blockStmt{
			stmts: []stmt{init, body},
		}
	}

	return body
}

func (p *parser) ifStmt() stmt {
	p.consume(tkLeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(tkRightParen, "Expect ')' after if condition.")

	st := &ifStmt{
		condition:  cond,
		thenBranch: p.statement(),
	}
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}
	return st
}

func (p *parser) printStmt() stmt {
	value := p.expression()
	p.consume(tkSemicolon, "Expect ';' after value.")
	return &printStmt{expression: value}
}

func (p *parser) ret() stmt {
	keyword := p.previous
	var value expr
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, "Expect ';' after return value.")
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) while() stmt {
	p.consume(tkLeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(tkRightParen, "Expect ')' after condition.")
	return &whileStmt{
		condition: cond,
		body:      p.statement(),
	}
}

func (p *parser) block() []stmt {
	var stmts []stmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(tkRightBrace, "Expect '}' after block.")
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, "Expect ';' after expression.")
	return &exprStmt{expression: expr}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous
		value := p.assignment()

		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				id:    newExprID(),
				name:  variable.name,
				value: value,
			}
		} else if get, isGet := expr.(*getExpr); isGet {
			return &setExpr{
				object: get.object,
				name:   get.name,
				value:  value,
			}
		}

		// Not fatal: the parser is not confused, keep going with the value
		p.state.ErrorAt(equal, "Invalid assignment target.")
		return value
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(tkAnd) {
		operator := p.previous
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(tkBangEqual, tkEqualEqual) {
		operator := p.previous
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.term()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous
		right := p.term()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) term() expr {
	expr := p.factor()
	for p.match(tkMinus, tkPlus) {
		operator := p.previous
		right := p.factor()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) factor() expr {
	expr := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, "Expect property name after '.'.")
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.ErrorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, "Expect ')' after arguments.")
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: false}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: true}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous.Literal}
	}
	if p.match(tkSuper) {
		keyword := p.previous
		p.consume(tkDot, "Expect '.' after 'super'.")
		method := p.consume(tkIdentifier, "Expect superclass method name.")
		return &superExpr{
			id:      newExprID(),
			keyword: keyword,
			method:  method,
		}
	}
	if p.match(tkThis) {
		return &thisExpr{id: newExprID(), keyword: p.previous}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{id: newExprID(), name: p.previous}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, "Expect ')' after expression.")
		return &groupingExpr{expression: expr}
	}

	panic(p.error(p.peek(), "Expect expression."))
}

func (p *parser) consume(tk TokenType, message string) *Token {
	if p.check(tk) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *parser) error(tk *Token, message string) *parseError {
	p.state.ErrorAt(tk, message)
	return &parseError{
		token:   tk,
		message: message,
	}
}

func (p *parser) advance() *Token {
	if !p.isAtEnd() {
		p.previous = p.current
		p.current = p.lexer.next()
	}
	return p.previous
}

func (p *parser) match(tokens ...TokenType) bool {
	for _, token := range tokens {
		if p.check(token) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(token TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == token
}

func (p *parser) peek() *Token {
	return p.current
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == tkEOF
}

// synchronize discards tokens until the next statement boundary
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous.Type == tkSemicolon {
			return
		}

		switch p.peek().Type {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn:
			return
		}

		p.advance()
	}
}
