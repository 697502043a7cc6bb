package internal

import "strings"

// exprString renders an expression as an s-expression, e.g. (+ 1 2)
func exprString(e expr) string {
	switch ex := e.(type) {
	case *assignExpr:
		return parenthesize("=", ex.name.Lexeme, exprString(ex.value))
	case *binaryExpr:
		return parenthesize(ex.operator.Lexeme, exprString(ex.left), exprString(ex.right))
	case *callExpr:
		parts := []string{exprString(ex.callee)}
		for _, argument := range ex.arguments {
			parts = append(parts, exprString(argument))
		}
		return parenthesize("call", parts...)
	case *getExpr:
		return parenthesize(".", exprString(ex.object), ex.name.Lexeme)
	case *groupingExpr:
		return parenthesize("group", exprString(ex.expression))
	case *literalExpr:
		return stringify(ex.value)
	case *logicalExpr:
		return parenthesize(ex.operator.Lexeme, exprString(ex.left), exprString(ex.right))
	case *setExpr:
		return parenthesize("=.", exprString(ex.object), ex.name.Lexeme, exprString(ex.value))
	case *superExpr:
		return parenthesize("super", ex.method.Lexeme)
	case *thisExpr:
		return "this"
	case *unaryExpr:
		return parenthesize(ex.operator.Lexeme, exprString(ex.right))
	case *variableExpr:
		return ex.name.Lexeme
	}
	return ""
}

// stmtString renders a statement the same way exprString renders expressions
func stmtString(s stmt) string {
	switch st := s.(type) {
	case *blockStmt:
		return parenthesize("block", stmtStrings(st.stmts)...)
	case *classStmt:
		parts := []string{st.name.Lexeme}
		if st.superclass != nil {
			parts = append(parts, "<", st.superclass.name.Lexeme)
		}
		for _, m := range st.methods {
			parts = append(parts, stmtString(m))
		}
		return parenthesize("class", parts...)
	case *exprStmt:
		return exprString(st.expression)
	case *fnStmt:
		params := make([]string, len(st.params))
		for i, param := range st.params {
			params[i] = param.Lexeme
		}
		parts := append([]string{st.name.Lexeme, "(" + strings.Join(params, " ") + ")"}, stmtStrings(st.body)...)
		return parenthesize("fun", parts...)
	case *ifStmt:
		if st.elseBranch == nil {
			return parenthesize("if", exprString(st.condition), stmtString(st.thenBranch))
		}
		return parenthesize("if", exprString(st.condition), stmtString(st.thenBranch), stmtString(st.elseBranch))
	case *printStmt:
		return parenthesize("print", exprString(st.expression))
	case *returnStmt:
		if st.value == nil {
			return parenthesize("return")
		}
		return parenthesize("return", exprString(st.value))
	case *varStmt:
		if st.initializer == nil {
			return parenthesize("var", st.name.Lexeme)
		}
		return parenthesize("var", st.name.Lexeme, exprString(st.initializer))
	case *whileStmt:
		return parenthesize("while", exprString(st.condition), stmtString(st.body))
	}
	return ""
}

func stmtStrings(stmts []stmt) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = stmtString(s)
	}
	return out
}

func parenthesize(name string, parts ...string) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, part := range parts {
		b.WriteString(" ")
		b.WriteString(part)
	}
	b.WriteString(")")
	return b.String()
}
