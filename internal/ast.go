package internal

import "sync/atomic"

//go:generate go run ../cmd/astgen Expr expr.go
//go:generate go run ../cmd/astgen Stmt stmt.go

// exprID identifies an expression node that the resolver annotates.
// Ids are unique for the whole process so trees parsed at different times
// can share one interpreter.
type exprID uint64

var lastExprID uint64

func newExprID() exprID {
	return exprID(atomic.AddUint64(&lastExprID, 1))
}
