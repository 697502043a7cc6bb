package main

import (
	"fmt"
	"go/format"
	"io/ioutil"
	"log"
	"os"
	"strings"
)

var definitions = map[string][]string{
	"Expr": {
		"Assign: id exprID, name *Token, value expr",
		"Binary: left expr, operator *Token, right expr",
		"Call: callee expr, paren *Token, arguments []expr",
		"Get: object expr, name *Token",
		"Grouping: expression expr",
		"Literal: value interface{}",
		"Logical: left expr, operator *Token, right expr",
		"Set: object expr, name *Token, value expr",
		"Super: id exprID, keyword *Token, method *Token",
		"This: id exprID, keyword *Token",
		"Unary: operator *Token, right expr",
		"Variable: id exprID, name *Token",
	},
	"Stmt": {
		"Block: stmts []stmt",
		"Class: name *Token, superclass *variableExpr, methods []*fnStmt",
		"Expr: expression expr",
		"Fn: name *Token, params []*Token, body []stmt",
		"If: condition expr, thenBranch stmt, elseBranch stmt",
		"Print: expression expr",
		"Return: keyword *Token, value expr",
		"Var: name *Token, initializer expr",
		"While: condition expr, body stmt",
	},
}

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: astgen <Expr|Stmt> <output file>")
		os.Exit(2)
	}

	types, ok := definitions[os.Args[1]]
	if !ok {
		log.Fatalf("unknown node kind %q", os.Args[1])
	}

	src, err := format.Source([]byte(generateAst(os.Args[1], types)))
	if err != nil {
		log.Fatal(err)
	}

	if err := ioutil.WriteFile(os.Args[2], src, 0644); err != nil {
		log.Fatal(err)
	}
}

func generateAst(baseName string, types []string) string {
	base := strings.ToLower(baseName)

	out := "// Code generated by cmd/astgen; DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + base + " interface {\n"
	out += "\t" + base + "Node()\n"
	out += "}\n\n"
	// End base interface

	// Start structs
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	base := strings.ToLower(baseName)

	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	for _, field := range strings.Split(fields, ",") {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Marker Definition
	out += "func (*" + structName + ") " + base + "Node() {}\n\n"
	// End Marker Definition

	return out
}
