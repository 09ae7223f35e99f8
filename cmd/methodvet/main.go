// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command methodvet checks literal method names at build time.
//
// It loads the requested packages, finds every Call invocation on the core
// client types whose method argument is a string literal, and validates each
// name against the embedded registry. Misspelled names fail the build with a
// closest-match suggestion, so they never reach the network at runtime.
//
// Usage:
//
//	go run ./cmd/methodvet ./...
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"codeberg.org/vkapi/vkapi/core/methods"
)

// corePkgPath is the import path of the package defining the client types.
const corePkgPath = "codeberg.org/vkapi/vkapi/core"

// callMethodArgIndex is the position of the method-name argument in
// Call(ctx, method, params).
const callMethodArgIndex = 1

// finding is one rejected call site.
type finding struct {
	pos        token.Position
	method     string
	suggestion string
}

func (f finding) String() string {
	msg := fmt.Sprintf("%s: unknown method %q", f.pos, f.method)
	if f.suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", f.suggestion)
	}

	return msg
}

func main() {
	flag.Parse()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedDeps,
		Tests: false,
	}, patterns...)
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	findings := lint(pkgs, methods.Default())

	for _, f := range findings {
		fmt.Fprintln(os.Stderr, f)
	}

	if len(findings) > 0 {
		os.Exit(1)
	}
}

// lint walks every call expression in pkgs and validates literal method
// names against reg.
func lint(pkgs []*packages.Package, reg *methods.Registry) []finding {
	var findings []finding

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}

				name, ok := literalCallMethod(pkg.TypesInfo, call)
				if !ok || reg.Contains(name) {
					return true
				}

				findings = append(findings, finding{
					pos:        pkg.Fset.Position(call.Args[callMethodArgIndex].Pos()),
					method:     name,
					suggestion: methods.Suggest(name, reg),
				})

				return true
			})
		}
	}

	return findings
}

// literalCallMethod returns the string-literal method name of a Call
// invocation on one of the client types. Dynamic (non-literal) names are
// skipped; those are validated at call time instead.
func literalCallMethod(info *types.Info, call *ast.CallExpr) (string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Call" {
		return "", false
	}

	if !isClientType(info.TypeOf(sel.X)) {
		return "", false
	}

	if len(call.Args) <= callMethodArgIndex {
		return "", false
	}

	return literalString(call.Args[callMethodArgIndex])
}

// isClientType reports whether t is (a pointer to) one of the core client
// types sharing the Call surface.
func isClientType(t types.Type) bool {
	if t == nil {
		return false
	}

	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != corePkgPath {
		return false
	}

	switch obj.Name() {
	case "Client", "AsyncClient", "API":
		return true
	default:
		return false
	}
}

// literalString unquotes expr when it is a plain string literal.
func literalString(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	value, err := strconv.Unquote(lit.Value)
	if err != nil || strings.TrimSpace(value) == "" {
		return "", false
	}

	return value, true
}
