// Package interp walks the AST produced by the parser and evaluates it
// directly, without a separate compilation step.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/fjc-oai/tiny-interpreter/ast"
	"github.com/fjc-oai/tiny-interpreter/token"
)

// signal distinguishes falling off the end of a statement sequence from
// an explicit return unwinding it. It is never represented as an error:
// a return is a normal, successful completion of the node that
// triggered it.
type signal int

const (
	sigNormal signal = iota
	sigReturn
)

type execResult struct {
	signal signal
	value  Value
}

var normalResult = execResult{signal: sigNormal}

// Interpreter holds the mutable evaluation state: the scope stack and
// the destination for `print`.
type Interpreter struct {
	env    *Environment
	Output io.Writer
}

// New creates an Interpreter with the standard globals (time, sleep)
// already bound.
func New(output io.Writer) *Interpreter {
	in := &Interpreter{env: NewEnvironment(), Output: output}
	in.env.Define("time", builtinTime())
	in.env.Define("sleep", builtinSleep())
	return in
}

// Run executes every top-level node of prog in order, in the
// interpreter's current (persistent) environment. A top-level `return`
// is accepted and simply ends execution, matching a script's implicit
// top-level function.
func (in *Interpreter) Run(prog *ast.Program) error {
	for _, n := range prog.Nodes {
		res, err := in.exec(n)
		if err != nil {
			return err
		}
		if res.signal == sigReturn {
			return nil
		}
	}
	return nil
}

// exec evaluates a statement-position node for its effect, returning
// whether it triggered a return unwind.
func (in *Interpreter) exec(n ast.Node) (execResult, error) {
	switch node := n.(type) {
	case *ast.PrintStmt:
		return in.execPrint(node)
	case *ast.DeclStmt:
		return in.execDecl(node)
	case *ast.AssignStmt:
		return in.execAssign(node)
	case *ast.Block:
		return in.execBlock(node)
	case *ast.IfStmt:
		return in.execIf(node)
	case *ast.WhileStmt:
		return in.execWhile(node)
	case *ast.ForStmt:
		return in.execFor(node)
	case *ast.FuncDecl:
		return in.execFuncDecl(node)
	case *ast.ReturnStmt:
		return in.execReturn(node)
	default:
		// A bare expression used as a statement: evaluate for effect,
		// discard the value.
		if _, err := in.eval(n); err != nil {
			return execResult{}, err
		}
		return normalResult, nil
	}
}

// PrintTag prefixes every line written by a `print` statement, per
// spec §4.3. Callers that want to colorize print output distinctly
// from other writer traffic (astprint dumps) can match on
// this prefix.
const PrintTag = "[interpreter] "

func (in *Interpreter) execPrint(p *ast.PrintStmt) (execResult, error) {
	v, err := in.eval(p.Expr)
	if err != nil {
		return execResult{}, err
	}
	fmt.Fprintln(in.Output, PrintTag+stringify(v))
	return normalResult, nil
}

func (in *Interpreter) execDecl(d *ast.DeclStmt) (execResult, error) {
	var v Value
	if d.Initializer != nil {
		var err error
		v, err = in.eval(d.Initializer)
		if err != nil {
			return execResult{}, err
		}
	}
	if err := in.env.Define(d.Name.Lexeme, v); err != nil {
		return execResult{}, newRuntimeError(d.Line(), "%s", err)
	}
	return normalResult, nil
}

func (in *Interpreter) execAssign(a *ast.AssignStmt) (execResult, error) {
	v, err := in.eval(a.Expr)
	if err != nil {
		return execResult{}, err
	}
	if err := in.env.Assign(a.Name.Lexeme, v); err != nil {
		return execResult{}, newRuntimeError(a.Line(), "%s", err)
	}
	return normalResult, nil
}

func (in *Interpreter) execBlock(b *ast.Block) (execResult, error) {
	in.env.PushBlock()
	defer in.env.PopBlock()
	for _, n := range b.Nodes {
		res, err := in.exec(n)
		if err != nil {
			return execResult{}, err
		}
		if res.signal == sigReturn {
			return res, nil
		}
	}
	return normalResult, nil
}

func (in *Interpreter) execIf(s *ast.IfStmt) (execResult, error) {
	cond, err := in.eval(s.Cond)
	if err != nil {
		return execResult{}, err
	}
	if isTruthy(cond) {
		return in.exec(s.Then)
	}
	if s.Else != nil {
		return in.exec(s.Else)
	}
	return normalResult, nil
}

func (in *Interpreter) execWhile(s *ast.WhileStmt) (execResult, error) {
	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return execResult{}, err
		}
		if !isTruthy(cond) {
			return normalResult, nil
		}
		res, err := in.exec(s.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.signal == sigReturn {
			return res, nil
		}
	}
}

func (in *Interpreter) execFor(s *ast.ForStmt) (execResult, error) {
	in.env.PushBlock()
	defer in.env.PopBlock()
	if _, err := in.exec(s.Init); err != nil {
		return execResult{}, err
	}
	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return execResult{}, err
		}
		if !isTruthy(cond) {
			return normalResult, nil
		}
		res, err := in.exec(s.Body)
		if err != nil {
			return execResult{}, err
		}
		if res.signal == sigReturn {
			return res, nil
		}
		if _, err := in.exec(s.Update); err != nil {
			return execResult{}, err
		}
	}
}

func (in *Interpreter) execFuncDecl(f *ast.FuncDecl) (execResult, error) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}
	fn := &Function{Name: f.Name.Lexeme, Params: params, Body: f.Body}
	if err := in.env.Define(f.Name.Lexeme, fn); err != nil {
		return execResult{}, newRuntimeError(f.Line(), "%s", err)
	}
	return normalResult, nil
}

func (in *Interpreter) execReturn(r *ast.ReturnStmt) (execResult, error) {
	var v Value
	if r.Expr != nil {
		var err error
		v, err = in.eval(r.Expr)
		if err != nil {
			return execResult{}, err
		}
	}
	return execResult{signal: sigReturn, value: v}, nil
}

// eval evaluates an expression-position node to a Value.
func (in *Interpreter) eval(n ast.Node) (Value, error) {
	switch node := n.(type) {
	case *ast.Literal:
		return in.evalLiteral(node)
	case *ast.Unary:
		return in.evalUnary(node)
	case *ast.Binary:
		return in.evalBinary(node)
	case *ast.Grouping:
		return in.eval(node.Inner)
	case *ast.FuncCall:
		return in.evalCall(node)
	default:
		return nil, newRuntimeError(n.Line(), "not an expression: %s", n)
	}
}

func (in *Interpreter) evalLiteral(l *ast.Literal) (Value, error) {
	switch l.Token.Kind {
	case token.NUMBER:
		return l.Token.Literal.(float64), nil
	case token.STRING:
		return l.Token.Literal.(string), nil
	case token.TRUE:
		return true, nil
	case token.FALSE:
		return false, nil
	case token.NIL:
		return nil, nil
	case token.IDENTIFIER:
		v, ok := in.env.Get(l.Token.Lexeme)
		if !ok {
			return nil, newRuntimeError(l.Line(), "undefined variable: %s", l.Token.Lexeme)
		}
		return v, nil
	default:
		return nil, newRuntimeError(l.Line(), "not a literal: %s", l.Token)
	}
}

func (in *Interpreter) evalUnary(u *ast.Unary) (Value, error) {
	right, err := in.eval(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op.Kind {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(u.Line(), "operand of unary '-' must be a number")
		}
		return -n, nil
	case token.BANG:
		b, ok := right.(bool)
		if !ok {
			return nil, newRuntimeError(u.Line(), "operand of '!' must be a boolean")
		}
		return !b, nil
	default:
		return nil, newRuntimeError(u.Line(), "unknown unary operator: %s", u.Op.Lexeme)
	}
}

func (in *Interpreter) evalBinary(b *ast.Binary) (Value, error) {
	// and/or short-circuit: the right operand is evaluated lazily.
	switch b.Op.Kind {
	case token.AND:
		left, err := in.eval(b.Left)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return false, nil
		}
		return in.eval(b.Right)
	case token.OR:
		left, err := in.eval(b.Left)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return left, nil
		}
		return in.eval(b.Right)
	}

	left, err := in.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			rn, ok := right.(float64)
			if !ok {
				return nil, newRuntimeError(b.Line(), "'+' operands must both be numbers or both be strings")
			}
			return ln + rn, nil
		}
		if ls, ok := left.(string); ok {
			rs, ok := right.(string)
			if !ok {
				return nil, newRuntimeError(b.Line(), "'+' operands must both be numbers or both be strings")
			}
			return ls + rs, nil
		}
		return nil, newRuntimeError(b.Line(), "'+' operands must both be numbers or both be strings")
	case token.MINUS, token.STAR, token.SLASH:
		ln, ok1 := left.(float64)
		rn, ok2 := right.(float64)
		if !ok1 || !ok2 {
			return nil, newRuntimeError(b.Line(), "'%s' operands must both be numbers", b.Op.Lexeme)
		}
		switch b.Op.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			return ln / rn, nil
		}
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		return compareOrdered(b.Line(), b.Op.Kind, left, right)
	case token.EQUAL_EQUAL:
		return valuesEqual(left, right), nil
	case token.BANG_EQUAL:
		return !valuesEqual(left, right), nil
	}
	return nil, newRuntimeError(b.Line(), "unknown binary operator: %s", b.Op.Lexeme)
}

func compareOrdered(line int, op token.Kind, left, right Value) (Value, error) {
	if ln, ok := left.(float64); ok {
		rn, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(line, "cannot compare number with non-number")
		}
		switch op {
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		}
	}
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, newRuntimeError(line, "cannot compare string with non-string")
		}
		switch op {
		case token.GREATER:
			return ls > rs, nil
		case token.GREATER_EQUAL:
			return ls >= rs, nil
		case token.LESS:
			return ls < rs, nil
		case token.LESS_EQUAL:
			return ls <= rs, nil
		}
	}
	return nil, newRuntimeError(line, "operands to ordering comparison must be two numbers or two strings")
}

func valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

func (in *Interpreter) evalCall(c *ast.FuncCall) (Value, error) {
	callee, ok := in.env.Get(c.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(c.Line(), "undefined function: %s", c.Name.Lexeme)
	}
	fn, ok := callee.(*Function)
	if !ok {
		return nil, newRuntimeError(c.Line(), "%s is not callable", c.Name.Lexeme)
	}
	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if len(args) != fn.arity() {
		return nil, newRuntimeError(c.Line(), "%s expects %d argument(s), got %d", fn.Name, fn.arity(), len(args))
	}

	logrus.Debugf("interp: calling %s with %d arg(s)", fn.Name, len(args))

	if fn.Native != nil {
		return fn.Native(args)
	}

	in.env.PushCall()
	defer in.env.PopCall()
	for i, p := range fn.Params {
		if err := in.env.Define(p, args[i]); err != nil {
			return nil, newRuntimeError(c.Line(), "%s", err)
		}
	}
	res, err := in.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if res.signal == sigReturn {
		return res.value, nil
	}
	return nil, nil
}

// isTruthy follows the language's strict truthiness rule: only `false`
// and `nil` are falsy. It is used by if/while/for/and/or, never by
// unary `!`, which requires an operand that is already a bool.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return val
	case *Function:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
