/*
File    : unlox/eval/eval_expressions.go
*/
package eval

import (
	"fmt"

	"github.com/wiktorwieclaw/unlox/function"
	"github.com/wiktorwieclaw/unlox/lexer"
	"github.com/wiktorwieclaw/unlox/objects"
	"github.com/wiktorwieclaw/unlox/parser"
	"github.com/wiktorwieclaw/unlox/scope"
	"github.com/wiktorwieclaw/unlox/std"
)

// evaluate computes the value of a single expression. Its only side
// effects flow through assignments and calls; everything else is pure over
// the environment.
func (e *Evaluator) evaluate(idx parser.ExprIdx) (objects.LoxObject, error) {
	switch node := e.Tree.Expr(idx).(type) {

	case *parser.LiteralExpressionNode:
		return node.Value, nil

	case *parser.GroupingExpressionNode:
		return e.evaluate(node.Expr)

	case *parser.UnaryExpressionNode:
		return e.evalUnaryExpression(node)

	case *parser.BinaryExpressionNode:
		return e.evalBinaryExpression(node)

	case *parser.LogicalExpressionNode:
		return e.evalLogicalExpression(node)

	case *parser.IdentifierExpressionNode:
		value, ok := e.Scp.LookUp(node.Name.Literal)
		if !ok {
			return nil, undefinedVariableError(node.Name)
		}
		return value, nil

	case *parser.AssignmentExpressionNode:
		value, err := e.evaluate(node.Value)
		if err != nil {
			return nil, err
		}
		if !e.Scp.Assign(node.Name.Literal, value) {
			return nil, undefinedVariableError(node.Name)
		}
		return value, nil

	case *parser.CallExpressionNode:
		return e.evalCallExpression(node)

	default:
		return nil, fmt.Errorf("unhandled expression node %T", node)
	}
}

// evalUnaryExpression applies a prefix operator:
//
//	'-' negates a number; any other operand is an error
//	'!' negates the truthiness of any operand
func (e *Evaluator) evalUnaryExpression(node *parser.UnaryExpressionNode) (objects.LoxObject, error) {
	right, err := e.evaluate(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Operator.Type {
	case lexer.MINUS_OP:
		num, ok := right.(*objects.Number)
		if !ok {
			return nil, expectedNumberError(node.Operator)
		}
		return &objects.Number{Value: -num.Value}, nil
	case lexer.BANG_OP:
		return &objects.Boolean{Value: !objects.Truthy(right)}, nil
	}
	return nil, fmt.Errorf("unhandled unary operator %s", node.Operator.Literal)
}

// evalBinaryExpression applies an infix operator. Both operands are always
// evaluated, left first. Arithmetic follows IEEE-754: division by zero
// yields an infinity or NaN rather than an error.
func (e *Evaluator) evalBinaryExpression(node *parser.BinaryExpressionNode) (objects.LoxObject, error) {
	left, err := e.evaluate(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(node.Right)
	if err != nil {
		return nil, err
	}

	operator := node.Operator
	switch operator.Type {
	case lexer.MINUS_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Number{Value: l - r}, nil

	case lexer.SLASH_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Number{Value: l / r}, nil

	case lexer.STAR_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Number{Value: l * r}, nil

	case lexer.PLUS_OP:
		if l, r, ok := numberOperands(left, right); ok {
			return &objects.Number{Value: l + r}, nil
		}
		if l, ok := left.(*objects.String); ok {
			if r, ok := right.(*objects.String); ok {
				return &objects.String{Value: l.Value + r.Value}, nil
			}
		}
		return nil, expectedNumbersOrStringsError(operator)

	case lexer.GT_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Boolean{Value: l > r}, nil

	case lexer.GE_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Boolean{Value: l >= r}, nil

	case lexer.LT_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Boolean{Value: l < r}, nil

	case lexer.LE_OP:
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, expectedNumbersError(operator)
		}
		return &objects.Boolean{Value: l <= r}, nil

	case lexer.EQ_OP:
		return &objects.Boolean{Value: objects.Equals(left, right)}, nil

	case lexer.BANG_EQ_OP:
		return &objects.Boolean{Value: !objects.Equals(left, right)}, nil
	}
	return nil, fmt.Errorf("unhandled binary operator %s", operator.Literal)
}

// evalLogicalExpression applies 'and'/'or' with short-circuit evaluation.
// The result is the value of the operand that settled the outcome, not a
// coerced boolean: "hi" or 2 evaluates to "hi".
func (e *Evaluator) evalLogicalExpression(node *parser.LogicalExpressionNode) (objects.LoxObject, error) {
	left, err := e.evaluate(node.Left)
	if err != nil {
		return nil, err
	}

	if node.Operator.Type == lexer.OR_KEY {
		if objects.Truthy(left) {
			return left, nil
		}
	} else {
		if !objects.Truthy(left) {
			return left, nil
		}
	}
	return e.evaluate(node.Right)
}

// evalCallExpression evaluates a call: the callee first, then the callable
// and arity checks, then the arguments left to right, then the dispatch.
// A failing argument therefore never reaches a non-callable callee.
func (e *Evaluator) evalCallExpression(node *parser.CallExpressionNode) (objects.LoxObject, error) {
	callee, err := e.evaluate(node.Callee)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *std.Builtin:
		if fn.Arity() != len(node.Arguments) {
			return nil, wrongNumberOfArgsError(node.Paren, fn.Arity(), len(node.Arguments))
		}
		args, err := e.evalArguments(node.Arguments)
		if err != nil {
			return nil, err
		}
		return fn.Callback(args...), nil

	case *function.Function:
		if fn.Arity() != len(node.Arguments) {
			return nil, wrongNumberOfArgsError(node.Paren, fn.Arity(), len(node.Arguments))
		}
		args, err := e.evalArguments(node.Arguments)
		if err != nil {
			return nil, err
		}
		return e.callFunction(fn, args)

	default:
		return nil, badCallError(node.Paren)
	}
}

// evalArguments evaluates an argument list left to right.
func (e *Evaluator) evalArguments(arguments []parser.ExprIdx) ([]objects.LoxObject, error) {
	args := make([]objects.LoxObject, len(arguments))
	for i, arg := range arguments {
		value, err := e.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return args, nil
}

// callFunction invokes a user-defined function:
//
//  1. A fresh frame is parented at the function's closure - not at the
//     call site - which is what makes scoping lexical.
//  2. Each parameter is bound to its argument in that frame.
//  3. The body executes in the new frame, against the arena the function
//     was parsed from.
//  4. A return signal yields the call result; falling off the end yields
//     nil.
//  5. The frame is popped from the active stack on every exit path.
func (e *Evaluator) callFunction(fn *function.Function, args []objects.LoxObject) (objects.LoxObject, error) {
	frame := scope.NewFrame()
	for i, param := range fn.Params {
		frame.Define(param.Literal, args[i])
	}

	prevTree := e.Tree
	e.Tree = fn.Tree
	e.Scp.PushAt(fn.Closure, frame)
	defer func() {
		e.Scp.Pop()
		e.Tree = prevTree
	}()

	for _, idx := range fn.Body {
		sig, err := e.execute(idx)
		if err != nil {
			return nil, err
		}
		if sig.returning {
			return sig.value, nil
		}
	}
	return &objects.Nil{}, nil
}
