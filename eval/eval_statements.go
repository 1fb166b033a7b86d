/*
File    : unlox/eval/eval_statements.go
*/
package eval

import (
	"fmt"

	"github.com/wiktorwieclaw/unlox/function"
	"github.com/wiktorwieclaw/unlox/objects"
	"github.com/wiktorwieclaw/unlox/parser"
	"github.com/wiktorwieclaw/unlox/scope"
)

// signal is the control-flow result of executing a statement: either
// normal completion or a return travelling up to the nearest function
// call. Loops and blocks propagate the signal; calls catch it. No other
// statement type produces a return.
type signal struct {
	returning bool              // Whether a return is propagating
	value     objects.LoxObject // The value carried by the return
}

// continueSignal is the signal of a statement that completed normally.
var continueSignal = signal{}

// returnSignal wraps a value in a propagating return.
func returnSignal(value objects.LoxObject) signal {
	return signal{returning: true, value: value}
}

// execute runs a single statement and reports its control-flow signal.
// Runtime errors abort execution and carry the offending token for the
// diagnostic.
func (e *Evaluator) execute(idx parser.StmtIdx) (signal, error) {
	switch node := e.Tree.Stmt(idx).(type) {

	case *parser.PrintStatementNode:
		value, err := e.evaluate(node.Expr)
		if err != nil {
			return continueSignal, err
		}
		fmt.Fprintf(e.Writer, "%s\n", value.ToString())
		return continueSignal, nil

	case *parser.ExpressionStatementNode:
		_, err := e.evaluate(node.Expr)
		return continueSignal, err

	case *parser.DeclarativeStatementNode:
		var value objects.LoxObject = &objects.Nil{}
		if node.HasInit {
			init, err := e.evaluate(node.Init)
			if err != nil {
				return continueSignal, err
			}
			value = init
		}
		e.Scp.Define(node.Name.Literal, value)
		return continueSignal, nil

	case *parser.BlockStatementNode:
		return e.executeBlock(node.Statements, e.Scp.Current())

	case *parser.IfStatementNode:
		cond, err := e.evaluate(node.Cond)
		if err != nil {
			return continueSignal, err
		}
		if objects.Truthy(cond) {
			return e.execute(node.Then)
		}
		if node.HasElse {
			return e.execute(node.Else)
		}
		return continueSignal, nil

	case *parser.WhileLoopStatementNode:
		for {
			cond, err := e.evaluate(node.Cond)
			if err != nil {
				return continueSignal, err
			}
			if !objects.Truthy(cond) {
				return continueSignal, nil
			}
			sig, err := e.execute(node.Body)
			if err != nil {
				return continueSignal, err
			}
			if sig.returning {
				return sig, nil
			}
		}

	case *parser.FunctionStatementNode:
		fn := &function.Function{
			Name:    node.Name.Literal,
			Params:  node.Params,
			Body:    node.Body,
			Tree:    e.Tree,
			Closure: e.Scp.Current(),
		}
		e.Scp.Define(fn.Name, fn)
		return continueSignal, nil

	case *parser.ReturnStatementNode:
		var value objects.LoxObject = &objects.Nil{}
		if node.HasValue {
			result, err := e.evaluate(node.Value)
			if err != nil {
				return continueSignal, err
			}
			value = result
		}
		return returnSignal(value), nil

	case *parser.ParseErrorStatementNode:
		return continueSignal, parsingError(node.Token, node.Message)

	default:
		return continueSignal, fmt.Errorf("unhandled statement node %T", node)
	}
}

// executeBlock runs a statement list in a fresh frame parented at the
// given frame. The frame is popped from the active stack on every exit
// path: normal completion, a propagating return, and a runtime error. It
// stays in the cactus tree, so any closure created inside the block keeps
// a valid reference.
func (e *Evaluator) executeBlock(stmts []parser.StmtIdx, parent scope.FrameIdx) (signal, error) {
	e.Scp.PushAt(parent, scope.NewFrame())
	defer e.Scp.Pop()

	for _, idx := range stmts {
		sig, err := e.execute(idx)
		if err != nil {
			return continueSignal, err
		}
		if sig.returning {
			return sig, nil
		}
	}
	return continueSignal, nil
}
