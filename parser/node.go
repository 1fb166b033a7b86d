/*
File    : unlox/parser/node.go
*/
package parser

import (
	"github.com/wiktorwieclaw/unlox/lexer"
	"github.com/wiktorwieclaw/unlox/objects"
)

// NodeVisitor implements the Visitor design pattern for traversing the AST.
// Each Visit method processes a specific node type, enabling operations like
// printing or transformation. A visitor is expected to hold the Ast arena it
// traverses, since nodes reference their children by index.
type NodeVisitor interface {
	// Statement visitors
	VisitPrintStatementNode(node *PrintStatementNode)           // print expr;
	VisitExpressionStatementNode(node *ExpressionStatementNode) // expr;
	VisitDeclarativeStatementNode(node *DeclarativeStatementNode)
	VisitBlockStatementNode(node *BlockStatementNode)       // { ... }
	VisitIfStatementNode(node *IfStatementNode)             // if (cond) ... else ...
	VisitWhileLoopStatementNode(node *WhileLoopStatementNode)
	VisitFunctionStatementNode(node *FunctionStatementNode) // fun name(params) { ... }
	VisitReturnStatementNode(node *ReturnStatementNode)     // return expr;
	VisitParseErrorStatementNode(node *ParseErrorStatementNode)

	// Expression visitors
	VisitLiteralExpressionNode(node *LiteralExpressionNode) // 42, "hi", true, nil
	VisitGroupingExpressionNode(node *GroupingExpressionNode)
	VisitUnaryExpressionNode(node *UnaryExpressionNode)   // -x, !x
	VisitBinaryExpressionNode(node *BinaryExpressionNode) // +, -, *, /, ==, <, ...
	VisitLogicalExpressionNode(node *LogicalExpressionNode)
	VisitIdentifierExpressionNode(node *IdentifierExpressionNode)
	VisitAssignmentExpressionNode(node *AssignmentExpressionNode)
	VisitCallExpressionNode(node *CallExpressionNode) // callee(args)
}

// Node: base interface for all nodes of the AST
// Literal(): returns the principal source lexeme of the node
// Accept(): accepts a visitor
type Node interface {
	Literal() string
	Accept(visitor NodeVisitor)
}

// StatementNode: base interface for all statement nodes
type StatementNode interface {
	Node
	Statement()
}

// ExpressionNode: base interface for all expression nodes
type ExpressionNode interface {
	Node
	Expression()
}

// PrintStatementNode evaluates an expression and prints its display form
// followed by a line terminator.
// Example: print 1 + 2;
type PrintStatementNode struct {
	Keyword lexer.Token // The 'print' token
	Expr    ExprIdx     // The expression to print
}

func (node *PrintStatementNode) Literal() string { return node.Keyword.Literal }
func (node *PrintStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitPrintStatementNode(node)
}
func (node *PrintStatementNode) Statement() {}

// ExpressionStatementNode evaluates an expression for its side effects and
// discards the result.
// Example: counter();
type ExpressionStatementNode struct {
	Expr ExprIdx // The expression to evaluate
}

func (node *ExpressionStatementNode) Literal() string { return ";" }
func (node *ExpressionStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitExpressionStatementNode(node)
}
func (node *ExpressionStatementNode) Statement() {}

// DeclarativeStatementNode defines a variable in the current frame. A
// declaration without an initializer binds nil.
// Example: var x = 10;
type DeclarativeStatementNode struct {
	Name    lexer.Token // The variable's identifier token
	HasInit bool        // Whether an initializer was written
	Init    ExprIdx     // The initializer expression, if any
}

func (node *DeclarativeStatementNode) Literal() string { return node.Name.Literal }
func (node *DeclarativeStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitDeclarativeStatementNode(node)
}
func (node *DeclarativeStatementNode) Statement() {}

// BlockStatementNode executes its children in order inside a fresh child
// frame.
// Example: { var a = 1; print a; }
type BlockStatementNode struct {
	Statements []StmtIdx // Child statements in source order
}

func (node *BlockStatementNode) Literal() string { return "{" }
func (node *BlockStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitBlockStatementNode(node)
}
func (node *BlockStatementNode) Statement() {}

// IfStatementNode branches on the truthiness of its condition.
// Example: if (x > 0) print x; else print -x;
type IfStatementNode struct {
	Cond    ExprIdx // Condition expression
	Then    StmtIdx // Statement executed when the condition is truthy
	HasElse bool    // Whether an else branch was written
	Else    StmtIdx // Statement executed when the condition is falsey
}

func (node *IfStatementNode) Literal() string { return "if" }
func (node *IfStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitIfStatementNode(node)
}
func (node *IfStatementNode) Statement() {}

// WhileLoopStatementNode executes its body while the condition stays
// truthy. for-loops are lowered to this node by the parser.
// Example: while (n > 0) n = n - 1;
type WhileLoopStatementNode struct {
	Cond ExprIdx // Loop condition
	Body StmtIdx // Loop body
}

func (node *WhileLoopStatementNode) Literal() string { return "while" }
func (node *WhileLoopStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitWhileLoopStatementNode(node)
}
func (node *WhileLoopStatementNode) Statement() {}

// FunctionStatementNode defines a named function value in the current
// frame. The body is stored as a list of statement indices; the closure
// frame is attached by the evaluator when the definition executes.
// Example: fun add(a, b) { return a + b; }
type FunctionStatementNode struct {
	Name   lexer.Token   // The function's identifier token
	Params []lexer.Token // Parameter identifier tokens
	Body   []StmtIdx     // Body statements in source order
}

func (node *FunctionStatementNode) Literal() string { return node.Name.Literal }
func (node *FunctionStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitFunctionStatementNode(node)
}
func (node *FunctionStatementNode) Statement() {}

// ReturnStatementNode signals a return from the enclosing function, with
// nil when no value is written. The grammar only permits return inside a
// function body.
// Example: return n * 2;
type ReturnStatementNode struct {
	Keyword  lexer.Token // The 'return' token
	HasValue bool        // Whether a return value was written
	Value    ExprIdx     // The return value expression, if any
}

func (node *ReturnStatementNode) Literal() string { return node.Keyword.Literal }
func (node *ReturnStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitReturnStatementNode(node)
}
func (node *ReturnStatementNode) Statement() {}

// ParseErrorStatementNode is the placeholder the parser emits when
// panic-mode recovery discards a broken declaration. Executing it raises a
// runtime error carrying the original parse diagnostic, so a program with
// parse errors halts at the first broken statement it reaches.
type ParseErrorStatementNode struct {
	Token   lexer.Token // The token the parse error was reported at
	Message string      // The original parse diagnostic
}

func (node *ParseErrorStatementNode) Literal() string { return node.Token.Literal }
func (node *ParseErrorStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitParseErrorStatementNode(node)
}
func (node *ParseErrorStatementNode) Statement() {}

// LiteralExpressionNode holds a literal value scanned directly from the
// source: a number, a string, a boolean or nil.
// Example: 42, "hello", true, nil
type LiteralExpressionNode struct {
	Token lexer.Token       // The literal's source token
	Value objects.LoxObject // The literal's runtime value
}

func (node *LiteralExpressionNode) Literal() string { return node.Token.Literal }
func (node *LiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitLiteralExpressionNode(node)
}
func (node *LiteralExpressionNode) Expression() {}

// GroupingExpressionNode wraps a parenthesized expression.
// Example: (1 + 2)
type GroupingExpressionNode struct {
	Expr ExprIdx // The inner expression
}

func (node *GroupingExpressionNode) Literal() string { return "(" }
func (node *GroupingExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitGroupingExpressionNode(node)
}
func (node *GroupingExpressionNode) Expression() {}

// UnaryExpressionNode applies a prefix operator to a single operand.
// Example: -x, !done
type UnaryExpressionNode struct {
	Operator lexer.Token // The operator token (- or !)
	Right    ExprIdx     // The operand
}

func (node *UnaryExpressionNode) Literal() string { return node.Operator.Literal }
func (node *UnaryExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitUnaryExpressionNode(node)
}
func (node *UnaryExpressionNode) Expression() {}

// BinaryExpressionNode applies an infix operator to two operands, both of
// which are always evaluated, left first.
// Example: a + b, x < y
type BinaryExpressionNode struct {
	Operator lexer.Token // The operator token
	Left     ExprIdx     // Left operand
	Right    ExprIdx     // Right operand
}

func (node *BinaryExpressionNode) Literal() string { return node.Operator.Literal }
func (node *BinaryExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitBinaryExpressionNode(node)
}
func (node *BinaryExpressionNode) Expression() {}

// LogicalExpressionNode applies 'and'/'or' with short-circuit evaluation:
// the right operand is evaluated only when the left does not settle the
// result, and the value of the settling operand is the value of the whole
// expression.
// Example: a and b, x or fallback
type LogicalExpressionNode struct {
	Operator lexer.Token // The 'and' or 'or' token
	Left     ExprIdx     // Left operand
	Right    ExprIdx     // Right operand
}

func (node *LogicalExpressionNode) Literal() string { return node.Operator.Literal }
func (node *LogicalExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitLogicalExpressionNode(node)
}
func (node *LogicalExpressionNode) Expression() {}

// IdentifierExpressionNode reads a variable by name, resolved against the
// chain of frames from the active frame to the root.
// Example: x
type IdentifierExpressionNode struct {
	Name lexer.Token // The identifier token
}

func (node *IdentifierExpressionNode) Literal() string { return node.Name.Literal }
func (node *IdentifierExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitIdentifierExpressionNode(node)
}
func (node *IdentifierExpressionNode) Expression() {}

// AssignmentExpressionNode overwrites an existing variable binding. The
// value of the expression is the assigned value, so assignments chain.
// Example: x = y = 0
type AssignmentExpressionNode struct {
	Name  lexer.Token // The assigned variable's identifier token
	Value ExprIdx     // The value expression
}

func (node *AssignmentExpressionNode) Literal() string { return node.Name.Literal }
func (node *AssignmentExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitAssignmentExpressionNode(node)
}
func (node *AssignmentExpressionNode) Expression() {}

// CallExpressionNode invokes a callable value with arguments evaluated
// left to right. The closing parenthesis token is kept for error
// reporting.
// Example: fib(n - 1)
type CallExpressionNode struct {
	Callee    ExprIdx     // Expression producing the callable
	Paren     lexer.Token // The ')' token ending the argument list
	Arguments []ExprIdx   // Argument expressions in source order
}

func (node *CallExpressionNode) Literal() string { return node.Paren.Literal }
func (node *CallExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitCallExpressionNode(node)
}
func (node *CallExpressionNode) Expression() {}
