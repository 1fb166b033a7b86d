/*
File    : unlox/parser/printer.go
*/
package parser

import (
	"bytes"
	"fmt"

	"github.com/krotik/common/stringutil"
)

// INDENT_SIZE is the number of spaces each nesting level adds to the
// printed tree.
const INDENT_SIZE = 4

// PrintingVisitor renders an arena-backed AST as an indented tree. It is
// used by tests to pin the parser's output shape and is handy when
// debugging programs in the REPL.
//
// The visitor holds the arena so it can resolve the child indices stored
// in each node.
type PrintingVisitor struct {
	Tree   *Ast         // The arena being printed
	Indent int          // Current indentation, in spaces
	Buf    bytes.Buffer // Accumulated output
}

// NewPrintingVisitor creates a printer over the given arena.
func NewPrintingVisitor(tree *Ast) *PrintingVisitor {
	return &PrintingVisitor{Tree: tree}
}

// PrintRoots renders every root statement of the arena in source order
// and returns the accumulated text.
func (p *PrintingVisitor) PrintRoots() string {
	for _, idx := range p.Tree.Roots() {
		p.Tree.Stmt(idx).Accept(p)
	}
	return p.String()
}

// indent writes the current indentation into the buffer.
func (p *PrintingVisitor) indent() {
	p.Buf.WriteString(stringutil.GenerateRollingString(" ", p.Indent))
}

// nested runs fn with the indentation one level deeper.
func (p *PrintingVisitor) nested(fn func()) {
	p.Indent += INDENT_SIZE
	fn()
	p.Indent -= INDENT_SIZE
}

// printStmt dispatches a child statement through the visitor.
func (p *PrintingVisitor) printStmt(idx StmtIdx) {
	p.Tree.Stmt(idx).Accept(p)
}

// printExpr dispatches a child expression through the visitor.
func (p *PrintingVisitor) printExpr(idx ExprIdx) {
	p.Tree.Expr(idx).Accept(p)
}

// VisitPrintStatementNode renders a print statement
func (p *PrintingVisitor) VisitPrintStatementNode(node *PrintStatementNode) {
	p.indent()
	p.Buf.WriteString("Print\n")
	p.nested(func() { p.printExpr(node.Expr) })
}

// VisitExpressionStatementNode renders an expression statement
func (p *PrintingVisitor) VisitExpressionStatementNode(node *ExpressionStatementNode) {
	p.indent()
	p.Buf.WriteString("Expression\n")
	p.nested(func() { p.printExpr(node.Expr) })
}

// VisitDeclarativeStatementNode renders a variable declaration
func (p *PrintingVisitor) VisitDeclarativeStatementNode(node *DeclarativeStatementNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("VarDecl [%s]\n", node.Name.Literal))
	if node.HasInit {
		p.nested(func() { p.printExpr(node.Init) })
	}
}

// VisitBlockStatementNode renders a block and its children
func (p *PrintingVisitor) VisitBlockStatementNode(node *BlockStatementNode) {
	p.indent()
	p.Buf.WriteString("Block\n")
	p.nested(func() {
		for _, stmt := range node.Statements {
			p.printStmt(stmt)
		}
	})
}

// VisitIfStatementNode renders an if statement and its branches
func (p *PrintingVisitor) VisitIfStatementNode(node *IfStatementNode) {
	p.indent()
	p.Buf.WriteString("If\n")
	p.nested(func() {
		p.printExpr(node.Cond)
		p.printStmt(node.Then)
		if node.HasElse {
			p.printStmt(node.Else)
		}
	})
}

// VisitWhileLoopStatementNode renders a while loop
func (p *PrintingVisitor) VisitWhileLoopStatementNode(node *WhileLoopStatementNode) {
	p.indent()
	p.Buf.WriteString("While\n")
	p.nested(func() {
		p.printExpr(node.Cond)
		p.printStmt(node.Body)
	})
}

// VisitFunctionStatementNode renders a function declaration with its
// parameter list and body
func (p *PrintingVisitor) VisitFunctionStatementNode(node *FunctionStatementNode) {
	p.indent()
	params := ""
	for i, param := range node.Params {
		if i > 0 {
			params += ", "
		}
		params += param.Literal
	}
	p.Buf.WriteString(fmt.Sprintf("Function [%s(%s)]\n", node.Name.Literal, params))
	p.nested(func() {
		for _, stmt := range node.Body {
			p.printStmt(stmt)
		}
	})
}

// VisitReturnStatementNode renders a return statement
func (p *PrintingVisitor) VisitReturnStatementNode(node *ReturnStatementNode) {
	p.indent()
	p.Buf.WriteString("Return\n")
	if node.HasValue {
		p.nested(func() { p.printExpr(node.Value) })
	}
}

// VisitParseErrorStatementNode renders a recovery placeholder
func (p *PrintingVisitor) VisitParseErrorStatementNode(node *ParseErrorStatementNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("ParseErr [%s]\n", node.Message))
}

// VisitLiteralExpressionNode renders a literal value
func (p *PrintingVisitor) VisitLiteralExpressionNode(node *LiteralExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Literal [%s]\n", node.Value.ToObject()))
}

// VisitGroupingExpressionNode renders a parenthesized expression
func (p *PrintingVisitor) VisitGroupingExpressionNode(node *GroupingExpressionNode) {
	p.indent()
	p.Buf.WriteString("Grouping\n")
	p.nested(func() { p.printExpr(node.Expr) })
}

// VisitUnaryExpressionNode renders a unary operation
func (p *PrintingVisitor) VisitUnaryExpressionNode(node *UnaryExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Unary [%s]\n", node.Operator.Literal))
	p.nested(func() { p.printExpr(node.Right) })
}

// VisitBinaryExpressionNode renders a binary operation and its operands
func (p *PrintingVisitor) VisitBinaryExpressionNode(node *BinaryExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Binary [%s]\n", node.Operator.Literal))
	p.nested(func() {
		p.printExpr(node.Left)
		p.printExpr(node.Right)
	})
}

// VisitLogicalExpressionNode renders a short-circuit operation
func (p *PrintingVisitor) VisitLogicalExpressionNode(node *LogicalExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Logical [%s]\n", node.Operator.Literal))
	p.nested(func() {
		p.printExpr(node.Left)
		p.printExpr(node.Right)
	})
}

// VisitIdentifierExpressionNode renders a variable reference
func (p *PrintingVisitor) VisitIdentifierExpressionNode(node *IdentifierExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Variable [%s]\n", node.Name.Literal))
}

// VisitAssignmentExpressionNode renders an assignment
func (p *PrintingVisitor) VisitAssignmentExpressionNode(node *AssignmentExpressionNode) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("Assign [%s]\n", node.Name.Literal))
	p.nested(func() { p.printExpr(node.Value) })
}

// VisitCallExpressionNode renders a call with its callee and arguments
func (p *PrintingVisitor) VisitCallExpressionNode(node *CallExpressionNode) {
	p.indent()
	p.Buf.WriteString("Call\n")
	p.nested(func() {
		p.printExpr(node.Callee)
		for _, arg := range node.Arguments {
			p.printExpr(arg)
		}
	})
}

// String returns the accumulated output of the visitor
func (p *PrintingVisitor) String() string {
	return p.Buf.String()
}
