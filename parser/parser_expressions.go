/*
File    : unlox/parser/parser_expressions.go
*/
package parser

import (
	"github.com/wiktorwieclaw/unlox/lexer"
	"github.com/wiktorwieclaw/unlox/objects"
)

// parseExpression parses one expression. The precedence ladder, loosest
// binding first:
//
//	expression → assignment
//	assignment → IDENT "=" assignment | logic_or
//	logic_or   → logic_and ("or" logic_and)*
//	logic_and  → equality ("and" equality)*
//	equality   → comparison (("!="|"==") comparison)*
//	comparison → term ((">"|">="|"<"|"<=") term)*
//	term       → factor (("-"|"+") factor)*
//	factor     → unary (("/"|"*") unary)*
//	unary      → ("!"|"-") unary | call
//	call       → primary ("(" args? ")")*
//	primary    → NUMBER | STRING | "true" | "false" | "nil"
//	           | "(" expression ")" | IDENT
func (par *Parser) parseExpression() (ExprIdx, error) {
	return par.parseAssignment()
}

// parseAssignment parses an assignment or anything of higher precedence.
// The left side is parsed as an ordinary expression first; only when an
// '=' follows is the result checked to be a plain variable reference. Any
// other target is a diagnostic at the '=' token. Assignment is
// right-associative: x = y = 0 assigns both.
func (par *Parser) parseAssignment() (ExprIdx, error) {
	expr, err := par.parseLogicOr()
	if err != nil {
		return 0, err
	}

	if equals, ok := par.match(lexer.ASSIGN_OP); ok {
		value, err := par.parseAssignment()
		if err != nil {
			return 0, err
		}
		variable, ok := par.Tree.Expr(expr).(*IdentifierExpressionNode)
		if !ok {
			return 0, newParseError(equals, "Invalid assignment target.")
		}
		return par.Tree.PushExpr(&AssignmentExpressionNode{
			Name:  variable.Name,
			Value: value,
		}), nil
	}

	return expr, nil
}

// parseLogicOr parses a chain of 'or' operands.
func (par *Parser) parseLogicOr() (ExprIdx, error) {
	expr, err := par.parseLogicAnd()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.OR_KEY) {
		operator := par.Lex.Next()
		right, err := par.parseLogicAnd()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&LogicalExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseLogicAnd parses a chain of 'and' operands.
func (par *Parser) parseLogicAnd() (ExprIdx, error) {
	expr, err := par.parseEquality()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.AND_KEY) {
		operator := par.Lex.Next()
		right, err := par.parseEquality()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&LogicalExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseEquality parses a chain of equality comparisons (== and !=).
func (par *Parser) parseEquality() (ExprIdx, error) {
	expr, err := par.parseComparison()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.EQ_OP) || par.check(lexer.BANG_EQ_OP) {
		operator := par.Lex.Next()
		right, err := par.parseComparison()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&BinaryExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseComparison parses a chain of ordering comparisons (<, <=, >, >=).
func (par *Parser) parseComparison() (ExprIdx, error) {
	expr, err := par.parseTerm()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.LT_OP) || par.check(lexer.LE_OP) ||
		par.check(lexer.GT_OP) || par.check(lexer.GE_OP) {
		operator := par.Lex.Next()
		right, err := par.parseTerm()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&BinaryExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseTerm parses a chain of additive operations (+ and -).
func (par *Parser) parseTerm() (ExprIdx, error) {
	expr, err := par.parseFactor()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.MINUS_OP) || par.check(lexer.PLUS_OP) {
		operator := par.Lex.Next()
		right, err := par.parseFactor()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&BinaryExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseFactor parses a chain of multiplicative operations (* and /).
func (par *Parser) parseFactor() (ExprIdx, error) {
	expr, err := par.parseUnary()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.SLASH_OP) || par.check(lexer.STAR_OP) {
		operator := par.Lex.Next()
		right, err := par.parseUnary()
		if err != nil {
			return 0, err
		}
		expr = par.Tree.PushExpr(&BinaryExpressionNode{
			Operator: operator,
			Left:     expr,
			Right:    right,
		})
	}
	return expr, nil
}

// parseUnary parses prefix operators (! and -), which nest, and falls
// through to call expressions.
func (par *Parser) parseUnary() (ExprIdx, error) {
	if par.check(lexer.BANG_OP) || par.check(lexer.MINUS_OP) {
		operator := par.Lex.Next()
		right, err := par.parseUnary()
		if err != nil {
			return 0, err
		}
		return par.Tree.PushExpr(&UnaryExpressionNode{
			Operator: operator,
			Right:    right,
		}), nil
	}
	return par.parseCall()
}

// parseCall parses a primary expression followed by any number of
// argument lists, so curried calls like f(1)(2) parse naturally.
func (par *Parser) parseCall() (ExprIdx, error) {
	expr, err := par.parsePrimary()
	if err != nil {
		return 0, err
	}
	for par.check(lexer.LEFT_PAREN) {
		par.Lex.Next()
		expr, err = par.finishCall(expr)
		if err != nil {
			return 0, err
		}
	}
	return expr, nil
}

// finishCall parses an argument list whose opening parenthesis has been
// consumed. Arguments evaluate left to right at runtime, in the order
// collected here. The 256th argument is a diagnostic at its first token.
func (par *Parser) finishCall(callee ExprIdx) (ExprIdx, error) {
	args := []ExprIdx{}
	if !par.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxCallArgs {
				return 0, newParseError(par.Lex.Peek(), "Can't have more than 255 arguments.")
			}
			arg, err := par.parseExpression()
			if err != nil {
				return 0, err
			}
			args = append(args, arg)
			if _, ok := par.match(lexer.COMMA_DELIM); !ok {
				break
			}
		}
	}

	paren, err := par.expect(lexer.RIGHT_PAREN, "Expected ')' after arguments.")
	if err != nil {
		return 0, err
	}
	return par.Tree.PushExpr(&CallExpressionNode{
		Callee:    callee,
		Paren:     paren,
		Arguments: args,
	}), nil
}

// parsePrimary parses the atoms of the grammar: literals, groupings and
// variable references. An unterminated string and a premature end of
// input surface here as diagnostics.
func (par *Parser) parsePrimary() (ExprIdx, error) {
	token := par.Lex.Peek()
	switch token.Type {
	case lexer.NUMBER_LIT:
		par.Lex.Next()
		return par.Tree.PushExpr(&LiteralExpressionNode{
			Token: token,
			Value: &objects.Number{Value: token.Number},
		}), nil

	case lexer.STRING_LIT:
		if !token.Terminated {
			return 0, newParseError(token, "Unterminated string.")
		}
		par.Lex.Next()
		return par.Tree.PushExpr(&LiteralExpressionNode{
			Token: token,
			Value: &objects.String{Value: token.Text},
		}), nil

	case lexer.TRUE_KEY:
		par.Lex.Next()
		return par.Tree.PushExpr(&LiteralExpressionNode{
			Token: token,
			Value: &objects.Boolean{Value: true},
		}), nil

	case lexer.FALSE_KEY:
		par.Lex.Next()
		return par.Tree.PushExpr(&LiteralExpressionNode{
			Token: token,
			Value: &objects.Boolean{Value: false},
		}), nil

	case lexer.NIL_KEY:
		par.Lex.Next()
		return par.Tree.PushExpr(&LiteralExpressionNode{
			Token: token,
			Value: &objects.Nil{},
		}), nil

	case lexer.LEFT_PAREN:
		par.Lex.Next()
		expr, err := par.parseExpression()
		if err != nil {
			return 0, err
		}
		if _, err := par.expect(lexer.RIGHT_PAREN, `Expected ")" after expression.`); err != nil {
			return 0, err
		}
		return par.Tree.PushExpr(&GroupingExpressionNode{Expr: expr}), nil

	case lexer.IDENTIFIER_ID:
		par.Lex.Next()
		return par.Tree.PushExpr(&IdentifierExpressionNode{Name: token}), nil

	case lexer.EOF_TYPE:
		return 0, newParseError(token, "Unexpected end of file.")

	default:
		return 0, newParseError(token, "Expected expression.")
	}
}
