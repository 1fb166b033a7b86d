/*
File    : unlox/parser/parser_statements.go
*/
package parser

import (
	"github.com/wiktorwieclaw/unlox/lexer"
	"github.com/wiktorwieclaw/unlox/objects"
)

// parseDeclaration parses one declaration:
//
//	declaration → fun_decl | var_decl | statement
//
// Recovery is handled by the caller (declaration); this function and
// everything below it fail fast with a parse error.
func (par *Parser) parseDeclaration() (StatementNode, error) {
	switch par.Lex.Peek().Type {
	case lexer.FUN_KEY:
		par.Lex.Next()
		return par.parseFunctionDeclaration()
	case lexer.VAR_KEY:
		par.Lex.Next()
		return par.parseVarDeclaration()
	default:
		return par.parseStatement()
	}
}

// parseFunctionDeclaration parses a function declaration whose 'fun'
// keyword has already been consumed:
//
//	fun_decl → "fun" IDENT "(" params? ")" block
//	params   → IDENT ("," IDENT){0..254}
//
// Example:
//
//	fun add(a, b) { return a + b; }
func (par *Parser) parseFunctionDeclaration() (StatementNode, error) {
	name, err := par.expect(lexer.IDENTIFIER_ID, "Expected function name.")
	if err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.LEFT_PAREN, "Expected '(' after function name."); err != nil {
		return nil, err
	}

	params := []lexer.Token{}
	if !par.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArgs {
				return nil, newParseError(par.Lex.Peek(), "Can't have more than 255 parameters.")
			}
			param, err := par.expect(lexer.IDENTIFIER_ID, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if _, ok := par.match(lexer.COMMA_DELIM); !ok {
				break
			}
		}
	}

	if _, err := par.expect(lexer.RIGHT_PAREN, "Expected ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.LEFT_BRACE, "Expected '{' before function body."); err != nil {
		return nil, err
	}

	body, err := par.parseBlockStatements()
	if err != nil {
		return nil, err
	}

	return &FunctionStatementNode{Name: name, Params: params, Body: body}, nil
}

// parseVarDeclaration parses a variable declaration whose 'var' keyword
// has already been consumed:
//
//	var_decl → "var" IDENT ("=" expression)? ";"
//
// A declaration without an initializer binds nil when executed.
//
// Example:
//
//	var x = 10;
//	var pending;
func (par *Parser) parseVarDeclaration() (StatementNode, error) {
	name, err := par.expect(lexer.IDENTIFIER_ID, "Expected variable name.")
	if err != nil {
		return nil, err
	}

	decl := &DeclarativeStatementNode{Name: name}
	if _, ok := par.match(lexer.ASSIGN_OP); ok {
		init, err := par.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.HasInit = true
		decl.Init = init
	}

	if _, err := par.expect(lexer.SEMI_DELIM, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseStatement parses one statement:
//
//	statement → expr_stmt | for_stmt | if_stmt | print_stmt
//	          | return_stmt | while_stmt | block
func (par *Parser) parseStatement() (StatementNode, error) {
	switch par.Lex.Peek().Type {
	case lexer.FOR_KEY:
		return par.parseForStatement(par.Lex.Next())
	case lexer.IF_KEY:
		par.Lex.Next()
		return par.parseIfStatement()
	case lexer.PRINT_KEY:
		return par.parsePrintStatement(par.Lex.Next())
	case lexer.RETURN_KEY:
		return par.parseReturnStatement(par.Lex.Next())
	case lexer.WHILE_KEY:
		par.Lex.Next()
		return par.parseWhileStatement()
	case lexer.LEFT_BRACE:
		par.Lex.Next()
		stmts, err := par.parseBlockStatements()
		if err != nil {
			return nil, err
		}
		return &BlockStatementNode{Statements: stmts}, nil
	default:
		return par.parseExpressionStatement()
	}
}

// parseStatementIdx parses one statement and pushes it into the arena,
// returning its index. Used wherever the grammar nests a statement.
func (par *Parser) parseStatementIdx() (StmtIdx, error) {
	stmt, err := par.parseStatement()
	if err != nil {
		return 0, err
	}
	return par.Tree.PushStmt(stmt), nil
}

// parseBlockStatements parses declarations until the closing brace:
//
//	block → "{" declaration* "}"
//
// The opening brace has already been consumed. Declarations inside the
// block recover independently, so a broken statement doesn't discard the
// rest of the block.
func (par *Parser) parseBlockStatements() ([]StmtIdx, error) {
	stmts := []StmtIdx{}
	for !par.check(lexer.RIGHT_BRACE) && !par.eof() {
		stmt := par.declaration()
		stmts = append(stmts, par.Tree.PushStmt(stmt))
	}
	if _, err := par.expect(lexer.RIGHT_BRACE, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parsePrintStatement parses the remainder of a print statement:
//
//	print_stmt → "print" expression ";"
func (par *Parser) parsePrintStatement(keyword lexer.Token) (StatementNode, error) {
	expr, err := par.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.SEMI_DELIM, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStatementNode{Keyword: keyword, Expr: expr}, nil
}

// parseExpressionStatement parses an expression evaluated for its side
// effects:
//
//	expr_stmt → expression ";"
func (par *Parser) parseExpressionStatement() (StatementNode, error) {
	expr, err := par.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.SEMI_DELIM, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStatementNode{Expr: expr}, nil
}

// parseIfStatement parses the remainder of an if statement:
//
//	if_stmt → "if" "(" expression ")" statement ("else" statement)?
func (par *Parser) parseIfStatement() (StatementNode, error) {
	if _, err := par.expect(lexer.LEFT_PAREN, "Expected '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := par.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.RIGHT_PAREN, "Expected ')' after condition."); err != nil {
		return nil, err
	}

	then, err := par.parseStatementIdx()
	if err != nil {
		return nil, err
	}

	node := &IfStatementNode{Cond: cond, Then: then}
	if _, ok := par.match(lexer.ELSE_KEY); ok {
		elseIdx, err := par.parseStatementIdx()
		if err != nil {
			return nil, err
		}
		node.HasElse = true
		node.Else = elseIdx
	}
	return node, nil
}

// parseWhileStatement parses the remainder of a while statement:
//
//	while_stmt → "while" "(" expression ")" statement
func (par *Parser) parseWhileStatement() (StatementNode, error) {
	if _, err := par.expect(lexer.LEFT_PAREN, "Expected '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := par.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := par.expect(lexer.RIGHT_PAREN, "Expected ')' after condition."); err != nil {
		return nil, err
	}
	body, err := par.parseStatementIdx()
	if err != nil {
		return nil, err
	}
	return &WhileLoopStatementNode{Cond: cond, Body: body}, nil
}

// parseReturnStatement parses the remainder of a return statement:
//
//	return_stmt → "return" expression? ";"
//
// A bare return produces nil.
func (par *Parser) parseReturnStatement(keyword lexer.Token) (StatementNode, error) {
	node := &ReturnStatementNode{Keyword: keyword}
	if !par.check(lexer.SEMI_DELIM) {
		value, err := par.parseExpression()
		if err != nil {
			return nil, err
		}
		node.HasValue = true
		node.Value = value
	}
	if _, err := par.expect(lexer.SEMI_DELIM, "Expected ';' after return value."); err != nil {
		return nil, err
	}
	return node, nil
}

// parseForStatement parses a for statement and lowers it to while form:
//
//	for_stmt → "for" "(" (var_decl | expr_stmt | ";")
//	                     expression? ";"
//	                     expression? ")" statement
//
// The lowering wraps the body and the increment in a block, wraps that in
// a while-loop over the condition (a literal true when absent), and wraps
// the whole thing in a block holding the initializer:
//
//	for (init; cond; inc) body
//	  ==>  { init; while (cond) { body; inc; } }
//
// Every piece of the rewrite lives in the same arena, so the transformed
// loop shares the already-parsed nodes instead of copying them.
func (par *Parser) parseForStatement(keyword lexer.Token) (StatementNode, error) {
	if _, err := par.expect(lexer.LEFT_PAREN, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	// Initializer clause: absent, a var declaration, or an expression
	// statement. All three forms consume their own ';'.
	var init StatementNode
	switch par.Lex.Peek().Type {
	case lexer.SEMI_DELIM:
		par.Lex.Next()
	case lexer.VAR_KEY:
		par.Lex.Next()
		decl, err := par.parseVarDeclaration()
		if err != nil {
			return nil, err
		}
		init = decl
	default:
		stmt, err := par.parseExpressionStatement()
		if err != nil {
			return nil, err
		}
		init = stmt
	}

	// Condition clause: absent means literal true.
	var cond ExprIdx
	hasCond := false
	if !par.check(lexer.SEMI_DELIM) {
		expr, err := par.parseExpression()
		if err != nil {
			return nil, err
		}
		cond = expr
		hasCond = true
	}
	if _, err := par.expect(lexer.SEMI_DELIM, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	// Increment clause.
	var inc ExprIdx
	hasInc := false
	if !par.check(lexer.RIGHT_PAREN) {
		expr, err := par.parseExpression()
		if err != nil {
			return nil, err
		}
		inc = expr
		hasInc = true
	}
	if _, err := par.expect(lexer.RIGHT_PAREN, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := par.parseStatementIdx()
	if err != nil {
		return nil, err
	}

	if hasInc {
		incStmt := par.Tree.PushStmt(&ExpressionStatementNode{Expr: inc})
		body = par.Tree.PushStmt(&BlockStatementNode{Statements: []StmtIdx{body, incStmt}})
	}

	if !hasCond {
		trueToken := lexer.NewTokenWithMetadata(lexer.TRUE_KEY, "true", keyword.Line)
		cond = par.Tree.PushExpr(&LiteralExpressionNode{
			Token: trueToken,
			Value: &objects.Boolean{Value: true},
		})
	}

	var loop StatementNode = &WhileLoopStatementNode{Cond: cond, Body: body}
	if init == nil {
		return loop, nil
	}

	initIdx := par.Tree.PushStmt(init)
	loopIdx := par.Tree.PushStmt(loop)
	return &BlockStatementNode{Statements: []StmtIdx{initIdx, loopIdx}}, nil
}
