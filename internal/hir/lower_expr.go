package hir

import (
	"fmt"
	"strconv"

	"hatc/internal/ast"
	"hatc/internal/diag"
)

func (lw *Lowerer) allocExpr() ExprID {
	id := lw.nextExpr
	lw.nextExpr++
	return id
}

func (lw *Lowerer) lowerExpr(e ast.Expr) *Expr {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *ast.IdentExpr:
		return &Expr{
			ID:   lw.allocExpr(),
			Kind: ExprIdent,
			Span: x.Name.Span,
			Data: IdentData{Sym: lw.symbol(x.Name)},
		}
	case *ast.MemberExpr:
		parts := make([]Symbol, 0, len(x.Parts))
		for _, p := range x.Parts {
			parts = append(parts, lw.symbol(p))
		}
		return &Expr{
			ID:   lw.allocExpr(),
			Kind: ExprMember,
			Span: x.Span,
			Data: MemberData{Path: CompositeSymbol{Parts: parts}},
		}
	case *ast.LiteralExpr:
		return lw.lowerLiteral(x)
	case *ast.CallExpr:
		// Callee symbol first, argument IDs after, so an expression's ID
		// always precedes its children's.
		id := lw.allocExpr()
		callee := lw.symbol(x.Callee)
		args := lw.lowerExprs(x.Args)
		return &Expr{
			ID:   id,
			Kind: ExprCall,
			Span: x.Span,
			Data: CallData{Callee: callee, Args: args, Modifiers: lw.lowerModifiers(x.Modifiers)},
		}
	case *ast.OptnCallExpr:
		id := lw.allocExpr()
		return &Expr{
			ID:   id,
			Kind: ExprMetaCall,
			Span: x.Span,
			Data: MetaCallData{
				Meta:      MetaOptn,
				Name:      lw.symbol(x.Name),
				Options:   lw.lowerOptions(x.Options),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	case *ast.BdnCallExpr:
		id := lw.allocExpr()
		return &Expr{
			ID:   id,
			Kind: ExprMetaCall,
			Span: x.Span,
			Data: MetaCallData{
				Meta:      MetaBdn,
				Name:      lw.symbol(x.Name),
				Args:      lw.lowerExprs(x.Args),
				Body:      lw.lowerBlock(x.Body),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	case *ast.OptBdnCallExpr:
		id := lw.allocExpr()
		return &Expr{
			ID:   id,
			Kind: ExprMetaCall,
			Span: x.Span,
			Data: MetaCallData{
				Meta:      MetaOptBdn,
				Name:      lw.symbol(x.Name),
				Args:      lw.lowerExprs(x.Args),
				Options:   lw.lowerOptions(x.Options),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	case *ast.CastExpr:
		id := lw.allocExpr()
		return &Expr{
			ID:   id,
			Kind: ExprCast,
			Span: x.Span,
			Data: CastData{
				Value:     lw.lowerExpr(x.Value),
				To:        lw.typeName(x.To),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	}
	return nil
}

func (lw *Lowerer) lowerExprs(exprs []ast.Expr) []*Expr {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]*Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, lw.lowerExpr(e))
	}
	return out
}

func (lw *Lowerer) lowerOptions(opts []ast.OptionBody) []OptionBody {
	out := make([]OptionBody, 0, len(opts))
	for _, o := range opts {
		out = append(out, OptionBody{
			Opt:  lw.lowerExpr(o.Opt),
			Body: lw.lowerBlock(o.Body),
		})
	}
	return out
}

func (lw *Lowerer) lowerLiteral(x *ast.LiteralExpr) *Expr {
	backend, ok := BackendFromSugar(x.Sugar)
	if !ok {
		lw.report(diag.BadSugarPlacement, x.Span, x.Text,
			fmt.Sprintf("unknown backend marker %q", string(x.Sugar)))
	}
	lit := Literal{Backend: backend}
	switch x.Kind {
	case ast.LitBool:
		lit.Kind = LitBool
		lit.Bool = x.Text == "true"
	case ast.LitInt:
		lit.Kind = LitInt
		v, err := strconv.ParseInt(x.Text, 10, 64)
		if err != nil {
			lw.report(diag.LexBadNumber, x.Span, x.Text,
				fmt.Sprintf("integer literal %q out of range", x.Text))
		}
		lit.Int = v
	case ast.LitFloat:
		lit.Kind = LitFloat
		v, err := strconv.ParseFloat(x.Text, 64)
		if err != nil {
			lw.report(diag.LexBadNumber, x.Span, x.Text,
				fmt.Sprintf("float literal %q out of range", x.Text))
		}
		lit.Float = v
	case ast.LitString:
		lit.Kind = LitString
		// The lexer keeps the quotes; the content has no escapes.
		if len(x.Text) >= 2 {
			lit.Str = x.Text[1 : len(x.Text)-1]
		}
	}
	return &Expr{
		ID:   lw.allocExpr(),
		Kind: ExprLiteral,
		Span: x.Span,
		Data: LiteralData{Lit: lit},
	}
}

func (lw *Lowerer) lowerBlock(stmts []ast.Stmt) Block {
	if len(stmts) == 0 {
		return nil
	}
	out := make(Block, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, lw.lowerStmt(s))
	}
	return out
}

func (lw *Lowerer) lowerStmt(s ast.Stmt) Stmt {
	switch x := s.(type) {
	case *ast.DeclareStmt:
		return Stmt{
			Kind: StmtDeclare,
			Span: x.Span,
			Data: DeclareData{
				Name:      lw.symbol(x.Name),
				Type:      lw.typeName(x.Type),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	case *ast.DeclareAssignStmt:
		return Stmt{
			Kind: StmtDeclareAssign,
			Span: x.Span,
			Data: DeclareAssignData{
				Name:      lw.symbol(x.Name),
				Type:      lw.typeName(x.Type),
				Modifiers: lw.lowerModifiers(x.Modifiers),
				Value:     lw.lowerExpr(x.Value),
			},
		}
	case *ast.AssignStmt:
		target := make([]Symbol, 0, len(x.Target))
		for _, n := range x.Target {
			target = append(target, lw.symbol(n))
		}
		return Stmt{
			Kind: StmtAssign,
			Span: x.Span,
			Data: AssignData{
				Assign:    AssignSingle,
				Target:    CompositeSymbol{Parts: target},
				Value:     lw.lowerExpr(x.Value),
				Modifiers: lw.lowerModifiers(x.Modifiers),
			},
		}
	case *ast.StructAssignStmt:
		return Stmt{
			Kind: StmtAssign,
			Span: x.Span,
			Data: AssignData{
				Assign:  AssignStruct,
				Target:  CompositeSymbol{Parts: []Symbol{lw.symbol(x.Target)}},
				Members: lw.lowerMemberInits(x.Members),
			},
		}
	case *ast.EnumAssignStmt:
		return Stmt{
			Kind: StmtAssign,
			Span: x.Span,
			Data: AssignData{
				Assign:  AssignEnum,
				Target:  CompositeSymbol{Parts: []Symbol{lw.symbol(x.Target)}},
				Variant: lw.symbol(x.Variant),
				Members: lw.lowerMemberInits(x.Members),
			},
		}
	case *ast.ExprStmt:
		ex := lw.lowerExpr(x.X)
		return Stmt{Kind: StmtExpr, Span: ex.Span, Data: ExprStmtData{X: ex}}
	case *ast.ReturnStmt:
		return Stmt{
			Kind: StmtReturn,
			Span: x.Span,
			Data: ReturnData{Value: lw.lowerExpr(x.Value)},
		}
	}
	return Stmt{}
}

func (lw *Lowerer) lowerMemberInits(inits []ast.MemberInit) []MemberInit {
	if len(inits) == 0 {
		return nil
	}
	out := make([]MemberInit, 0, len(inits))
	for _, m := range inits {
		out = append(out, MemberInit{
			Name:  lw.plainSymbol(m.Name),
			Value: lw.lowerExpr(m.Value),
		})
	}
	return out
}
