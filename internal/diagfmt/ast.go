package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"hatc/internal/ast"
)

// WriteModule dumps a parsed module as an indented outline. It shows
// structure, not source: good enough to see what the parser made of a
// file.
func WriteModule(w io.Writer, m *ast.Module, opts Options) {
	p := &astPrinter{w: w, opts: opts}
	p.linef(0, "module %s (%s)", m.PathString(), m.Kind)
	for _, imp := range m.Imports {
		p.linef(1, "use %s: %s", imp.Category, importPath(imp))
	}
	for _, c := range m.Consts {
		p.linef(1, "const %s : %s = %s", nameStr(c.Name), nameStr(c.Type.Name), exprStr(c.Value))
	}
	for _, t := range m.Types {
		p.typeDef(1, t)
	}
	for _, g := range m.Groups {
		p.groupDef(1, g)
	}
}

type astPrinter struct {
	w    io.Writer
	opts Options
}

func (p *astPrinter) linef(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) typeDef(depth int, t *ast.TypeDef) {
	switch t.Kind {
	case ast.TypeDefPrimitive:
		p.linef(depth, "type %s : %s", nameStr(t.Name), t.Prim.Text)
	case ast.TypeDefStruct:
		p.linef(depth, "type %s (struct)", nameStr(t.Name))
		for _, m := range t.Members {
			p.linef(depth+1, "%s : %s", nameStr(m.Name), nameStr(m.Type.Name))
		}
	case ast.TypeDefEnum:
		p.linef(depth, "enum %s", nameStr(t.Name))
		for _, mem := range t.EnumMems {
			if mem.IsStruct() {
				p.linef(depth+1, "%s (struct, %d members)", nameStr(mem.Name), len(mem.Members))
			} else {
				p.linef(depth+1, "%s", nameStr(mem.Name))
			}
		}
	}
}

func (p *astPrinter) groupDef(depth int, g *ast.GroupDef) {
	switch g.Kind {
	case ast.GroupFn:
		ret := ""
		if g.Fn.Ret != nil {
			ret = " " + nameStr(g.Fn.Ret.Name)
		}
		p.linef(depth, "fn %s(%s)%s [%d stmts]",
			nameStr(g.Fn.Name), paramsStr(g.Fn.Params), ret, len(g.Fn.Body))
	case ast.GroupModifier:
		p.linef(depth, "modifier %s(%s) [%d stmts]",
			nameStr(g.Modifier.Name), paramsStr(g.Modifier.Params), len(g.Modifier.Body))
	case ast.GroupMetaFn:
		p.linef(depth, "metafn %s(%s) %s [%d stmts]",
			nameStr(g.MetaFn.Name), paramsStr(g.MetaFn.Params), metaKindStr(g.MetaFn.Kind), len(g.MetaFn.Body))
	}
}

func importPath(imp ast.Import) string {
	if len(imp.Path) == 0 {
		return nameStr(imp.Name)
	}
	return strings.Join(imp.Path, ".") + "." + nameStr(imp.Name)
}

func nameStr(n ast.Name) string {
	if n.Sugar != 0 {
		return string(n.Sugar) + n.Text
	}
	return n.Text
}

func paramsStr(params []ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, nameStr(p.Name)+":"+nameStr(p.Type.Name))
	}
	return strings.Join(parts, " ")
}

func metaKindStr(k ast.MetaKind) string {
	switch k {
	case ast.MetaFnT:
		return "fn_t"
	case ast.MetaOptnT:
		return "optn_t"
	case ast.MetaBdnT:
		return "bdn_t"
	case ast.MetaOptBdnT:
		return "optbdn_t"
	}
	return "unknown"
}

func exprStr(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.IdentExpr:
		return nameStr(x.Name)
	case *ast.LiteralExpr:
		if x.Sugar != 0 {
			return string(x.Sugar) + x.Text
		}
		return x.Text
	case *ast.MemberExpr:
		parts := make([]string, 0, len(x.Parts))
		for _, n := range x.Parts {
			parts = append(parts, nameStr(n))
		}
		return strings.Join(parts, ".")
	case *ast.CallExpr:
		return nameStr(x.Callee) + "(...)"
	case *ast.OptnCallExpr:
		return nameStr(x.Name) + "(opts...)"
	case *ast.BdnCallExpr:
		return nameStr(x.Name) + "(...){...}"
	case *ast.OptBdnCallExpr:
		return nameStr(x.Name) + "(...){opts...}"
	case *ast.CastExpr:
		return exprStr(x.Value) + " * " + nameStr(x.To.Name)
	}
	return "?"
}
