// Package planner assigns an execution mode to every expression of a
// resolved project. Strict expressions run to completion when evaluated;
// staged expressions are captured for deferred execution on their target
// backend. QPU work is always staged: quantum programs are circuits
// submitted as a whole, never evaluated step by step.
package planner

import (
	"fmt"

	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/resolver"
)

// Mode is the planned execution mode of one expression.
type Mode uint8

const (
	// ModeStrict evaluates immediately, in program order.
	ModeStrict Mode = iota
	// ModeStaged captures the expression for deferred backend execution.
	ModeStaged
)

func (m Mode) String() string {
	if m == ModeStaged {
		return "staged"
	}
	return "strict"
}

// Schedule maps expression IDs to their planned mode. Expressions of
// failed modules are absent.
type Schedule struct {
	Modes map[hir.ExprID]Mode
}

// Mode returns the planned mode, defaulting to strict for unknown IDs.
func (s *Schedule) Mode(id hir.ExprID) Mode {
	return s.Modes[id]
}

// ctx carries the inherited mode down an expression tree. forced marks
// contexts where strictness is demanded (an explicit strict modifier, or
// a modifier argument) rather than merely the default.
type ctx struct {
	mode   Mode
	forced bool
}

type planner struct {
	reporter diag.Reporter
	modes    map[hir.ExprID]Mode
	modPath  string
	errors   int
}

// Plan walks every bound module and schedules its expressions. The
// default mode is strict; a `staged` modifier opts a subtree in, and QPU
// expressions stage themselves unless the context demands strictness,
// which is an error.
func Plan(mapped *resolver.MappedProject, reporter diag.Reporter) (*Schedule, bool) {
	p := &planner{
		reporter: reporter,
		modes:    make(map[hir.ExprID]Mode),
	}
	for _, mm := range mapped.Modules {
		if mm.State != resolver.ModuleBound {
			continue
		}
		p.modPath = mm.Module.Path.String()
		p.planModule(mm.Module)
	}
	return &Schedule{Modes: p.modes}, p.errors == 0
}

func (p *planner) planModule(mod *hir.Module) {
	root := ctx{mode: ModeStrict}
	switch mod.Content.Kind {
	case hir.ContentConsts:
		for _, c := range mod.Content.Consts {
			p.planExpr(c.Value, p.applyModifiers(root, c.Modifiers))
			p.planModifierValues(c.Modifiers)
		}
	case hir.ContentGroups:
		for _, g := range mod.Content.Groups {
			switch g.Kind {
			case hir.GroupFn:
				p.planBody(g.Fn.Body, p.applyModifiers(root, g.Fn.Modifiers))
				p.planModifierValues(g.Fn.Modifiers)
			case hir.GroupModifier:
				p.planBody(g.Modifier.Body, p.applyModifiers(root, g.Modifier.Modifiers))
				p.planModifierValues(g.Modifier.Modifiers)
			case hir.GroupMetaFn:
				p.planBody(g.MetaFn.Body, p.applyModifiers(root, g.MetaFn.Modifiers))
				p.planModifierValues(g.MetaFn.Modifiers)
			}
		}
	}
}

// applyModifiers folds `staged`/`strict` annotations into the context.
func (p *planner) applyModifiers(c ctx, mods []hir.Modifier) ctx {
	for _, m := range mods {
		switch m.Name.Name {
		case "staged":
			c = ctx{mode: ModeStaged}
		case "strict":
			c = ctx{mode: ModeStrict, forced: true}
		}
	}
	return c
}

// planModifierValues schedules modifier argument expressions. Modifier
// arguments are evaluated while the modifier itself runs, so they are a
// strict context in their own right.
func (p *planner) planModifierValues(mods []hir.Modifier) {
	for _, m := range mods {
		if m.Value != nil {
			p.planExpr(m.Value, ctx{mode: ModeStrict, forced: true})
		}
	}
}

func (p *planner) planBody(body hir.Block, c ctx) {
	for i := range body {
		p.planStmt(&body[i], c)
	}
}

func (p *planner) planStmt(s *hir.Stmt, c ctx) {
	switch d := s.Data.(type) {
	case hir.DeclareData:
		p.planModifierValues(d.Modifiers)
	case hir.DeclareAssignData:
		p.planExpr(d.Value, p.applyModifiers(c, d.Modifiers))
		p.planModifierValues(d.Modifiers)
	case hir.AssignData:
		sub := p.applyModifiers(c, d.Modifiers)
		p.planExpr(d.Value, sub)
		for _, m := range d.Members {
			p.planExpr(m.Value, sub)
		}
		p.planModifierValues(d.Modifiers)
	case hir.ExprStmtData:
		p.planExpr(d.X, c)
	case hir.ReturnData:
		p.planExpr(d.Value, c)
	}
}

func (p *planner) planExpr(e *hir.Expr, c ctx) {
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case hir.CallData:
		c = p.applyModifiers(c, d.Modifiers)
	case hir.MetaCallData:
		c = p.applyModifiers(c, d.Modifiers)
	case hir.CastData:
		c = p.applyModifiers(c, d.Modifiers)
	}

	if e.Backend() == hir.QPU && c.mode == ModeStrict {
		if c.forced {
			p.errors++
			diag.ReportError(p.reporter, diag.IllegalStrictQpu, e.Span,
				fmt.Sprintf("%s expression cannot run in a strict context, quantum work is staged only", hir.QPU)).
				InModule(p.modPath).
				Emit()
		} else {
			c = ctx{mode: ModeStaged}
		}
	}
	p.modes[e.ID] = c.mode

	switch d := e.Data.(type) {
	case hir.CallData:
		for _, a := range d.Args {
			p.planExpr(a, c)
		}
		p.planModifierValues(d.Modifiers)
	case hir.MetaCallData:
		for _, a := range d.Args {
			p.planExpr(a, c)
		}
		for _, opt := range d.Options {
			p.planExpr(opt.Opt, c)
			p.planBody(opt.Body, c)
		}
		p.planBody(d.Body, c)
		p.planModifierValues(d.Modifiers)
	case hir.CastData:
		p.planExpr(d.Value, c)
		p.planModifierValues(d.Modifiers)
	}
}
