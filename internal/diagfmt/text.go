// Package diagfmt renders diagnostics, token streams and syntax trees
// for the CLI.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"hatc/internal/diag"
	"hatc/internal/source"
)

// Options controls rendering.
type Options struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

func severityLabel(sev diag.Severity, colored bool) string {
	var c *color.Color
	var label string
	switch sev {
	case diag.SevError:
		c, label = errColor, "error"
	case diag.SevWarning:
		c, label = warnColor, "warning"
	default:
		c, label = infoColor, "info"
	}
	if !colored {
		return label
	}
	return c.Sprint(label)
}

// WriteText renders diagnostics one per line:
//
//	<module>: <Code>: <detail> (file:line:col)
//
// followed by indented notes. Diagnostics with no module render without
// the leading segment.
func WriteText(w io.Writer, fset *source.FileSet, diags []diag.Diagnostic, opts Options) {
	for _, d := range diags {
		if d.Module != "" {
			fmt.Fprintf(w, "%s: ", d.Module)
		}
		fmt.Fprintf(w, "%s %s: %s", severityLabel(d.Severity, opts.Color), d.Code, d.Message)
		if loc := formatSpan(fset, d.Primary, opts.Color); loc != "" {
			fmt.Fprintf(w, " %s", loc)
		}
		fmt.Fprintln(w)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "    note: %s", n.Msg)
			if loc := formatSpan(fset, n.Span, opts.Color); loc != "" {
				fmt.Fprintf(w, " %s", loc)
			}
			fmt.Fprintln(w)
		}
	}
}

func formatSpan(fset *source.FileSet, sp source.Span, colored bool) string {
	if fset == nil || sp.Empty() {
		return ""
	}
	f := fset.Get(sp.File)
	if f == nil {
		return ""
	}
	start, _ := fset.Resolve(sp)
	loc := fmt.Sprintf("(%s:%d:%d)", f.Path, start.Line, start.Col)
	if colored {
		return dimColor.Sprint(loc)
	}
	return loc
}

// Summary prints the closing error/warning count line.
func Summary(w io.Writer, bag *diag.Bag, opts Options) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return
	}
	label := fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	if opts.Color && errs > 0 {
		label = errColor.Sprint(label)
	}
	fmt.Fprintln(w, label)
}
