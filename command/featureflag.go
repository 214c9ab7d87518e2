package command

import (
	"strings"

	"github.com/rubiojr/panini/writer"
)

// Guard selects how a FeatureFlag marks its content.
type Guard int

const (
	// GuardPreprocessor wraps Then in "#if Condition" ... "#endif", with
	// Else after "#else" when present. Both branches are rendered and the
	// compiler picks one.
	GuardPreprocessor Guard = iota
	// GuardComment renders only the branch chosen by Enabled. Then is
	// surrounded by "// Condition" markers.
	GuardComment
)

// FeatureFlag renders content that depends on a build-time switch.
//
// The preprocessor guard is emitted even when Condition is empty; the
// caller decides whether that is meaningful.
type FeatureFlag struct {
	Condition string
	Guard     Guard
	// Enabled picks the branch for GuardComment.
	Enabled bool
	Then    Command
	Else    Command
}

func (FeatureFlag) command() {}

func (f FeatureFlag) Visit(w *writer.Writer) error {
	if f.Guard == GuardComment {
		return f.visitComment(w)
	}

	ensureNewLine(w)
	w.Write(strings.TrimRight("#if "+f.Condition, " "))
	w.NewLine()
	if err := visit(w, f.Then); err != nil {
		return err
	}
	ensureNewLine(w)

	if f.Else != nil {
		w.Write("#else")
		w.NewLine()
		if err := visit(w, f.Else); err != nil {
			return err
		}
		ensureNewLine(w)
	}

	w.Write("#endif")
	return nil
}

func (f FeatureFlag) visitComment(w *writer.Writer) error {
	if !f.Enabled {
		return visit(w, f.Else)
	}

	marker := CommentLine{Text: f.Condition}
	if f.Condition != "" {
		if err := marker.Visit(w); err != nil {
			return err
		}
		w.NewLine()
	}
	if err := visit(w, f.Then); err != nil {
		return err
	}
	if f.Condition != "" {
		ensureNewLine(w)
		return marker.Visit(w)
	}
	return nil
}
