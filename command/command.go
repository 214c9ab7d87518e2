// Package command holds the building blocks of an output tree. Every command
// renders itself into a writer.Writer when visited; composite commands visit
// their children in between, so a whole file is described as one tree and
// rendered with a single Render call.
//
// The set of commands is closed: Chunk, NextLine, Block, Callback, Braces,
// Scope, CommaList, CommentBlock, CommentLine, FeatureFlag, Include,
// IncludeBlock and Label.
package command

import (
	"github.com/rubiojr/panini/writer"
)

// Command is a node of the output tree.
type Command interface {
	writer.Visitor
	command()
}

// Chunk writes literal text. Embedded new lines are honoured.
type Chunk string

func (Chunk) command() {}

func (c Chunk) Visit(w *writer.Writer) error {
	w.Write(string(c))
	return nil
}

// NextLine ends the current line.
type NextLine struct{}

func (NextLine) command() {}

func (NextLine) Visit(w *writer.Writer) error {
	w.NewLine()
	return nil
}

// Block visits its commands in order and stops at the first error.
type Block []Command

func (Block) command() {}

func (b Block) Visit(w *writer.Writer) error {
	for _, c := range b {
		if err := visit(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Callback renders arbitrary content. It is the escape hatch for trees that
// are easier to write as code than as data.
type Callback func(w *writer.Writer) error

func (Callback) command() {}

func (f Callback) Visit(w *writer.Writer) error {
	if f == nil {
		return nil
	}
	return f(w)
}

// Body groups commands into a single one.
func Body(cmds ...Command) Command {
	return Block(cmds)
}

// Lines renders every text on its own line.
func Lines(texts ...string) Command {
	b := make(Block, 0, len(texts)*2)
	for _, t := range texts {
		b = append(b, Chunk(t), NextLine{})
	}
	return b
}

func visit(w *writer.Writer, c Command) error {
	if c == nil {
		return nil
	}
	return c.Visit(w)
}

// ensureNewLine ends the current line unless nothing was written on it.
func ensureNewLine(w *writer.Writer) {
	if !w.IsOnNewLine() {
		w.NewLine()
	}
}
