package hierarchy

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/rubiojr/panini/command"
	"github.com/rubiojr/panini/include"
	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

const banner = "Generated by panini. Do not edit."

// RequiredIncludes returns the user includes together with the standard
// headers the member types need.
func (d *Description) RequiredIncludes() (*include.Set, error) {
	set := &include.Set{}
	for _, inc := range d.Includes {
		st := style.InheritInclude
		if inc.System {
			st = style.AngleBrackets
		}
		if err := set.Add(inc.Path, st); err != nil {
			return nil, err
		}
	}
	for _, s := range d.Sections {
		for _, st := range s.Settings {
			m, err := st.resolve()
			if err != nil {
				return nil, errors.Wrapf(err, "section %s", s.Name)
			}
			if m.Header != "" {
				if err := set.Add(m.Header, style.AngleBrackets); err != nil {
					return nil, err
				}
			}
		}
	}
	return set, nil
}

// Build turns the description into a command tree.
func Build(d *Description) (command.Command, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	includes, err := d.RequiredIncludes()
	if err != nil {
		return nil, err
	}

	header := []string{banner}
	if d.Comment != "" {
		header = append(header, "", d.Comment)
	}

	tree := command.Block{
		command.CommentBlock{Body: command.Lines(header...)},
		command.NextLine{},
		command.Chunk("#pragma once"),
		command.NextLine{},
	}
	if includes.Len() > 0 {
		tree = append(tree,
			command.NextLine{},
			command.IncludeBlock{Set: includes},
			command.NextLine{})
	}

	body, err := d.sections()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return tree, nil
	}

	tree = append(tree, command.NextLine{})
	if d.Namespace == "" {
		return append(tree, body...), nil
	}
	return append(tree,
		command.Scope{Name: "namespace " + d.Namespace, Body: body},
		command.NextLine{}), nil
}

// Render builds the description and renders it into w.
func Render(w *writer.Writer, d *Description) error {
	tree, err := Build(d)
	if err != nil {
		return err
	}
	return w.Render(tree)
}

func (d *Description) sections() (command.Block, error) {
	var body command.Block
	for i, s := range d.Sections {
		if i > 0 {
			body = append(body, command.NextLine{})
		}
		class, err := s.class()
		if err != nil {
			return nil, err
		}
		if s.Feature != "" {
			body = append(body, command.FeatureFlag{Condition: s.Feature, Then: class}, command.NextLine{})
			continue
		}
		body = append(body, class)
	}
	if len(d.Sections) == 0 {
		return body, nil
	}

	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return append(body,
		command.NextLine{},
		command.Chunk("inline constexpr const char* kSectionNames[] = "),
		command.CommaList[string]{
			Items:     slices.Values(names),
			Begin:     "{ ",
			End:       " }",
			Transform: func(name string, _ int) string { return strconv.Quote(name) },
		},
		command.Chunk(";"),
		command.NextLine{},
	), nil
}

func (s Section) class() (command.Command, error) {
	members := command.Block{
		command.Label{Name: "public", Outdent: true},
		command.NextLine{},
	}
	for _, st := range s.Settings {
		m, err := st.resolve()
		if err != nil {
			return nil, errors.Wrapf(err, "section %s", s.Name)
		}
		if st.Comment != "" {
			members = append(members, command.CommentLine{Text: st.Comment}, command.NextLine{})
		}
		members = append(members,
			command.Chunk(fmt.Sprintf("%s %s = %s;", m.Type, st.Name, m.Literal)),
			command.NextLine{})
	}

	var class command.Block
	if s.Comment != "" {
		class = append(class, command.CommentLine{Text: s.Comment}, command.NextLine{})
	}
	return append(class,
		command.Scope{Name: "class " + s.Name, Body: members},
		command.Chunk(";"),
		command.NextLine{},
	), nil
}
