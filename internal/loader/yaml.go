package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/keshon/cmdhandler/pkg/cmd"

	"gopkg.in/yaml.v3"
)

// yamlArg accepts either a bare name or a {name, required} mapping.
type yamlArg cmd.Arg

func (a *yamlArg) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		a.Name = n.Value
		return nil
	}
	var raw struct {
		Name     string `yaml:"name"`
		Required bool   `yaml:"required"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("line %d: arg without a name", n.Line)
	}
	a.Name, a.Required = raw.Name, raw.Required
	return nil
}

type yamlCommand struct {
	Aliases     []string   `yaml:"aliases"`
	Description string     `yaml:"description"`
	Args        []yamlArg  `yaml:"args"`
	Reply       string     `yaml:"reply"`
	Embed       *cmd.Embed `yaml:"embed"`
}

var templateFuncs = template.FuncMap{
	"join":  func(list []string, sep string) string { return strings.Join(list, sep) },
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// replyData is what reply templates see.
type replyData struct {
	Name     string
	Prefix   string
	Args     []string
	Commands []*cmd.Command
}

// Arg returns the i-th argument, or def when it was not given.
func (d replyData) Arg(i int, def string) string {
	if i < 0 || i >= len(d.Args) {
		return def
	}
	return d.Args[i]
}

// decodeYAML builds a declarative command: its run renders the reply and embed
// templates and sends them back.
func decodeYAML(path string, src []byte) (*cmd.Command, error) {
	var f yamlCommand
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cmd.ErrNoRun
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if strings.TrimSpace(f.Reply) == "" && f.Embed == nil {
		return nil, cmd.ErrNoRun
	}

	content, err := parseTemplate(path, "reply", f.Reply)
	if err != nil {
		return nil, err
	}
	var title, desc *template.Template
	if f.Embed != nil {
		if title, err = parseTemplate(path, "embed.title", f.Embed.Title); err != nil {
			return nil, err
		}
		if desc, err = parseTemplate(path, "embed.description", f.Embed.Description); err != nil {
			return nil, err
		}
	}

	c := &cmd.Command{
		Aliases:     f.Aliases,
		Description: f.Description,
	}
	for _, a := range f.Args {
		c.Args = append(c.Args, cmd.Arg(a))
	}

	color := 0
	if f.Embed != nil {
		color = f.Embed.Color
	}
	c.Run = func(ctx context.Context, inv *cmd.Invocation) error {
		data := replyData{Name: c.Name, Args: inv.Args}
		if inv.Handler != nil {
			data.Prefix = inv.Handler.Prefix()
			data.Commands = inv.Handler.Commands()
		}

		var (
			p   cmd.Payload
			err error
		)
		if p.Content, err = render(content, data); err != nil {
			return err
		}
		if title != nil {
			e := &cmd.Embed{Color: color}
			if e.Title, err = render(title, data); err != nil {
				return err
			}
			if e.Description, err = render(desc, data); err != nil {
				return err
			}
			p.Embed = e
		}
		return inv.Reply(ctx, p)
	}
	return c, nil
}

func parseTemplate(path, field, text string) (*template.Template, error) {
	t, err := template.New(field).Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: parse %s template: %w", path, field, err)
	}
	return t, nil
}

func render(t *template.Template, data replyData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
