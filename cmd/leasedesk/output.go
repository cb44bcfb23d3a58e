package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/corvusHold/leasedesk/internal/platform/jsonx"
)

var labelStyle = lipgloss.NewStyle().Bold(true)

// table renders label/value rows aligned in two columns.
type table struct{ tw *tabwriter.Writer }

func (t *table) row(label string, value any) {
	fmt.Fprintf(t.tw, "%s\t%v\n", labelStyle.Render(label), value)
}

// rowIf skips empty values.
func (t *table) rowIf(label, value string) {
	if value != "" {
		t.row(label, value)
	}
}

func (t *table) blank() { fmt.Fprintln(t.tw, "\t") }

// print writes v as JSON or YAML, or calls rows for the table format.
func (a *app) print(w io.Writer, v any, rows func(t *table)) error {
	switch a.outputFmt {
	case "json":
		b, err := jsonx.Marshal(v, true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		n, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return err
		}
		return enc.Close()
	default:
		t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
		rows(t)
		return t.tw.Flush()
	}
}

// yamlNode converts v through its JSON form so YAML output uses the same
// field names and order as the HTTP API.
func yamlNode(v any) (*yaml.Node, error) {
	b, err := jsonx.Marshal(v, false)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return &doc, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// readYAML decodes a YAML (or JSON) file into v. "-" reads stdin.
func readYAML(path string, stdin io.Reader, v any) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := yaml.NewDecoder(r).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func readText(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func asNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	return errors.As(err, target)
}
