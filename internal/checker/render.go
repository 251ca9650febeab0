package checker

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"gopkg.in/yaml.v3"
)

// Format selects how reports are written.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q: must be text, json or yaml", s)
}

var (
	okStyle   = color.Style{color.FgGreen, color.OpBold}
	failStyle = color.Style{color.FgRed, color.OpBold}
	dimStyle  = color.Style{color.FgGray}
)

// Renderer writes reports in one format.
type Renderer struct {
	Format  Format
	Colored bool
}

type document struct {
	Summary Summary  `json:"summary" yaml:"summary"`
	Reports []Report `json:"reports" yaml:"reports"`
}

// Render writes reports and their summary to w.
func (r Renderer) Render(w io.Writer, reports []Report) error {
	doc := document{Summary: Summarize(reports), Reports: reports}
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return r.renderText(w, doc)
	}
	return fmt.Errorf("unknown report format %q", r.Format)
}

// RenderOne writes a single report without a summary line.
func (r Renderer) RenderOne(w io.Writer, report Report) error {
	if r.Format == FormatText || r.Format == "" {
		_, err := fmt.Fprintln(w, r.textLine(report))
		return err
	}
	return r.Render(w, []Report{report})
}

func (r Renderer) renderText(w io.Writer, doc document) error {
	for _, rep := range doc.Reports {
		if _, err := fmt.Fprintln(w, r.textLine(rep)); err != nil {
			return err
		}
	}
	s := doc.Summary
	_, err := fmt.Fprintf(w, "%d checked, %d valid, %d invalid\n", s.Total, s.Valid, s.Invalid)
	return err
}

func (r Renderer) textLine(rep Report) string {
	paint := func(st color.Style, s string) string {
		if r.Colored {
			return st.Sprint(s)
		}
		return s
	}

	if rep.Valid {
		return fmt.Sprintf("%s %s %s", paint(okStyle, "ok  "), rep.Path,
			paint(dimStyle, fmt.Sprintf("%dx%d players=%d exits=%d collectables=%d reachable=%d (%s)",
				rep.Width, rep.Height, rep.Players, rep.Exits, rep.Collectables, rep.Reachable, rep.Elapsed)))
	}
	line := fmt.Sprintf("%s %s %s", paint(failStyle, "FAIL"), rep.Path, rep.Message)
	var where []string
	if rep.Position != nil {
		where = append(where, fmt.Sprintf("row %d, col %d", rep.Position.Row, rep.Position.Col))
	}
	if rep.Detail != "" {
		where = append(where, rep.Detail)
	}
	if len(where) > 0 {
		line += " " + paint(dimStyle, "("+strings.Join(where, ": ")+")")
	}
	return line
}
