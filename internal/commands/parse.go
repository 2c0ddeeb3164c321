package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/parser"
	"github.com/gerunddev/orgparse/internal/styles"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a file and print its outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

// parseYAML switches the output to a YAML document summary.
var parseYAML bool

func init() {
	parseCmd.Flags().BoolVar(&parseYAML, "yaml", false, "dump a document summary as YAML")
	rootCmd.AddCommand(parseCmd)
}

// documentSummary is the YAML view of a parsed document.
type documentSummary struct {
	Title       string            `yaml:"title"`
	Tags        []string          `yaml:"tags,omitempty"`
	Keywords    map[string]string `yaml:"keywords,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
	Pinned      bool              `yaml:"pinned,omitempty"`
	Preface     []string          `yaml:"preface,omitempty"`
	Sections    []sectionSummary  `yaml:"sections,omitempty"`
	Diagnostics []string          `yaml:"diagnostics,omitempty"`
	Partial     bool              `yaml:"partial,omitempty"`
}

type sectionSummary struct {
	Depth      int               `yaml:"depth"`
	Title      string            `yaml:"title"`
	Todo       string            `yaml:"todo,omitempty"`
	Priority   string            `yaml:"priority,omitempty"`
	Tags       []string          `yaml:"tags,omitempty"`
	Planning   []string          `yaml:"planning,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Chunks     []string          `yaml:"chunks,omitempty"`
	Children   []sectionSummary  `yaml:"children,omitempty"`
}

func summarize(doc *ast.Document) documentSummary {
	s := documentSummary{
		Title:   doc.Title(),
		Preface: chunkKinds(doc.Preface),
		Partial: doc.Partial,
	}
	if p := doc.Preamble; p != nil {
		s.Tags = p.Tags
		s.Keywords = p.Keywords
		s.Properties = p.Properties.Map()
		s.Pinned = p.Pile.Pinned
	}
	for _, sec := range doc.Sections {
		s.Sections = append(s.Sections, summarizeSection(sec))
	}
	for _, d := range doc.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, d.Error())
	}
	return s
}

func summarizeSection(sec *ast.Section) sectionSummary {
	h := sec.Heading
	s := sectionSummary{
		Depth:      h.Depth,
		Title:      h.TitleText(),
		Todo:       h.Todo,
		Priority:   h.Priority,
		Tags:       h.Tags,
		Properties: h.Properties.Map(),
		Chunks:     chunkKinds(sec.Chunks),
	}
	for _, p := range h.Planning {
		entry := p.Kind.String() + " " + p.Time.String()
		if p.HasEnd {
			entry += "--" + p.End.String()
		}
		s.Planning = append(s.Planning, entry)
	}
	for _, child := range sec.Children {
		s.Children = append(s.Children, summarizeSection(child))
	}
	return s
}

func chunkKinds(chunks []ast.Chunk) []string {
	var out []string
	for _, c := range chunks {
		out = append(out, chunkKind(c))
	}
	return out
}

func chunkKind(c ast.Chunk) string {
	switch c := c.(type) {
	case *ast.Paragraph:
		return "paragraph"
	case *ast.CommentLine:
		return "comment"
	case *ast.HorizontalRule:
		return "rule"
	case *ast.Table:
		return fmt.Sprintf("table (%d rows)", len(c.Rows))
	case *ast.Block:
		return "block " + c.Name
	case *ast.List:
		kind := "list"
		if c.Ordered {
			kind = "ordered list"
		}
		return fmt.Sprintf("%s (%d items)", kind, len(c.Items))
	}
	return fmt.Sprintf("%T", c)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := parser.ParseOrg(src)
	if doc == nil {
		return err
	}
	if err != nil && !errors.Is(err, parser.ErrPartialDocument) {
		return err
	}

	out := cmd.OutOrStdout()
	if parseYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(summarize(doc)); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
	} else {
		printOutline(out, doc)
	}

	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningStyle.Render("! "+err.Error()))
	}
	return nil
}

func printOutline(w io.Writer, doc *ast.Document) {
	fmt.Fprintln(w, styles.TitleStyle.Render(doc.Title()))
	if p := doc.Preamble; p != nil && len(p.Tags) > 0 {
		fmt.Fprintln(w, styles.DimStyle.Render(":"+strings.Join(p.Tags, ":")+":"))
	}
	for _, sec := range doc.Outline() {
		h := sec.Heading
		line := strings.Repeat("  ", h.Depth-1) + strings.Repeat("*", h.Depth) + " "
		if h.Todo != "" {
			style := styles.WarningStyle
			if h.Done {
				style = styles.SuccessStyle
			}
			line += style.Render(h.Todo) + " "
		}
		if h.Priority != "" {
			line += styles.HighlightStyle.Render("[#"+h.Priority+"]") + " "
		}
		line += h.TitleText()
		if len(h.Tags) > 0 {
			line += " " + styles.DimStyle.Render(":"+strings.Join(h.Tags, ":")+":")
		}
		fmt.Fprintln(w, line)
	}
	for _, d := range doc.Diagnostics {
		fmt.Fprintln(w, styles.ErrorStyle.Render("✗ "+d.Error()))
	}
}
