// Command mdtree renders declarative document descriptions (YAML or JSON)
// as markdown, and inspects the trees built from them.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/growler/go-mdtree"
	"github.com/growler/go-mdtree/compose"
	"github.com/growler/go-mdtree/internal/logger"
)

const version = "0.1.0"

// CLI defines the command-line interface for mdtree.
var CLI struct {
	// Global flags
	Config  string `name:"config" short:"c" help:"Style options file (YAML or JSON)" type:"existingfile"`
	Debug   bool   `name:"debug" help:"Log render details to stderr" env:"DEBUG_MD_RENDERER"`
	LogMode string `name:"log-mode" help:"Log encoding (dev or prod)" enum:"dev,prod" default:"dev"`

	Render  RenderCmd  `cmd:"" help:"Render a document description as markdown"`
	AST     ASTCmd     `cmd:"" name:"ast" help:"Print the lowered document as tagged JSON"`
	Tree    TreeCmd    `cmd:"" help:"Print the generic tree built from a description"`
	Outline OutlineCmd `cmd:"" help:"Print the heading outline of a document"`
	Text    TextCmd    `cmd:"" help:"Print the plain text of a document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RenderCmd renders a description.
type RenderCmd struct {
	Input  string `arg:"" optional:"" default:"-" help:"Description file, - for stdin"`
	Output string `short:"o" help:"Output file (default stdout)" type:"path"`
}

func (c *RenderCmd) Run() error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	log, err := logger.New(CLI.LogMode, CLI.Debug)
	if err != nil {
		return errors.Wrap(err, "could not create logger")
	}
	defer func() { _ = log.Sync() }()

	nodes, err := readInput(c.Input)
	if err != nil {
		return err
	}
	out, err := compose.Render(mdtree.NewRenderer(opts, log), nodes...)
	if err != nil {
		return err
	}
	if err := writeOutput(c.Output, out); err != nil {
		return err
	}
	log.Debug("wrote output",
		zap.String("path", c.Output),
		zap.String("size", humanize.Bytes(uint64(len(out)))))
	return nil
}

// ASTCmd dumps the lowered document.
type ASTCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"Description file, - for stdin"`
}

func (c *ASTCmd) Run() error {
	doc, err := lowerInput(c.Input)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := mdtree.WriteJSON(&buf, doc); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(os.Stdout)
	return err
}

// TreeCmd dumps the generic tree.
type TreeCmd struct {
	Input   string `arg:"" optional:"" default:"-" help:"Description file, - for stdin"`
	Pretty  bool   `help:"Pretty-print the node structure instead of an outline"`
	NoColor bool   `name:"no-color" help:"Disable colors in pretty output"`
}

func (c *TreeCmd) Run() error {
	cont, err := mountInput(c.Input)
	if err != nil {
		return err
	}
	if cont.Root() == mdtree.NoNode {
		return nil
	}
	if c.Pretty {
		pp.ColoringEnabled = !c.NoColor
		_, err = pp.Fprintln(os.Stdout, cont.Store().Snapshot(cont.Root()))
		return err
	}
	_, err = io.WriteString(os.Stdout, cont.Store().Dump(cont.Root()))
	return err
}

// OutlineCmd lists the headings.
type OutlineCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"Description file, - for stdin"`
}

func (c *OutlineCmd) Run() error {
	doc, err := lowerInput(c.Input)
	if err != nil {
		return err
	}
	for _, h := range doc.Outline() {
		fmt.Printf("%s%s\n", strings.Repeat("  ", h.Level-1), h.Title())
	}
	return nil
}

// TextCmd prints the plain text of a document.
type TextCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"Description file, - for stdin"`
}

func (c *TextCmd) Run() error {
	doc, err := lowerInput(c.Input)
	if err != nil {
		return err
	}
	fmt.Println(doc.Text())
	return nil
}

// VersionCmd prints version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("mdtree version %s\n", version)
	return nil
}

// Helper functions

func loadOptions() (mdtree.Options, error) {
	if CLI.Config == "" {
		return mdtree.DefaultOptions(), nil
	}
	f, err := os.Open(CLI.Config)
	if err != nil {
		return mdtree.Options{}, errors.Wrap(err, "could not open config")
	}
	defer f.Close()
	opts, err := mdtree.LoadOptions(f)
	if err != nil {
		return mdtree.Options{}, errors.Wrapf(err, "config %s", CLI.Config)
	}
	return opts, nil
}

func readInput(path string) ([]compose.Node, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "could not open input")
		}
		defer f.Close()
		r = f
	}
	nodes, err := compose.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "input %s", path)
	}
	return nodes, nil
}

func mountInput(path string) (*mdtree.Container, error) {
	nodes, err := readInput(path)
	if err != nil {
		return nil, err
	}
	c := mdtree.NewContainer(mdtree.NewStore())
	if err := compose.Mount(c, nodes...); err != nil {
		return nil, err
	}
	return c, nil
}

func lowerInput(path string) (*mdtree.Doc, error) {
	c, err := mountInput(path)
	if err != nil {
		return nil, err
	}
	if c.Root() == mdtree.NoNode {
		return &mdtree.Doc{}, nil
	}
	return mdtree.Lower(c.Store(), c.Root())
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	return errors.Wrap(os.WriteFile(path, []byte(text), 0o644), "could not write output")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mdtree"),
		kong.Description("Render declarative document descriptions as markdown"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
