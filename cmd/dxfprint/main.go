package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kapilmoond/dxfprint"
	"github.com/kapilmoond/dxfprint/api"
	pdffmt "github.com/kapilmoond/dxfprint/formatters/pdf"
	svgfmt "github.com/kapilmoond/dxfprint/formatters/svg"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		output      string
		format      string
		optionsFile string
		input       dxfprint.Input
	)
	flagOpts := dxfprint.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "dxfprint <file>",
		Short: "Convert a DXF drawing into a printable multi-page document",
		Long: `dxfprint renders a DXF drawing as a paginated print document:
a title page, the drawing scaled to fit the page, and a specifications
page. The input is either a JSON conversion request (the format the
estimation app produces) or a raw .dxf file plus metadata flags.`,
		Example: `  dxfprint drawing.json -o drawing.pdf
  dxfprint beam.dxf --title "Beam B-102" --format svg -o beam
  dxfprint drawing.json --options print.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flagOpts
			if optionsFile != "" {
				fileOpts, err := dxfprint.LoadOptions(optionsFile)
				if err != nil {
					return err
				}
				opts = mergeOptions(fileOpts, flagOpts, cmd)
			}

			req, err := loadInput(args[0], input)
			if err != nil {
				return err
			}

			converter := dxfprint.NewConverter(dxfprint.WithOptions(opts))
			doc, diag, err := converter.Convert(req)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			}
			if err := writeDocument(doc, format, output, opts.Debug); err != nil {
				return err
			}

			printSummary(cmd, diag)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output path (extension added per format)")
	flags.StringVarP(&format, "format", "f", "pdf", "output format: pdf or svg")
	flags.StringVar(&optionsFile, "options", "", "YAML file overriding render options")
	flags.StringVar(&input.Title, "title", "", "drawing title (raw .dxf input)")
	flags.StringVar(&input.Description, "description", "", "drawing description (raw .dxf input)")
	flags.StringVar(&input.ComponentName, "component", "", "component name (raw .dxf input)")
	flags.StringVar(&input.NominalScale, "scale", "", "nominal scale label (raw .dxf input)")
	flags.Float64Var(&input.Dimensions.Width, "width", 0, "nominal width in mm (raw .dxf input)")
	flags.Float64Var(&input.Dimensions.Height, "height", 0, "nominal height in mm (raw .dxf input)")
	flagOpts.BindFlags(flags)

	return rootCmd
}

// mergeOptions layers explicitly set knob flags over the options file.
func mergeOptions(fileOpts, flagOpts dxfprint.Options, cmd *cobra.Command) dxfprint.Options {
	opts := fileOpts
	if cmd.Flags().Changed("safety-factor") {
		opts.Scale.SafetyFactor = flagOpts.Scale.SafetyFactor
	}
	if cmd.Flags().Changed("arc-segments") {
		opts.ArcSegments = flagOpts.ArcSegments
	}
	if cmd.Flags().Changed("min-text-size") {
		opts.MinTextSize = flagOpts.MinTextSize
	}
	if cmd.Flags().Changed("stroke-width") {
		opts.StrokeWidth = flagOpts.StrokeWidth
	}
	if cmd.Flags().Changed("debug") {
		opts.Debug = flagOpts.Debug
	}
	return opts
}

// loadInput reads either a JSON conversion request or a raw DXF file.
// Raw DXF content is base64-wrapped so both paths feed the same
// pipeline entry point.
func loadInput(path string, flagInput dxfprint.Input) (dxfprint.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dxfprint.Input{}, fmt.Errorf("read input: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var req dxfprint.Input
		if err := json.Unmarshal(data, &req); err != nil {
			return dxfprint.Input{}, fmt.Errorf("parse input %s: %w", path, err)
		}
		if req.SourceFile == "" {
			req.SourceFile = filepath.Base(path)
		}
		return req, nil
	}

	req := flagInput
	req.DXFContentBase64 = base64.StdEncoding.EncodeToString(data)
	req.SourceFile = filepath.Base(path)
	if req.Title == "" {
		req.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return req, nil
}

func writeDocument(doc *api.Document, format, output string, debug bool) error {
	switch strings.ToLower(format) {
	case "pdf":
		data, err := pdffmt.NewWriter(pdffmt.WithDebugGrid(debug)).Write(doc)
		if err != nil {
			return err
		}
		return os.WriteFile(withExt(output, ".pdf"), data, 0o644)

	case "svg":
		pages, err := svgfmt.NewWriter().Pages(doc)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(output, ".svg")
		for i, data := range pages {
			name := fmt.Sprintf("%s-%d-%s.svg", base, i+1, doc.Pages[i].Name)
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown format %q (use pdf or svg)", format)
	}
}

func withExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

func printSummary(cmd *cobra.Command, diag *api.Diagnostics) {
	out := cmd.OutOrStdout()

	if diag.FallbackUsed {
		fmt.Fprintln(out, warnStyle.Render("fallback page generated: no usable geometry"))
	} else {
		fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("rendered %d/%d entities", diag.Rendered, diag.TotalEntities)))
	}

	for _, note := range diag.Dropped {
		fmt.Fprintln(out, dimStyle.Render("dropped "+note.String()))
	}
	for _, note := range diag.Skipped {
		fmt.Fprintln(out, dimStyle.Render("skipped "+note.String()))
	}
	for _, note := range diag.Ignored {
		fmt.Fprintln(out, dimStyle.Render("ignored "+note.String()))
	}
	if diag.ParseRetried {
		fmt.Fprintln(out, dimStyle.Render("parser retried with normalized line endings"))
	}
}
