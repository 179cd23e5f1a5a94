package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	goshape "github.com/reoring/goshape"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newValidateCmd(a *app) *cobra.Command {
	var name string
	var allowDup bool
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate JSON or YAML documents against a schema",
		Long:  `Validates each file (or stdin when the file is "-") and reports every issue. Files ending in .yaml or .yml are read as YAML.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema(name)
			if err != nil {
				return err
			}
			opt := a.parseOpt()
			if allowDup {
				opt.Strictness.OnDuplicateKey = goshape.Ignore
			}
			failed := 0
			for _, file := range args {
				src, err := openSource(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				_, err = goshape.ParseFrom(contextOf(cmd), s, src, opt)
				if !report(cmd.OutOrStdout(), file, err) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Schema name in the document (default: the root schema)")
	cmd.Flags().BoolVar(&allowDup, "allow-duplicate-keys", false, "Accept duplicate object keys (last one wins)")
	return cmd
}

func openSource(stdin io.Reader, file string) (goshape.Source, error) {
	if file == "-" {
		return goshape.JSONReader(stdin), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return goshape.YAMLBytes(data), nil
	default:
		return goshape.JSONBytes(data), nil
	}
}

// report prints the outcome for one file and reports whether it was valid.
func report(w io.Writer, file string, err error) bool {
	if err == nil {
		fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), file)
		return true
	}
	fmt.Fprintf(w, "%s %s\n", failStyle.Render("✗"), file)
	iss, ok := goshape.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "    %v\n", err)
		return false
	}
	writeIssues(w, iss, "    ")
	return false
}

func writeIssues(w io.Writer, iss goshape.Issues, indent string) {
	for _, it := range iss {
		fmt.Fprintf(w, "%s%s %s %s\n", indent, pathStyle.Render(it.Pointer()), it.Message, codeStyle.Render("["+it.Code+"]"))
		for i, br := range it.Branches {
			fmt.Fprintf(w, "%s  branch %d:\n", indent, i)
			writeIssues(w, br, indent+"    ")
		}
	}
}
