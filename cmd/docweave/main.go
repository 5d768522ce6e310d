package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/docweave/docweave/pkg/manifest"
	"github.com/docweave/docweave/pkg/template"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = cobra.Command{
	Use:   "docweave",
	Short: "Compile text templates with variables, patterns, and includes",
}

var (
	varFlags    []string
	varsFile    string
	includeMode string
	includePath string
	strictVars  bool
	outPath     string
)

var renderCmd = cobra.Command{
	Use:   "render TEMPLATE",
	Short: "Render a template file to text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		doc, err := template.ParseFile(args[0], opts)
		if err != nil {
			return err
		}
		if err := applyBindings(doc); err != nil {
			return err
		}
		out, err := doc.Render()
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}
		return writeOutput(outPath, out)
	},
}

var inspectCmd = cobra.Command{
	Use:   "inspect TEMPLATE",
	Short: "Show a template's tree and the names it references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		doc, err := template.ParseFile(args[0], opts)
		if err != nil {
			return err
		}
		fmt.Print(template.Pretty(doc))
		vars, patterns := template.Refs(doc)
		if len(vars) > 0 {
			fmt.Printf("variables: %s\n", strings.Join(vars, ", "))
		}
		if len(patterns) > 0 {
			fmt.Printf("patterns: %s\n", strings.Join(patterns, ", "))
		}
		return nil
	},
}

var buildCmd = cobra.Command{
	Use:   "build MANIFEST",
	Short: "Render the template described by a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		out, err := m.Run()
		if err != nil {
			return err
		}
		dest := outPath
		if dest == "" {
			dest = m.OutputPath()
		}
		return writeOutput(dest, out)
	},
}

func buildOptions() (template.Options, error) {
	opts := template.DefaultOptions()
	switch includeMode {
	case "", "template":
	case "cwd":
		opts.IncludeMode = template.IncludeCurrentDir
	case "path":
		if includePath == "" {
			return opts, fmt.Errorf("--include-mode=path requires --include-path")
		}
		opts.IncludeMode = template.IncludeFixedDir
		opts.IncludePath = includePath
	default:
		return opts, fmt.Errorf("unknown include mode %q", includeMode)
	}
	if strictVars {
		opts.UnsetVariable = template.LevelError
	}
	return opts, nil
}

func applyBindings(doc *template.Document) error {
	if varsFile != "" {
		raw, err := os.ReadFile(varsFile)
		if err != nil {
			return fmt.Errorf("reading variables file: %w", err)
		}
		var vars map[string]string
		if err := yaml.Unmarshal(raw, &vars); err != nil {
			return fmt.Errorf("decoding variables file %s: %w", varsFile, err)
		}
		for name, value := range vars {
			doc.Set(name, value)
		}
	}
	for _, kv := range varFlags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid --var %q, want name=value", kv)
		}
		doc.Set(name, value)
	}
	return nil
}

func writeOutput(dest, out string) error {
	if dest == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{&renderCmd, &inspectCmd} {
		cmd.Flags().StringVar(&includeMode, "include-mode", "", "include resolution mode: cwd, template, or path")
		cmd.Flags().StringVar(&includePath, "include-path", "", "base directory for --include-mode=path")
	}
	renderCmd.Flags().StringArrayVar(&varFlags, "var", nil, "variable binding name=value, repeatable")
	renderCmd.Flags().StringVar(&varsFile, "vars", "", "YAML file of variable bindings")
	renderCmd.Flags().BoolVar(&strictVars, "strict-vars", false, "fail when a referenced variable is unset")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to a file instead of stdout")
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to a file, overriding the manifest")

	rootCmd.AddCommand(&renderCmd, &inspectCmd, &buildCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
