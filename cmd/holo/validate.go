package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"holoscript/internal/diagfmt"
	"holoscript/internal/driver"
	"holoscript/internal/project"
	"holoscript/internal/source"
)

var validateUI uiFlag

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.holo|directory>",
	Short: "Validate a HoloScript file or directory",
	Long:  `Run syntax, semantic and performance checks on a HoloScript file or on every *.holo file under a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// init registers CLI flags for the validate command used by runValidate.
func init() {
	validateCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	validateCmd.Flags().Bool("no-warnings", false, "drop warnings from the report")
	validateCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	validateCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	validateCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	validateCmd.Flags().Bool("disk-cache", false, "enable persistent report cache for unchanged scripts")
	validateCmd.Flags().Var(&validateUI, "ui", "interactive progress UI for directory runs (auto|on|off)")
}

// runValidate executes the "validate" command: it resolves flags and the
// project manifest, runs the driver over the given path, renders the results
// in the chosen format and exits non-zero when any script has errors.
func runValidate(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}

	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	st, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	// Манифест настраивает валидатор; его отсутствие — не ошибка.
	manifestDir := targetPath
	if !st.IsDir() {
		manifestDir = filepath.Dir(targetPath)
	}
	manifest, _, err := project.Load(manifestDir)
	if err != nil {
		return err
	}

	opts := &driver.Options{
		MaxDiagnostics:   maxDiagnostics,
		NoWarnings:       noWarnings,
		WarningsAsErrors: warningsAsErrors,
		Jobs:             jobs,
		Lint:             manifest.LintOptions(),
	}
	if enableDiskCache {
		cache, cacheErr := driver.OpenCache("holo")
		if cacheErr != nil {
			return fmt.Errorf("failed to open disk cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	var result *driver.RunResult
	useTUI := st.IsDir() && format == "pretty" && validateUI.enabled() && !quiet
	if useTUI {
		files, listErr := driver.CollectScripts(targetPath)
		if listErr != nil {
			return listErr
		}
		result, err = runValidateWithUI(cmd.Context(), "validating "+targetPath, files, targetPath, opts)
	} else {
		result, err = driver.ValidatePath(cmd.Context(), targetPath, opts)
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	fs := result.FileSet
	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:      useColor,
			PathMode:   pathMode,
			ShowSource: true,
		}
		for idx, r := range result.Results {
			if r.Report.Count() == 0 {
				continue
			}
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(result.Results) > 1 {
				displayPath := displayPathFor(fs, r, fullPath)
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath)
			}
			diagfmt.Pretty(os.Stdout, r.Report.Bag(), fs, prettyOpts)
		}
		if !quiet {
			printSummary(result)
		}
	case "short":
		diagfmt.Short(os.Stdout, result.Bag(), fs)
	case "json":
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, Max: maxDiagnostics}
		if err := diagfmt.JSON(os.Stdout, result.Bag(), fs, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if result.HasErrors() {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

func displayPathFor(fs *source.FileSet, r *driver.Result, fullPath bool) string {
	if r.FileID == 0 {
		return r.Path
	}
	mode := "auto"
	if fullPath {
		mode = "absolute"
	}
	return fs.Get(r.FileID).FormatPath(mode, fs.BaseDir())
}

func printSummary(result *driver.RunResult) {
	issues := 0
	failed := 0
	for _, r := range result.Results {
		issues += r.Report.Count()
		if !r.Report.Valid {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stdout, "validated %d script(s): %d with errors, %d finding(s)\n",
			len(result.Results), failed, issues)
		return
	}
	fmt.Fprintf(os.Stdout, "validated %d script(s): %d finding(s)\n", len(result.Results), issues)
}
