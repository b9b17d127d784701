package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new HoloScript project",
	Long: `Initialize a new HoloScript project by creating a project manifest (holo.toml)
and a starter script (main.holo). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a project at the target path (or the current working
// directory when no argument or "." is provided) by creating a holo.toml
// manifest and a main.holo starter script. It refuses to initialize when
// holo.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "holo-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "holo.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create main.holo if not exists
	mainPath := filepath.Join(target, "main.holo")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainHolo()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.holo: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized HoloScript project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - holo.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.holo\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.holo (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a HoloScript
// project using the provided package name. The [lint] section shows the
// tunable thresholds at their defaults.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# HoloScript project manifest
[package]
name = "%s"

[lint]
# max_loop_depth = 3
# large_allocation = 10000
# large_script_lines = 50
`, name)
}

// defaultMainHolo returns the starter script written by init. It passes
// validation cleanly and exercises the core setup the semantic pass expects.
func defaultMainHolo() string {
	return `// HoloScript starter script
let core = new HoloCore();
let holo = createHologram("greeting");
setPosition(holo, 0, 0, 0);
print("Hello, HoloScript!");
`
}
