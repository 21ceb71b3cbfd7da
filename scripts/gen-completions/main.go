// Command gen-completions writes steplens shell completion scripts for bash,
// zsh, fish and powershell into an output directory for release archives.
//
// Usage:
//
//	go run ./scripts/gen-completions [output-dir]
//
// The default output directory is "completions".
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AbdelazizMoustafa10m/steplens/internal/cli"
)

func main() {
	outDir := "completions"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output dir %q: %v\n", outDir, err)
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd()

	entries := []struct {
		filename string
		generate func(w io.Writer) error
	}{
		{"steplens.bash", func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) }},
		{"_steplens", rootCmd.GenZshCompletion},
		{"steplens.fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"steplens.ps1", rootCmd.GenPowerShellCompletionWithDesc},
	}

	for _, e := range entries {
		path := filepath.Join(outDir, e.filename)
		if err := writeFile(path, e.generate); err != nil {
			fmt.Fprintf(os.Stderr, "error generating %q: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", path)
	}
}

func writeFile(path string, generate func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := generate(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
