// Package cli implements the steplens command tree on cobra.
//
// Commands that read TaskRun files share one loading path: configuration is
// resolved (defaults, steplens.toml, STEPLENS_* environment, flags), inputs
// are expanded and decoded concurrently, and each TaskRun is reconciled with
// its declared steps before rendering. Tables and summaries go to stdout;
// diagnostics go to stderr through the logging package.
package cli
