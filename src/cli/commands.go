package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"oreore-lsp/src/internal/common"
	versionpkg "oreore-lsp/src/internal/version"
)

// CLI Constants
const (
	CmdServe      = "serve"
	CmdFormat     = "format"
	CmdTree       = "tree"
	CmdConfig     = "config"
	CmdConfigInit = "init"
	CmdConfigShow = "show"
	CmdVersion    = "version"
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagWatch     = "watch-config"
	FlagWrite     = "write"
	FlagDiff      = "diff"
	FlagJSON      = "json"
	FlagForce     = "force"
	FlagVerbose   = "verbose"
)

// CLI Variables
var (
	configPath  string
	logLevel    string
	watchConfig bool
	writeFiles  bool
	showDiff    bool
	formatJSON  bool
	force       bool
	verbose     bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "oreore-lsp",
	Short: "oreore-lsp - a demonstration language server for the oreore language",
	Long: `oreore-lsp serves hover, go-to-definition, completion, signature help,
formatting and a side-panel tree for files of the oreore language over the
Language Server Protocol.

QUICK START:
  oreore-lsp serve                         # Speak LSP on stdin/stdout
  oreore-lsp format main.oreore            # Strip leading whitespace

AVAILABLE COMMANDS:
  oreore-lsp serve                         # Run the language server on stdio
  oreore-lsp format [files...]             # Format files, or stdin to stdout
  oreore-lsp tree                          # Print the tree view contents
  oreore-lsp config init|show              # Manage the configuration file
  oreore-lsp version                       # Show version information

Use 'oreore-lsp <command> --help' for detailed command information.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command definitions
var (
	serveCmd = &cobra.Command{
		Use:   CmdServe,
		Short: "Run the language server on stdio",
		Long: `Run the oreore language server, speaking JSON-RPC with Content-Length
framing on stdin and stdout. Logs go to stderr.

Examples:
  oreore-lsp serve
  oreore-lsp serve --config ~/.oreore-lsp/config.yaml --watch-config
  oreore-lsp serve --log-level debug`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	formatCmd = &cobra.Command{
		Use:   CmdFormat + " [files...]",
		Short: "Remove leading whitespace from every line",
		Long: `Remove the leading whitespace of every line. Line breaks are written as \n.

Without files the text is read from stdin and written to stdout.

Examples:
  oreore-lsp format main.oreore            # Print the formatted file
  oreore-lsp format -w *.oreore            # Rewrite files in place
  oreore-lsp format -d main.oreore         # Show a unified diff`,
		RunE: runFormatCmd,
	}

	treeCmd = &cobra.Command{
		Use:   CmdTree,
		Short: "Print the tree view contents",
		Long:  `Print the nodes the side-panel tree view shows, as text or JSON.`,
		Args:  cobra.NoArgs,
		RunE:  runTreeCmd,
	}

	configCmd = &cobra.Command{
		Use:   CmdConfig,
		Short: "Manage the configuration file",
		Long: `Manage the oreore-lsp configuration file.

Available commands:
  oreore-lsp config init [path]     # Write the default configuration
  oreore-lsp config show            # Print the effective configuration`,
		RunE: runConfigCmd,
	}

	versionCmd = &cobra.Command{
		Use:   CmdVersion,
		Short: "Show version information",
		Long: `Display version information for oreore-lsp.

Examples:
  oreore-lsp version              # Show version number
  oreore-lsp version --verbose    # Show detailed build information
  oreore-lsp version --json       # Machine readable`,
		Args: cobra.NoArgs,
		RunE: runVersionCmd,
	}
)

// Config subcommands
var (
	configInitCmd = &cobra.Command{
		Use:   CmdConfigInit + " [path]",
		Short: "Write the default configuration",
		Long: `Write the default configuration to path, or to ~/.oreore-lsp/config.yaml.
An existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfigInitCmd,
	}

	configShowCmd = &cobra.Command{
		Use:   CmdConfigShow,
		Short: "Print the effective configuration",
		Long:  `Print the configuration serve would use, after defaults are applied.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigShowCmd,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, FlagConfig, "c", "", "Configuration file path (optional, defaults to ~/.oreore-lsp/config.yaml)")

	// Serve command flags
	serveCmd.Flags().StringVar(&logLevel, FlagLogLevel, "", "Override the configured log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&watchConfig, FlagWatch, false, "Reload the configuration file when it changes")

	// Format command flags
	formatCmd.Flags().BoolVarP(&writeFiles, FlagWrite, "w", false, "Write result to the source files instead of stdout")
	formatCmd.Flags().BoolVarP(&showDiff, FlagDiff, "d", false, "Print a unified diff instead of the formatted text")

	// Tree command flags
	treeCmd.Flags().BoolVar(&formatJSON, FlagJSON, false, "Output in JSON format")

	// Version command flags
	versionCmd.Flags().BoolVarP(&verbose, FlagVerbose, "v", false, "Show detailed version information")
	versionCmd.Flags().BoolVar(&formatJSON, FlagJSON, false, "Output in JSON format")

	// Config subcommands
	configInitCmd.Flags().BoolVarP(&force, FlagForce, "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	// Add commands to root
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Command runner functions - these delegate to the extracted modules

func runServeCmd(cmd *cobra.Command, args []string) error {
	return RunServer(cmd.Context(), configPath, logLevel, watchConfig)
}

func runFormatCmd(cmd *cobra.Command, args []string) error {
	return RunFormat(cmd.InOrStdin(), cmd.OutOrStdout(), args, FormatOptions{
		Write: writeFiles,
		Diff:  showDiff,
	})
}

func runTreeCmd(cmd *cobra.Command, args []string) error {
	return PrintTree(cmd.Context(), cmd.OutOrStdout(), formatJSON)
}

func runConfigCmd(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func runConfigInitCmd(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	return InitConfig(cmd.OutOrStdout(), path, force)
}

func runConfigShowCmd(cmd *cobra.Command, args []string) error {
	return ShowConfig(cmd.OutOrStdout(), configPath)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(versionpkg.GetInfo())
	}
	if verbose {
		_, err := fmt.Fprintln(out, versionpkg.GetFullVersionInfo())
		return err
	}
	_, err := fmt.Fprintf(out, "oreore-lsp %s\n", versionpkg.GetVersion())
	return err
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		common.CLILogger.Error("%v", err)
		return err
	}
	return nil
}
