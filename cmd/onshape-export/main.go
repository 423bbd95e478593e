package main

import (
	"fmt"
	"os"

	onshapeexport "github.com/plateworks/onshape-export"
	"github.com/plateworks/onshape-export/pkg/onshape"
	"github.com/plateworks/onshape-export/pkg/secrets"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = onshapeexport.Version

const defaultConfigFile = "onshape-export.yaml"

var (
	docID          string
	workspaceID    string
	versionID      string
	outputDir      string
	envFile        string
	cleanBefore    bool
	cleanAfter     bool
	saveConfig     bool
	verbose        bool
	showWorkspaces bool
	showVersions   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "onshape-export",
		Short: "Export manufacturing drawings from an Onshape document",
		Long: "A tool to export every part as DXF and every drawing as PDF from an Onshape " +
			"document via the Onshape API, packaged into a single zip archive",
		Run: run,
	}

	rootCmd.Flags().StringVarP(&docID, "doc-id", "d", "", "Onshape document ID")
	rootCmd.Flags().StringVarP(&workspaceID, "workspace-id", "w", "", "Workspace ID (mutable reference)")
	rootCmd.Flags().StringVar(&versionID, "version-id", "", "Version ID (read-only reference, use instead of workspace)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "exports", "Output directory for the archive")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "File with ONSHAPE_ACCESS_KEY / ONSHAPE_SECRET_KEY")
	rootCmd.Flags().BoolVar(&cleanBefore, "clean-before", false, "Delete existing DXF/PDF blobs before export")
	rootCmd.Flags().BoolVar(&cleanAfter, "clean-after", false, "Delete DXF/PDF blobs from document after packaging")
	rootCmd.Flags().BoolVar(&saveConfig, "save-config", false, "Persist --doc-id/--workspace-id to "+defaultConfigFile)
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("onshape-export version %s\n", version)
		},
	}

	documentsCmd := &cobra.Command{
		Use:   "documents [document-id]",
		Short: "List recent documents, or the workspaces/versions of one",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDocuments,
	}
	documentsCmd.Flags().StringVar(&envFile, "env-file", ".env", "File with ONSHAPE_ACCESS_KEY / ONSHAPE_SECRET_KEY")
	documentsCmd.Flags().BoolVar(&showWorkspaces, "workspaces", false, "List workspaces of the given document")
	documentsCmd.Flags().BoolVar(&showVersions, "versions", false, "List versions of the given document")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(documentsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\nOnshape Manufacturing Export")
	cyan.Println("============================")
	cyan.Println()

	// Flags win; the YAML config only fills in missing document addressing.
	if docID == "" {
		if cfg, err := secrets.LoadDocumentConfig(defaultConfigFile); err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		} else if cfg != nil {
			docID = cfg.DocumentID
			if workspaceID == "" && versionID == "" {
				workspaceID = cfg.WorkspaceID
			}
			fmt.Printf("Using document from %s\n", defaultConfigFile)
		}
	}

	if docID == "" {
		red.Println("Error: a document ID is required (--doc-id or onshape-export.yaml)")
		os.Exit(1)
	}

	if saveConfig {
		if workspaceID == "" {
			red.Println("Error: --save-config requires a workspace ID")
			os.Exit(1)
		}
		cfg := secrets.DocumentConfig{DocumentID: docID, WorkspaceID: workspaceID}
		if err := secrets.SaveDocumentConfig(cfg, defaultConfigFile); err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved document config to %s\n", defaultConfigFile)
	}

	creds, err := secrets.Resolve(envFile)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opts := onshapeexport.Options{
		AccessKey:   creds.AccessKey,
		SecretKey:   creds.SecretKey,
		DocumentID:  docID,
		WorkspaceID: workspaceID,
		VersionID:   versionID,
		OutputDir:   outputDir,
		CleanBefore: cleanBefore,
		CleanAfter:  cleanAfter,
		Logger:      &cliLogger{verbose: verbose},
	}

	result, err := onshapeexport.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if result.ArchivePath == "" {
		fmt.Println("\nNo files were exported.")
		return
	}

	cyan.Println("\nExport Summary:")
	fmt.Printf("  • Exported files: %d\n", len(result.Exports))
	for _, export := range result.Exports {
		fmt.Printf("    - %s\n", export.Filename)
	}

	if len(result.CollisionWarnings) > 0 {
		red.Println("\nFilename collisions (first occurrence kept, others skipped):")
		for _, warning := range result.CollisionWarnings {
			fmt.Printf("  • %s\n", warning)
		}
		fmt.Println("\nPlease review your export rules to ensure unique filenames.")
	}

	green.Printf("\nArchive ready: %s\n\n", result.ArchivePath)
}

func runDocuments(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)

	creds, err := secrets.Resolve(envFile)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	client := onshape.NewClient(creds.AccessKey, creds.SecretKey)

	if len(args) == 1 && (showWorkspaces || showVersions) {
		documentID := args[0]
		if showWorkspaces {
			workspaces, err := client.ListWorkspaces(documentID)
			if err != nil {
				red.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Workspaces of %s:\n", documentID)
			for _, ws := range workspaces {
				fmt.Printf("  %s  %s\n", ws.ID, ws.Name)
			}
		}
		if showVersions {
			versions, err := client.ListVersions(documentID)
			if err != nil {
				red.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Versions of %s:\n", documentID)
			for _, v := range versions {
				fmt.Printf("  %s  %s\n", v.ID, v.Name)
			}
		}
		return
	}

	documents, err := client.ListDocuments(20)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Recently modified documents:")
	for _, doc := range documents {
		fmt.Printf("  %s  %s\n", doc.ID, doc.Name)
	}
}

// cliLogger implements onshapeexport.Logger with colored terminal output.
type cliLogger struct {
	verbose bool
}

func (l *cliLogger) Infof(format string, args ...any) {
	if l.verbose {
		color.New(color.FgYellow).Printf(format+"\n", args...)
	}
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
