package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wandile0157/smartdoc-ai-backend/internal/analysis"
	"github.com/wandile0157/smartdoc-ai-backend/internal/docloader"
)

var (
	analyzeType    string
	analyzeDocType string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document file and print the report as JSON",
	Long: `Analyze a single .txt or .md file without starting the server.

The report is printed to stdout as indented JSON. Use --type to pick the
analysis (text, legal, feedback) and --document-type to hint the legal
document category.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeType, "type", "text", "analysis type (text, legal, feedback)")
	analyzeCmd.Flags().StringVar(&analyzeDocType, "document-type", "", "declared legal document type")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	kind := analysis.Kind(analyzeType)
	if !kind.Valid() {
		return fmt.Errorf("unknown analysis type %q", analyzeType)
	}

	text, err := docloader.LoadFile(args[0], cfg.Upload.MaxFileSizeMB)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var report any
	switch kind {
	case analysis.KindLegal:
		report, err = app.svc.Legal(ctx, text, analyzeDocType)
	case analysis.KindFeedback:
		report, err = app.svc.Feedback(ctx, text)
	default:
		report, err = app.svc.Text(ctx, text)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
