package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ledgersplit/ledgersplit/internal/common"
	"github.com/ledgersplit/ledgersplit/internal/ofx"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import financial transactions from OFX or QFX (Quicken) files exported
from your bank.

Examples:
  # Import a single file
  ledgersplit import-ofx ~/Downloads/statement_mar_2022.ofx

  # Import all QFX files in a directory
  ledgersplit import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().String("as", "", "caller identity (email) recorded with the import")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	caller, _ := cmd.Flags().GetString("as")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	ctx := cmd.Context()
	if caller != "" {
		ctx = service.WithCaller(ctx, caller)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	parser := ofx.NewParser()
	importer := service.NewImporter(store)

	failed := 0
	for _, filePath := range allFiles {
		slog.Info("Processing file", "file", filepath.Base(filePath))

		f, err := os.Open(filePath)
		if err != nil {
			common.LogError(err, "Failed to open file", common.Fields{"file": filePath})
			failed++
			continue
		}

		statements, err := parser.ParseFile(f)
		_ = f.Close()
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": filePath})
			failed++
			continue
		}

		for _, stmt := range statements {
			if err := importer.Import(ctx, stmt); err != nil {
				return fmt.Errorf("import of %s failed: %w", filePath, err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(allFiles))
	}

	return nil
}
