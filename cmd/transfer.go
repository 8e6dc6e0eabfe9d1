package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
	flagImportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV or JSONL",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Import transactions from a CSV/JSONL file or a directory of them",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "csv", "csv or jsonl")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default stdout)")
	importCmd.Flags().StringVarP(&flagImportFormat, "format", "f", "", "Force csv or jsonl instead of using the extension")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := source.ParseFormat(flagExportFormat)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	txs, err := s.ledger.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if flagExportOutput != "" {
		f, err := os.OpenFile(flagExportOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagExportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := source.Write(w, format, txs); err != nil {
		return err
	}
	if flagExportOutput != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Exported %s transactions to %s\n", cli.FormatNumber(int64(len(txs))), flagExportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := discoverImports(args[0], flagImportFormat)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no csv or jsonl files found in %s", args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var (
		all         []model.Transaction
		parseErrors int
	)
	for i, df := range files {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", i+1, len(files))
		}
		res := source.ParseFile(df)
		if res.Err != nil {
			s.log.Warn().Err(res.Err).Str("file", df.Path).Msg("skipping file")
			continue
		}
		if res.ParseErrors > 0 {
			s.log.Warn().Int("lines", res.ParseErrors).Str("file", df.Path).Msg("skipped malformed records")
		}
		parseErrors += res.ParseErrors
		all = append(all, res.Transactions...)
	}
	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
	}

	n, err := s.ledger.ImportTransactions(cmd.Context(), all)
	if err != nil {
		return err
	}
	fmt.Printf("  Imported %s transactions from %d file(s)", cli.FormatNumber(int64(n)), len(files))
	if parseErrors > 0 {
		fmt.Printf(", %d malformed record(s) skipped", parseErrors)
	}
	fmt.Println()
	return nil
}

// discoverImports resolves the files to import. An explicit format applies
// to every file and lets a single file have any extension.
func discoverImports(path, formatName string) ([]source.DiscoveredFile, error) {
	if formatName == "" {
		return source.Discover(path)
	}
	format, err := source.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return []source.DiscoveredFile{{Path: path, Format: format}}, nil
	}
	files, err := source.Discover(path)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].Format = format
	}
	return files, nil
}
