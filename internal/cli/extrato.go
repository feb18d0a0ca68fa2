package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/techmarket/internal/config"
	"github.com/insightdelivered/techmarket/internal/logging"
	"github.com/insightdelivered/techmarket/internal/statement"
	"github.com/insightdelivered/techmarket/internal/writer"
)

func init() {
	rootCmd.AddCommand(extratoCmd)
	extratoCmd.Flags().String("endpoint", "", "Statement URL (overrides config)")
	extratoCmd.Flags().String("csv", "", "Write the statement to this CSV file")
	extratoCmd.Flags().Bool("html", false, "Print the rendered HTML list instead of a table")
	extratoCmd.Flags().Bool("header", true, "Include the column header row in CSV output")
}

var extratoCmd = &cobra.Command{
	Use:   "extrato",
	Short: "Fetch and render the account statement",
	Args:  cobra.NoArgs,
	RunE:  runExtrato,
}

func runExtrato(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return err
	}
	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = cfg.StatementEndpoint()
	}
	csvPath, _ := cmd.Flags().GetString("csv")
	asHTML, _ := cmd.Flags().GetBool("html")
	header, _ := cmd.Flags().GetBool("header")

	renderer, err := newRenderer(cfg, logging.New(cfg.Log), nil)
	if err != nil {
		return err
	}
	list := renderer.LoadAndRender(cmd.Context(), endpoint)
	out := cmd.OutOrStdout()

	switch {
	case csvPath != "":
		w := &writer.CSVWriter{IncludeHeader: header}
		if err := w.WriteToFile(csvPath, list); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Fprintf(out, "Output: %s (%d row(s))\n", csvPath, len(list.Rows))
	case asHTML:
		html, err := statement.RenderHTML(list)
		if err != nil {
			return err
		}
		fmt.Fprint(out, html)
	default:
		printTable(cmd, list)
	}

	if list.Failed() {
		return fmt.Errorf("statement unavailable: %s", list.Error)
	}
	return nil
}

func printTable(cmd *cobra.Command, list statement.List) {
	if list.Failed() {
		fmt.Fprintln(cmd.ErrOrStderr(), list.Error)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, row := range list.Rows {
		marker := ""
		if row.HighValue {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n", row.Date, row.Description, row.Sign, row.Amount, marker)
	}
	tw.Flush()
}
