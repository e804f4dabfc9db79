package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/export"
	"github.com/kidandcat/diametrics/internal/loader"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

var (
	exportUser   string
	exportFormat string
	exportOut    string
)

var writers = map[string]struct {
	ext   string
	write func(*bytes.Buffer, export.Document) error
}{
	"csv":    {"csv", func(b *bytes.Buffer, d export.Document) error { return export.WriteCSV(b, d) }},
	"xlsx":   {"xlsx", func(b *bytes.Buffer, d export.Document) error { return export.WriteXLSX(b, d) }},
	"report": {"html", func(b *bytes.Buffer, d export.Document) error { return export.WriteReport(b, d) }},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's logged data to a file",
	Long: "Logs in to the health-data API, loads every collection and writes it as CSV,\n" +
		"an XLSX workbook or the printable HTML report. The password is read from\n" +
		"DIAMETRICS_PASSWORD.",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, ok := writers[strings.ToLower(exportFormat)]
		if !ok {
			return fmt.Errorf("unknown format %q (want csv, xlsx or report)", exportFormat)
		}
		password := os.Getenv("DIAMETRICS_PASSWORD")
		if exportUser == "" || password == "" {
			return fmt.Errorf("--user and DIAMETRICS_PASSWORD are required")
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		client := api.New(cfg.APIURL, cfg.HTTPTimeout, log)
		creds, err := client.Login(ctx, exportUser, password)
		if err != nil {
			return err
		}
		defer client.Logout(ctx, creds.Token)

		today := model.Today(time.Now())
		store := state.New(creds.Username, today)
		if err := loader.New(log).LoadAll(ctx, client.Session(creds.Token), store); err != nil {
			return err
		}

		doc := export.NewDocument(creds.Username, today, store.Data())
		var buf bytes.Buffer
		if err := w.write(&buf, doc); err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = doc.Filename(w.ext)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "Username to export")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, xlsx or report")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default diabetes-data-<user>-<date>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}
