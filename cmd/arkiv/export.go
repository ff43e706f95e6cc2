package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/internal/repository"
	"arkiv/internal/service"
)

var (
	exportOut    string
	exportFormat string
	exportType   string
	exportName   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive table to CSV or Excel",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (defaults to the export's file name)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or xlsx")
	exportCmd.Flags().StringVar(&exportType, "type", "", "only elements of this type")
	exportCmd.Flags().StringVar(&exportName, "name", "", "only elements whose name contains this")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewExportService(st.elements)
	file, err := svc.Export(cmd.Context(), service.ExportFormat(exportFormat), repository.ElementFilter{
		Type: exportType,
		Name: exportName,
	})
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = file.Name
	}
	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		return err
	}

	log.Info("table_exported", zap.String("file", out), zap.Int("bytes", len(file.Data)))
	return nil
}
