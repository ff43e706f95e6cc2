package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/internal/model"
	"arkiv/internal/service"
)

var syncFile string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Move whole-inventory snapshots in and out",
}

var syncExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full inventory to a snapshot file",
	Long:  "Collect every element and registry entry into one JSON snapshot.\nUse --file - to write to stdout.",
	RunE:  runSyncExport,
}

var syncImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the inventory with a snapshot file",
	Long:  "Load a snapshot and replace both the archive and the registry with\nits contents in a single transaction.",
	RunE:  runSyncImport,
}

func init() {
	syncCmd.PersistentFlags().StringVarP(&syncFile, "file", "f", "archive.json", "snapshot file path")
	syncCmd.AddCommand(syncExportCmd)
	syncCmd.AddCommand(syncImportCmd)
}

func runSyncExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewSyncService(st.elements, st.registry, st.batch, nil, nil)
	snap, err := svc.Export(cmd.Context())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if syncFile == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(syncFile, data, 0o644); err != nil {
		return err
	}

	log.Info("snapshot_exported",
		zap.String("file", syncFile),
		zap.Int("elements", len(snap.Elements)),
		zap.Int("registry", len(snap.Registry)),
	)
	return nil
}

func runSyncImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(syncFile)
	if err != nil {
		return err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewSyncService(st.elements, st.registry, st.batch, nil, nil)
	if err := svc.Import(cmd.Context(), &snap); err != nil {
		return err
	}

	log.Info("snapshot_imported",
		zap.String("file", syncFile),
		zap.Int("elements", len(snap.Elements)),
		zap.Int("registry", len(snap.Registry)),
	)
	return nil
}
