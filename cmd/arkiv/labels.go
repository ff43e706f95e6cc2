package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"arkiv/internal/label"
	"arkiv/internal/service"
)

var (
	labelsOut    string
	labelsBoxes  []string
	labelsLayout string
	labelsFormat string
	labelsPreset string
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Render a QR label sheet PDF",
	Long: "Render an A4 label sheet for archive boxes. Flags override the\n" +
		"preset file; without --boxes every box in the archive is labeled.",
	RunE: runLabels,
}

func init() {
	labelsCmd.Flags().StringVarP(&labelsOut, "out", "o", "labels.pdf", "output PDF path")
	labelsCmd.Flags().StringSliceVar(&labelsBoxes, "boxes", nil, "box IDs to label")
	labelsCmd.Flags().StringVar(&labelsLayout, "layout", "", "label grid, e.g. 6x8")
	labelsCmd.Flags().StringVar(&labelsFormat, "format", "", "brief, full or custom")
	labelsCmd.Flags().StringVar(&labelsPreset, "preset", "", "YAML preset with the label request")
}

func runLabels(cmd *cobra.Command, args []string) error {
	var req service.LabelRequest
	if labelsPreset != "" {
		data, err := os.ReadFile(labelsPreset)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("parse preset %s: %w", labelsPreset, err)
		}
	}
	if len(labelsBoxes) > 0 {
		req.BoxIDs = labelsBoxes
	}
	if labelsLayout != "" {
		l, err := label.ParseLayout(labelsLayout)
		if err != nil {
			return err
		}
		req.Layout = &l
	}
	if labelsFormat != "" {
		req.Format = label.Format(labelsFormat)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewLabelService(st.elements, nil, cfg.BaseURL)
	sheet, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := os.WriteFile(labelsOut, sheet.PDF, 0o644); err != nil {
		return err
	}

	log.Info("labels_rendered",
		zap.String("file", labelsOut),
		zap.Int("boxes", sheet.Boxes),
		zap.Int("pages", sheet.Pages),
	)
	return nil
}
