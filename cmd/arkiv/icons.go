package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arkiv/internal/icons"
)

var iconsSrc string

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Generate the PWA icons from a source image",
	Long: "Scale a square source image to every icon size the manifest needs\n" +
		"and write the results into ICON_DIR. Until this runs, the server\n" +
		"answers icon requests with a transparent placeholder.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := icons.Generate(iconsSrc, cfg.IconDir); err != nil {
			return err
		}
		log.Info("icons_generated", zap.String("dir", cfg.IconDir), zap.Ints("sizes", icons.Sizes))
		return nil
	},
}

func init() {
	iconsCmd.Flags().StringVar(&iconsSrc, "src", "", "source image, png or jpeg")
	iconsCmd.MarkFlagRequired("src")
}
