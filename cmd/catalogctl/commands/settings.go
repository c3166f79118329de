package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/princeprakhar/device-catalog/internal/settings"
)

var settingsFile string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Export or import the site settings as YAML",
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored settings overlay to a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stored, err := a.settings.Stored(cmd.Context())
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(stored)
		if err != nil {
			return err
		}
		if settingsFile == "" || settingsFile == "-" {
			_, err = os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(settingsFile, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("Settings version %d written to %s\n", stored.Version, settingsFile)
		return nil
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the stored settings with a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(settingsFile)
		if err != nil {
			return err
		}
		var in settings.Settings
		if err := yaml.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("parsing %s: %w", settingsFile, err)
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		saved, err := a.settings.Import(cmd.Context(), in, "catalogctl")
		if err != nil {
			return err
		}
		fmt.Printf("Settings imported as version %d\n", saved.Version)
		return nil
	},
}

func init() {
	settingsExportCmd.Flags().StringVar(&settingsFile, "file", "", "Output file (default stdout)")
	settingsImportCmd.Flags().StringVar(&settingsFile, "file", "", "Input file")
	_ = settingsImportCmd.MarkFlagRequired("file")

	settingsCmd.AddCommand(settingsExportCmd, settingsImportCmd)
	rootCmd.AddCommand(settingsCmd)
}
