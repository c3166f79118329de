package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/seed"
	"github.com/princeprakhar/device-catalog/internal/services"
)

var (
	seedCount int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add approved demo devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if seedValue == 0 {
			seedValue = time.Now().UnixNano()
		}
		operator := &services.Principal{
			ID:      "catalogctl",
			Profile: &models.UserProfile{ID: "catalogctl", Role: models.RoleAdmin},
		}
		created, err := seed.Devices(cmd.Context(), a.devices, operator, seedCount, seedValue)
		if err != nil {
			return fmt.Errorf("seeded %d of %d devices: %w", len(created), seedCount, err)
		}
		for _, d := range created {
			fmt.Printf("%s\t%s\n", d.ID, d.Slug)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 10, "Number of devices to create")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (default: time based)")
	rootCmd.AddCommand(seedCmd)
}
