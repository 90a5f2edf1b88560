package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carelift/dispatch/core/matching"
	"github.com/carelift/dispatch/core/metrics"
	"github.com/carelift/dispatch/core/model"
	"github.com/carelift/dispatch/infra/logger"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a sample driver pool against a test appointment",
	RunE:  matchSample,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func matchSample(cmd *cobra.Command, args []string) error {
	logg := logger.New("match-command")
	manager, err := matching.NewMatchManager(matching.NewScorer(), metrics.NopSink{}, nil, nil, time.Second, logg)
	if err != nil {
		return fmt.Errorf("match manager: %w", err)
	}

	start, _ := model.ParseTimeOfDay("09:30")
	appt := model.Appointment{
		ID:    "sample-appointment",
		Date:  time.Now().AddDate(0, 0, 1),
		Start: start,
	}
	client := model.ClientDetails{
		RequiredEquipment: []model.EquipmentType{model.EquipmentWheelchair},
		PreferredVehicles: []model.VehicleType{model.VehicleWheelchairVan},
	}
	drivers := []model.DriverProfile{
		{
			ID:              "driver-a",
			Equipment:       []model.EquipmentType{model.EquipmentWheelchair, model.EquipmentWalker},
			VehicleTypes:    []model.VehicleType{model.VehicleWheelchairVan},
			MaxRidesPerWeek: 10,
		},
		{
			ID:              "driver-b",
			Equipment:       []model.EquipmentType{model.EquipmentWheelchair},
			VehicleTypes:    []model.VehicleType{model.VehicleSedan},
			MaxRidesPerWeek: 10,
		},
		{
			ID:           "driver-c",
			VehicleTypes: []model.VehicleType{model.VehicleMinivan},
		},
	}
	population := []model.DriverRideCount{
		{DriverID: "driver-a", RideCount: 2},
		{DriverID: "driver-b", RideCount: 7},
		{DriverID: "driver-c", RideCount: 4},
	}

	mctx := matching.NewMatchContext(appt, client, population, nil, nil)
	result := manager.Rank(context.Background(), mctx, drivers)

	for i, c := range result.Candidates {
		mark := ""
		if c.PerfectMatch {
			mark = " (perfect match)"
		}
		fmt.Printf("%d. %s score=%d%s\n", i+1, c.DriverID, c.Score, mark)
		for _, r := range c.Reasons {
			fmt.Printf("   - %s\n", r)
		}
	}
	if len(result.Ineligible) > 0 {
		fmt.Printf("ineligible: %s\n", strings.Join(result.Ineligible, ", "))
	}
	return manager.Close()
}
