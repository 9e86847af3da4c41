package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/quiet-spots-go/internal/service"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print the least crowded spot for a time slot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, release, err := openSource()
		if err != nil {
			return err
		}
		defer release()

		ds, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		pick, err := service.LeastCrowded(ds.Congestion, cfg.Recommend.Slot, ds.HasScore)
		if err != nil {
			if !ds.HasScore {
				fmt.Fprintln(out, service.NoticeNoScoreColumn)
			}
			return err
		}

		fmt.Fprintf(out, "👑 おすすめ: %s\n", pick.SpotName)
		fmt.Fprintf(out, "理由: %s時点で最も空いているスポット（混雑度 %g）\n", pick.TimeSlot, pick.Score)
		return nil
	},
}

func init() {
	addSourceFlags(recommendCmd)
	recommendCmd.Flags().String("slot", "", "time slot to compare, e.g. 12:00")
}
