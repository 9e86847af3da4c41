package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jengzang/quiet-spots-go/internal/service"
)

var spotsCmd = &cobra.Command{
	Use:   "spots [query]",
	Short: "List spots whose name contains query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, release, err := openSource()
		if err != nil {
			return err
		}
		defer release()

		ds, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		matches := service.FilterSpots(ds.Spots, query)
		if len(matches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), service.NoticeNoMatch)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tCITY\tLAT\tLON\tALTERNATIVE")
		for _, s := range matches {
			lat, lon := "-", "-"
			if s.HasLocation {
				lat = fmt.Sprintf("%.4f", s.Latitude)
				lon = fmt.Sprintf("%.4f", s.Longitude)
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.City, lat, lon, s.Alternative)
		}
		return w.Flush()
	},
}

func init() {
	addSourceFlags(spotsCmd)
}
