package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jengzang/quiet-spots-go/internal/weather"
)

var weatherCmd = &cobra.Command{
	Use:   "weather <city>",
	Short: "Print the current weather for a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := weather.NewClient(cfg.Weather.APIKey,
			weather.WithBaseURL(cfg.Weather.BaseURL),
			weather.WithLanguage(cfg.Weather.Lang),
			weather.WithUnits(cfg.Weather.Units),
			weather.WithHTTPClient(&http.Client{Timeout: cfg.Weather.Timeout}),
		)

		reading, err := client.Current(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), weather.FailureMessage)
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), weather.Format(reading))
		return nil
	},
}
