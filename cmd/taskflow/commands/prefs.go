package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewPrefsCommand creates the prefs command group
func NewPrefsCommand() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage stored preferences",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "dark-mode [on|off]",
		Short: "Show or set the dark mode preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 0 {
				fmt.Printf("dark mode: %s\n", onOff(a.darkMode))
				return nil
			}

			enabled, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := a.adapter.SetDarkMode(ctx, enabled); err != nil {
				return err
			}
			fmt.Printf("dark mode: %s\n", onOff(enabled))
			return nil
		},
	})

	return prefsCmd
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q (want on or off)", value)
	}
	return enabled, nil
}
