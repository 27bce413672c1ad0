package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/config"
)

var hideCmd = &cobra.Command{
	Use:   "hide <uid>...",
	Short: "Hide ingredients from search results",
	Long: `Add ingredients to the blacklist in the config file. Hidden ingredients
are still searchable with 'almanac search --all'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateBlacklist(cmd, args, true)
	},
}

var unhideCmd = &cobra.Command{
	Use:   "unhide <uid>...",
	Short: "Show hidden ingredients again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateBlacklist(cmd, args, false)
	},
}

func updateBlacklist(cmd *cobra.Command, uids []string, hide bool) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := setHidden(a, uids, hide); err != nil {
		return err
	}

	path := configPath()
	if err := config.SaveBlacklist(path, a.Filter.Blacklist()); err != nil {
		return fmt.Errorf("saving blacklist: %w", err)
	}
	fmt.Printf("Blacklist saved to %s (%d hidden)\n", path, len(a.Filter.Blacklist()))
	return nil
}

func setHidden(a *app.App, uids []string, hide bool) error {
	for _, uid := range uids {
		t, err := resolve(a, uid)
		if err != nil {
			return err
		}
		if hide {
			err = a.Filter.Hide(t)
		} else {
			err = a.Filter.Unhide(t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(hideCmd, unhideCmd)
}
