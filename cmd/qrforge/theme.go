package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qrforge/internal/theme"
)

func newThemeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the studio theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeShow(cmd, root)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the theme the studio will open with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeShow(cmd, root)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark and remember the choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeToggle(cmd, root)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved choice and follow the terminal background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeReset(cmd, root)
		},
	})

	return cmd
}

// headlessDocument tracks the applied mode when there is no view to restyle.
type headlessDocument struct {
	dark bool
}

func (d *headlessDocument) SetDark(dark bool) { d.dark = dark }

func (d *headlessDocument) IsDark() bool { return d.dark }

func (d *headlessDocument) SetIconHidden(theme.Icon, bool) {}

func runThemeShow(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(cmd, root, false)
	if err != nil {
		return err
	}
	defer app.close()

	controller := theme.NewController(app.store, darkHint, &headlessDocument{})
	mode := controller.ApplyPreference()

	source := "saved"
	if controller.Preference() == theme.PreferenceUnset {
		source = "terminal"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", mode, source)
	return nil
}

func runThemeToggle(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(cmd, root, false)
	if err != nil {
		return err
	}
	defer app.close()

	controller := theme.NewController(app.store, darkHint, &headlessDocument{})
	controller.ApplyPreference()

	mode, err := controller.Toggle()
	if err != nil {
		app.log.Error(err, "persist theme failed")
		return err
	}

	app.log.Debug("theme toggled", "mode", mode.String(), "path", app.store.Path())
	fmt.Fprintln(cmd.OutOrStdout(), mode)
	return nil
}

func runThemeReset(cmd *cobra.Command, root *rootFlags) error {
	app, err := loadApp(cmd, root, false)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.store.Delete(theme.StorageKey); err != nil {
		app.log.Error(err, "reset theme failed")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "theme follows the terminal background")
	return nil
}
