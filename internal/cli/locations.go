package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
)

func newLocationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage check-in locations",
	}
	cmd.AddCommand(
		newLocationsListCmd(app),
		newLocationsAddCmd(app),
		newLocationsUpdateCmd(app),
		newLocationsRemoveCmd(app),
	)
	return cmd
}

func newLocationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List check-in locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			locations, err := app.client.ListLocations(ctx)
			if err != nil {
				return commandError(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLATITUDE\tLONGITUDE\tRADIUS(m)\tCHECK-INS")
			for _, loc := range locations {
				total := 0
				if loc.Stats != nil {
					total = loc.Stats.TotalCheckIns
				}
				fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%.0f\t%d\n",
					loc.ID, loc.Name, loc.Latitude, loc.Longitude, loc.Radius, total)
			}
			return w.Flush()
		},
	}
}

func newLocationsAddCmd(app *App) *cobra.Command {
	var input apiclient.LocationInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new check-in location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if input.Name == "" {
				return fmt.Errorf("--name is required")
			}

			location, err := app.client.CreateLocation(ctx, input)
			if err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Location %q created (id %s).\n", location.Name, location.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "location name")
	cmd.Flags().Float64Var(&input.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&input.Longitude, "lng", 0, "longitude")
	cmd.Flags().Float64Var(&input.Radius, "radius", 100, "geofence radius in meters")
	return cmd
}

func newLocationsUpdateCmd(app *App) *cobra.Command {
	var (
		name     string
		lat, lng float64
		radius   float64
	)

	cmd := &cobra.Command{
		Use:   "update <location-id>",
		Short: "Update a check-in location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}

			// Only explicitly set flags become part of the patch.
			var patch apiclient.LocationPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("lat") {
				patch.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				patch.Longitude = &lng
			}
			if cmd.Flags().Changed("radius") {
				patch.Radius = &radius
			}
			if patch == (apiclient.LocationPatch{}) {
				return fmt.Errorf("nothing to update: pass at least one of --name, --lat, --lng, --radius")
			}

			if err := app.client.UpdateLocation(ctx, args[0], patch); err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Location %s updated.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&lat, "lat", 0, "new latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "new longitude")
	cmd.Flags().Float64Var(&radius, "radius", 0, "new geofence radius in meters")
	return cmd
}

func newLocationsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <location-id>",
		Short: "Delete a check-in location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(ctx); err != nil {
				return err
			}
			if err := app.client.DeleteLocation(ctx, args[0]); err != nil {
				return commandError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Location %s deleted.\n", args[0])
			return nil
		},
	}
}
