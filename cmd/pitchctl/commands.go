package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-pitch/internal/app"
	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/seed"
)

// NewBrandsCommand creates the brands command
func NewBrandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "Work with the brand catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List brands in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tSLIDES")
				for _, b := range a.Store.Brands() {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", b.ID, b.Name, b.SlideCount())
				}
				return tw.Flush()
			})
		},
	})

	return cmd
}

// NewDoctorsCommand creates the doctors command
func NewDoctorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Work with the doctor directory",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List doctors, optionally filtered by name or specialty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tHOSPITAL\tBRANDS\tSAVED")
				for _, d := range a.Store.SearchDoctors(query) {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
						d.ID, d.Name, d.Specialty, d.Hospital, len(d.AssignedBrandIDs), len(d.SavedSlideIDs))
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "case-insensitive name or specialty filter")
	cmd.AddCommand(list)

	return cmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Import brands and doctors from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := seed.Apply(a.Store, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "Imported %d brands and %d doctors\n", res.Brands, res.Doctors)
				return nil
			})
		},
	}
}

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var slides []string
	var doctorID string
	var save bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a slide selection into a playlist",
		Long: `Resolve a slide selection into a playlist in catalog order.

With --doctor and --save the resolved order becomes the doctor's default
presentation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if save && doctorID == "" {
				return fmt.Errorf("--save requires --doctor")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				playlist, err := a.Store.ConfirmSelection(simplepitch.ConfirmRequest{
					Selection:     simplepitch.NewSelection(slides...),
					DoctorID:      doctorID,
					SaveAsDefault: save,
				})
				if err != nil {
					return err
				}
				for i, item := range playlist {
					fmt.Fprintf(out(cmd), "%d. %s (%s) [%s]\n", i+1, item.Slide.Name, item.Brand.Name, item.Slide.ID)
				}
				if save {
					fmt.Fprintf(out(cmd), "Saved %d slides as default for %s\n", len(playlist), doctorID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&slides, "slides", nil, "comma-separated slide ids")
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor the selection is for")
	cmd.Flags().BoolVar(&save, "save", false, "save the playlist as the doctor's default")
	_ = cmd.MarkFlagRequired("slides")

	return cmd
}

// NewPresentCommand creates the present command
func NewPresentCommand() *cobra.Command {
	var doctorID, brandID string
	var slides []string

	cmd := &cobra.Command{
		Use:   "present",
		Short: "Present slides in the terminal",
		Long: `Present slides in the terminal.

Without flags the whole catalog is shown brand by brand. Commands:
  n        next slide
  p        previous slide
  j <i>    jump to brand i
  f        toggle fullscreen
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				req := simplepitch.PresentationRequest{DoctorID: doctorID, BrandID: brandID}
				if len(slides) > 0 {
					req.Playlist = simplepitch.ResolveSelection(a.Store.Brands(), simplepitch.NewSelection(slides...))
					if len(req.Playlist) == 0 {
						return simplepitch.ErrEmptySelection
					}
				}
				nav, doctor, err := a.Store.Plan(req)
				if err != nil {
					return err
				}
				s := simplepitch.NewSession(nav, simplepitch.WithDoctor(doctor), simplepitch.WithSessionLogger(a.Logger))
				return present(s, cmd.InOrStdin(), out(cmd))
			})
		},
	}

	cmd.Flags().StringVar(&doctorID, "doctor", "", "pitch to a doctor")
	cmd.Flags().StringVar(&brandID, "brand", "", "preview a single brand")
	cmd.Flags().StringSliceVar(&slides, "slides", nil, "comma-separated custom playlist")
	cmd.MarkFlagsMutuallyExclusive("brand", "slides")

	return cmd
}

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all brands and doctors from every storage backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all data; pass --yes to confirm")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Adapter.Reset(ctx); err != nil {
					return err
				}
				names := make([]string, 0, len(a.Adapter.Backends()))
				for _, b := range a.Adapter.Backends() {
					names = append(names, b.Name())
				}
				fmt.Fprintf(out(cmd), "Cleared %s\n", strings.Join(names, ", "))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")

	return cmd
}
