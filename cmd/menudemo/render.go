package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-go/contextmenu/internal/demo"
	"github.com/vango-go/contextmenu/pkg/dom"
)

func renderCmd() *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the server-rendered HTML of a demo view",
		Long: fmt.Sprintf(`Render mounts a demo view on a fresh surface and prints its HTML.

Available views: %s`, strings.Join(demo.Names(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mount, err := demo.Lookup(view)
			if err != nil {
				return err
			}
			s := dom.NewSurface()
			mount(s)
			s.Flush()
			if err := dom.RenderHTML(cmd.OutOrStdout(), s.Root()); err != nil {
				return fmt.Errorf("render %s: %w", view, err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "basic", "Demo view to render")
	return cmd
}
