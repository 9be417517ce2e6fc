package main

import (
	"fmt"

	"github.com/hupe1980/medoids/codec"
	"github.com/spf13/cobra"
)

func runList(cmd *cobra.Command, args []string) error {
	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out, err := outputCodec(a.cfg.Cluster.Format)
	if err != nil {
		return err
	}

	names, err := a.store.List(cmd.Context(), prefix)
	if err != nil {
		return fmt.Errorf("list %q: %w", prefix, err)
	}
	if names == nil {
		names = []string{}
	}

	if out != nil {
		return codec.Encode(cmd.OutOrStdout(), out, names)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return err
		}
	}
	return nil
}
