package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cofiylifecycle "github.com/aretw0/cofiy/pkg/adapters/lifecycle"
	"github.com/aretw0/cofiy/pkg/core"
)

var watchTypes []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the store until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var types []core.EventType
		for _, t := range watchTypes {
			et := core.EventType(strings.ToUpper(strings.TrimSpace(t)))
			switch et {
			case core.EventCreate, core.EventModify, core.EventDelete:
			default:
				return fmt.Errorf("unknown event type %q (want create, modify or delete)", t)
			}
			types = append(types, et)
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}
		src := cofiylifecycle.NewSource(events, types...)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		dimColor.Fprintln(out, "Watching for changes, press Ctrl+C to stop.")
		for e := range src.Events() {
			fmt.Fprintf(out, "%s  %s\n", time.Now().Format(time.TimeOnly), e)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only print these event types (create, modify, delete)")
}
