package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

func newEnqueueCommand(opts *rootOptions) *cobra.Command {
	var (
		accountID string
		timeframe string
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Cria um job de sincronização e publica a fase de conta",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			job, err := a.requests.Start(cmd.Context(), accountID, domain.Timeframe(timeframe))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", job.RequestID, job.AccountID, job.Timeframe)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "id da conta de anúncios (com ou sem o prefixo act_)")
	cmd.Flags().StringVar(&timeframe, "timeframe", string(domain.TimeframeLast30Days), "período dos insights")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
