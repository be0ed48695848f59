package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/migration"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria ou atualiza as tabelas de jobs e entidades",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := postgres.NewConnection(cmd.Context(), opts.cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := migration.Run(cmd.Context(), conn); err != nil {
				return err
			}

			logrus.Info("Migrações aplicadas com sucesso")
			return nil
		},
	}
}
