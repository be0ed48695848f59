package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

// rootOptions guarda a configuração carregada antes de qualquer subcomando
type rootOptions struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "traffic-sync-worker",
		Short:         "Sincronização retomável de contas de anúncios do Meta",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogger()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
			if err != nil {
				logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
				logLevel = logrus.InfoLevel
			}
			logrus.SetLevel(logLevel)

			opts.cfg = cfg
			return nil
		},
	}

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newEnqueueCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
