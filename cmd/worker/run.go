package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newRunCommand(opts *rootOptions) *cobra.Command {
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Executa uma única invocação a partir de um payload de continuação",
		Long: "Executa uma única invocação do motor de sincronização. O payload é lido do arquivo\n" +
			"informado em --payload, ou da entrada padrão quando o valor é \"-\". A continuação\n" +
			"gerada é publicada na fila normalmente.",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd.InOrStdin(), payloadPath)
			if err != nil {
				return err
			}

			var payload domain.ContinuationPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return errors.Wrap(err, "payload inválido")
			}

			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, runErr := a.orchestrator.Run(cmd.Context(), payload)
			if result != nil {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}

			return runErr
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "-", "arquivo JSON com o payload de continuação")

	return cmd
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}
	return raw, nil
}
