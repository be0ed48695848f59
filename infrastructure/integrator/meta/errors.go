package meta

import (
	"errors"

	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// ClassifyError traduz erros da Graph API para a classificação usada pelo fetcher.
// Erros que não vieram da API (rede, decode) não são repetidos.
func ClassifyError(err error) domain.ErrorClass {
	var apiErr *metadomain.APIError
	if !errors.As(err, &apiErr) {
		return domain.ErrorClassNonRetryable
	}

	switch {
	case apiErr.IsHardRateLimit():
		return domain.ErrorClassHardRateLimit
	case apiErr.IsRateLimit():
		return domain.ErrorClassRateLimit
	case apiErr.IsNotFound():
		return domain.ErrorClassNotFound
	}

	return domain.ErrorClassNonRetryable
}
