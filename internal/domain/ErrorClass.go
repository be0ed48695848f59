package domain

// ErrorClass é a classificação de um erro de chamada externa para fins de retry
type ErrorClass int

const (
	ErrorClassNonRetryable ErrorClass = iota
	ErrorClassRateLimit
	ErrorClassHardRateLimit
	ErrorClassNotFound
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassRateLimit:
		return "rate_limit"
	case ErrorClassHardRateLimit:
		return "hard_rate_limit"
	case ErrorClassNotFound:
		return "not_found"
	}
	return "non_retryable"
}

// Classifier classifica erros retornados pela fonte de dados
type Classifier func(err error) ErrorClass
