package domain

// EntityType identifica a tabela/nível de cada entidade sincronizada
type EntityType string

const (
	EntityAccount  EntityType = "account"
	EntityCampaign EntityType = "campaign"
	EntityAdSet    EntityType = "adset"
	EntityAd       EntityType = "ad"
)

// Entity é implementada por todo snapshot persistido pelo upserter
type Entity interface {
	EntityType() EntityType
	NaturalID() string
}

// PageRequest é a requisição de uma página de listagem
type PageRequest struct {
	Limit int
	After string
}

// Page é uma página de entidades já validadas, com o cursor da próxima página
type Page[T any] struct {
	Items      []T
	NextCursor string
}

func (p *Page[T]) HasMore() bool {
	return p != nil && p.NextCursor != ""
}

// MeasuredEntity é uma entidade que recebe o bloco de métricas antes de ser gravada
type MeasuredEntity interface {
	Entity
	SetMetrics(m Metrics)
}
