package metadomain

type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AdAccount é a resposta crua de /act_{id}. Valores monetários chegam como string em centavos.
type AdAccount struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	TimezoneName  string    `json:"timezone_name"`
	AccountStatus int       `json:"account_status"`
	AmountSpent   string    `json:"amount_spent"`
	Balance       string    `json:"balance"`
	SpendCap      string    `json:"spend_cap"`
	Business      *Business `json:"business,omitempty"`
}

// AdAccountFields são os campos solicitados na leitura da conta
var AdAccountFields = []string{
	"id", "account_id", "name", "currency", "timezone_name", "account_status",
	"amount_spent", "balance", "spend_cap", "business",
}
