package domain

// AdAccountStatus segue os códigos numéricos de account_status da Graph API
type AdAccountStatus int

const (
	AdAccountStatusActive          AdAccountStatus = 1
	AdAccountStatusDisabled        AdAccountStatus = 2
	AdAccountStatusUnsettled       AdAccountStatus = 3
	AdAccountStatusPendingReview   AdAccountStatus = 7
	AdAccountStatusPendingClosure  AdAccountStatus = 100
	AdAccountStatusClosed          AdAccountStatus = 101
	AdAccountStatusAnyActive       AdAccountStatus = 201
	AdAccountStatusAnyClosed       AdAccountStatus = 202
	AdAccountStatusInGracePeriod   AdAccountStatus = 9
	AdAccountStatusPendingSettling AdAccountStatus = 8
)

func (s AdAccountStatus) String() string {
	switch s {
	case AdAccountStatusActive:
		return "ACTIVE"
	case AdAccountStatusDisabled:
		return "DISABLED"
	case AdAccountStatusUnsettled:
		return "UNSETTLED"
	case AdAccountStatusPendingReview:
		return "PENDING_RISK_REVIEW"
	case AdAccountStatusPendingSettling:
		return "PENDING_SETTLEMENT"
	case AdAccountStatusInGracePeriod:
		return "IN_GRACE_PERIOD"
	case AdAccountStatusPendingClosure:
		return "PENDING_CLOSURE"
	case AdAccountStatusClosed:
		return "CLOSED"
	case AdAccountStatusAnyActive:
		return "ANY_ACTIVE"
	case AdAccountStatusAnyClosed:
		return "ANY_CLOSED"
	}
	return "UNKNOWN"
}

// AccountSnapshot é o retrato da conta de anúncios com suas métricas agregadas
type AccountSnapshot struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	Timezone     string          `json:"timezone"`
	Status       AdAccountStatus `json:"status"`
	AmountSpent  int64           `json:"amount_spent"`
	Balance      int64           `json:"balance"`
	SpendCap     *int64          `json:"spend_cap,omitempty"`
	BusinessID   string          `json:"business_id,omitempty"`
	BusinessName string          `json:"business_name,omitempty"`
	Metrics      Metrics         `json:"metrics"`
}

func (a *AccountSnapshot) EntityType() EntityType { return EntityAccount }

func (a *AccountSnapshot) NaturalID() string { return a.ID }

func (a *AccountSnapshot) SetMetrics(m Metrics) { a.Metrics = m }
