package domain

import "fmt"

// Phase identifica uma das quatro etapas sequenciais da sincronização
type Phase string

const (
	PhaseAccount   Phase = "account"
	PhaseCampaigns Phase = "campaigns"
	PhaseAdSets    Phase = "adsets"
	PhaseAds       Phase = "ads"
)

var phaseOrder = []Phase{PhaseAccount, PhaseCampaigns, PhaseAdSets, PhaseAds}

// ParsePhase converte o valor recebido no payload. Vazio equivale a account.
func ParsePhase(value string) (Phase, error) {
	if value == "" {
		return PhaseAccount, nil
	}

	phase := Phase(value)
	if !phase.IsValid() {
		return "", fmt.Errorf("invalid phase %q", value)
	}

	return phase, nil
}

func (p Phase) IsValid() bool {
	for _, phase := range phaseOrder {
		if p == phase {
			return true
		}
	}
	return false
}

func (p Phase) String() string {
	return string(p)
}

// Next retorna a fase seguinte. A fase ads é a última.
func (p Phase) Next() (Phase, bool) {
	for i, phase := range phaseOrder {
		if phase == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1], true
		}
	}
	return "", false
}

// PhaseState representa os estados da máquina de fases, incluindo os terminais
type PhaseState string

const (
	StateAccount   PhaseState = "account"
	StateCampaigns PhaseState = "campaigns"
	StateAdSets    PhaseState = "adsets"
	StateAds       PhaseState = "ads"
	StateCompleted PhaseState = "completed"
	StateCancelled PhaseState = "cancelled"
	StateFailed    PhaseState = "failed"
)

func StateOf(p Phase) PhaseState {
	return PhaseState(p)
}

func (s PhaseState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}
