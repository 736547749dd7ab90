package advisor

import (
	"fmt"
	"strings"

	"github.com/iho/opencap/internal/domain"
)

const promptTemplate = `Analyze the following investment history for a startup. All values are in %s.

Investment Rounds:
%s

Provide a professional, concise summary of the dilution impact and the increase in stake value.
Explain if the user is in a healthy position or if dilution is aggressive relative to value growth.
Use a friendly but expert tone. Keep it under 150 words.`

// BuildPrompt renders the round history into the analysis request.
func BuildPrompt(rounds []*domain.Round, currency domain.Currency) string {
	return fmt.Sprintf(promptTemplate, string(currency), HistoryLines(rounds, currency))
}

// HistoryLines renders one line per round.
func HistoryLines(rounds []*domain.Round, currency domain.Currency) string {
	lines := make([]string, 0, len(rounds))
	for _, r := range rounds {
		lines = append(lines, fmt.Sprintf("- %s: Valuation %s, User Ownership %s%%, Value %s",
			r.Name,
			currency.Format(r.PostMoneyValuation()),
			r.UserOwnershipPercentage.StringFixed(2),
			currency.Format(r.UserValue()),
		))
	}
	return strings.Join(lines, "\n")
}
