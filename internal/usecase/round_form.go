package usecase

import (
	"fmt"
	"strings"

	"github.com/iho/opencap/internal/numeric"
)

// Field names one of the three mutually derived round inputs.
type Field string

const (
	FieldInvestment Field = "investment"
	FieldEquity     Field = "equity"
	FieldPreMoney   Field = "pre_money"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.TrimSpace(s)); f {
	case FieldInvestment, FieldEquity, FieldPreMoney:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q", s)
	}
}

// RoundForm holds the raw text of the investment, equity and pre-money
// inputs. Editing one field recomputes at most one of the other two.
type RoundForm struct {
	Investment string
	Equity     string
	PreMoney   string
}

// syncRule recomputes target from the edited field and anchor.
type syncRule struct {
	anchor Field
	target Field
	derive func(f RoundForm) string
}

// syncRules lists, per edited field, the candidate rules in priority order.
// The first rule whose anchor holds a value wins. No rule targets the
// edited field itself.
var syncRules = map[Field][]syncRule{
	FieldInvestment: {
		{anchor: FieldEquity, target: FieldPreMoney, derive: func(f RoundForm) string { return DerivePreMoney(f.Investment, f.Equity) }},
		{anchor: FieldPreMoney, target: FieldEquity, derive: func(f RoundForm) string { return DeriveEquity(f.Investment, f.PreMoney) }},
	},
	FieldEquity: {
		{anchor: FieldInvestment, target: FieldPreMoney, derive: func(f RoundForm) string { return DerivePreMoney(f.Investment, f.Equity) }},
		{anchor: FieldPreMoney, target: FieldInvestment, derive: func(f RoundForm) string { return DeriveInvestment(f.PreMoney, f.Equity) }},
	},
	FieldPreMoney: {
		{anchor: FieldInvestment, target: FieldEquity, derive: func(f RoundForm) string { return DeriveEquity(f.Investment, f.PreMoney) }},
		{anchor: FieldEquity, target: FieldInvestment, derive: func(f RoundForm) string { return DeriveInvestment(f.PreMoney, f.Equity) }},
	},
}

// Edit stores value into field and resynchronizes the form. Money fields
// are regrouped as typed; shorthand is left for Commit.
func (f RoundForm) Edit(field Field, value string) RoundForm {
	if field != FieldEquity {
		value = numeric.FormatGrouped(value)
	}
	return f.set(field, value).sync(field)
}

// Commit finalizes field when the user leaves it: shorthand is expanded,
// the value regrouped and the form resynchronized.
func (f RoundForm) Commit(field Field) RoundForm {
	value := strings.TrimSpace(f.get(field))
	if field != FieldEquity {
		value = numeric.FormatGrouped(numeric.ParseShorthand(value))
	}
	return f.set(field, value).sync(field)
}

func (f RoundForm) sync(edited Field) RoundForm {
	for _, rule := range syncRules[edited] {
		if strings.TrimSpace(f.get(rule.anchor)) != "" {
			return f.set(rule.target, rule.derive(f))
		}
	}
	return f
}

func (f RoundForm) get(field Field) string {
	switch field {
	case FieldInvestment:
		return f.Investment
	case FieldEquity:
		return f.Equity
	case FieldPreMoney:
		return f.PreMoney
	}
	return ""
}

func (f RoundForm) set(field Field, value string) RoundForm {
	switch field {
	case FieldInvestment:
		f.Investment = value
	case FieldEquity:
		f.Equity = value
	case FieldPreMoney:
		f.PreMoney = value
	}
	return f
}
