package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/adapter/repository/memory"
	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/numeric"
	"github.com/iho/opencap/internal/usecase"
)

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <value>...",
		Short: "Expand shorthand amounts such as 1.5m or 250k",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				parsed := numeric.ParseShorthand(arg)
				fmt.Fprintf(out, "%s\t%s\n", arg, numeric.FormatGrouped(parsed))
			}
			return nil
		},
	}
}

func deriveCmd() *cobra.Command {
	var investment, preMoney, equity string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the missing one of investment, pre-money and equity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var field, value string
			switch {
			case investment != "" && equity != "" && preMoney == "":
				field, value = "pre-money", usecase.DerivePreMoney(investment, equity)
			case preMoney != "" && equity != "" && investment == "":
				field, value = "investment", usecase.DeriveInvestment(preMoney, equity)
			case investment != "" && preMoney != "" && equity == "":
				field, value = "equity", usecase.DeriveEquity(investment, preMoney)
			default:
				return fmt.Errorf("set exactly two of --investment, --pre-money and --equity")
			}

			if value == "" {
				return fmt.Errorf("%s cannot be derived from the given values", field)
			}
			if field == "equity" {
				value += "%"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&investment, "investment", "", "Amount raised")
	cmd.Flags().StringVar(&preMoney, "pre-money", "", "Pre-money valuation")
	cmd.Flags().StringVar(&equity, "equity", "", "Equity sold in percent")

	return cmd
}

// Scenario is a round chain described in YAML.
type Scenario struct {
	Currency string          `yaml:"currency"`
	Start    ScenarioStart   `yaml:"start"`
	Rounds   []ScenarioRound `yaml:"rounds"`
	// Remove lists round names to drop after all rounds are added.
	Remove []string `yaml:"remove"`
}

// ScenarioStart seeds the chain either from a seed round or from a known
// valuation and ownership.
type ScenarioStart struct {
	Name             string `yaml:"name"`
	Role             string `yaml:"role"`
	Investment       string `yaml:"investment"`
	Equity           string `yaml:"equity"`
	PreMoney         string `yaml:"pre_money"`
	CompanyValuation string `yaml:"company_valuation"`
	Ownership        string `yaml:"ownership"`
}

// ScenarioRound is one appended round.
type ScenarioRound struct {
	Name       string `yaml:"name"`
	Investment string `yaml:"investment"`
	PreMoney   string `yaml:"pre_money"`
	Equity     string `yaml:"equity"`
}

func simulateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run a YAML scenario offline and print the resulting chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scenario: %w", err)
			}

			var sc Scenario
			if err := yaml.Unmarshal(data, &sc); err != nil {
				return fmt.Errorf("parse scenario: %w", err)
			}

			currency := opts.displayCurrency()
			if sc.Currency != "" && !cmd.Flags().Changed("currency") {
				if currency, err = domain.ParseCurrency(sc.Currency); err != nil {
					return err
				}
			}

			chain, err := runScenario(cmd.Context(), sc)
			if err != nil {
				return err
			}
			return printChain(cmd.OutOrStdout(), dto.ChainFromDomain(chain), currency)
		},
	}
}

// runScenario plays sc against a fresh in-memory chain.
func runScenario(ctx context.Context, sc Scenario) (*domain.Chain, error) {
	uc := usecase.NewChainUseCase(memory.NewChainRepository(), memory.NewULIDGenerator(), nil, zerolog.Nop())

	if err := startScenario(ctx, uc, sc.Start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	for i, r := range sc.Rounds {
		if _, err := uc.AppendRound(ctx, usecase.AppendRoundInput{
			Name:       r.Name,
			Investment: r.Investment,
			PreMoney:   r.PreMoney,
			Equity:     r.Equity,
		}); err != nil {
			return nil, fmt.Errorf("round %d (%s): %w", i+1, r.Name, err)
		}
	}

	for _, name := range sc.Remove {
		chain, err := uc.GetChain(ctx)
		if err != nil {
			return nil, err
		}
		id := roundIDByName(chain, name)
		if id == "" {
			return nil, fmt.Errorf("remove %q: %w", name, domain.ErrRoundNotFound)
		}
		if _, err := uc.RemoveRound(ctx, id); err != nil {
			return nil, fmt.Errorf("remove %q: %w", name, err)
		}
	}

	return uc.GetChain(ctx)
}

func startScenario(ctx context.Context, uc *usecase.ChainUseCase, s ScenarioStart) error {
	if s.Ownership != "" {
		_, err := uc.StartFromValuation(ctx, usecase.StartFromValuationInput{
			Name:             s.Name,
			CompanyValuation: s.CompanyValuation,
			Ownership:        s.Ownership,
		})
		return err
	}

	role := domain.RoleFounder
	if s.Role != "" {
		var err error
		if role, err = domain.ParseRole(s.Role); err != nil {
			return err
		}
	}

	_, err := uc.StartChain(ctx, usecase.StartChainInput{
		Name:       s.Name,
		Investment: s.Investment,
		Equity:     s.Equity,
		PreMoney:   s.PreMoney,
		Role:       role,
	})
	return err
}

func roundIDByName(chain *domain.Chain, name string) string {
	for _, r := range chain.Rounds {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}
