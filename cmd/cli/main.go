package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/domain"
)

// options are the persistent flags shared by every command.
type options struct {
	baseURL  string
	timeout  time.Duration
	currency string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "opencap",
		Short:         "OpenCap CLI tool",
		Long:          `A command line interface for the OpenCap dilution API, plus offline calculators.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the OpenCap API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.currency, "currency", "USD", "Display currency (USD or EUR)")

	rootCmd.AddCommand(
		startCmd(opts),
		addCmd(opts),
		removeCmd(opts),
		showCmd(opts),
		summaryCmd(opts),
		normalizeCmd(),
		deriveCmd(),
		simulateCmd(opts),
	)

	return rootCmd
}

func startCmd(opts *options) *cobra.Command {
	var req dto.StartChainRequest
	var investment, equity, preMoney, valuation, ownership string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a round chain with its seed round",
		Long: `Start a round chain. Either describe the seed round with --investment,
--equity and --pre-money, or pass --valuation and --ownership to start from
a known stake.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Investment = dto.Amount(investment)
			req.Equity = dto.Amount(equity)
			req.PreMoney = dto.Amount(preMoney)
			req.CompanyValuation = dto.Amount(valuation)
			if ownership != "" {
				o := dto.Amount(ownership)
				req.Ownership = &o
			}

			var chain dto.ChainResponse
			if err := opts.do(cmd, http.MethodPost, "/api/v1/chain", req, &chain); err != nil {
				return err
			}
			return printChain(cmd.OutOrStdout(), &chain, opts.displayCurrency())
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Seed round name")
	cmd.Flags().StringVar(&req.Role, "role", "founder", "Your role in the seed round (founder or investor)")
	cmd.Flags().StringVar(&investment, "investment", "", "Seed investment, e.g. 1m")
	cmd.Flags().StringVar(&equity, "equity", "", "Equity sold in percent")
	cmd.Flags().StringVar(&preMoney, "pre-money", "", "Pre-money valuation")
	cmd.Flags().StringVar(&valuation, "valuation", "", "Company valuation when starting from a known stake")
	cmd.Flags().StringVar(&ownership, "ownership", "", "Your ownership in percent when starting from a known stake")

	return cmd
}

func addCmd(opts *options) *cobra.Command {
	var name, investment, preMoney, equity string
	var preview bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a funding round",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.AppendRoundRequest{
				Name:       name,
				Investment: dto.Amount(investment),
				PreMoney:   dto.Amount(preMoney),
				Equity:     dto.Amount(equity),
			}

			path := "/api/v1/chain/rounds"
			if preview {
				path += "/preview"
			}

			var round dto.RoundResponse
			if err := opts.do(cmd, http.MethodPost, path, req, &round); err != nil {
				return err
			}
			return printRounds(cmd.OutOrStdout(), []*dto.RoundResponse{&round}, opts.displayCurrency())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Round name")
	cmd.Flags().StringVar(&investment, "investment", "", "Amount raised")
	cmd.Flags().StringVar(&preMoney, "pre-money", "", "Pre-money valuation")
	cmd.Flags().StringVar(&equity, "equity", "", "Equity sold in percent, used to derive a missing amount")
	cmd.Flags().BoolVar(&preview, "preview", false, "Compute the round without saving it")

	return cmd
}

func removeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <round-id>",
		Short: "Remove a round and recompute the rounds after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chain dto.ChainResponse
			if err := opts.do(cmd, http.MethodDelete, "/api/v1/chain/rounds/"+url.PathEscape(args[0]), nil, &chain); err != nil {
				return err
			}
			return printChain(cmd.OutOrStdout(), &chain, opts.displayCurrency())
		},
	}
}

func showCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the round chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			var chain dto.ChainResponse
			if err := opts.do(cmd, http.MethodGet, "/api/v1/chain", nil, &chain); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), chain)
			}
			return printChain(cmd.OutOrStdout(), &chain, opts.displayCurrency())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	return cmd
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Ask for a narrative analysis of the chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.SummaryResponse
			path := "/api/v1/summary?currency=" + url.QueryEscape(opts.currency)
			if err := opts.do(cmd, http.MethodGet, path, nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Summary)
			return nil
		},
	}
}

// do sends body as JSON and decodes a 2xx response into out.
func (o *options) do(cmd *cobra.Command, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), method, strings.TrimRight(o.baseURL, "/")+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: o.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
			}
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (o *options) displayCurrency() domain.Currency {
	c, err := domain.ParseCurrency(o.currency)
	if err != nil {
		return domain.CurrencyUSD
	}
	return c
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printChain(w io.Writer, chain *dto.ChainResponse, currency domain.Currency) error {
	if chain.Total == 0 {
		_, err := fmt.Fprintln(w, "No rounds yet.")
		return err
	}
	return printRounds(w, chain.Rounds, currency)
}

func printRounds(w io.Writer, rounds []*dto.RoundResponse, currency domain.Currency) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROUND\tDATE\tINVESTMENT\tPRE-MONEY\tPOST-MONEY\tOWNERSHIP\tVALUE")
	for _, r := range rounds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s%%\t%s\n",
			truncate(r.ID, 10),
			r.Name,
			r.Date,
			currency.Format(r.InvestmentAmount),
			currency.Format(r.PreMoneyValuation),
			currency.Format(r.PostMoneyValuation),
			r.UserOwnershipPercentage.StringFixed(2),
			currency.Format(r.UserValue),
		)
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
