package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geniass/price-tracker/pkg/checker"
)

// errCheckFailed means the user has already been told what went wrong.
var errCheckFailed = errors.New("price check failed")

var checkCmd = &cobra.Command{
	Use:   "check <product-url>",
	Short: "Check the price of one product URL and print it",
	Example: `  price-tracker check https://www.amazon.in/dp/B0EXAMPLE
  price-tracker --endpoint http://prices.internal:5000/check-price/ check https://example.com/item`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return runCheck(cmd, client, args[0])
	},
}

func runCheck(cmd *cobra.Command, fetcher checker.Fetcher, productURL string) error {
	stderr := cmd.ErrOrStderr()
	form := checker.NewForm(fetcher, checker.NotifierFunc(func(m string) {
		fmt.Fprintln(stderr, m)
	}))
	form.SetInput(productURL)

	if err := form.Check(cmd.Context()); err != nil {
		logger.Debug("check failed", zap.String("product_url", productURL), zap.Error(err))
		return errCheckFailed
	}
	return printResult(cmd.OutOrStdout(), form.Snapshot())
}

func printResult(w io.Writer, s checker.Snapshot) error {
	return resultTemplate.Execute(w, s)
}
