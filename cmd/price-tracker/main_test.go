package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geniass/price-tracker/pkg/checker"
	"github.com/geniass/price-tracker/pkg/config"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestRunCheck(t *testing.T) {
	logger = zap.NewNop()

	tests := []struct {
		name       string
		input      string
		fetcher    checker.FetcherFunc
		wantErr    bool
		wantStdout string
		wantStderr string
	}{
		{
			name:  "price",
			input: "https://shop.example/item",
			fetcher: func(ctx context.Context, productURL string) (checker.Result, error) {
				return checker.Result{Price: "$19.99"}, nil
			},
			wantStdout: "💵 Price: $19.99\n",
		},
		{
			name:  "no price",
			input: "https://shop.example/item",
			fetcher: func(ctx context.Context, productURL string) (checker.Result, error) {
				return checker.Result{}, nil
			},
			wantStdout: "💵 Price: No price found\n",
		},
		{
			name:  "empty input",
			input: "  ",
			fetcher: func(ctx context.Context, productURL string) (checker.Result, error) {
				t.Fatal("no request expected for blank input")
				return checker.Result{}, nil
			},
			wantErr:    true,
			wantStderr: checker.MsgEmptyInput + "\n",
		},
		{
			name:  "fetch failure",
			input: "https://shop.example/item",
			fetcher: func(ctx context.Context, productURL string) (checker.Result, error) {
				return checker.Result{}, errors.New("connection refused")
			},
			wantErr:    true,
			wantStderr: checker.MsgFetchFailed + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, stdout, stderr := newTestCommand()

			err := runCheck(cmd, tt.fetcher, tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errCheckFailed)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestCheckCommandAgainstEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check-price/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "` + r.URL.Query().Get("product_url") + `", "price": 1299.5}`))
	}))
	defer ts.Close()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"--endpoint", ts.URL + "/check-price/", "check", "https://shop.example/item"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		endpoint = ""
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, "💵 Price: 1299.5\n", stdout.String())
}

func TestNewLogger(t *testing.T) {
	verbose = false

	l, err := newLogger(config.LoggingConfig{Level: "info"}, true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel), "terminal UI without a log file must not log")

	l, err = newLogger(config.LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	_, err = newLogger(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
