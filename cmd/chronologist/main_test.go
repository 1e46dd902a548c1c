// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chronologist/internal/history"
	"github.com/pdiddy/chronologist/internal/provider"
)

// --- test helpers ---

func newProviderServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("..", "..", "internal", "history", "testdata", "day.json"))
	require.NoError(t, err)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// resetFlags restores every flag to its default between runs of the
// shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// --- tests ---

func TestParseDateArgs(t *testing.T) {
	d, err := parseDateArgs([]string{"2", "4"})
	require.NoError(t, err)
	assert.Equal(t, dateArgs{Month: 2, Day: 4}, d)

	d, err = parseDateArgs([]string{"2", "4", " 366 BC "})
	require.NoError(t, err)
	assert.Equal(t, "366 BC", d.Year)

	_, err = parseDateArgs([]string{"feb", "4"})
	assert.Error(t, err)
	_, err = parseDateArgs([]string{"2", "4th"})
	assert.Error(t, err)
}

func TestDateCommand_Text(t *testing.T) {
	ts := newProviderServer(t, http.StatusOK)

	out, err := execute(t, "--base-url", ts.URL, "date", "2", "4", "1527")
	require.NoError(t, err)
	assert.Equal(t, "Agnes of Hesse was born in 1527 this date (died in 1555)\n\n1 entries (February 4)\n", out)
}

func TestDateCommand_JSONCategory(t *testing.T) {
	ts := newProviderServer(t, http.StatusOK)

	out, err := execute(t, "--base-url", ts.URL, "date", "2", "4", "--format", "json", "--category", "deaths")
	require.NoError(t, err)

	var doc history.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Empty(t, doc.Events)
	assert.Empty(t, doc.Births)
	assert.Len(t, doc.Deaths, 3)
}

func TestDateCommand_ContractViolation(t *testing.T) {
	ts := newProviderServer(t, http.StatusOK)

	_, err := execute(t, "--base-url", ts.URL, "date", "13", "1")
	assert.ErrorIs(t, err, provider.ErrInvalidMonth)

	_, err = execute(t, "--base-url", ts.URL, "date", "2", "4", "927BC")
	assert.ErrorIs(t, err, provider.ErrInvalidYear)
}

func TestTodayCommand_FetchError(t *testing.T) {
	ts := newProviderServer(t, http.StatusServiceUnavailable)

	_, err := execute(t, "--base-url", ts.URL, "today")
	var fe *provider.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.StatusCode)
}

func TestTodayCommand_UnknownFormat(t *testing.T) {
	ts := newProviderServer(t, http.StatusOK)

	_, err := execute(t, "--base-url", ts.URL, "today", "--format", "xml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "chronologist dev\n", out)
}
