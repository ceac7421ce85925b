package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPriceFlags(t *testing.T) {
	out, err := runCLI(t, "price",
		"--natural-gas-price", "5",
		"--boiler-efficiency", "0.8",
		"--baseline-emissions", "0.06",
		"--project-emissions", "0.02",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Net steam price: $2.75/MMBtu")
	assert.Contains(t, out, "Fuel cost: $6.25/MMBtu")
}

func TestPriceJSON(t *testing.T) {
	out, err := runCLI(t, "price", "--json")
	require.NoError(t, err)

	var resp struct {
		Input struct {
			NaturalGasPrice float64 `json:"natural_gas_price"`
		} `json:"input"`
		Result struct {
			NetPrice float64 `json:"net_price"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 4.0, resp.Input.NaturalGasPrice)
	assert.InDelta(t, 4.0/0.85-0.0477*100+0.5, resp.Result.NetPrice, 1e-9)
}

func TestPriceScenarioFileWithOverride(t *testing.T) {
	path := writeScenario(t, `
natural_gas_price: 5
boiler_efficiency: 0.8
baseline_emissions_factor: 0.06
project_emissions_factor: 0.02
lcfs_price: 50
`)

	out, err := runCLI(t, "price", "--file", path, "--lcfs-price", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Net steam price: $2.75/MMBtu")
}

func TestPriceScenarioRejectsUnknownKeys(t *testing.T) {
	path := writeScenario(t, "gas_price: 5\n")

	_, err := runCLI(t, "price", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestPriceInvalidInput(t *testing.T) {
	_, err := runCLI(t, "price", "--boiler-efficiency", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boiler_efficiency")
}

func TestSensitivity(t *testing.T) {
	out, err := runCLI(t, "sensitivity", "--param", "om_cost", "--values", "0,1,2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "om_cost")

	_, err = runCLI(t, "sensitivity", "--param", "humidity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter")
}

func TestSensitivityDefaultRangeJSON(t *testing.T) {
	out, err := runCLI(t, "sensitivity", "--param", "lcfs_price", "--json")
	require.NoError(t, err)

	var resp struct {
		Points []struct {
			Value float64 `json:"value"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Points, 11)
	assert.InDelta(t, 50, resp.Points[0].Value, 1e-9)
	assert.InDelta(t, 150, resp.Points[10].Value, 1e-9)
}

func TestRevenue(t *testing.T) {
	out, err := runCLI(t, "revenue", "--target-price", "3", "--capital", "100000")
	require.NoError(t, err)
	assert.Contains(t, out, "Required LCFS price")
	assert.Contains(t, out, "is achieved")

	_, err = runCLI(t, "revenue", "--lifetime", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lifetime_years")
}

func TestRevenueScenarioFile(t *testing.T) {
	path := writeScenario(t, `
pricing:
  natural_gas_price: 6
target_price: 4
lifetime_years: 5
`)

	out, err := runCLI(t, "revenue", "--file", path, "--json")
	require.NoError(t, err)

	var resp struct {
		Credit struct {
			TargetPrice float64 `json:"target_price"`
		} `json:"credit"`
		ProducerCashFlows []float64 `json:"producer_cash_flows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 4.0, resp.Credit.TargetPrice)
	assert.Len(t, resp.ProducerCashFlows, 6)
}

func TestSavingsDetailed(t *testing.T) {
	out, err := runCLI(t, "savings", "--detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "Total annual benefit: $300000.00")
	assert.Contains(t, out, "Year  Producer")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "steamcalc version dev\n", out)
}
