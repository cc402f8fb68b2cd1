package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlSeed), 0o600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp("test")
	app.now = func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) }
	app.SetOutput(&out)
	app.SetArgs(append(args, "--no-color"))
	err := app.Execute()
	return out.String(), err
}

func TestApp_Dashboard(t *testing.T) {
	out, err := runApp(t, "dashboard", "--data", writeSeed(t))
	require.NoError(t, err)

	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "$912.50")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Lunch")
}

func TestApp_DashboardDateFlag(t *testing.T) {
	out, err := runApp(t, "dashboard", "--data", writeSeed(t), "--date", "2024-04-02", "--currency", "€")
	require.NoError(t, err)

	assert.Contains(t, out, "April 2024")
	assert.Contains(t, out, "€0.00")
}

func TestApp_Analytics(t *testing.T) {
	out, err := runApp(t, "analytics", "--data", writeSeed(t), "--months", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Top category: Rent")
}

func TestApp_AnalyticsInvalidMonths(t *testing.T) {
	_, err := runApp(t, "analytics", "--data", writeSeed(t), "--months", "40")
	assert.Error(t, err)
}

func TestApp_Report(t *testing.T) {
	dir := t.TempDir()
	out, err := runApp(t, "report", "2024-03", "--data", writeSeed(t), "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Report written")
	data, err := os.ReadFile(filepath.Join(dir, "reports", "2024-03.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Lunch")
}

func TestApp_MissingDataFlag(t *testing.T) {
	_, err := runApp(t, "dashboard")
	assert.Error(t, err)
}

func TestApp_InvalidDate(t *testing.T) {
	_, err := runApp(t, "dashboard", "--data", writeSeed(t), "--date", "20/03/2024")
	assert.Error(t, err)
}
