package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("filters:\n  adapter: default\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", cfg))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		inspectAdapter = ""
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInspectDecodesQuery(t *testing.T) {
	query := `joinOperator=or&sort=[{"id":"title","desc":true}]&filters=[{"id":"title","type":"text","value":"bug","operator":"iLike","rowId":"r1"}]`

	out, stderr, err := runRoot(t, "inspect", query)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	assert.Contains(t, out, "?")
	assert.Contains(t, out, "joinOperator=or")
	assert.Contains(t, out, `"rowId": "r1"`)
	assert.Contains(t, out, `"operator": "iLike"`)
	assert.Contains(t, out, `"desc": true`)
	assert.NotContains(t, out, "rejected")
}

func TestInspectReportsRejectedParameters(t *testing.T) {
	out, stderr, err := runRoot(t, "inspect", "sort=nope&joinOperator=xor")
	require.NoError(t, err)

	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, out, `"rejected"`)
	assert.Contains(t, out, `"joinOperator": "and"`)
}

func TestInspectUnknownAdapter(t *testing.T) {
	_, _, err := runRoot(t, "inspect", "--adapter", "nope", "")
	require.Error(t, err)
}
