package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docrank/internal/report"
)

const sampleDoc = "EXECUTIVE SUMMARY\n- revenue from mobile banking grew strongly this year.\nAPPENDIX\n- tables of raw figures."

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDocs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "annual.txt"), []byte(sampleDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Kitchen Notes\n\n- whisk the eggs."), 0o644))
	return dir
}

func TestAnalyzeDirectoryToStdout(t *testing.T) {
	dir := writeDocs(t)
	out, _, err := run(t, "analyze", "--documents", dir,
		"--persona", "Investment analyst", "--job", "Analyze revenue trends", "--output", "-", "--top", "2")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.NoError(t, r.Validate())
	assert.Equal(t, []string{"annual.txt", "notes.md"}, r.Metadata.InputDocuments)
	assert.Len(t, r.ExtractedSections, 2)
	assert.Equal(t, "annual.txt", r.ExtractedSections[0].Document)
	assert.True(t, strings.HasPrefix(out, "{\n  \"metadata\""), "expected indented json")
}

func TestAnalyzeManifestToFile(t *testing.T) {
	dir := writeDocs(t)
	manifestPath := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
documents:
  - filename: annual.txt
persona:
  role: Investment analyst
job_to_be_done:
  task: Analyze revenue trends
`), 0o644))
	outPath := filepath.Join(dir, "out", "report.json")

	_, _, err := run(t, "analyze", "--input", manifestPath, "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, "Investment analyst", r.Metadata.Persona)
	assert.Equal(t, []string{"annual.txt"}, r.Metadata.InputDocuments)

	out, _, err := run(t, "validate", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (2 sections)")
}

func TestAnalyzeRequiresInputs(t *testing.T) {
	_, _, err := run(t, "analyze", "--persona", "p", "--job", "j")
	assert.ErrorContains(t, err, "--documents or --input")

	dir := writeDocs(t)
	_, _, err = run(t, "analyze", "--documents", dir, "--job", "j")
	assert.ErrorContains(t, err, "--persona is required")

	_, _, err = run(t, "analyze", "--documents", dir, "--input", "x.yaml", "--persona", "p", "--job", "j")
	assert.Error(t, err)
}

func TestValidateRejectsBadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metadata": {}}`), 0o644))
	_, _, err := run(t, "validate", path)
	assert.ErrorContains(t, err, "invalid report")
}
