package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzhole/pegbot/internal/keyword"
	"github.com/gzhole/pegbot/internal/logger"
)

const testCatalog = `
require_keywords: true
keywords: [brave, real]
penalty_keywords: [shame]
linked_keywords: ["brave:tough"]
location_weights:
  - from: Brisbane
    to: Sydney
    weight: 2
`

func resetFlags() {
	configPath, catalogPath, dbPath, logPath, source, logLevel = "", "", "", "", "", ""
	checkFrom, checkTo, checkSender, checkReceiver = "", "", "", ""
	checkQuiet, checkNoAudit = false, false
	chathelpRoles = nil
	logFilterOutcome, logFilterPenalty, logLast, logSummary = "", false, 0, false
	importWithPacks = false
	watchInterval = 30 * time.Second
}

// run executes the root command in a fresh config dir and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PEGBOT_CONFIG_DIR", dir)
	return dir
}

func TestCheck_FileCatalog(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))

	out, err := run(t, "", "check", "--from", "Brisbane", "--to", "Sydney", "--sender", "alice", "so", "TOUGH")
	require.NoError(t, err)
	assert.Contains(t, out, "Outcome: PEG")
	assert.Contains(t, out, "Weight: 2 (Brisbane -> Sydney)")

	events, err := logger.ReadEvents(filepath.Join(dir, "audit.jsonl"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "so TOUGH", events[0].Comment)
	assert.Equal(t, "alice", events[0].Sender)
	assert.Equal(t, 2, events[0].Weight)
	assert.True(t, events[0].RequireKeywords)
}

func TestCheck_StdinQuiet(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))

	out, err := run(t, "so brave\n\nwhat a shame\nhello there\n", "check", "-q", "--no-audit")
	require.NoError(t, err)
	assert.Equal(t, "PEG 1\nPENALTY 1\nINVALID 1\n", out)

	_, err = os.Stat(filepath.Join(dir, "audit.jsonl"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheck_NoComment(t *testing.T) {
	setup(t)
	_, err := run(t, "", "check")
	assert.ErrorContains(t, err, "no comment provided")
}

func TestKeywords_EmptyCatalog(t *testing.T) {
	setup(t)
	out, err := run(t, "", "keywords")
	require.NoError(t, err)
	assert.Equal(t, keyword.NewCatalog(nil, nil, nil).Listing()+"\n", out)
	assert.Contains(t, out, keyword.NoKeywords)
}

func TestWeight(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))

	out, err := run(t, "", "weight", "Brisbane", "Sydney")
	require.NoError(t, err)
	assert.Equal(t, "Brisbane -> Sydney: 2\n", out)

	out, err = run(t, "", "weight", "Sydney", "Brisbane")
	require.NoError(t, err)
	assert.Equal(t, "Sydney -> Brisbane: 1 (default)\n", out)

	_, err = run(t, "", "weight", "Sydney")
	assert.Error(t, err)
}

func TestConfigStore_DrivesDBSource(t *testing.T) {
	setup(t)

	steps := [][]string{
		{"config", "keyword", "add", "brave"},
		{"config", "penalty", "add", "shame"},
		{"config", "linked", "add", "brave:tough"},
		{"config", "general", "set", "requireValues", "1"},
		{"config", "weight", "set", "Brisbane", "Perth", "3"},
	}
	for _, args := range steps {
		_, err := run(t, "", args...)
		require.NoError(t, err, strings.Join(args, " "))
	}

	out, err := run(t, "", "config", "keyword", "list")
	require.NoError(t, err)
	assert.Equal(t, "* brave\n", out)

	out, err = run(t, "tough one\nhi\nshame\n", "--source", "db", "check", "-q", "--from", "Brisbane", "--to", "Perth")
	require.NoError(t, err)
	assert.Equal(t, "PEG 3\nINVALID 3\nPENALTY 3\n", out)

	_, err = run(t, "", "config", "linked", "add", "broken")
	assert.ErrorContains(t, err, "primary:synonym")

	_, err = run(t, "", "config", "general", "set", "requireValues", "yes")
	assert.Error(t, err)

	_, err = run(t, "", "config", "weight", "delete", "Brisbane", "Perth")
	require.NoError(t, err)
	out, err = run(t, "", "--source", "db", "weight", "Brisbane", "Perth")
	require.NoError(t, err)
	assert.Equal(t, "Brisbane -> Perth: 1 (default)\n", out)
}

func TestImportExport(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0600))

	out, err := run(t, "", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 keywords, 1 penalty keywords, 1 linked keywords and 1 location weights")

	fileOut, err := run(t, "", "keywords")
	require.NoError(t, err)
	dbOut, err := run(t, "", "--source", "db", "keywords")
	require.NoError(t, err)
	assert.Equal(t, fileOut, dbOut)

	exported := filepath.Join(dir, "exported.yaml")
	_, err = run(t, "", "export", exported)
	require.NoError(t, err)

	out, err = run(t, "", "--catalog", exported, "weight", "Brisbane", "Sydney")
	require.NoError(t, err)
	assert.Equal(t, "Brisbane -> Sydney: 2\n", out)
}

func TestChatHelp(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))

	out, err := run(t, "", "chathelp", "peg")
	require.NoError(t, err)
	assert.Contains(t, out, "`@pegbot peg @bob {comment}`")
	assert.Contains(t, out, "Note that your comment MUST include a keyword.")

	out, err = run(t, "", "chathelp", "--role", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "* stringconfig\n")
	assert.NotContains(t, out, "* removeuser\n")

	_, err = run(t, "", "chathelp", "--role", "owner")
	assert.ErrorContains(t, err, "unknown role")
}

func TestLog(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))

	out, err := run(t, "", "log")
	require.NoError(t, err)
	assert.Equal(t, "No audit log entries found.\n", out)

	_, err = run(t, "brave\nshame\nnothing\n", "check", "-q")
	require.NoError(t, err)

	out, err = run(t, "", "log", "--outcome", "penalty")
	require.NoError(t, err)
	assert.Contains(t, out, `"shame"`)
	assert.NotContains(t, out, `"brave"`)

	out, err = run(t, "", "log", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Total events:    3")
	assert.Contains(t, out, "INVALID:         1")
}

func TestScan(t *testing.T) {
	setup(t)
	out, err := run(t, "", "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "All 12 tests passed")
}

func TestPackEnableDisable(t *testing.T) {
	dir := setup(t)
	packs := filepath.Join(dir, "packs")
	require.NoError(t, os.MkdirAll(packs, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(packs, "team.yaml"), []byte("name: team\nversion: \"1\"\nauthor: ops\nrequire_keywords: true\nkeywords: [kind]\n"), 0600))

	out, err := run(t, "", "pack", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "team")
	assert.Contains(t, out, "(1 keywords, 0 weights)")

	out, err = run(t, "", "check", "-q", "--no-audit", "so kind")
	require.NoError(t, err)
	assert.Equal(t, "PEG 1\n", out)

	_, err = run(t, "", "pack", "disable", "team")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(packs, "_team.yaml"))
	require.NoError(t, err)

	_, err = run(t, "", "pack", "enable", "team")
	require.NoError(t, err)

	_, err = run(t, "", "pack", "show", "missing")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pegbot "+Version))
}

func TestValidate(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog), 0600))
	packs := filepath.Join(dir, "packs")
	require.NoError(t, os.MkdirAll(packs, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(packs, "team.yaml"), []byte("name: team\nkeywords: [kind]\n"), 0600))

	out, err := run(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "team.yaml")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`linked_keywords: ["broken"]`), 0600))
	_, err = run(t, "", "validate", bad)
	assert.ErrorContains(t, err, "1 of 1 files invalid")
}
