package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/source"
)

const validDoc = `name: Test Lexicon
short_description: A test.
type: lexicon
trainingdata: false
unlisted: false
successors: ~
language_codes: [swe]
size:
  entries: 10
contact_info:
  affiliation: {}
`

const missingSize = `name: Test Lexicon
short_description: A test.
trainingdata: false
unlisted: false
successors: ~
language_codes: [swe]
contact_info:
  affiliation: {}
`

const duplicateKey = `name: a
name: b
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestFiles_GlobSortedAndFiltered(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.yaml": validDoc,
		"a.yaml": validDoc,
		"c.json": "{}",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	files, err := NewRunner(Options{}, nil).Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}, files)
}

func TestFiles_NotADirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yaml": validDoc})
	_, err := NewRunner(Options{}, nil).Files(filepath.Join(dir, "a.yaml"))
	assert.True(t, errors.Is(err, ErrNotADirectory), "got %v", err)

	_, err = NewRunner(Options{}, nil).Files(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRun_AllValid(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yaml": validDoc, "b.yaml": validDoc})
	m := NewMetrics()

	rep, err := NewRunner(Options{}, m).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.False(t, rep.Aborted)
	assert.Len(t, rep.Files, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultValid)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ValidationDuration))
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yaml": validDoc,
		"b.yaml": missingSize,
		"c.yaml": validDoc,
	})
	m := NewMetrics()

	rep, err := NewRunner(Options{}, m).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, rep.Aborted)
	require.Len(t, rep.Files, 2)
	failed := rep.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), failed[0].Path)
	assert.Equal(t, []string{"size"}, failed[0].Issues.Paths())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IssuesTotal.WithLabelValues(lexmeta.CodeRequired)))
}

func TestRun_KeepGoing(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yaml": missingSize,
		"b.yaml": duplicateKey,
		"c.yaml": validDoc,
		"d.yaml": "name: [unclosed\n",
	})
	m := NewMetrics()

	rep, err := NewRunner(Options{KeepGoing: true}, m).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, rep.Aborted)
	require.Len(t, rep.Files, 4)
	assert.Len(t, rep.Failed(), 3)

	dup := rep.Files[1]
	require.Len(t, dup.Issues, 1)
	assert.Equal(t, lexmeta.CodeDuplicateKey, dup.Issues[0].Code)
	assert.Equal(t, "name", dup.Issues[0].Path)

	assert.Error(t, rep.Files[3].Err)
	assert.Empty(t, rep.Files[3].Issues)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultError)))
}

func TestRun_UnknownPolicyFromOptions(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yaml": validDoc + "homepage: https://example.org\n"})

	rep, err := NewRunner(Options{}, nil).Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Failed(), 1)
	assert.Equal(t, lexmeta.CodeUnknownKey, rep.Failed()[0].Issues[0].Code)

	opts := Options{ParseOpt: lexmeta.ParseOpt{Unknown: lexmeta.UnknownStrip}}
	rep, err = NewRunner(opts, nil).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, rep.OK())
}

func TestRun_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yaml": validDoc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := NewRunner(Options{}, nil).Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rep.Files)
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	m := NewMetrics()
	m.FilesTotal.WithLabelValues(ResultValid).Inc()
	path := filepath.Join(t.TempDir(), "lexmeta.prom")
	require.NoError(t, m.WriteToTextfile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `lexmeta_files_total{result="valid"} 1`)
}

func TestValidateFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ok.yaml": validDoc, "bad.yaml": missingSize})
	m := NewMetrics()
	r := NewRunner(Options{}, m)

	ok := r.ValidateFile(context.Background(), filepath.Join(dir, "ok.yaml"))
	assert.True(t, ok.OK())

	bad := r.ValidateFile(context.Background(), filepath.Join(dir, "bad.yaml"))
	assert.False(t, bad.OK())
	assert.Equal(t, []string{"size"}, bad.Issues.Paths())

	missing := r.ValidateFile(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, missing.Err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FilesTotal.WithLabelValues(ResultError)))
}

func TestRun_SelfReferencingAnchorIsReported(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.yaml": "name: &x\n  b: *x\n", "b.yaml": validDoc})

	rep, err := NewRunner(Options{KeepGoing: true}, nil).Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Files, 2)
	assert.ErrorIs(t, rep.Files[0].Err, source.ErrAliasCycle)
	assert.Contains(t, rep.Files[0].Err.Error(), "a.yaml")
	assert.True(t, rep.Files[1].OK())
}
