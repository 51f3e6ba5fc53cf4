package sink_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalSink_AppendAndRecent(t *testing.T) {
	j, err := sink.OpenJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	ctx := context.Background()
	first := testRecord()
	second := testRecord()
	second.SubmissionID = "id-2"
	second.Verdict = screening.LabelPositive

	require.NoError(t, j.Append(ctx, first))
	require.NoError(t, j.Append(ctx, second))

	records, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second, records[0])
	assert.Equal(t, first, records[1])

	records, err = j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "id-2", records[0].SubmissionID)
}

func TestJournalSink_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := sink.OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(context.Background(), testRecord()))
	require.NoError(t, j.Close())

	j, err = sink.OpenJournal(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	records, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestJournalSink_Rejects(t *testing.T) {
	j, err := sink.OpenJournal(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	short := testRecord()
	short.Answers = short.Answers[:19]
	assert.ErrorIs(t, j.Append(context.Background(), short), screening.ErrIncompleteAnswers)

	require.NoError(t, j.Append(context.Background(), testRecord()))
	assert.Error(t, j.Append(context.Background(), testRecord()), "duplicate submission id")
}
