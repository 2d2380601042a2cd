package redis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"configureflow/internal/catalog"
)

func draft(id string) catalog.Draft {
	return catalog.Draft{ID: id, Name: "Draft " + id}
}

func TestPrepend_MostRecentFirst(t *testing.T) {
	var drafts []catalog.Draft
	for i := 1; i <= 3; i++ {
		drafts = prepend(drafts, draft(fmt.Sprintf("d%d", i)), maxDraftsPerOwner)
	}

	require.Len(t, drafts, 3)
	assert.Equal(t, "d3", drafts[0].ID)
	assert.Equal(t, "d1", drafts[2].ID)
}

func TestPrepend_EvictsOldestPastCap(t *testing.T) {
	var drafts []catalog.Draft
	for i := 1; i <= 14; i++ {
		drafts = prepend(drafts, draft(fmt.Sprintf("d%d", i)), maxDraftsPerOwner)
	}

	require.Len(t, drafts, maxDraftsPerOwner)
	assert.Equal(t, "d14", drafts[0].ID)
	assert.Equal(t, "d5", drafts[len(drafts)-1].ID, "oldest entries evicted")
}

func TestRemove(t *testing.T) {
	drafts := []catalog.Draft{draft("a"), draft("b"), draft("c")}

	kept := remove(drafts, "b")
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ID)
	assert.Equal(t, "c", kept[1].ID)

	// Removing a missing id changes nothing.
	assert.Len(t, remove(drafts, "zzz"), 3)
}
