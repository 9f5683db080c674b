package history

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T, cap int) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"), cap)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t, 25)

	type detail struct {
		EngMax float64 `json:"eng_max"`
	}
	require.NoError(t, s.Record(KindScaling, "4-20mA to 0-60Hz", detail{EngMax: 60}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, s.Record(KindCalculator, "wire size for 16A run", nil))

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, KindCalculator, entries[0].Kind)
	assert.Equal(t, KindScaling, entries[1].Kind)
	assert.NotEmpty(t, entries[0].ID)

	var d detail
	require.NoError(t, json.Unmarshal([]byte(entries[1].Payload), &d))
	assert.Equal(t, 60.0, d.EngMax)
}

func TestRecordNilPayload(t *testing.T) {
	s := newTestStore(t, 5)
	require.NoError(t, s.Record(KindLookup, "thermocouple K", nil))

	entries, err := s.Recent(1)
	require.NoError(t, err)
	assert.Empty(t, entries[0].Payload)
}

func TestCapPrunesOldest(t *testing.T) {
	s := newTestStore(t, 3)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(KindCalculator, string(rune('a'+i)), nil))
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3, "cap enforced")
	assert.Equal(t, "e", entries[0].Summary)
	assert.Equal(t, "c", entries[2].Summary, "oldest surviving entry")
}

func TestClear(t *testing.T) {
	s := newTestStore(t, 5)
	require.NoError(t, s.Record(KindDiagnosis, "F004 on line 3 VFD", nil))
	require.NoError(t, s.Clear())

	entries, err := s.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRejectsBadInputs(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "h.db"), 0)
	assert.Error(t, err)

	s := newTestStore(t, 5)
	assert.Error(t, s.Record(KindScaling, "", nil))

	_, err = s.Recent(0)
	assert.Error(t, err)
}
