package directory

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	paths := writeTestData(t, testStates, testDistricts, testSectors, testNGOs)
	dir := New(NewFileSource(paths), Options{Mode: ModeCached})
	_, err := dir.Reload(ctx)
	require.NoError(t, err)

	w, err := NewWatcher(paths.Files(), dir, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(paths.States, []byte(testStates+"KA,Karnataka\n"), 0o644))

	assert.Eventually(t, func() bool {
		return dir.Version().StateCount == 3
	}, 5*time.Second, 20*time.Millisecond)

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Reloads, 1)
	assert.Equal(t, paths.States, stats.LastEventPath)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	paths := writeTestData(t, testStates, testDistricts, testSectors, testNGOs)
	dir := New(NewFileSource(paths), Options{Mode: ModeCached})

	w, err := NewWatcher([]string{paths.NGOs}, dir, 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(paths.States, []byte(testStates), 0o644))
	time.Sleep(100 * time.Millisecond)
	w.Stop()

	assert.Zero(t, w.Stats().Events)
	assert.Zero(t, w.Stats().Reloads)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewWatcher([]string{"states.csv"}, nil, 0)
	require.NoError(t, err)
	assert.NotPanics(t, w.Stop)
}
