package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codanna/codanna/pkg/util"
)

func TestWorkerPoolBasic(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	reg, pm, _ := newTestRegistry(logger)
	defer pm.Close()

	indexer := NewSymbolIndexer(DefaultSymbolIndexerConfig(), reg, pm, "", logger)
	defer indexer.Close()

	pool := NewWorkerPool(4, indexer, logger)
	pool.Start()
	defer pool.Stop()

	testFiles := []string{"test1.go", "test2.go", "test3.go"}

	for i, file := range testFiles {
		err := pool.Submit(FileJob{FilePath: file, JobID: i})
		assert.NoError(t, err)
	}

	errorCount := 0
	for i := 0; i < len(testFiles); i++ {
		select {
		case <-pool.Results():
			t.Fail() // non-existent files should always error
		case <-pool.Errors():
			errorCount++
		}
	}

	assert.Equal(t, len(testFiles), errorCount)
	stats := pool.GetStats()
	assert.Equal(t, int64(3), stats.JobsSubmitted)
	assert.Equal(t, int64(3), stats.JobsFailed)
}

func TestFileWatcherBasic(t *testing.T) {
	logger := util.NewLogger(util.DefaultLoggerConfig())
	reg, pm, _ := newTestRegistry(logger)
	defer pm.Close()

	indexer := NewSymbolIndexer(DefaultSymbolIndexerConfig(), reg, pm, "", logger)
	defer indexer.Close()

	watcher := NewFileWatcher(indexer, reg, allEnabled{}, DefaultWatchOptions(), logger)

	tempDir := t.TempDir()

	err := watcher.Start(tempDir)
	require.NoError(t, err)
	defer watcher.Stop()

	stats := watcher.GetStats()
	assert.True(t, stats.IsRunning)
}
