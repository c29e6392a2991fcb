package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:             id,
			Machine:        "busy_beaver_4",
			StartedAt:      time.Now().UTC().Truncate(time.Second),
			Status:         domain.StatusHalted,
			State:          domain.HaltName,
			Steps:          107,
			Ones:           13,
			Zeros:          1,
			TapeLength:     14,
			Elapsed:        1500 * time.Microsecond,
			StepsPerSecond: 71333.3,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Machine, loaded.Machine)
		assert.Equal(t, report.Status, loaded.Status)
		assert.Equal(t, report.Steps, loaded.Steps)
		assert.Equal(t, report.Ones, loaded.Ones)
		assert.Equal(t, report.Zeros, loaded.Zeros)
		assert.Equal(t, report.Elapsed, loaded.Elapsed)
		assert.True(t, report.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Steps = 0

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, uint64(107), again.Steps)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newReport(reportID))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, newReport(id1))
		_ = store.Save(ctx, newReport(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsNonDecreasing(t, ids)
	})
}

// RunTableLoaderContract verifies that a TableLoader serves exactly setupData.
func RunTableLoaderContract(t *testing.T, loader TableLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetTable_Success", func(t *testing.T) {
		for name, expected := range setupData {
			content, err := loader.GetTable(name)
			require.NoError(t, err, "table %s", name)
			assert.Equal(t, string(expected), string(content))
		}
	})

	t.Run("GetTable_NotFound", func(t *testing.T) {
		_, err := loader.GetTable("non-existent-table")
		assert.Error(t, err)
	})

	t.Run("ListTables", func(t *testing.T) {
		names, err := loader.ListTables()
		require.NoError(t, err)
		assert.Len(t, names, len(setupData))
		for name := range setupData {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})
}
