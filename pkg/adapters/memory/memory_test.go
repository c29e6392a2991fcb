package memory_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunReportStoreContract(t, store)
}

func TestMemoryLoader_Contract(t *testing.T) {
	data := map[string]string{
		"busy_beaver_1": "A 0 -> Halt 1 R\n",
		"flip":          "A 0 -> A 1 R\nA 1 -> Halt 0 L\n",
	}

	bytesData := make(map[string][]byte)
	for k, v := range data {
		bytesData[k] = []byte(v)
	}

	ports.RunTableLoaderContract(t, memory.NewLoader(data), bytesData)
}

func TestNewFromRecords(t *testing.T) {
	loader, err := memory.NewFromRecords(map[string][]domain.Record{
		"bb1": {{From: "A", Read: 0, To: domain.HaltName, Write: 1, Move: domain.Right}},
	})
	require.NoError(t, err)

	content, err := loader.GetTable("bb1")
	require.NoError(t, err)
	assert.Equal(t, "A 0 -> Halt 1 R\n", string(content))

	_, err = memory.NewFromRecords(map[string][]domain.Record{"": nil})
	assert.Error(t, err)
}
