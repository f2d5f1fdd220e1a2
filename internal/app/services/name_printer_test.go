package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		n     int
		want  [][]string
	}{
		{"empty", nil, 2, nil},
		{"even", []string{"a", "b", "c", "d"}, 2, [][]string{{"a", "b"}, {"c", "d"}}},
		{"odd", []string{"a", "b", "c"}, 2, [][]string{{"a", "b"}, {"c"}}},
		{"more workers than names", []string{"a", "b"}, 4, [][]string{{"a"}, {"b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkNames(tt.names, tt.n))
		})
	}
}

func TestNewNamePrinterDefaultsPoolSize(t *testing.T) {
	p := NewNamePrinter(zerolog.Nop(), 0)
	assert.Equal(t, DefaultPrintPoolSize, p.poolSize)
}

func TestPrintSequentiallyDoesNotInterleave(t *testing.T) {
	output := &syncBuffer{}
	p := NewNamePrinter(zerolog.New(output), 2)

	p.PrintSequentially([]string{"a1", "a2", "a3", "a4"})
	p.PrintSequentially([]string{"b1", "b2", "b3", "b4"})

	require.Eventually(t, func() bool { return len(output.Lines()) == 8 }, time.Second, 10*time.Millisecond)

	var order []string
	for _, line := range output.Lines() {
		var event struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		order = append(order, event.Name)
	}
	// Either batch may run first, but each stays contiguous and ordered.
	if order[0] == "a1" {
		assert.Equal(t, []string{"a1", "a2", "a3", "a4", "b1", "b2", "b3", "b4"}, order)
	} else {
		assert.Equal(t, []string{"b1", "b2", "b3", "b4", "a1", "a2", "a3", "a4"}, order)
	}
}
