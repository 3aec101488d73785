package io_test

import (
	"testing"

	io "github.com/metalstrap/metalstrap/pkg/io"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeToDNSLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
		{"lowercase letters", "edge", "edge"},
		{"uppercase letters normalized", "EDGE", "edge"},
		{"mixed case", "EdgeNode", "edgenode"},
		{"spaces become hyphens", "edge node", "edge-node"},
		{"special characters become hyphens", "edge.node/one", "edge-node-one"},
		{"consecutive specials collapse to single hyphen", "edge...node", "edge-node"},
		{"leading specials trimmed", "...edge", "edge"},
		{"trailing specials trimmed", "edge...", "edge"},
		{"numbers preserved", "edge01", "edge01"},
		{"mixed with numbers", "my-rack-2.0", "my-rack-2-0"},
		{"unicode characters become hyphens", "édge nöde", "dge-n-de"},
		{"single character", "a", "a"},
		{"single special becomes empty", ".", ""},
		{"underscores become hyphens", "my_edge_node", "my-edge-node"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			result := io.SanitizeToDNSLabel(test.input)

			assert.Equal(t, test.expected, result)
		})
	}
}

func TestTrimNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		expectedStr   string
		expectedValid bool
	}{
		{"empty string returns false", "", "", false},
		{"whitespace only returns false", "   ", "", false},
		{"plain value trims nothing", "/dev/sda", "/dev/sda", true},
		{"surrounding whitespace trimmed", "  /dev/sda  ", "/dev/sda", true},
		{"tabs and newlines trimmed", "\t/dev/sda\n", "/dev/sda", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			result, valid := io.TrimNonEmpty(test.input)

			assert.Equal(t, test.expectedStr, result)
			assert.Equal(t, test.expectedValid, valid)
		})
	}
}
