package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "write result",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)
				s := string(content)
				assert.Contains(t, s, "# Function: sqrt(9/4)")
				assert.Contains(t, s, "# Iterations: 32")
				assert.Contains(t, s, "sqrt(9/4) ~= 1.5")
				assert.Contains(t, s, "exact =\n3/2\n")
			},
		},
		{
			name:       "empty output file",
			outputFile: "",
		},
		{
			name:       "nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				_, err := os.Stat(filePath)
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteResultToFile(sampleResult("sqrt", "9/4", "3/2", 20), OutputConfig{OutputFile: tc.outputFile})
			require.NoError(t, err)
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteResultToFileError(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := WriteResultToFile(sampleResult("e", "", "1", -1), OutputConfig{OutputFile: filepath.Join(blocker, "out.txt")})
	assert.Error(t, err)
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value  string
		digits int
		want   string
	}{
		{"3/2", 10, "1.5"},
		{"1/3", 6, "0.3333"},
		{"-7", 10, "-7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatQuietResult(sampleResult("x", "", tt.value, -1), tt.digits), tt.value)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	r := sampleResult("x", "", "22/7", -1)

	var buf bytes.Buffer
	DisplayQuietResult(&buf, r, OutputConfig{Digits: 5})
	assert.Equal(t, "3.142\n", buf.String())

	buf.Reset()
	DisplayQuietResult(&buf, r, OutputConfig{Digits: 5, Exact: true})
	assert.Equal(t, "3.142\n22/7\n", buf.String())
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	r := sampleResult("sqrt", "9/4", "3/2", 20)

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, r, OutputConfig{Quiet: true}))
		assert.Equal(t, "1.5\n", buf.String())
	})

	t.Run("standard", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, r, OutputConfig{}))
		assert.Contains(t, buf.String(), "sqrt(9/4) ≈")
	})

	t.Run("saved", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		var buf bytes.Buffer
		require.NoError(t, DisplayResultWithConfig(&buf, r, OutputConfig{OutputFile: path}))
		assert.Contains(t, buf.String(), "Result saved to")
		assert.FileExists(t, path)
	})
}
