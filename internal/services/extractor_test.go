package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor() ExtractorService {
	return NewExtractorService(zap.NewNop().Sugar())
}

func TestExtractTextPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\n\n  Python, React  \n"), 0644))

	text := newTestExtractor().ExtractText(path)

	assert.Equal(t, "Jane Doe\nPython, React", text)
}

func TestExtractTextMissingFileReturnsEmpty(t *testing.T) {
	text := newTestExtractor().ExtractText(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Equal(t, "", text)
}

func TestExtractTextCorruptPDFReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0644))

	assert.Equal(t, "", newTestExtractor().ExtractText(path))
}

func TestExtractTextUnsupportedExtensionReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.exe")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0644))

	assert.Equal(t, "", newTestExtractor().ExtractText(path))
}

func TestCleanTextNormalizesWhitespace(t *testing.T) {
	assert.Equal(t, "a\nb", CleanText("  a  \n\n\n   b \n"))
	assert.Equal(t, "", CleanText("   \n \n "))
}
