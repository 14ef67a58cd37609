package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("Id,url,label\n1,badsite.com,-1\n2,safe.com,1\n"))
	require.NoError(t, err)

	assert.Equal(t, "Id", ds.Index)
	assert.Equal(t, []string{"url", "label"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "1", ds.Rows[0].ID)
	assert.Equal(t, []string{"badsite.com", "-1"}, ds.Rows[0].Values)
}

func TestParseDatasetIDNotFirst(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("url,Id\nx.com,7\ny.com\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"url"}, ds.Columns)
	assert.Equal(t, "7", ds.Rows[0].ID)
	assert.Equal(t, "", ds.Rows[1].ID)
	assert.Equal(t, []string{"y.com"}, ds.Rows[1].Values)
}

func TestParseDatasetRequiresIDColumn(t *testing.T) {
	_, err := ParseDataset(strings.NewReader("id,url\n1,a.com\n"))
	assert.ErrorIs(t, err, ErrNoIDColumn)
}

func TestParseDatasetEmpty(t *testing.T) {
	_, err := ParseDataset(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseDatasetLatin1(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("Id,name\n1,caf\xe9\n"))
	require.NoError(t, err)
	assert.Equal(t, "café", ds.Rows[0].Values[0])
}

func TestParseDatasetStripsBOM(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("\xef\xbb\xbfId,url\n1,a.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", ds.Rows[0].ID)
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte("Id,url\n1,a.com\n"), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 1)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
