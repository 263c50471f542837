package util

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(10), Sum([]uint8{1, 2, 3, 4}))
}

func TestExtent(t *testing.T) {
	assert := assert.New(t)
	lo, hi, ok := Extent([]int{4, -2, 9, 0})
	assert.True(ok)
	assert.Equal(-2, lo)
	assert.Equal(9, hi)
	flo, fhi, ok := Extent([]float64{2.0, -1.5})
	assert.True(ok)
	assert.Equal(-1.5, flo)
	assert.Equal(2.0, fhi)
	_, _, ok = Extent([]int{})
	assert.False(ok)
}

func TestGetKeys(t *testing.T) {
	keys := GetKeys(map[string]int{"b": 1, "a": 2})
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestGatherAllScorePaths(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "c.mid", "sub/d.yaml"} {
		path := filepath.Join(dir, name)
		assert.NoError(os.MkdirAll(filepath.Dir(path), 0777))
		assert.NoError(os.WriteFile(path, []byte{}, 0666))
	}
	assert.Len(GatherAllScorePaths(dir, 0), 3)
	assert.Len(GatherAllScorePaths(dir, 2), 2)
}
