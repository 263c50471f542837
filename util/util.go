package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/engraver/constants"
	"golang.org/x/exp/constraints"
)

func RecreateOutputDir() string {
	path, err := os.Getwd()
	if err != nil {
		panic("Could not RecreateOutputDir: " + err.Error())
	}
	dir := filepath.Join(path, constants.GetOutDir())
	os.RemoveAll(dir)
	os.MkdirAll(dir, 0777)
	return dir
}

func IsScorePath(s string) bool {
	return strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

func GatherAllScorePaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() && IsScorePath(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// Extent returns the smallest and largest value, or false for no values.
func Extent[A constraints.Ordered](nums []A) (A, A, bool) {
	var lo, hi A
	if len(nums) == 0 {
		return lo, hi, false
	}
	lo, hi = nums[0], nums[0]
	for _, v := range nums[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true
}
