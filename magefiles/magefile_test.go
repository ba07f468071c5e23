//go:build mage

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountGoLines(t *testing.T) {
	root := t.TempDir()
	write := func(rel, body string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("a.go", "package a\n\n  \nfunc A() {}\n")
	write("a_test.go", "package a\n\nfunc TestA() {}\n")
	write("_examples/x.go", "package x\nfunc X() {}\n")
	write("README.md", "two words\nand three more\n")

	prod, err := countGoLines(root, false)
	require.NoError(t, err)
	assert.Equal(t, 2, prod)

	tests, err := countGoLines(root, true)
	require.NoError(t, err)
	assert.Equal(t, 2, tests)

	words, err := countDocWords(root)
	require.NoError(t, err)
	assert.Equal(t, 5, words)
}
