package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Rotator":     "rotator",
		"EnemyChaser": "enemy_chaser",
		"A":           "a",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnakeCase(in))
	}
}

func TestNewScriptWritesParsableFile(t *testing.T) {
	dir := t.TempDir()
	path, err := newScript(dir, "EnemyChaser")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "enemy_chaser.go"), path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), `engine.RegisterScript("EnemyChaser", enemyChaserFactory, enemyChaserSerializer)`)
	assert.NotContains(t, string(src), "{{")

	_, err = parser.ParseFile(token.NewFileSet(), path, src, parser.AllErrors)
	assert.NoError(t, err)
}

func TestNewScriptErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := newScript(dir, "lowercase")
	assert.ErrorIs(t, err, errScriptName)
	_, err = newScript(dir, "")
	assert.ErrorIs(t, err, errScriptName)

	_, err = newScript(dir, "Spinner")
	require.NoError(t, err)
	_, err = newScript(dir, "Spinner")
	assert.ErrorContains(t, err, "already exists")
}
