package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostText(t *testing.T) {
	reset := func() { pubText, pubFile = "", "" }

	t.Run("from flag", func(t *testing.T) {
		defer reset()
		pubText = "Hello"
		got, err := postText(&cobra.Command{})
		require.NoError(t, err)
		assert.Equal(t, "Hello", got)
	})

	t.Run("from file", func(t *testing.T) {
		defer reset()
		path := filepath.Join(t.TempDir(), "post.txt")
		require.NoError(t, os.WriteFile(path, []byte("From file"), 0o644))
		pubFile = path
		got, err := postText(&cobra.Command{})
		require.NoError(t, err)
		assert.Equal(t, "From file", got)
	})

	t.Run("from stdin", func(t *testing.T) {
		defer reset()
		pubFile = "-"
		cmd := &cobra.Command{}
		cmd.SetIn(strings.NewReader("From stdin"))
		got, err := postText(cmd)
		require.NoError(t, err)
		assert.Equal(t, "From stdin", got)
	})

	t.Run("empty", func(t *testing.T) {
		defer reset()
		_, err := postText(&cobra.Command{})
		assert.Error(t, err)
	})
}
