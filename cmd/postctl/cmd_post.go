package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/postpilot/internal/app"
	"github.com/arturoeanton/postpilot/internal/domain"
)

var (
	genDescription string
	genURL         string
	genCommentary  string

	pubText  string
	pubFile  string
	pubImage string
)

// generateCmd drafts a post
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a post from a description or a content URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.GenerationRequest{
			Description: genDescription,
			ContentURL:  genURL,
			Commentary:  genCommentary,
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			return printJSON(cmd, a.Generator.Generate(cmd.Context(), req))
		})
	},
}

// publishCmd posts text, optionally with an image
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a post to LinkedIn",
	Long: `Publish a post to LinkedIn.

The text comes from --text, or from --file ("-" reads stdin). --image takes
a local path or an http(s) URL. Publishing is not idempotent: re-running after
a network error may create a duplicate post.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := postText(cmd)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			res, err := a.Publisher.Publish(cmd.Context(), text, pubImage)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		})
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genDescription, "description", "d", "", "what the post is about")
	generateCmd.Flags().StringVarP(&genURL, "url", "u", "", "content URL to analyze (wins over --description)")
	generateCmd.Flags().StringVarP(&genCommentary, "commentary", "c", "", "personal commentary to weave in")

	publishCmd.Flags().StringVarP(&pubText, "text", "t", "", "post text")
	publishCmd.Flags().StringVarP(&pubFile, "file", "f", "", "read post text from file, - for stdin")
	publishCmd.Flags().StringVarP(&pubImage, "image", "i", "", "image path or URL")
}

func postText(cmd *cobra.Command) (string, error) {
	text := pubText
	switch {
	case pubFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		text = string(data)
	case pubFile != "":
		data, err := os.ReadFile(pubFile)
		if err != nil {
			return "", err
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("post text is empty: use --text or --file")
	}
	return text, nil
}
