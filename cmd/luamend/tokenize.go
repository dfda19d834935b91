package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luamend/internal/lexer"
	"luamend/internal/report"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lua",
	Short: "Dump the lexical tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("trivia", false, "include whitespace and comment trivia")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	showTrivia, _ := cmd.Flags().GetBool("trivia")

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)

	toks, err := lexer.Tokenize(src)
	if err != nil {
		report.New(os.Stderr, useColor(cmd, os.Stderr)).Error(path, src, err)
		return fmt.Errorf("tokenization failed")
	}

	out := cmd.OutOrStdout()
	for _, tok := range toks {
		if showTrivia {
			for _, trivia := range tok.Leading {
				fmt.Fprintf(out, "%5d  %-12s %q\n", trivia.Line, "~"+trivia.Kind.String(), trivia.Text)
			}
		}
		fmt.Fprintf(out, "%5d  %-12s %q\n", tok.Line, tok.Kind.String(), tok.Text)
		if showTrivia {
			for _, trivia := range tok.Trailing {
				fmt.Fprintf(out, "%5d  %-12s %q\n", trivia.Line, "~"+trivia.Kind.String(), trivia.Text)
			}
		}
	}
	return nil
}
