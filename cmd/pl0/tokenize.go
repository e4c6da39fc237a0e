package main

import (
	"os"

	"github.com/spf13/cobra"

	"pl0/internal/diag"
	"pl0/internal/diagfmt"
	"pl0/internal/lexer"
	"pl0/internal/source"
	"pl0/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pl0",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	file, err := source.ReadFile(args[0])
	if err != nil {
		return err
	}

	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	bag := diag.NewBag(maxDiag)
	toks := lexer.Tokenize(file, diag.BagReporter{Bag: bag})

	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		line, col := file.LineCol(tok.Pos)
		cmd.Printf("%d:%d\t%s\n", line, col, tok)
	}

	if bag.Len() > 0 {
		diagfmt.New(os.Stderr, useColor(cmd)).PrintAll(file, bag)
	}
	return nil
}
