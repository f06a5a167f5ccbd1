package main

import (
	"fmt"
	"io"
	"os"

	"github.com/attcore/attcore/lexer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var lexCommand = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source and print the resulting token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}

		toks, err := lexer.Tokenize(source)
		if err != nil {
			return errors.Wrap(err, "lex")
		}

		for _, tok := range toks {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %s %q\n", tok.Line, tok.Pos, tok.Kind, tok.Token)
		}
		return nil
	},
}

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", args[0])
	}
	return string(data), nil
}
