package main

import (
	"fmt"

	"github.com/attcore/attcore/lexer"
	"github.com/attcore/attcore/validator"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCommand = &cobra.Command{
	Use:   "validate [file]",
	Short: "Tokenize source and certify every instruction against its schema",
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

		failures := 0
		for _, stmt := range groupStatements(toks) {
			if err := validator.Validate(stmt.instruction, stmt.operands); err != nil {
				failures++
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %s\n", stmt.instruction.Line, err)
				continue
			}
			logrus.WithField("instruction", stmt.instruction.Token).Debug("validate: accepted")
		}

		if failures > 0 {
			return errors.Errorf("%d instruction(s) failed validation", failures)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}
