package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reoring/vschema/internal/logging"
	"github.com/reoring/vschema/source"
)

// errInvalidInput is returned after the failure report has been printed.
var errInvalidInput = errors.New("input does not match schema")

type rootFlags struct {
	logLevel   string
	maxBytes   int64
	strictKeys bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "vschema",
		Short:         "Validate JSON and YAML documents against schema documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int64Var(&flags.maxBytes, "max-bytes", 0, "maximum document size in bytes (0 = unlimited)")
	cmd.PersistentFlags().BoolVar(&flags.strictKeys, "strict-keys", false, "reject JSON documents with duplicate object keys")
	cmd.AddCommand(newValidateCmd(flags), newJSONSchemaCmd(flags))
	return cmd
}

func (f *rootFlags) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func (f *rootFlags) sourceOpt() source.Opt {
	return source.Opt{MaxBytes: f.maxBytes, RejectDuplicateKeys: f.strictKeys}
}

// readDocument decodes path, or stdin when path is "-".
func readDocument(cmd *cobra.Command, path, format string, opt source.Opt) (any, error) {
	if path != "-" {
		return source.ReadFile(path, opt)
	}
	f := source.FormatJSON
	if format != "" {
		var err error
		if f, err = source.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return source.DecodeReader(cmd.InOrStdin(), f, opt)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// useColor resolves --color against the output stream.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, errors.New("--color must be auto, always or never")
}
