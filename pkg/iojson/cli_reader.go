package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads JSON input from the file named by its flag, or from stdin
// when the flag is unset.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         *os.File
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Source names the input for logs: the file path, or "stdin".
func (fr *FileReader[T]) Source() string {
	if fr.fileFlagValue != "" {
		return fr.fileFlagValue
	}
	return "stdin"
}

// Open returns the input stream. Reading from an interactive terminal is
// refused so a missing pipe does not hang the command.
func (fr *FileReader[T]) Open() (io.ReadCloser, error) {
	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	stdin := fr.stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	return io.NopCloser(stdin), nil
}

// Read decodes a single JSON document.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader, err := fr.Open()
	if err != nil {
		return input, err
	}
	defer func() { _ = reader.Close() }()

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
