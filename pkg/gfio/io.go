/*
Package gfio opens files named by commandline options, treating the special
values stdin/stdout as the standard streams, and decorates open errors with
the flag they came from so bad filepaths are easy to trace
*/
package gfio

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

func flagString(flag pflag.Flag) string {
	if len(flag.Shorthand) == 0 {
		return "--" + flag.Name
	}
	return "-" + flag.Shorthand + " / --" + flag.Name
}

func parseInErr(err error, flagString string) error {
	switch x := err.(type) {
	case *fs.PathError:
		return errors.New(x.Op + " " + flagString + " " + x.Path + ": " + x.Err.Error())
	default:
		return err
	}
}

// OpenIn opens the file named by flag for reading, or returns os.Stdin if
// the flag's value is "stdin"
func OpenIn(flag pflag.Flag) (*os.File, error) {
	inFile := flag.Value.String()

	if inFile == "stdin" {
		return os.Stdin, nil
	}

	f, err := os.Open(inFile)
	if err != nil {
		return f, parseInErr(err, flagString(flag))
	}

	return f, nil
}

// OpenOut creates the file named by flag for writing, or returns os.Stdout
// if the flag's value is "stdout"
func OpenOut(flag pflag.Flag) (*os.File, error) {
	outFile := flag.Value.String()

	if outFile == "stdout" {
		return os.Stdout, nil
	}

	f, err := os.Create(outFile)
	if err != nil {
		return f, parseInErr(err, flagString(flag))
	}

	return f, nil
}
