// Command dynok formats, validates and queries dynok JSON documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bdlm/log"
)

func init() {
	// log level and format
	levelFlag := os.Getenv("LOG_LEVEL")
	if levelFlag == "" {
		levelFlag = "info"
	}
	level, err := log.ParseLevel(levelFlag)
	if err != nil {
		log.WithField("err", err).Warnf("%-v", err)
		level, _ = log.ParseLevel("info")
	}
	log.SetFormatter(&log.TextFormatter{
		ForceTTY: true,
	})
	log.SetLevel(level)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		usage(stdout)
		return 2
	}
	cmd := &command{stdin: stdin, stdout: stdout}
	var err error
	switch args[0] {
	case "fmt":
		err = cmd.format(args[1:])
	case "validate":
		err = cmd.validate(args[1:])
	case "get":
		err = cmd.get(args[1:])
	case "demo":
		err = cmd.demo(args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		usage(stdout)
		return 2
	}
	switch {
	case err == nil:
		return 0
	case err == errUsage:
		return 2
	case err == errInvalid:
		return 1
	}
	log.Errorf("%-v", err)
	return 1
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `dynok CLI

Usage:
  dynok fmt [-compact] [file]      decode and re-encode a document canonically
  dynok validate [file...]         report the first error of each document
  dynok get -path a.b.c [file]     print the value at a property path
  dynok demo                       print a sample object

Every subcommand accepts -config FILE and the decode flags
(-driver, -numbers, -unknown, -duplicates, -max-depth, -max-bytes, -lang).
Input is read from stdin when no file is given.`)
}
