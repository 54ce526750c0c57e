// Copyright (c) The Statemover Authors
// SPDX-License-Identifier: MPL-2.0

package terminal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// Streams represents a collection of three streams that each may or may not
// be connected to a terminal.
//
// If a stream is connected to a terminal then there are more possibilities
// available, such as colored output. If we're connected to something else,
// such as a pipe or a file on disk, the stream will typically provide
// placeholder values or do-nothing stubs for terminal-requiring operations.
//
// Note that it's possible for only a subset of the streams to be connected
// to a terminal. For example, this happens if the user runs statemover with
// I/O redirection where Stdout might refer to a regular disk file while
// Stderr refers to a terminal, or various other similar combinations.
type Streams struct {
	Stdout *OutputStream
	Stderr *OutputStream
	Stdin  *InputStream
}

// OutputStream represents either stdout or stderr.
type OutputStream struct {
	File *os.File

	isTerminal bool
}

// IsTerminal returns true if the stream is connected to a terminal.
func (s *OutputStream) IsTerminal() bool {
	return s.isTerminal
}

// InputStream represents stdin.
type InputStream struct {
	File *os.File

	isTerminal bool
}

// IsTerminal returns true if the stream is connected to a terminal.
func (s *InputStream) IsTerminal() bool {
	return s.isTerminal
}

// Init tries to initialize a terminal, if statemover is running in one,
// and returns an object describing what it was able to set up.
//
// Note that the success of this function doesn't mean that we're actually
// running in a terminal. It could also represent successfully detecting that
// one or more of the input/output streams is not a terminal.
func Init() (*Streams, error) {
	stderr := &OutputStream{
		File:       os.Stderr,
		isTerminal: fileIsTerminal(os.Stderr),
	}
	stdout := &OutputStream{
		File:       os.Stdout,
		isTerminal: fileIsTerminal(os.Stdout),
	}
	stdin := &InputStream{
		File:       os.Stdin,
		isTerminal: fileIsTerminal(os.Stdin),
	}

	return &Streams{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  stdin,
	}, nil
}

func fileIsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print is a helper for conveniently calling fmt.Fprint on the Stdout stream.
func (s *Streams) Print(a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.Stdout.File, a...)
}

// Printf is a helper for conveniently calling fmt.Fprintf on the Stdout stream.
func (s *Streams) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(s.Stdout.File, format, a...)
}

// Println is a helper for conveniently calling fmt.Fprintln on the Stdout stream.
func (s *Streams) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.Stdout.File, a...)
}

// Eprint is a helper for conveniently calling fmt.Fprint on the Stderr stream.
func (s *Streams) Eprint(a ...interface{}) (n int, err error) {
	return fmt.Fprint(s.Stderr.File, a...)
}

// Eprintf is a helper for conveniently calling fmt.Fprintf on the Stderr stream.
func (s *Streams) Eprintf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(s.Stderr.File, format, a...)
}

// Eprintln is a helper for conveniently calling fmt.Fprintln on the Stderr stream.
func (s *Streams) Eprintln(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.Stderr.File, a...)
}
