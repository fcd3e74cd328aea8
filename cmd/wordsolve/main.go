// Copyright 2025 The WordSolve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordsolve anagram solver CLI and IPC server.

Note: This is a BETA release. APIs and functionality may rapidly change.

Given 3 to 10 letters, WordSolve finds every dictionary word that can be
spelled from any subset of them: it enumerates the distinct subsets, every
distinct ordering of each subset, and checks the candidates against a
sorted dictionary in parallel.

# Usage

Start the interactive prompt with the default dictionary:

	wordsolve

Solve once and exit:

	wordsolve solve tea listen

Print how many candidates a sequence produces without matching:

	wordsolve solve --estimate abcdefghij

Use a custom dictionary and enable debug mode:

	wordsolve --dict /path/to/words.txt -d

# Dictionaries

Plain text (one word per line), chunked binary (dict_0001.bin, ...) and
msgpack string arrays are accepted. Entries are lowercased; anything that
is not plain a-z is skipped. Convert between formats with:

	wordsolve convert words.txt words.msgpack

# Configuration

Runtime configuration is managed through a TOML file, created with
defaults in the user config directory if it doesn't exist:

	[solver]
	workers = 0            # 0 = one per CPU
	min_word_len = 2
	mode = "auto"          # auto, pool or stream
	stream_threshold = 2000000

	[dict]
	path = "dict.txt"
	min_word_len = 2

	[cli]
	min_len = 3
	max_len = 10
	columns = 10
	color = true

The --dict, --workers and --mode flags override the file.

# IPC Protocol

	wordsolve serve

reads msgpack requests from stdin and writes one response per request to
stdout:

	{"id": "req1", "q": "tea"}
	{"id": "req1", "w": ["at", "ate", "eat", "eta", "tae", "tea"], "c": 6, "n": 12, "t": 180}

See package server for the full message set.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordsolve/cmd/wordsolve/app"
	"github.com/charmbracelet/log"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	if err := app.New().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
