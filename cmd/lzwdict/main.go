// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzwdict compresses and decompresses octet streams under one
// of the bounded-dictionary LZW policies implemented by the lzw
// package. The policy is given as the first positional argument.
// Compression uses it; decompression ignores it and takes the policy
// from the artifact header.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dsnet/lzwdict/lzw"
)

var policies = map[string]lzw.Policy{
	"freeze":             lzw.PolicyFreeze,
	"reset":              lzw.PolicyReset,
	"lfu":                lzw.PolicyLFU,
	"lru-basic":          lzw.PolicyLRUBasic,
	"lru-signalled-opt1": lzw.PolicyLRUSignalledOpt1,
	"lru-signalled-opt2": lzw.PolicyLRUSignalledOpt2,
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
	lzwdict <policy> compress   --alphabet {ascii|extendedascii|ab} [--min-bits N] [--max-bits N] [--lfu-continuous] <input> <output>
	lzwdict <policy> decompress [--lfu-continuous] <input> <output>

policy is one of: freeze, reset, lfu, lru-basic, lru-signalled-opt1, lru-signalled-opt2
`)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		usage()
		return fmt.Errorf("lzwdict: missing policy or subcommand")
	}
	policy, ok := policies[args[0]]
	if !ok {
		usage()
		return fmt.Errorf("lzwdict: unrecognized policy %q", args[0])
	}
	mode := args[1]
	rest := args[2:]

	switch mode {
	case "compress":
		return runCompress(policy, rest)
	case "decompress":
		return runDecompress(rest)
	default:
		usage()
		return fmt.Errorf("lzwdict: unrecognized subcommand %q", mode)
	}
}

func runCompress(policy lzw.Policy, args []string) error {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	alphabetName := fs.String("alphabet", "", "alphabet: ascii, extendedascii, or ab (required)")
	minBits := fs.Uint("min-bits", 9, "minimum code width")
	maxBits := fs.Uint("max-bits", 16, "maximum code width")
	lfuContinuous := fs.Bool("lfu-continuous", false, "evict continuously under lfu instead of reproducing the single-eviction behavior")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *alphabetName == "" {
		return fmt.Errorf("lzwdict: --alphabet is required")
	}
	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("lzwdict: compress requires an input and output path")
	}
	alphabet, err := lzw.AlphabetByName(*alphabetName)
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}

	opts := lzw.Options{
		Policy:                policy,
		Alphabet:              alphabet,
		MinBits:               uint8(*minBits),
		MaxBits:               uint8(*maxBits),
		LFUContinuousEviction: *lfuContinuous,
	}
	if _, err := lzw.Compress(out, in, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runDecompress(args []string) error {
	fs := flag.NewFlagSet("decompress", flag.ContinueOnError)
	lfuContinuous := fs.Bool("lfu-continuous", false, "must match the --lfu-continuous the artifact was compressed with")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		return fmt.Errorf("lzwdict: decompress requires an input and output path")
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	if _, err := lzw.Decompress(out, in, *lfuContinuous); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
