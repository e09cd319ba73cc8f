package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/tempograph/internal/config"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/session"
	"github.com/spf13/cobra"
)

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// resolveRoles layers role sources: flags, then preset, then config, then
// fields literally named source and target.
func resolveRoles(fields []string) (graph.Roles, error) {
	roles := graph.Roles{
		Source:   sourceField,
		Target:   targetField,
		Weight:   weightField,
		Interval: intervalField,
	}
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return roles, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		roles = roles.Merge(p)
	}
	roles = roles.Merge(cfg.Roles)
	return roles.Merge(graph.SuggestRoles(fields)), nil
}

func newSession() (*session.Session, error) {
	opts, err := cfg.ParseOptions()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return session.New(
		session.WithLogger(appLog),
		session.WithParseOptions(opts),
		session.WithPolicy(policy),
	), nil
}

// loadSession reads path, maps it and settles a deferred range from --min/--max
// or, failing that, from a prompt.
func loadSession(cmd *cobra.Command, path string) (*session.Session, error) {
	text, err := readInput(path)
	if err != nil {
		return nil, err
	}

	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Load(text); err != nil {
		return nil, err
	}

	roles, err := resolveRoles(sess.Fields())
	if err != nil {
		return nil, err
	}

	_, err = sess.Map(roles)
	if !errors.Is(err, graph.ErrIntervalDeferred) {
		return sess, err
	}

	min, max, err := bounds(cmd, path, err)
	if err != nil {
		return nil, err
	}
	if _, err := sess.ResolveRange(min, max); err != nil {
		return nil, err
	}
	return sess, nil
}

func bounds(cmd *cobra.Command, path string, deferred error) (int, int, error) {
	flags := cmd.Flags()
	if flags.Changed("min") && flags.Changed("max") {
		return minBound, maxBound, nil
	}
	if path == "-" {
		return 0, 0, fmt.Errorf("%w (pass --min and --max when reading stdin)", deferred)
	}

	fmt.Fprintln(os.Stderr, deferred)
	in := bufio.NewScanner(os.Stdin)
	min, err := promptInt(in, "min")
	if err != nil {
		return 0, 0, err
	}
	max, err := promptInt(in, "max")
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func promptInt(in *bufio.Scanner, label string) (int, error) {
	for {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("no value for %s", label)
		}
		v, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(os.Stderr, "not an integer: %q\n", in.Text())
	}
}
