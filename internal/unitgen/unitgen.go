// Package unitgen turns the game package into a loadable unit.
//
// A plugin may only differ from the plugins loaded before it in its main
// package, and the runtime refuses two plugins with the same pluginpath.
// Generate therefore copies the game sources into a main package, and
// Build compiles that package from its file list: the go command then
// derives the pluginpath from the file contents, so every changed build
// gets its own.
package unitgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Prefix names the generated files in the destination directory.
const Prefix = "game_"

// skipped lists sources that must stay out of the unit. register.go adds
// the builtin copy to the registry, which a reloaded unit must not do.
var skipped = map[string]bool{
	"register.go": true,
}

var packageClause = regexp.MustCompile(`(?m)^package \w+$`)

// Generate replaces the generated files in dstDir with copies of the Go
// sources in srcDir rewritten to package main, and returns their names.
func Generate(srcDir, dstDir string) ([]string, error) {
	old, err := filepath.Glob(filepath.Join(dstDir, Prefix+"*.go"))
	if err != nil {
		return nil, err
	}
	for _, f := range old {
		if err := os.Remove(f); err != nil {
			return nil, fmt.Errorf("unitgen: %w", err)
		}
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("unitgen: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || skipped[name] {
			continue
		}
		src, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			return nil, fmt.Errorf("unitgen: %w", err)
		}
		loc := packageClause.FindIndex(src)
		if loc == nil {
			return nil, fmt.Errorf("unitgen: %s has no package clause", name)
		}

		var out bytes.Buffer
		fmt.Fprintf(&out, "// Code generated by unitgen from %s. DO NOT EDIT.\n\n", name)
		out.Write(src[:loc[0]])
		out.WriteString("package main")
		out.Write(src[loc[1]:])

		dst := Prefix + name
		if err := os.WriteFile(filepath.Join(dstDir, dst), out.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("unitgen: %w", err)
		}
		names = append(names, dst)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("unitgen: no sources in %s", srcDir)
	}
	return names, nil
}

// Build compiles the main package in dir into the plugin out. Extra go
// build flags, such as -race, go before the file list.
func Build(ctx context.Context, dir, out string, flags ...string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return err
	}
	var srcs []string
	for _, f := range files {
		if !strings.HasSuffix(f, "_test.go") {
			srcs = append(srcs, filepath.Base(f))
		}
	}
	if len(srcs) == 0 {
		return fmt.Errorf("unitgen: no sources in %s", dir)
	}
	sort.Strings(srcs)

	out, err = filepath.Abs(out)
	if err != nil {
		return err
	}
	args := append([]string{"build", "-buildmode=plugin", "-o", out}, flags...)
	args = append(args, srcs...)

	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = dir
	if msg, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("unitgen: go build: %w\n%s", err, msg)
	}
	return nil
}
