//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b": Build,
	"t": Test.Default,
	"r": Test.Rules,
	"l": Lint.Default,
	"g": Golden,
	"c": CI.Gate,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

const (
	binary = "bin/wabbc"

	// goldenDir holds the Markdown fixture and its expected conversions.
	goldenDir = "pkg/bbcode/testdata"
)

// Build compiles bin/wabbc when a source file is newer than the binary.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building wabbc...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/wabbc")
}

// Install installs wabbc to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing wabbc...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/wabbc")
}

// Clean removes the binary and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Golden converts the fixture with the built binary in each dialect and
// compares the result with the checked-in expectation.
func Golden() error {
	st.Deps(Build)

	fixture := filepath.Join(goldenDir, "campaign.md")
	for _, dialect := range []string{"generic", "extended"} {
		wantPath := filepath.Join(goldenDir, "campaign."+dialect+".bbcode")
		want, err := os.ReadFile(wantPath)
		if err != nil {
			return fmt.Errorf("read golden file: %w", err)
		}
		got, err := sh.Output(binary, "convert", "--stdout", "--dialect", dialect, fixture)
		if err != nil {
			return fmt.Errorf("convert %s: %w", dialect, err)
		}
		if strings.TrimSpace(got) != strings.TrimSpace(string(want)) {
			return fmt.Errorf("%s output differs from %s", dialect, wantPath)
		}
		fmt.Println("  ok", dialect)
	}
	return nil
}

// Default runs every test with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "./...", "-coverprofile=coverage.out")
}

// Rules runs only the rule set and pipeline tests.
func (Test) Rules() error {
	return gotestsum("testname", "./pkg/pipeline/...", "./pkg/bbcode/...")
}

// Bench runs the benchmarks without tests.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Check runs gofmt and golangci-lint without modifying files.
func (Lint) Check() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Gate runs lint, tests, and the golden check in order.
func (CI) Gate() {
	st.SerialDeps(Lint.Check, Test.Default, Golden)
}

// gotestsum runs go test through the gotestsum tool with the given format.
func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs}, args...)
	return sh.RunV("go", cmdArgs...)
}

// ldflags injects version, commit, and build date into main.
func ldflags() string {
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// git returns trimmed output of a git command, or "" when it fails.
func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
