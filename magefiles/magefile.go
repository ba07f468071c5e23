//go:build mage

// Package main contains Mage build targets for gazette developer tooling.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/gazette/internal/chunk"
	"github.com/pdiddy/gazette/internal/pdftext"
	"github.com/pdiddy/gazette/pkg/types"
)

// projectDirs lists the working directories the parser expects.
var projectDirs = []string{
	"data",
}

// Init creates the project directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const binDir = "bin"

// binaries maps output names to their main packages.
var binaries = []struct{ name, pkg string }{
	{"gazette", "./cmd/gazette"},
	{"gazette-results", "./cmd/gazette-results"},
}

// Build compiles both CLI binaries into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for _, b := range binaries {
		out := filepath.Join(binDir, b.name)
		if err := sh.RunV("go", "build", "-o", out, b.pkg); err != nil {
			return fmt.Errorf("go build %s: %w", b.pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Gazette parses the whole gazette chunk by chunk, one process per chunk.
// GAZETTE_PDF and GAZETTE_CHUNK_SIZE override the defaults.
func Gazette() error {
	mg.Deps(Init, Build)

	pdfPath := envOr("GAZETTE_PDF", types.DefaultPDFPath)
	size := types.DefaultChunkSize
	if v := os.Getenv("GAZETTE_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GAZETTE_CHUNK_SIZE %q: %w", v, err)
		}
		size = n
	}

	pages, err := pdftext.PageCount(pdfPath)
	if err != nil {
		return err
	}

	bin := filepath.Join(binDir, "gazette")
	for _, c := range chunk.Plan(pages, size) {
		args := []string{"--pdf", pdfPath,
			"--start", strconv.Itoa(c.Start), "--end", strconv.Itoa(c.End)}
		if c.Mode == types.ModeAppend {
			args = append(args, "--append")
		}
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("pages %d-%d: %w", c.Start, c.End, err)
		}
	}
	return sh.RunV(filepath.Join(binDir, "gazette-results"), "--dedupe", "--stats")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is outside the project's own sources.
func skipDir(name string) bool {
	return name == ".git" || name == "bin" || name == "vendor" || (len(name) > 1 && name[0] == '_')
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		isTest := strings.HasSuffix(path, "_test.go")
		if testOnly != isTest {
			return nil
		}
		n, err := countNonBlankLines(path)
		total += n
		return err
	})
	return total, err
}

func countNonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// countDocWords counts words in the Markdown files at the top of root.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}
