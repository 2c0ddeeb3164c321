// Package check parses every note under a directory and reports which ones
// fail, which parse only in part and which carry lexer diagnostics.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gerunddev/orgparse/internal/config"
	"github.com/gerunddev/orgparse/internal/logger"
	"github.com/gerunddev/orgparse/internal/parser"
	"github.com/gerunddev/orgparse/internal/token"
)

// ErrTooLarge marks a file skipped for exceeding the configured size bound.
var ErrTooLarge = errors.New("file too large")

// Checker parses notes on a bounded pool of workers
type Checker struct {
	config *config.Config
	log    *logger.Logger

	// Progress, when set, is called after each file with the number of
	// files finished so far and the total.
	Progress func(done, total int)
}

// NewChecker creates a new checker instance
func NewChecker(cfg *config.Config, log *logger.Logger) *Checker {
	if log == nil {
		log = logger.Discard()
	}
	return &Checker{
		config: cfg,
		log:    log,
	}
}

// FileResult is the outcome of parsing a single file
type FileResult struct {
	Path        string
	Size        int64
	Sections    int
	Diagnostics []token.Diagnostic
	Partial     bool
	Err         error
	Duration    time.Duration
}

// OK reports whether the file parsed completely without diagnostics.
func (f FileResult) OK() bool {
	return f.Err == nil && !f.Partial && len(f.Diagnostics) == 0
}

// Result represents the result of a check run
type Result struct {
	Files     []FileResult
	StartTime time.Time
	EndTime   time.Time
}

// Failed returns the files that did not parse completely or were skipped.
func (r *Result) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// WithDiagnostics returns the files that parsed but carry lexer diagnostics.
func (r *Result) WithDiagnostics() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err == nil && len(f.Diagnostics) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Bytes is the total size of every file checked.
func (r *Result) Bytes() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Size
	}
	return n
}

// Run checks every note under dir. Files are reported in scan order.
func (c *Checker) Run(ctx context.Context, dir string) (*Result, error) {
	result := &Result{
		StartTime: time.Now(),
	}

	files, err := ScanDirectory(dir, c.config.Extensions, c.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	c.log.CheckStarted(dir, c.config.Workers)
	result.Files = c.CheckFiles(ctx, files)
	result.EndTime = time.Now()
	c.log.CheckCompleted(len(result.Files), len(result.Failed()), result.EndTime.Sub(result.StartTime))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// CheckFiles parses files with at most config.Workers in flight. The
// returned slice lines up with files.
func (c *Checker) CheckFiles(ctx context.Context, files []string) []FileResult {
	results := make([]FileResult, len(files))
	jobs := make(chan int)

	workers := c.config.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.CheckFile(ctx, files[i])

				if c.Progress != nil {
					mu.Lock()
					done++
					c.Progress(done, len(files))
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(files); j++ {
				results[j] = FileResult{Path: files[j], Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// CheckFile reads and parses one file under the per-file timeout.
func (c *Checker) CheckFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = err
		c.log.FileError(path, err)
		return res
	}
	res.Size = info.Size()

	if c.config.MaxFileSize > 0 && res.Size > c.config.MaxFileSize {
		res.Err = fmt.Errorf("%w: %s exceeds %s", ErrTooLarge,
			humanize.IBytes(uint64(res.Size)), humanize.IBytes(uint64(c.config.MaxFileSize)))
		c.log.Skipped(path, res.Err.Error())
		return res
	}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		c.log.FileError(path, err)
		return res
	}

	timeout := c.config.ParseTimeout
	if timeout <= 0 {
		timeout = config.DefaultConfig().ParseTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	doc, err := parser.Parse(pctx, string(data))
	res.Duration = time.Since(start)

	if doc != nil {
		res.Sections = len(doc.Outline())
		res.Diagnostics = doc.Diagnostics
		res.Partial = doc.Partial
	}
	for _, d := range res.Diagnostics {
		c.log.ParseDiagnostic(path, d.Line, d.Offset, d.Message)
	}

	switch {
	case errors.Is(err, parser.ErrPartialDocument):
		res.Err = err
		c.log.PartialParse(path, err)
	case err != nil:
		res.Err = err
		c.log.FileError(path, err)
	default:
		c.log.FileParsed(path, res.Sections, res.Duration)
	}

	return res
}

// ScanDirectory scans a directory for files with one of the given
// extensions, skipping hidden directories and files whose base name
// matches an exclude pattern.
func ScanDirectory(dir string, exts []string, excludes []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := info.Name()
		if info.IsDir() {
			if path != dir && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasExtension(name, exts) || excluded(name, excludes) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// Wants reports whether path is a note the checker would pick up in a scan.
func (c *Checker) Wants(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") &&
		hasExtension(name, c.config.Extensions) &&
		!excluded(name, c.config.ExcludePatterns)
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the check result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Check complete: %s files (%s), %d failed, %d with diagnostics (took %v)",
		humanize.Comma(int64(len(r.Files))),
		humanize.IBytes(uint64(r.Bytes())),
		len(r.Failed()),
		len(r.WithDiagnostics()),
		duration.Round(time.Millisecond),
	)
}
