package chance

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/chance/pkg/randfmt"
	"github.com/hay-kot/chance/pkg/randgen"
	"github.com/hay-kot/chance/pkg/tmpl"
	"github.com/rs/zerolog"
)

// TemplateExt is stripped from rendered file names when writing to an
// output directory.
const TemplateExt = ".tmpl"

// RenderedFile is the result of rendering one template file.
type RenderedFile struct {
	Path   string // path relative to the base directory
	Output string
	Dest   string // written path, empty when not written
}

// Renderer renders template files matched by glob patterns.
type Renderer struct {
	log   zerolog.Logger
	rules randfmt.Rules
	src   randgen.Source
	data  any
}

// NewRenderer creates a new Renderer. data is passed to every template and
// src feeds the template helpers that do not go through rules.
func NewRenderer(log zerolog.Logger, rules randfmt.Rules, src randgen.Source, data any) *Renderer {
	return &Renderer{
		log:   log,
		rules: rules,
		src:   src,
		data:  data,
	}
}

// Render renders every file matching patterns under baseDir. When destDir is
// not empty each result is also written there, keeping its relative path and
// dropping a trailing TemplateExt.
func (r *Renderer) Render(ctx context.Context, baseDir, destDir string, patterns []string) ([]RenderedFile, error) {
	var out []RenderedFile
	seen := map[string]bool{}

	for _, pattern := range patterns {
		matches, err := r.globFiles(baseDir, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			r.log.Warn().
				Str("pattern", pattern).
				Str("dir", baseDir).
				Msg("glob pattern matched no files")
			continue
		}

		for _, match := range matches {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			if seen[match] {
				continue
			}
			seen[match] = true

			if isPathTraversal(match) {
				return nil, fmt.Errorf("path traversal detected: %q", match)
			}

			file, ok, err := r.renderFile(baseDir, destDir, match)
			if err != nil {
				return nil, fmt.Errorf("render %q: %w", match, err)
			}
			if ok {
				out = append(out, file)
			}
		}
	}

	return out, nil
}

func (r *Renderer) renderFile(baseDir, destDir, rel string) (RenderedFile, bool, error) {
	srcPath := filepath.Join(baseDir, rel)

	info, err := os.Stat(srcPath)
	if err != nil {
		return RenderedFile{}, false, fmt.Errorf("stat source: %w", err)
	}

	// doublestar can return directory entries
	if info.IsDir() {
		r.log.Debug().Str("path", srcPath).Msg("skipping directory")
		return RenderedFile{}, false, nil
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return RenderedFile{}, false, fmt.Errorf("read source: %w", err)
	}

	output, err := tmpl.RenderWith(string(content), r.data, r.rules, r.src)
	if err != nil {
		return RenderedFile{}, false, err
	}

	file := RenderedFile{Path: rel, Output: output}
	if destDir == "" {
		return file, true, nil
	}

	dst := filepath.Join(destDir, strings.TrimSuffix(rel, TemplateExt))
	if err := os.MkdirAll(filepath.Dir(dst), fs.ModePerm); err != nil {
		return RenderedFile{}, false, fmt.Errorf("create parent dirs: %w", err)
	}

	if _, err := os.Lstat(dst); err == nil {
		r.log.Warn().Str("path", dst).Msg("overwriting existing file")
	}

	if err := os.WriteFile(dst, []byte(output), info.Mode().Perm()); err != nil {
		return RenderedFile{}, false, fmt.Errorf("write output: %w", err)
	}

	r.log.Debug().
		Str("src", srcPath).
		Str("dst", dst).
		Msg("rendered file")

	file.Dest = dst
	return file, true, nil
}

// globFiles finds files matching a pattern in baseDir.
// Returns paths relative to baseDir.
func (r *Renderer) globFiles(baseDir, pattern string) ([]string, error) {
	fullPattern := filepath.Join(baseDir, pattern)

	if !hasGlobChars(pattern) {
		if _, err := os.Stat(fullPattern); err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}
		return []string{pattern}, nil
	}

	allMatches, err := doublestar.FilepathGlob(fullPattern)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, match := range allMatches {
		rel, err := filepath.Rel(baseDir, match)
		if err != nil {
			return nil, fmt.Errorf("relative path for %q: %w", match, err)
		}
		matches = append(matches, rel)
	}

	return matches, nil
}

// hasGlobChars returns true if pattern contains glob special characters.
func hasGlobChars(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// isPathTraversal returns true if the relative path attempts to escape its base directory.
func isPathTraversal(relPath string) bool {
	clean := filepath.Clean(relPath)
	if filepath.IsAbs(clean) {
		return true
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return true
	}
	return false
}
