package stage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitgitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	discoverScenariosStage = "discover-scenarios"
	// ScenarioFileSuffix marks files picked up by directory discovery.
	ScenarioFileSuffix = ".fixture.cue"
)

// hasScenarioSuffix reports whether a filename ends with .fixture.cue
func hasScenarioSuffix(name string) bool {
	return strings.HasSuffix(name, ScenarioFileSuffix)
}

// readGitignorePatterns reads the .gitignore of dir (relative to absRoot).
func readGitignorePatterns(absRoot, relDir string) []gitgitignore.Pattern {
	b, err := os.ReadFile(filepath.Join(absRoot, relDir, ".gitignore"))
	if err != nil {
		return nil
	}
	var base []string
	if relDir != "." && relDir != "" {
		base = strings.Split(filepath.ToSlash(relDir), "/")
	}
	var patterns []gitgitignore.Pattern
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitgitignore.ParsePattern(line, base))
	}
	return patterns
}

func pathComponents(rel string) []string {
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

// findScenarioFiles walks absRoot and returns sorted relative paths of
// *.fixture.cue files, honouring .gitignore files unless noGitignore is set.
// .gitignore patterns apply to the directory holding them and below.
func findScenarioFiles(absRoot string, noGitignore bool, mode string) ([]string, []Error, error) {
	var envErrs []Error
	var patterns []gitgitignore.Pattern
	var found []string

	err := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			rel = p
		}
		if err != nil {
			if mode == modeKeepGoing {
				envErrs = append(envErrs, Error{Stage: discoverScenariosStage, Locator: filepath.ToSlash(rel), Message: err.Error()})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return fmt.Errorf("%s: %s: %v", discoverScenariosStage, filepath.ToSlash(rel), err)
		}
		if !noGitignore && rel != "." && len(patterns) > 0 {
			if gitgitignore.NewMatcher(patterns).Match(pathComponents(rel), d.IsDir()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			if d.Name() == ".git" && rel != "." {
				return fs.SkipDir
			}
			if !noGitignore {
				patterns = append(patterns, readGitignorePatterns(absRoot, rel)...)
			}
			return nil
		}
		if d.Type().IsRegular() && hasScenarioSuffix(d.Name()) {
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(found)
	return found, envErrs, nil
}

// discoverRunner fills meta.ConfigFiles. With no discovery root the single
// configPath, if any, is used.
func discoverRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	if in.Meta == nil {
		return out, nil
	}
	if in.Meta.Discovery == nil || in.Meta.Discovery.Root == "" {
		if in.Meta.ConfigPath != "" && len(in.Meta.ConfigFiles) == 0 {
			out.Meta.ConfigFiles = []string{in.Meta.ConfigPath}
		}
		return out, nil
	}
	mode, _ := errorMode(in.Meta)
	root := in.Meta.Discovery.Root
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Envelope{}, err
	}
	files, envErrs, err := findScenarioFiles(absRoot, in.Meta.Discovery.NoGitignore, mode)
	if err != nil {
		return Envelope{}, err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, filepath.ToSlash(filepath.Join(root, filepath.FromSlash(f))))
	}
	deps.logger().Debug("discovered scenario files", "root", root, "count", len(paths))
	out.Meta.ConfigFiles = paths
	appendSanitizedErrors(&out, envErrs)
	return out, nil
}

func init() { Register(discoverScenariosStage, discoverRunner) }
