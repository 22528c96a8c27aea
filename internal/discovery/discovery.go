package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"motionkb/internal/scene"
)

type Severity string

const (
	SeverityWarn Severity = "warning"
	SeverityInfo Severity = "info"
)

const (
	codeNoLayout     = "no_layout"
	codeNoBeats      = "no_beats"
	codeSuggestion   = "style_suggestion"
	codeDuplicateID  = "duplicate_scene_id"
	codeMissingPath  = "missing_path"
	codeAnalyzeError = "unreadable_scene"
)

var sceneExtensions = map[string]bool{".ts": true, ".tsx": true, ".js": true, ".jsx": true}

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Scene    string
	FilePath string
}

type Usage struct {
	Name  string
	Count int
}

type Report struct {
	ScenesFound int
	Issues      []Issue
	Layouts     map[string]int
	Beats       map[string]int
	Errors      []error
}

// Registrar receives analysed scenes. *scene.Index satisfies it.
type Registrar interface {
	Register(features scene.Features)
}

type Options struct {
	Paths   []string
	Exclude []string
}

// Run analyses every scene source under opts.Paths and registers the result.
// Scene ids are the file path relative to its root, without extension.
func Run(ctx context.Context, analyzer *scene.Analyzer, index Registrar, opts Options) (*Report, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if index == nil {
		return nil, fmt.Errorf("scene index is required")
	}

	report := &Report{
		Issues:  make([]Issue, 0),
		Layouts: make(map[string]int),
		Beats:   make(map[string]int),
	}
	seen := make(map[string]string)

	for _, root := range opts.Paths {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarn,
				Code:     codeMissingPath,
				Message:  "scene path does not exist",
				FilePath: root,
			})
			continue
		}

		files, err := walkSceneFiles(root, opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("walking scenes in %s: %w", root, err)
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			source, err := os.ReadFile(path)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Errorf("reading %s: %w", path, err))
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityWarn,
					Code:     codeAnalyzeError,
					Message:  err.Error(),
					FilePath: path,
				})
				continue
			}

			id := sceneID(root, path)
			if previous, ok := seen[id]; ok {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityWarn,
					Code:     codeDuplicateID,
					Message:  fmt.Sprintf("scene id also defined by %s; this file replaces it", previous),
					Scene:    id,
					FilePath: path,
				})
			}
			seen[id] = path

			analysis := analyzer.Analyze(id, string(source))
			index.Register(analysis.Features)
			report.ScenesFound++
			report.Issues = append(report.Issues, issuesFromAnalysis(analysis, path)...)

			if analysis.Features.Layout != "" {
				report.Layouts[analysis.Features.Layout]++
			}
			for _, beat := range analysis.Features.Beats {
				report.Beats[beat]++
			}
		}
	}

	return report, nil
}

func issuesFromAnalysis(analysis scene.Analysis, path string) []Issue {
	var issues []Issue
	for _, warning := range analysis.Warnings {
		code := codeNoLayout
		if warning == scene.WarnNoBeats {
			code = codeNoBeats
		}
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     code,
			Message:  warning,
			Scene:    analysis.Features.ID,
			FilePath: path,
		})
	}
	for _, suggestion := range analysis.Suggestions {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Code:     codeSuggestion,
			Message:  suggestion,
			Scene:    analysis.Features.ID,
			FilePath: path,
		})
	}
	return issues
}

// Warnings counts issues at warning severity.
func (r *Report) Warnings() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarn {
			count++
		}
	}
	return count
}

// LayoutUsage returns layout counts, most used first.
func (r *Report) LayoutUsage() []Usage {
	return sortedUsage(r.Layouts)
}

// BeatUsage returns beat counts, most used first.
func (r *Report) BeatUsage() []Usage {
	return sortedUsage(r.Beats)
}

func sortedUsage(counts map[string]int) []Usage {
	out := make([]Usage, 0, len(counts))
	for name, count := range counts {
		out = append(out, Usage{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sceneID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

func walkSceneFiles(root string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			if isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		if !sceneExtensions[filepath.Ext(name)] || strings.HasSuffix(name, ".d.ts") {
			return nil
		}
		if isExcluded(path, excluded) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// isExcluded matches a path prefix, or a glob against the base name.
func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	base := filepath.Base(clean)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
		if ok, _ := filepath.Match(exclude, base); ok {
			return true
		}
	}
	return false
}
