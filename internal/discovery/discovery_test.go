package discovery

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"motionkb/internal/scene"
)

type recordingIndex struct {
	registered []scene.Features
}

func (r *recordingIndex) Register(features scene.Features) {
	r.registered = append(r.registered, features)
}

func (r *recordingIndex) ids() []string {
	out := make([]string, 0, len(r.registered))
	for _, f := range r.registered {
		out = append(out, f.ID)
	}
	return out
}

const introScene = `import {makeScene2D} from '@motion-canvas/2d';

export default makeScene2D(function* (view) {
  const slots = useLayout('2L-2R');
  yield* appear(cards[0]);
  yield* highlight(cards[1]);
});
`

const staticScene = `export default makeScene2D(function* (view) {
  view.add(
    <Card title="one" />
  );
});
`

func writeScene(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing scene: %v", err)
	}
}

func testAnalyzer(t *testing.T) *scene.Analyzer {
	t.Helper()
	analyzer, err := scene.NewAnalyzer(scene.DefaultRules())
	if err != nil {
		t.Fatalf("building analyzer: %v", err)
	}
	return analyzer
}

func testTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeScene(t, root, "intro.tsx", introScene)
	writeScene(t, root, "chapters/outro.tsx", staticScene)
	writeScene(t, root, "intro.test.tsx", introScene)
	writeScene(t, root, "types.d.ts", "export type Slot = {x: number};\n")
	writeScene(t, root, "node_modules/pkg/index.js", introScene)
	writeScene(t, root, ".cache/old.tsx", introScene)
	writeScene(t, root, "README.md", "# scenes\n")
	return root
}

func TestRun_RegistersScenes(t *testing.T) {
	root := testTree(t)
	index := &recordingIndex{}

	report, err := Run(context.Background(), testAnalyzer(t), index, Options{
		Paths:   []string{root},
		Exclude: []string{"*.test.tsx"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got, want := index.ids(), []string{"chapters/outro", "intro"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	if report.ScenesFound != 2 {
		t.Fatalf("expected 2 scenes, got %d", report.ScenesFound)
	}
	if report.Layouts["2L-2R"] != 1 {
		t.Fatalf("expected layout usage, got %v", report.Layouts)
	}
	if report.Beats["appear"] != 1 || report.Beats["highlight"] != 1 {
		t.Fatalf("expected beat usage, got %v", report.Beats)
	}
}

func TestRun_IssuesFromAnalysis(t *testing.T) {
	root := testTree(t)

	report, err := Run(context.Background(), testAnalyzer(t), &recordingIndex{}, Options{
		Paths:   []string{root},
		Exclude: []string{"*.test.tsx"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	codes := map[string]int{}
	for _, issue := range report.Issues {
		if issue.Scene == "chapters/outro" {
			codes[issue.Code]++
			if issue.Severity != SeverityWarn {
				t.Fatalf("expected warning severity, got %q", issue.Severity)
			}
		}
	}
	if codes[codeNoLayout] != 1 || codes[codeNoBeats] != 1 {
		t.Fatalf("expected layout and beat warnings for outro, got %v", codes)
	}
	if report.Warnings() < 2 {
		t.Fatalf("expected at least 2 warnings, got %d", report.Warnings())
	}
}

func TestRun_ExcludeDirectory(t *testing.T) {
	root := testTree(t)
	index := &recordingIndex{}

	_, err := Run(context.Background(), testAnalyzer(t), index, Options{
		Paths:   []string{root},
		Exclude: []string{filepath.Join(root, "chapters"), "*.test.tsx"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := index.ids(); !reflect.DeepEqual(got, []string{"intro"}) {
		t.Fatalf("expected only intro, got %v", got)
	}
}

func TestRun_DuplicateIDs(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScene(t, first, "intro.tsx", introScene)
	writeScene(t, second, "intro.ts", staticScene)
	index := &recordingIndex{}

	report, err := Run(context.Background(), testAnalyzer(t), index, Options{Paths: []string{first, second}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(index.registered) != 2 {
		t.Fatalf("expected both registrations, got %d", len(index.registered))
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Code == codeDuplicateID && issue.Scene == "intro" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate id issue, got %+v", report.Issues)
	}
}

func TestRun_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	report, err := Run(context.Background(), testAnalyzer(t), &recordingIndex{}, Options{Paths: []string{missing}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.ScenesFound != 0 {
		t.Fatalf("expected no scenes, got %d", report.ScenesFound)
	}
	if len(report.Issues) != 1 || report.Issues[0].Code != codeMissingPath {
		t.Fatalf("expected missing path issue, got %+v", report.Issues)
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := testTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, testAnalyzer(t), &recordingIndex{}, Options{Paths: []string{root}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRun_RequiresCollaborators(t *testing.T) {
	if _, err := Run(context.Background(), nil, &recordingIndex{}, Options{}); err == nil {
		t.Fatalf("expected error for nil analyzer")
	}
	if _, err := Run(context.Background(), testAnalyzer(t), nil, Options{}); err == nil {
		t.Fatalf("expected error for nil index")
	}
}

func TestReport_Usage(t *testing.T) {
	report := &Report{
		Layouts: map[string]int{"center": 1, "2L-2R": 3, "1L-1R": 1},
	}
	want := []Usage{{"2L-2R", 3}, {"1L-1R", 1}, {"center", 1}}
	if got := report.LayoutUsage(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := report.BeatUsage(); len(got) != 0 {
		t.Fatalf("expected empty beat usage, got %v", got)
	}
}

func TestSceneID(t *testing.T) {
	root := filepath.Join("src", "scenes")
	if got := sceneID(root, filepath.Join(root, "a", "b.tsx")); got != "a/b" {
		t.Fatalf("unexpected id %q", got)
	}
}
