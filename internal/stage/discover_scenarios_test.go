package stage

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscoverScenarios_HonoursGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.fixture.cue"), "{}")
	writeFile(t, filepath.Join(root, "notes.cue"), "{}")
	writeFile(t, filepath.Join(root, "sub", "b.fixture.cue"), "{}")
	writeFile(t, filepath.Join(root, "sub", "skip.fixture.cue"), "{}")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "skip.fixture.cue\n")
	writeFile(t, filepath.Join(root, "build", "c.fixture.cue"), "{}")
	writeFile(t, filepath.Join(root, ".gitignore"), "# generated\nbuild/\n")

	files, errs, err := findScenarioFiles(root, false, modeFailFast)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if diff := cmp.Diff([]string{"a.fixture.cue", "sub/b.fixture.cue"}, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}

	files, _, err = findScenarioFiles(root, true, modeFailFast)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{"a.fixture.cue", "build/c.fixture.cue", "sub/b.fixture.cue", "sub/skip.fixture.cue"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files mismatch without gitignore (-want +got):\n%s", diff)
	}
}

func TestDiscoverScenarios_Runner(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.fixture.cue"), "{}")
	in := Envelope{Meta: &Meta{Discovery: &DiscoveryMeta{Root: root}}}
	out, _ := runStage(t, discoverScenariosStage, in)
	want := []string{filepath.ToSlash(filepath.Join(root, "x.fixture.cue"))}
	if diff := cmp.Diff(want, out.Meta.ConfigFiles); diff != "" {
		t.Fatalf("config files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverScenarios_SingleConfigPath(t *testing.T) {
	in := Envelope{Meta: &Meta{ConfigPath: "one.cue"}}
	out, _ := runStage(t, discoverScenariosStage, in)
	if diff := cmp.Diff([]string{"one.cue"}, out.Meta.ConfigFiles); diff != "" {
		t.Fatalf("config files mismatch (-want +got):\n%s", diff)
	}
}
