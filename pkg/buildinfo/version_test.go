package buildinfo

import (
	"encoding/json"
	"strings"
	"testing"
)

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestDefaults(t *testing.T) {
	if Version != "dev" || Commit != "none" || Date != "unknown" {
		t.Errorf("defaults = %q %q %q", Version, Commit, Date)
	}
}

func TestString(t *testing.T) {
	setBuild(t, "v0.3.0", "abc123", "2026-01-02T03:04:05Z")
	want := "version: v0.3.0\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	setBuild(t, "v0.3.0", "abc123", "today")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version v0.3.0\n") || !strings.HasSuffix(got, "built: today\n") {
		t.Errorf("Template() = %q", got)
	}
}

func TestInfoJSON(t *testing.T) {
	setBuild(t, "v1.0.0", "deadbeef", "now")
	data, err := json.Marshal(Get())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"version":"v1.0.0","commit":"deadbeef","date":"now"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
