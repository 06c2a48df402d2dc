package keywords

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestProfileFor(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		role string
		want []string
	}{
		{
			name: "known role",
			role: "software engineer",
			want: []string{"JavaScript", "Python", "React", "Node.js", "API", "Git", "Agile"},
		},
		{
			name: "case and whitespace insensitive",
			role: "  Software Engineer ",
			want: []string{"JavaScript", "Python", "React", "Node.js", "API", "Git", "Agile"},
		},
		{
			name: "unknown role falls back to default",
			role: "astronaut",
			want: []string{"Leadership", "Problem Solving", "Communication", "Teamwork", "Project Management"},
		},
		{
			name: "empty role disables lookup",
			role: "",
			want: nil,
		},
		{
			name: "blank role disables lookup",
			role: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ProfileFor(tt.role)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProfileFor(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestProfileForReturnsCopy(t *testing.T) {
	r := NewRegistry()

	first := r.ProfileFor("software engineer")
	first[0] = "mutated"

	second := r.ProfileFor("software engineer")
	if second[0] != "JavaScript" {
		t.Errorf("registry profile was mutated through a returned slice: %v", second)
	}
}

func TestLoadFileOverlaysProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  Software Engineer: [Go, Kubernetes, gRPC]
  sre: [Terraform, Prometheus]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write profile file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if got := r.ProfileFor("software engineer"); !reflect.DeepEqual(got, []string{"Go", "Kubernetes", "gRPC"}) {
		t.Errorf("overlay did not shadow builtin profile: %v", got)
	}
	if got := r.ProfileFor("SRE"); !reflect.DeepEqual(got, []string{"Terraform", "Prometheus"}) {
		t.Errorf("new role not loaded: %v", got)
	}
	// Builtin roles absent from the file stay available.
	if got := r.ProfileFor("data scientist"); len(got) == 0 {
		t.Error("builtin role lost after overlay load")
	}
	// Unknown roles still fall back to the builtin default.
	if got := r.ProfileFor("astronaut"); !reflect.DeepEqual(got,
		[]string{"Leadership", "Problem Solving", "Communication", "Teamwork", "Project Management"}) {
		t.Errorf("unknown role fallback broken after overlay load: %v", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	r := NewRegistry()

	t.Run("missing file", func(t *testing.T) {
		if err := r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("profiles: [not: a: map"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := r.LoadFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})

	t.Run("empty keyword list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(path, []byte("profiles:\n  writer: []\n"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := r.LoadFile(path); err == nil {
			t.Error("expected error for empty keyword list")
		}
	})
}
