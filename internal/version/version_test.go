package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		wantOK    bool
		wantMajor uint64
		wantMinor uint64
		wantPatch uint64
	}{
		{"full version with v", "v1.2.3", true, 1, 2, 3},
		{"full version without v", "1.2.3", true, 1, 2, 3},
		{"major only", "v4", true, 4, 0, 0},
		{"major.minor", "v4.2", true, 4, 2, 0},
		{"zero version", "v0.0.1", true, 0, 0, 1},
		{"prerelease", "v1.2.3-rc.1", true, 1, 2, 3},
		{"build metadata", "v1.2.3+build.7", true, 1, 2, 3},
		{"latest", "latest", false, 0, 0, 0},
		{"wildcard", "v1.x", false, 0, 0, 0},
		{"branch name", "main", false, 0, 0, 0},
		{"commit hash", "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", false, 0, 0, 0},
		{"empty string", "", false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Parse(tt.tag)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.tag, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if v.Major() != tt.wantMajor || v.Minor() != tt.wantMinor || v.Patch() != tt.wantPatch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d",
					tt.tag, v.Major(), v.Minor(), v.Patch(),
					tt.wantMajor, tt.wantMinor, tt.wantPatch)
			}
		})
	}
}

func TestParse_LeadingVInsensitive(t *testing.T) {
	withPrefix, ok := Parse("v1.2.3")
	if !ok {
		t.Fatal("Parse(v1.2.3) ok = false, want true")
	}
	withoutPrefix, ok := Parse("1.2.3")
	if !ok {
		t.Fatal("Parse(1.2.3) ok = false, want true")
	}

	if !withPrefix.Equal(withoutPrefix) {
		t.Errorf("Parse(v1.2.3) = %s, Parse(1.2.3) = %s, want equal", withPrefix, withoutPrefix)
	}
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		lower  string
		higher string
	}{
		{"patch", "v4.2.0", "v4.2.1"},
		{"minor", "v4.1.9", "v4.2.0"},
		{"major alias below full", "v4", "v4.0.1"},
		{"prerelease below release", "v1.2.3-rc.1", "v1.2.3"},
		{"prerelease ordering", "v1.2.3-alpha", "v1.2.3-beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, ok := Parse(tt.lower)
			if !ok {
				t.Fatalf("Parse(%q) ok = false, want true", tt.lower)
			}
			higher, ok := Parse(tt.higher)
			if !ok {
				t.Fatalf("Parse(%q) ok = false, want true", tt.higher)
			}

			if !higher.GreaterThan(lower) {
				t.Errorf("%s should have higher precedence than %s", tt.higher, tt.lower)
			}
		})
	}
}
