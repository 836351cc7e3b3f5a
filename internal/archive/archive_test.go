package archive

import "testing"

func TestObjectKey(t *testing.T) {
	cases := []struct {
		slug  string
		label string
		want  string
	}{
		{"tos", "1.0.0", "tos/1.0.0.txt"},
		{"privacy-policy", "2.1.3", "privacy-policy/2.1.3.txt"},
	}
	for _, tc := range cases {
		if got := ObjectKey(tc.slug, tc.label); got != tc.want {
			t.Errorf("ObjectKey(%q, %q) = %q, want %q", tc.slug, tc.label, got, tc.want)
		}
	}
}
