// Package configfile rewrites single connection-address fields in config
// files in place, leaving every other byte untouched.
//
// The platform config is owned by the platform, not by cubelab, so the
// rewrite is deliberately textual: parse-and-serialize round trips through a
// YAML or Python loader would reorder keys and strip comments.
package configfile

import (
	"fmt"
	"os"
	"regexp"
)

// ReplaceField replaces the value of the first assignment of field in data
// and reports whether the field was found. Both `FIELD = "value"` (Python
// style) and `FIELD: value` (YAML style) assignments are recognized; the
// surrounding quoting, whitespace, and any trailing inline comment are
// preserved. Unquoted values cannot contain a literal '#'.
func ReplaceField(data []byte, field, value string) ([]byte, bool) {
	re := regexp.MustCompile(`(?m)^([ \t]*"?` + regexp.QuoteMeta(field) + `"?[ \t]*[:=][ \t]*["']?)([^"'#\r\n]*?)(["']?[ \t]*,?[ \t]*(?:#[^\r\n]*)?\r?)$`)

	loc := re.FindSubmatchIndex(data)
	if loc == nil {
		return data, false
	}

	// Splice the new value between the captured prefix and suffix.
	out := make([]byte, 0, len(data)+len(value))
	out = append(out, data[:loc[4]]...)
	out = append(out, value...)
	out = append(out, data[loc[5]:]...)
	return out, true
}

// RewriteFile replaces field's value in the file at path. It reports whether
// the field was found. When the replacement produces identical content the
// file is left untouched, so rewriting with an unchanged value is a no-op.
func RewriteFile(path, field, value string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is operator-provided
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, found := ReplaceField(data, field, value)
	if !found {
		return false, nil
	}

	if string(out) == string(data) {
		return true, nil
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
