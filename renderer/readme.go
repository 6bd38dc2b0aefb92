package renderer

import (
	"fmt"
	"os"
	"regexp"
)

// The report is spliced into the README between these markers, so the rest
// of the file stays hand-written.
var autoSection = regexp.MustCompile(`(?s)(<!-- auto start -->).*?(<!-- auto end -->)`)

// UpdateReadme replaces the auto section of the file at path with content.
// The markers themselves are preserved. It fails if the file has no marker
// pair rather than guessing where the report belongs.
func UpdateReadme(path, content string) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	loc := autoSection.FindSubmatchIndex(original)
	if loc == nil {
		return fmt.Errorf("%s has no '<!-- auto start -->' ... '<!-- auto end -->' section", path)
	}

	// Splice by index: the report text may contain '$', which the regexp
	// replacement template would misread as a group reference.
	var updated []byte
	updated = append(updated, original[:loc[3]]...) // up to and including the start marker
	updated = append(updated, '\n')
	updated = append(updated, content...)
	updated = append(updated, '\n')
	updated = append(updated, original[loc[4]:]...) // from the end marker on
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
