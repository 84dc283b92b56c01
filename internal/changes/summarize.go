// Package changes turns before/after snapshots of a guild entity into a
// deduplicated, human-readable list of field-level change descriptions.
package changes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/r3labs/diff/v3"
)

// Bullet prefixes each rendered change line.
const Bullet = "•"

// Role is the minimal role snapshot needed for add/remove lines.
type Role struct {
	ID   string
	Name string
}

// Policy controls how changed fields of one entity type are reported.
// One policy value exists per entity type; the summarizer itself never
// branches on concrete types.
type Policy struct {
	// Suppressed keys produce no description at all.
	Suppressed []string

	// Unsupported keys are reported as "<Key>: updated" without values,
	// for fields whose raw representation is not human-renderable.
	Unsupported []string

	// StripPrefix lists wrapper segments peeled off the front of a diff
	// path before the field key is taken, e.g. the embedded User struct
	// on a member snapshot.
	StripPrefix []string

	// RoleKey names the field holding the entity's role list. Changes
	// under it are reported as per-role add/remove lines computed from
	// the set difference of RolesOf(before) and RolesOf(after).
	RoleKey string
	RolesOf func(entity interface{}) []Role
}

// Summarize diffs two snapshots of the same entity type and returns the
// change descriptions, deduplicated by field key and sorted. An empty
// result means the caller must not send a notice.
func Summarize(before, after interface{}, policy Policy) ([]string, error) {
	changelog, err := diff.Diff(before, after)
	if err != nil {
		return nil, fmt.Errorf("diff snapshots: %w", err)
	}

	entries := make([]string, 0, len(changelog))
	done := make(map[string]bool, len(changelog))

	for _, change := range changelog {
		key := fieldKey(change.Path, policy.StripPrefix)
		if key == "" || done[key] {
			continue
		}
		done[key] = true

		switch {
		case containsKey(policy.Suppressed, key):
			// Dropped entirely.
		case policy.RoleKey != "" && key == policy.RoleKey && policy.RolesOf != nil:
			entries = append(entries, roleDiff(policy.RolesOf(before), policy.RolesOf(after))...)
		case containsKey(policy.Unsupported, key):
			entries = append(entries, title(key)+": updated")
		default:
			entries = append(entries, fmt.Sprintf("%s: `%v` -> `%v`", title(key), change.From, change.To))
		}
	}

	sort.Strings(entries)
	return entries, nil
}

// Render joins change descriptions into the notice body, one bulleted
// line per entry.
func Render(entries []string) string {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(Bullet)
		b.WriteByte(' ')
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return b.String()
}

// fieldKey collapses a changed-field path to its top-level field key.
// Empty paths are a known benign artifact of diff engines and map to "".
func fieldKey(path []string, strip []string) string {
	for len(path) > 0 && containsKey(strip, path[0]) {
		path = path[1:]
	}
	if len(path) == 0 {
		return ""
	}

	key := path[0]
	// Some engines encode nesting or indices inside a single segment.
	if i := strings.IndexAny(key, "[."); i >= 0 {
		key = key[:i]
	}
	return key
}

func roleDiff(before, after []Role) []string {
	beforeIDs := make(map[string]bool, len(before))
	for _, r := range before {
		beforeIDs[r.ID] = true
	}
	afterIDs := make(map[string]bool, len(after))
	for _, r := range after {
		afterIDs[r.ID] = true
	}

	var out []string
	for _, r := range before {
		if !afterIDs[r.ID] {
			out = append(out, fmt.Sprintf("Role removed: %s (`%s`)", r.Name, r.ID))
		}
	}
	for _, r := range after {
		if !beforeIDs[r.ID] {
			out = append(out, fmt.Sprintf("Role added: %s (`%s`)", r.Name, r.ID))
		}
	}
	return out
}

func title(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
