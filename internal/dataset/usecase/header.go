package usecase

import (
	"fmt"
	"strings"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

// resolveHeader applies the duplicate policy to the raw header tokens. It
// returns the final column names together with the source index each kept
// column reads from. Duplicate detection compares raw tokens before any
// whitespace trimming; names are trimmed only after suffixes are assigned.
func resolveHeader(raw []string, policy entity.Policy) ([]string, []int, error) {
	if len(raw) == 0 {
		return nil, nil, entity.NewEmptyHeader()
	}

	dups := duplicateNames(raw)

	switch policy {
	case entity.PolicyCheck:
		if len(dups) > 0 {
			return nil, nil, entity.NewDuplicateColumns(dups)
		}
	case entity.PolicyRename, entity.PolicyKeepFirst:
	default:
		return nil, nil, fmt.Errorf("unknown duplicate policy %q", policy)
	}

	mangled, suffixed := renameDuplicates(raw)

	names := make([]string, 0, len(raw))
	keep := make([]int, 0, len(raw))
	for i, name := range mangled {
		if policy == entity.PolicyKeepFirst && suffixed[i] {
			continue
		}
		names = append(names, strings.TrimSpace(name))
		keep = append(keep, i)
	}

	return names, keep, nil
}

func duplicateNames(raw []string) []string {
	counts := make(map[string]int, len(raw))
	for _, name := range raw {
		counts[name]++
	}

	var dups []string
	reported := make(map[string]struct{})
	for _, name := range raw {
		if counts[name] < 2 {
			continue
		}
		if _, ok := reported[name]; ok {
			continue
		}
		reported[name] = struct{}{}
		dups = append(dups, name)
	}

	return dups
}

// renameDuplicates disambiguates repeated names by appending a positional
// suffix to every occurrence after the first, e.g. the second "a" becomes
// "a.1". Real header names are reserved up front so a generated suffix never
// collides with a column that genuinely ends in a dot-number pattern.
func renameDuplicates(raw []string) ([]string, []bool) {
	taken := make(map[string]struct{}, len(raw))
	for _, name := range raw {
		taken[name] = struct{}{}
	}

	names := make([]string, len(raw))
	suffixed := make([]bool, len(raw))
	counts := make(map[string]int, len(raw))

	for i, name := range raw {
		occurrence := counts[name]
		counts[name] = occurrence + 1

		if occurrence == 0 {
			names[i] = name
			continue
		}

		candidate := fmt.Sprintf("%s.%d", name, occurrence)
		for next := occurrence; ; next++ {
			if _, exists := taken[candidate]; !exists {
				break
			}
			candidate = fmt.Sprintf("%s.%d", name, next+1)
		}

		taken[candidate] = struct{}{}
		names[i] = candidate
		suffixed[i] = true
	}

	return names, suffixed
}
