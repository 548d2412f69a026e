package domain

import "strings"

// MarkerSuffix is the file name suffix signaling Testing Farm / tmt usage.
// A bare ".fmf" entry counts as well, which the suffix test already covers.
const MarkerSuffix = ".fmf"

// HasTestingFarmMarker reports whether any tree entry names an fmf metadata
// file. The match is a case-sensitive exact suffix test: "plans.fmf" and
// ".fmf" are positive, "README.fmf.bak" is not.
func HasTestingFarmMarker(entries []TreeEntry) bool {
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name, MarkerSuffix) {
			return true
		}
	}
	return false
}
