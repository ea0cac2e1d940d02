package gateway

import "regexp"

// qBittorrent moves skipped files under a ".unwanted" directory
var unwantedSegment = regexp.MustCompile(`(^|[\\/])\.unwanted[\\/]+`)

// StripUnwantedSegment removes every ".unwanted" directory from a file path.
// The result never contains the marker, so applying it twice is a no-op.
func StripUnwantedSegment(name string) string {
	for {
		stripped := unwantedSegment.ReplaceAllString(name, "$1")
		if stripped == name {
			return name
		}
		name = stripped
	}
}
