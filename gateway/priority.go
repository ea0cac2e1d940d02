package gateway

// TorrentFilePriority is the download priority of a single file
type TorrentFilePriority int

const (
	PrioritySkipDownload TorrentFilePriority = 0
	PriorityNormal       TorrentFilePriority = 1
	PriorityHigh         TorrentFilePriority = 6
	PriorityMaximum      TorrentFilePriority = 7
)

// legacyNormal is the value older qBittorrent releases used for Normal
const legacyNormal = 4

// Valid reports whether p is a member of the enumeration
func (p TorrentFilePriority) Valid() bool {
	switch p {
	case PrioritySkipDownload, PriorityNormal, PriorityHigh, PriorityMaximum:
		return true
	}
	return false
}

// MapFilePriority normalizes an upstream file priority. Values outside the
// enumeration are passed through unchanged.
func MapFilePriority(raw int) TorrentFilePriority {
	if raw == legacyNormal {
		return PriorityNormal
	}
	return TorrentFilePriority(raw)
}
