package gateway

import (
	qbt "github.com/autobrr/go-qbittorrent"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// TorrentState is the state vocabulary the dashboard understands.
// It is serialized as its ordinal.
type TorrentState int

const (
	StateError TorrentState = iota
	StateCompleted
	StatePaused
	StateQueued
	StateSeeding
	StateStalled
	StateChecking
	StateDownloading
	StateFetchingMetadata
	StateAllocating
	StateMoving
	StateUnknown
	StateMissingFiles
)

var stateNames = [...]string{
	StateError:            "Error",
	StateCompleted:        "Completed",
	StatePaused:           "Paused",
	StateQueued:           "Queued",
	StateSeeding:          "Seeding",
	StateStalled:          "Stalled",
	StateChecking:         "Checking",
	StateDownloading:      "Downloading",
	StateFetchingMetadata: "FetchingMetadata",
	StateAllocating:       "Allocating",
	StateMoving:           "Moving",
	StateUnknown:          "Unknown",
	StateMissingFiles:     "MissingFiles",
}

func (s TorrentState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return stateNames[StateUnknown]
	}
	return stateNames[s]
}

// stateQueuedForChecking is reported by older qBittorrent releases only.
const stateQueuedForChecking qbittorrent.TorrentState = "queuedForChecking"

// MapTorrentState folds the upstream state vocabulary into TorrentState.
// Anything not listed, the empty string included, is Unknown.
func MapTorrentState(raw qbittorrent.TorrentState) TorrentState {
	switch raw {
	case qbt.TorrentStateError:
		return StateError
	case qbt.TorrentStatePausedUp:
		return StateCompleted
	case qbt.TorrentStatePausedDl:
		return StatePaused
	case qbt.TorrentStateQueuedUp, qbt.TorrentStateQueuedDl, stateQueuedForChecking:
		return StateQueued
	case qbt.TorrentStateUploading, qbt.TorrentStateForcedUp, qbt.TorrentStateStalledUp:
		return StateSeeding
	case qbt.TorrentStateStalledDl:
		return StateStalled
	case qbt.TorrentStateCheckingUp, qbt.TorrentStateCheckingDl, qbt.TorrentStateCheckingResumeData:
		return StateChecking
	case qbt.TorrentStateDownloading, qbt.TorrentStateForcedDl:
		return StateDownloading
	case qbt.TorrentStateMetaDl:
		return StateFetchingMetadata
	case qbt.TorrentStateAllocating:
		return StateAllocating
	case qbt.TorrentStateMoving:
		return StateMoving
	case qbt.TorrentStateMissingFiles:
		return StateMissingFiles
	default:
		return StateUnknown
	}
}
