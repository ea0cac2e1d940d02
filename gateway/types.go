package gateway

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// Torrent is a torrent list entry merged with its properties
type Torrent struct {
	Hash                   string       `json:"hash"`
	AddDate                time.Time    `json:"addDate"`
	CompletionDate         time.Time    `json:"completionDate"`
	BytesDownloaded        int64        `json:"bytesDownloaded"`
	BytesDownloadedSession int64        `json:"bytesDownloadedSession"`
	DownloadLimit          int64        `json:"downloadLimit"`
	UploadLimit            int64        `json:"uploadLimit"`
	ETA                    int64        `json:"eta"`
	ForceStart             bool         `json:"forceStart"`
	MagnetURI              string       `json:"magnetUri"`
	Name                   string       `json:"name"`
	Priority               int64        `json:"priority"`
	Progress               float64      `json:"progress"`
	SavePath               string       `json:"savePath"`
	Size                   int64        `json:"size"`
	State                  TorrentState `json:"state"`
	DownloadSpeed          int64        `json:"downloadSpeed"`
	DownloadSpeedAvg       int64        `json:"downloadSpeedAvg"`
	UploadSpeed            int64        `json:"uploadSpeed"`
	UploadSpeedAvg         int64        `json:"uploadSpeedAvg"`
	BytesUploaded          int64        `json:"bytesUploaded"`
	BytesUploadedSession   int64        `json:"bytesUploadedSession"`
	TimeActive             int64        `json:"timeActive"`
	CreationDate           time.Time    `json:"creationDate"`
	CreatorComment         string       `json:"creatorComment"`
	CreatedBy              string       `json:"createdBy"`
	Connections            int64        `json:"connections"`
	ConnectionsLimit       int64        `json:"connectionsLimit"`
	Peers                  int64        `json:"peers"`
	TotalPeers             int64        `json:"totalPeers"`
	Seeds                  int64        `json:"seeds"`
	TotalSeeds             int64        `json:"totalSeeds"`
	PiecesDownloaded       int64        `json:"piecesDownloaded"`
	TotalPieces            int64        `json:"totalPieces"`
	PieceSize              int64        `json:"pieceSize"`
}

// TorrentFile is one file inside a torrent, ready for display
type TorrentFile struct {
	Name         string              `json:"name"`
	Priority     TorrentFilePriority `json:"priority"`
	Progress     float64             `json:"progress"`
	Availability float64             `json:"availability"`
	Size         int64               `json:"size"`
}

// Category is the upstream category record, passed through untouched
type Category = json.RawMessage

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// newTorrent joins a list entry with its properties
func newTorrent(info qbittorrent.Torrent, props *qbittorrent.TorrentProperties) Torrent {
	return Torrent{
		Hash:                   info.Hash,
		AddDate:                unixTime(int64(info.AddedOn)),
		CompletionDate:         unixTime(int64(info.CompletionOn)),
		BytesDownloaded:        int64(info.Downloaded),
		BytesDownloadedSession: int64(info.DownloadedSession),
		DownloadLimit:          int64(info.DlLimit),
		UploadLimit:            int64(info.UpLimit),
		ETA:                    int64(info.ETA),
		ForceStart:             info.ForceStart,
		MagnetURI:              info.MagnetURI,
		Name:                   info.Name,
		Priority:               int64(info.Priority),
		Progress:               float64(info.Progress),
		SavePath:               info.SavePath,
		Size:                   int64(info.Size),
		State:                  MapTorrentState(info.State),
		DownloadSpeed:          int64(info.DlSpeed),
		UploadSpeed:            int64(info.UpSpeed),
		BytesUploaded:          int64(info.Uploaded),
		BytesUploadedSession:   int64(info.UploadedSession),
		TimeActive:             int64(info.TimeActive),

		DownloadSpeedAvg: int64(props.DlSpeedAvg),
		UploadSpeedAvg:   int64(props.UpSpeedAvg),
		CreationDate:     unixTime(int64(props.CreationDate)),
		CreatedBy:        props.CreatedBy,
		CreatorComment:   props.Comment,
		Peers:            int64(props.Peers),
		TotalPeers:       int64(props.PeersTotal),
		Seeds:            int64(props.Seeds),
		TotalSeeds:       int64(props.SeedsTotal),
		PiecesDownloaded: int64(props.PiecesHave),
		TotalPieces:      int64(props.PiecesNum),
		PieceSize:        int64(props.PieceSize),
		Connections:      int64(props.NbConnections),
		ConnectionsLimit: int64(props.NbConnectionsLimit),
	}
}

func newTorrentFiles(raw qbittorrent.TorrentFiles) []TorrentFile {
	files := make([]TorrentFile, 0, len(raw))
	for _, f := range raw {
		files = append(files, TorrentFile{
			Name:         StripUnwantedSegment(f.Name),
			Priority:     MapFilePriority(f.Priority),
			Progress:     f.Progress,
			Availability: f.Availability,
			Size:         f.Size,
		})
	}
	return files
}
