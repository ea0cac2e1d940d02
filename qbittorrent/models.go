package qbittorrent

import (
	qbt "github.com/autobrr/go-qbittorrent"
	"github.com/goccy/go-json"
)

// Wire types shared with go-qbittorrent.
type (
	Torrent           = qbt.Torrent
	TorrentProperties = qbt.TorrentProperties
	TorrentState      = qbt.TorrentState
)

// Preferences is the subset of app/preferences the gateway exposes, in the
// upstream's own naming. Fields whose type changed between qBittorrent
// releases are kept raw.
type Preferences struct {
	Locale                    string          `json:"locale"`
	CreateSubfolderEnabled    bool            `json:"create_subfolder_enabled"`
	StartPausedEnabled        bool            `json:"start_paused_enabled"`
	AutoDeleteMode            int             `json:"auto_delete_mode"`
	PreallocateAll            bool            `json:"preallocate_all"`
	IncompleteFilesExt        bool            `json:"incomplete_files_ext"`
	AutoTmmEnabled            bool            `json:"auto_tmm_enabled"`
	TorrentChangedTmmEnabled  bool            `json:"torrent_changed_tmm_enabled"`
	SavePathChangedTmmEnabled bool            `json:"save_path_changed_tmm_enabled"`
	CategoryChangedTmmEnabled bool            `json:"category_changed_tmm_enabled"`
	SavePath                  string          `json:"save_path"`
	TempPathEnabled           bool            `json:"temp_path_enabled"`
	TempPath                  string          `json:"temp_path"`
	ScanDirs                  json.RawMessage `json:"scan_dirs"`
	ExportDir                 string          `json:"export_dir"`
	ExportDirFin              string          `json:"export_dir_fin"`

	MailNotificationEnabled     bool   `json:"mail_notification_enabled"`
	MailNotificationSender      string `json:"mail_notification_sender"`
	MailNotificationEmail       string `json:"mail_notification_email"`
	MailNotificationSMTP        string `json:"mail_notification_smtp"`
	MailNotificationSslEnabled  bool   `json:"mail_notification_ssl_enabled"`
	MailNotificationAuthEnabled bool   `json:"mail_notification_auth_enabled"`
	MailNotificationUsername    string `json:"mail_notification_username"`
	MailNotificationPassword    string `json:"mail_notification_password"`
	AutorunEnabled              bool   `json:"autorun_enabled"`
	AutorunProgram              string `json:"autorun_program"`

	QueueingEnabled            bool            `json:"queueing_enabled"`
	MaxActiveDownloads         int             `json:"max_active_downloads"`
	MaxActiveTorrents          int             `json:"max_active_torrents"`
	MaxActiveUploads           int             `json:"max_active_uploads"`
	DontCountSlowTorrents      bool            `json:"dont_count_slow_torrents"`
	SlowTorrentDlRateThreshold int             `json:"slow_torrent_dl_rate_threshold"`
	SlowTorrentUlRateThreshold int             `json:"slow_torrent_ul_rate_threshold"`
	SlowTorrentInactiveTimer   int             `json:"slow_torrent_inactive_timer"`
	MaxRatioEnabled            bool            `json:"max_ratio_enabled"`
	MaxRatio                   float64         `json:"max_ratio"`
	MaxRatioAct                json.RawMessage `json:"max_ratio_act"`

	ListenPort                int  `json:"listen_port"`
	Upnp                      bool `json:"upnp"`
	RandomPort                bool `json:"random_port"`
	DlLimit                   int  `json:"dl_limit"`
	UpLimit                   int  `json:"up_limit"`
	MaxConnec                 int  `json:"max_connec"`
	MaxConnecPerTorrent       int  `json:"max_connec_per_torrent"`
	MaxUploads                int  `json:"max_uploads"`
	MaxUploadsPerTorrent      int  `json:"max_uploads_per_torrent"`
	StopTrackerTimeout        int  `json:"stop_tracker_timeout"`
	EnablePieceExtentAffinity bool `json:"enable_piece_extent_affinity"`
	EnableUtp                 bool `json:"enable_utp"`
	LimitUtpRate              bool `json:"limit_utp_rate"`
	LimitTCPOverhead          bool `json:"limit_tcp_overhead"`
	LimitLanPeers             bool `json:"limit_lan_peers"`
	AltDlLimit                int  `json:"alt_dl_limit"`
	AltUpLimit                int  `json:"alt_up_limit"`

	SchedulerEnabled bool `json:"scheduler_enabled"`
	ScheduleFromHour int  `json:"schedule_from_hour"`
	ScheduleFromMin  int  `json:"schedule_from_min"`
	ScheduleToHour   int  `json:"schedule_to_hour"`
	ScheduleToMin    int  `json:"schedule_to_min"`
	SchedulerDays    int  `json:"scheduler_days"`

	Dht           bool `json:"dht"`
	DhtSameAsBT   bool `json:"dhtSameAsBT"`
	DhtPort       int  `json:"dht_port"`
	Pex           bool `json:"pex"`
	Lsd           bool `json:"lsd"`
	Encryption    int  `json:"encryption"`
	AnonymousMode bool `json:"anonymous_mode"`

	ProxyType            json.RawMessage `json:"proxy_type"`
	ProxyIP              string          `json:"proxy_ip"`
	ProxyPort            int             `json:"proxy_port"`
	ProxyPeerConnections bool            `json:"proxy_peer_connections"`
	ForceProxy           bool            `json:"force_proxy"`
	ProxyAuthEnabled     bool            `json:"proxy_auth_enabled"`
	ProxyUsername        string          `json:"proxy_username"`
	ProxyPassword        string          `json:"proxy_password"`

	IPFilterEnabled  bool   `json:"ip_filter_enabled"`
	IPFilterPath     string `json:"ip_filter_path"`
	IPFilterTrackers bool   `json:"ip_filter_trackers"`

	WebUIDomainList                    string  `json:"web_ui_domain_list"`
	WebUIAddress                       string  `json:"web_ui_address"`
	WebUIPort                          int     `json:"web_ui_port"`
	WebUIUpnp                          bool    `json:"web_ui_upnp"`
	WebUIUsername                      string  `json:"web_ui_username"`
	WebUIPassword                      *string `json:"web_ui_password,omitempty"`
	WebUICsrfProtectionEnabled         bool    `json:"web_ui_csrf_protection_enabled"`
	WebUIClickjackingProtectionEnabled bool    `json:"web_ui_clickjacking_protection_enabled"`
	WebUISecureCookieEnabled           bool    `json:"web_ui_secure_cookie_enabled"`
	WebUIMaxAuthFailCount              int     `json:"web_ui_max_auth_fail_count"`
	WebUIBanDuration                   int     `json:"web_ui_ban_duration"`
	BypassLocalAuth                    bool    `json:"bypass_local_auth"`
	BypassAuthSubnetWhitelistEnabled   bool    `json:"bypass_auth_subnet_whitelist_enabled"`
	BypassAuthSubnetWhitelist          string  `json:"bypass_auth_subnet_whitelist"`
	AlternativeWebuiEnabled            bool    `json:"alternative_webui_enabled"`
	AlternativeWebuiPath               string  `json:"alternative_webui_path"`
	UseHTTPS                           bool    `json:"use_https"`
	SslKey                             string  `json:"ssl_key"`
	SslCert                            string  `json:"ssl_cert"`

	DyndnsEnabled  bool   `json:"dyndns_enabled"`
	DyndnsService  int    `json:"dyndns_service"`
	DyndnsUsername string `json:"dyndns_username"`
	DyndnsPassword string `json:"dyndns_password"`
	DyndnsDomain   string `json:"dyndns_domain"`

	RssRefreshInterval        int  `json:"rss_refresh_interval"`
	RssMaxArticlesPerFeed     int  `json:"rss_max_articles_per_feed"`
	RssProcessingEnabled      bool `json:"rss_processing_enabled"`
	RssAutoDownloadingEnabled bool `json:"rss_auto_downloading_enabled"`
}

// TorrentFile is one entry of torrents/files. go-qbittorrent decodes
// progress and availability as float32, so they are kept at full width here.
type TorrentFile struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Size         int64   `json:"size"`
	Progress     float64 `json:"progress"`
	Priority     int     `json:"priority"`
	IsSeed       bool    `json:"is_seed"`
	PieceRange   []int   `json:"piece_range"`
	Availability float64 `json:"availability"`
}

// TorrentFiles is the torrents/files listing in upstream order
type TorrentFiles []TorrentFile

// AddFile is a .torrent file attached to an add request
type AddFile struct {
	Name    string
	Content []byte
}

// AddRequest describes one torrents/add submission. Options are sent as
// form fields under their upstream names.
type AddRequest struct {
	URLs    []string
	Files   []AddFile
	Options map[string]string
}
