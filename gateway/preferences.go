package gateway

import (
	"github.com/goccy/go-json"

	"github.com/s0up4200/qbitgate/qbittorrent"
)

// Preferences is the camelCase view of the qBittorrent preferences snapshot.
// Values are copied as-is; only names change.
type Preferences struct {
	Locale                    string          `json:"locale"`
	CreateSubfolderEnabled    bool            `json:"createSubfolderEnabled"`
	StartPausedEnabled        bool            `json:"startPausedEnabled"`
	AutoDeleteMode            int             `json:"autoDeleteMode"`
	PreallocateAll            bool            `json:"preallocateAll"`
	IncompleteFilesExt        bool            `json:"incompleteFilesExt"`
	AutoTmmEnabled            bool            `json:"autoTmmEnabled"`
	TorrentChangedTmmEnabled  bool            `json:"torrentChangedTmmEnabled"`
	SavePathChangedTmmEnabled bool            `json:"savePathChangedTmmEnabled"`
	CategoryChangedTmmEnabled bool            `json:"categoryChangedTmmEnabled"`
	SavePath                  string          `json:"savePath"`
	TempPathEnabled           bool            `json:"tempPathEnabled"`
	TempPath                  string          `json:"tempPath"`
	ScanDirs                  json.RawMessage `json:"scanDirs"`
	ExportDir                 string          `json:"exportDir"`
	ExportDirFin              string          `json:"exportDirFin"`

	MailNotificationEnabled     bool   `json:"mailNotificationEnabled"`
	MailNotificationSender      string `json:"mailNotificationSender"`
	MailNotificationEmail       string `json:"mailNotificationEmail"`
	MailNotificationSMTP        string `json:"mailNotificationSmtp"`
	MailNotificationSslEnabled  bool   `json:"mailNotificationSslEnabled"`
	MailNotificationAuthEnabled bool   `json:"mailNotificationAuthEnabled"`
	MailNotificationUsername    string `json:"mailNotificationUsername"`
	MailNotificationPassword    string `json:"mailNotificationPassword"`
	AutorunEnabled              bool   `json:"autorunEnabled"`
	AutorunProgram              string `json:"autorunProgram"`

	QueueingEnabled            bool            `json:"queueingEnabled"`
	MaxActiveDownloads         int             `json:"maxActiveDownloads"`
	MaxActiveTorrents          int             `json:"maxActiveTorrents"`
	MaxActiveUploads           int             `json:"maxActiveUploads"`
	DontCountSlowTorrents      bool            `json:"dontCountSlowTorrents"`
	SlowTorrentDlRateThreshold int             `json:"slowTorrentDlRateThreshold"`
	SlowTorrentUlRateThreshold int             `json:"slowTorrentUlRateThreshold"`
	SlowTorrentInactiveTimer   int             `json:"slowTorrentInactiveTimer"`
	MaxRatioEnabled            bool            `json:"maxRatioEnabled"`
	MaxRatio                   float64         `json:"maxRatio"`
	MaxRatioAct                json.RawMessage `json:"maxRatioAct"`

	ListenPort                int  `json:"listenPort"`
	Upnp                      bool `json:"upnp"`
	RandomPort                bool `json:"randomPort"`
	DlLimit                   int  `json:"dlLimit"`
	UpLimit                   int  `json:"upLimit"`
	MaxConnec                 int  `json:"maxConnec"`
	MaxConnecPerTorrent       int  `json:"maxConnecPerTorrent"`
	MaxUploads                int  `json:"maxUploads"`
	MaxUploadsPerTorrent      int  `json:"maxUploadsPerTorrent"`
	StopTrackerTimeout        int  `json:"stopTrackerTimeout"`
	EnablePieceExtentAffinity bool `json:"pieceExtentAffinity"`
	EnableUtp                 bool `json:"enableUtp"`
	LimitUtpRate              bool `json:"limitUtpRate"`
	LimitTCPOverhead          bool `json:"limitTcpOverhead"`
	LimitLanPeers             bool `json:"limitLanPeers"`
	AltDlLimit                int  `json:"altDlLimit"`
	AltUpLimit                int  `json:"altUpLimit"`

	SchedulerEnabled bool `json:"schedulerEnabled"`
	ScheduleFromHour int  `json:"scheduleFromHour"`
	ScheduleFromMin  int  `json:"scheduleFromMin"`
	ScheduleToHour   int  `json:"scheduleToHour"`
	ScheduleToMin    int  `json:"scheduleToMin"`
	SchedulerDays    int  `json:"schedulerDays"`

	Dht           bool `json:"dht"`
	DhtSameAsBT   bool `json:"dhtSameAsBt"`
	DhtPort       int  `json:"dhtPort"`
	Pex           bool `json:"pex"`
	Lsd           bool `json:"lsd"`
	Encryption    int  `json:"encryption"`
	AnonymousMode bool `json:"anonymousMode"`

	ProxyType            json.RawMessage `json:"proxyType"`
	ProxyIP              string          `json:"proxyIp"`
	ProxyPort            int             `json:"proxyPort"`
	ProxyPeerConnections bool            `json:"proxyPeerConnections"`
	ForceProxy           bool            `json:"forceProxy"`
	ProxyAuthEnabled     bool            `json:"proxyAuthEnabled"`
	ProxyUsername        string          `json:"proxyUsername"`
	ProxyPassword        string          `json:"proxyPassword"`

	IPFilterEnabled  bool   `json:"ipFilterEnabled"`
	IPFilterPath     string `json:"ipFilterPath"`
	IPFilterTrackers bool   `json:"ipFilterTrackers"`

	WebUIDomainList                    string  `json:"webUiDomainList"`
	WebUIAddress                       string  `json:"webUiAddress"`
	WebUIPort                          int     `json:"webUiPort"`
	WebUIUpnp                          bool    `json:"webUiUpnp"`
	WebUIUsername                      string  `json:"webUiUsername"`
	WebUIPassword                      *string `json:"webUiPassword,omitempty"`
	WebUICsrfProtectionEnabled         bool    `json:"webUiCsrfProtectionEnabled"`
	WebUIClickjackingProtectionEnabled bool    `json:"webUiClickjackingProtectionEnabled"`
	WebUISecureCookieEnabled           bool    `json:"webUiSecureCookieEnabled"`
	WebUIMaxAuthFailCount              int     `json:"webUiMaxAuthFailCount"`
	WebUIBanDuration                   int     `json:"webUiBanDuration"`
	BypassLocalAuth                    bool    `json:"bypassLocalAuth"`
	BypassAuthSubnetWhitelistEnabled   bool    `json:"bypassAuthSubnetWhitelistEnabled"`
	BypassAuthSubnetWhitelist          string  `json:"bypassAuthSubnetWhitelist"`
	AlternativeWebuiEnabled            bool    `json:"alternativeWebuiEnabled"`
	AlternativeWebuiPath               string  `json:"alternativeWebuiPath"`
	UseHTTPS                           bool    `json:"useHttps"`
	SslKey                             string  `json:"sslKey"`
	SslCert                            string  `json:"sslCert"`

	DyndnsEnabled  bool   `json:"dyndnsEnabled"`
	DyndnsService  int    `json:"dyndnsService"`
	DyndnsUsername string `json:"dyndnsUsername"`
	DyndnsPassword string `json:"dyndnsPassword"`
	DyndnsDomain   string `json:"dyndnsDomain"`

	RssRefreshInterval        int  `json:"rssRefreshInterval"`
	RssMaxArticlesPerFeed     int  `json:"rssMaxArticlesPerFeed"`
	RssProcessingEnabled      bool `json:"rssProcessingEnabled"`
	RssAutoDownloadingEnabled bool `json:"rssAutoDownloadingEnabled"`
}

func newPreferences(p *qbittorrent.Preferences) Preferences {
	return Preferences{
		Locale:                             p.Locale,
		CreateSubfolderEnabled:             p.CreateSubfolderEnabled,
		StartPausedEnabled:                 p.StartPausedEnabled,
		AutoDeleteMode:                     p.AutoDeleteMode,
		PreallocateAll:                     p.PreallocateAll,
		IncompleteFilesExt:                 p.IncompleteFilesExt,
		AutoTmmEnabled:                     p.AutoTmmEnabled,
		TorrentChangedTmmEnabled:           p.TorrentChangedTmmEnabled,
		SavePathChangedTmmEnabled:          p.SavePathChangedTmmEnabled,
		CategoryChangedTmmEnabled:          p.CategoryChangedTmmEnabled,
		SavePath:                           p.SavePath,
		TempPathEnabled:                    p.TempPathEnabled,
		TempPath:                           p.TempPath,
		ScanDirs:                           p.ScanDirs,
		ExportDir:                          p.ExportDir,
		ExportDirFin:                       p.ExportDirFin,
		MailNotificationEnabled:            p.MailNotificationEnabled,
		MailNotificationSender:             p.MailNotificationSender,
		MailNotificationEmail:              p.MailNotificationEmail,
		MailNotificationSMTP:               p.MailNotificationSMTP,
		MailNotificationSslEnabled:         p.MailNotificationSslEnabled,
		MailNotificationAuthEnabled:        p.MailNotificationAuthEnabled,
		MailNotificationUsername:           p.MailNotificationUsername,
		MailNotificationPassword:           p.MailNotificationPassword,
		AutorunEnabled:                     p.AutorunEnabled,
		AutorunProgram:                     p.AutorunProgram,
		QueueingEnabled:                    p.QueueingEnabled,
		MaxActiveDownloads:                 p.MaxActiveDownloads,
		MaxActiveTorrents:                  p.MaxActiveTorrents,
		MaxActiveUploads:                   p.MaxActiveUploads,
		DontCountSlowTorrents:              p.DontCountSlowTorrents,
		SlowTorrentDlRateThreshold:         p.SlowTorrentDlRateThreshold,
		SlowTorrentUlRateThreshold:         p.SlowTorrentUlRateThreshold,
		SlowTorrentInactiveTimer:           p.SlowTorrentInactiveTimer,
		MaxRatioEnabled:                    p.MaxRatioEnabled,
		MaxRatio:                           p.MaxRatio,
		MaxRatioAct:                        p.MaxRatioAct,
		ListenPort:                         p.ListenPort,
		Upnp:                               p.Upnp,
		RandomPort:                         p.RandomPort,
		DlLimit:                            p.DlLimit,
		UpLimit:                            p.UpLimit,
		MaxConnec:                          p.MaxConnec,
		MaxConnecPerTorrent:                p.MaxConnecPerTorrent,
		MaxUploads:                         p.MaxUploads,
		MaxUploadsPerTorrent:               p.MaxUploadsPerTorrent,
		StopTrackerTimeout:                 p.StopTrackerTimeout,
		EnablePieceExtentAffinity:          p.EnablePieceExtentAffinity,
		EnableUtp:                          p.EnableUtp,
		LimitUtpRate:                       p.LimitUtpRate,
		LimitTCPOverhead:                   p.LimitTCPOverhead,
		LimitLanPeers:                      p.LimitLanPeers,
		AltDlLimit:                         p.AltDlLimit,
		AltUpLimit:                         p.AltUpLimit,
		SchedulerEnabled:                   p.SchedulerEnabled,
		ScheduleFromHour:                   p.ScheduleFromHour,
		ScheduleFromMin:                    p.ScheduleFromMin,
		ScheduleToHour:                     p.ScheduleToHour,
		ScheduleToMin:                      p.ScheduleToMin,
		SchedulerDays:                      p.SchedulerDays,
		Dht:                                p.Dht,
		DhtSameAsBT:                        p.DhtSameAsBT,
		DhtPort:                            p.DhtPort,
		Pex:                                p.Pex,
		Lsd:                                p.Lsd,
		Encryption:                         p.Encryption,
		AnonymousMode:                      p.AnonymousMode,
		ProxyType:                          p.ProxyType,
		ProxyIP:                            p.ProxyIP,
		ProxyPort:                          p.ProxyPort,
		ProxyPeerConnections:               p.ProxyPeerConnections,
		ForceProxy:                         p.ForceProxy,
		ProxyAuthEnabled:                   p.ProxyAuthEnabled,
		ProxyUsername:                      p.ProxyUsername,
		ProxyPassword:                      p.ProxyPassword,
		IPFilterEnabled:                    p.IPFilterEnabled,
		IPFilterPath:                       p.IPFilterPath,
		IPFilterTrackers:                   p.IPFilterTrackers,
		WebUIDomainList:                    p.WebUIDomainList,
		WebUIAddress:                       p.WebUIAddress,
		WebUIPort:                          p.WebUIPort,
		WebUIUpnp:                          p.WebUIUpnp,
		WebUIUsername:                      p.WebUIUsername,
		WebUIPassword:                      p.WebUIPassword,
		WebUICsrfProtectionEnabled:         p.WebUICsrfProtectionEnabled,
		WebUIClickjackingProtectionEnabled: p.WebUIClickjackingProtectionEnabled,
		WebUISecureCookieEnabled:           p.WebUISecureCookieEnabled,
		WebUIMaxAuthFailCount:              p.WebUIMaxAuthFailCount,
		WebUIBanDuration:                   p.WebUIBanDuration,
		BypassLocalAuth:                    p.BypassLocalAuth,
		BypassAuthSubnetWhitelistEnabled:   p.BypassAuthSubnetWhitelistEnabled,
		BypassAuthSubnetWhitelist:          p.BypassAuthSubnetWhitelist,
		AlternativeWebuiEnabled:            p.AlternativeWebuiEnabled,
		AlternativeWebuiPath:               p.AlternativeWebuiPath,
		UseHTTPS:                           p.UseHTTPS,
		SslKey:                             p.SslKey,
		SslCert:                            p.SslCert,
		DyndnsEnabled:                      p.DyndnsEnabled,
		DyndnsService:                      p.DyndnsService,
		DyndnsUsername:                     p.DyndnsUsername,
		DyndnsPassword:                     p.DyndnsPassword,
		DyndnsDomain:                       p.DyndnsDomain,
		RssRefreshInterval:                 p.RssRefreshInterval,
		RssMaxArticlesPerFeed:              p.RssMaxArticlesPerFeed,
		RssProcessingEnabled:               p.RssProcessingEnabled,
		RssAutoDownloadingEnabled:          p.RssAutoDownloadingEnabled,
	}
}
