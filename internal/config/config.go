package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-LifeWeeks/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Life Weeks"
	AppID             = "com.github.tartampluch.go-lifeweeks"
	AppDirName        = "go-lifeweeks"
	KeyringService    = "com.github.tartampluch.go-lifeweeks"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	CommandName       = "go-lifeweeks"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the stored profile.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Life Model
// -----------------------------------------------------------------------------

const (
	WeeksPerYear         = 52
	Week                 = 7 * 24 * time.Hour
	MinLifespanYears     = 40
	MaxLifespanYears     = 120
	DefaultLifespanYears = 80
	MaxAgeYears          = 150 // Oldest accepted birth date, in years before now.
	LifespanSliderStep   = 1

	// Gradient thresholds, as a fraction of the weeks lived so far.
	EarlyThreshold  = 0.33
	RecentThreshold = 0.66

	// StaggerStep is the reveal delay added per year row.
	StaggerStep = 20 * time.Millisecond

	PercentMax       = 100.0
	PercentPrecision = 1
)

// -----------------------------------------------------------------------------
// Persistence
// -----------------------------------------------------------------------------

const (
	// StorageKey is the single key the profile record lives under, whatever the backend.
	StorageKey = "lifespan-tracker-data"

	StoreBackendFile        = "file"
	StoreBackendKeyring     = "keyring"
	StoreBackendPreferences = "preferences"

	ProfileFileName    = "profile.toml"
	ProfileTempPattern = ".profile-*.toml.tmp"
)

// StoreBackends lists the accepted values of the store.backend setting.
var StoreBackends = []string{StoreBackendFile, StoreBackendKeyring, StoreBackendPreferences}

// -----------------------------------------------------------------------------
// Settings (viper)
// -----------------------------------------------------------------------------

const (
	ConfigName = "config"
	ConfigType = "toml"
	EnvPrefix  = "LIFEWEEKS"

	KeyStoreBackend   = "store.backend"
	KeyStorePath      = "store.path"
	KeyLanguage       = "language"
	KeyLifespan       = "lifespan"
	KeyServerEnabled  = "server.enabled"
	KeyServerPort     = "server.port"
	KeyServerRefresh  = "server.refresh_minutes"
	KeyCalendarWeeks  = "calendar.weeks_ahead"
	FallbackConfigDir = "~/." + AppDirName

	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultWeeksAhead = 12
	MaxWeeksAhead     = 520
	DefaultLanguage   = "en"
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagBirth    = "birth"
	FlagLifespan = "lifespan"
	FlagVCard    = "vcard"
	FlagJSON     = "json"
	FlagNoGrid   = "no-grid"
	FlagOutput   = "output"
	FlagPort     = "port"

	FlagOutputShort = "o"

	// AnnotationService marks long-running commands, which log at Info level.
	AnnotationService = "service"

	FlagDescConfig   = "Config file (default is <user config dir>/go-lifeweeks/config.toml)"
	FlagDescDebug    = "Enable debug logging"
	FlagDescBirth    = "Date of birth (YYYY-MM-DD)"
	FlagDescLifespan = "Expected lifespan in years (40-120)"
	FlagDescVCard    = "Read the date of birth from a vCard file or http(s) URL"
	FlagDescJSON     = "Print the statistics as JSON"
	FlagDescNoGrid   = "Do not print the week grid"
	FlagDescExport   = "Destination PNG file"
	FlagDescCalendar = "Destination .ics file (- for stdout)"
	FlagDescPort     = "Localhost port of the feed server"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgSaved         = "Saved: %s weeks lived out of %s.\n"
	MsgExportWritten = "Image written to %s\n"
	MsgReset         = "Stored profile cleared."
	MsgWeekRange     = "%s (%s)\n"
	StdoutPath       = "-"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth  = 760
	WindowHeight = 860

	PrefLanguage = "language"
	PrefLastRun  = "last_run_version"

	// ViewCheckInterval is how often the open grid checks for a new day.
	ViewCheckInterval = time.Minute

	// Grid cell geometry, in Fyne units.
	GridCellSize = 9
	GridCellGap  = 2
	GridStroke   = 1
	GridRingSize = 2

	DateFormatInput = "2006-01-02"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtPNG   = ".png"
)

// -----------------------------------------------------------------------------
// Palette (hex, shared by the desktop grid, the terminal grid and the export)
// -----------------------------------------------------------------------------

const (
	ColorBackground   = "#fafaf9"
	ColorText         = "#292524"
	ColorMuted        = "#78716c"
	ColorFaint        = "#a8a29e"
	ColorLived        = "#78716c"
	ColorLivedEarly   = "#a16207"
	ColorLivedRecent  = "#475569"
	ColorCurrent      = "#44403c"
	ColorCurrentRing  = "#44403c4d"
	ColorFutureStroke = "#e7e5e4"
)

// -----------------------------------------------------------------------------
// Export Image
// -----------------------------------------------------------------------------

const (
	ExportFileName  = "life-in-weeks.png"
	ExportWidth     = 1080
	ExportHeight    = 1350
	ExportPadding   = 60
	ExportCellPitch = 12 // 10px cell + 2px gap at full size.
	ExportRingWidth = 2

	ExportQuoteBaseline  = 190
	ExportValueBaseline  = 320
	ExportLabelBaseline  = 352
	ExportGridTop        = 410
	ExportFooterBaseline = ExportHeight - ExportPadding
	ExportGridBottom     = ExportFooterBaseline - 60
	ExportStatColumn     = 200
	ExportStatGap        = 48

	ExportFontQuote  = 34
	ExportFontValue  = 60
	ExportFontLabel  = 16
	ExportFontFooter = 20
	ExportFontDPI    = 72
)

// -----------------------------------------------------------------------------
// Terminal Rendering
// -----------------------------------------------------------------------------

const (
	GlyphLived     = "■"
	GlyphCurrent   = "▣"
	GlyphFuture    = "·"
	StatsSeparator = "  ·  "
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyAppTitle        = "app_title"
	TKeyAppSubtitle     = "app_subtitle"
	TKeyQuote           = "quote"
	TKeyFooter          = "footer"
	TKeyLblBirthDate    = "lbl_birth_date"
	TKeyLblLifespan     = "lbl_lifespan"
	TKeyLblLanguage     = "lbl_language"
	TKeyFmtYears        = "format_lifespan_years" // Requires Years
	TKeyHintDate        = "hint_date"
	TKeyHintHover       = "hint_hover"
	TKeyBtnVisualize    = "btn_visualize"
	TKeyBtnShare        = "btn_share"
	TKeyBtnGenerating   = "btn_generating"
	TKeyBtnReset        = "btn_reset"
	TKeyStatYears       = "stat_years"
	TKeyStatWeeksLived  = "stat_weeks_lived"
	TKeyStatWeeksAhead  = "stat_weeks_ahead"
	TKeyStatOfJourney   = "stat_of_journey"
	TKeyStatusLived     = "status_lived"
	TKeyStatusCurrent   = "status_current"
	TKeyStatusFuture    = "status_future"
	TKeyWeekLabel       = "week_label"       // Requires Week, Status
	TKeyEventWeek       = "event_week"       // Requires Week, Total
	TKeyErrBirthMissing = "err_birth_missing"
	TKeyErrBirthFuture  = "err_birth_future"
	TKeyErrBirthInvalid = "err_birth_invalid"
	TKeyErrLifespan     = "err_lifespan_range"
	TKeyErrExport       = "err_export"
	TKeyMsgExported     = "msg_exported"
	TKeyMenuRefresh     = "menu_refresh"
	TKeyBtnImport       = "btn_import"
	TKeyErrImport       = "err_import"
	TKeyTrayIdle        = "tray_idle"
)

// SupportedLanguages defines the list of bundled UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Life Weeks//Engine//EN"
	ICalCalName = "Life in Weeks"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "golifeweeks"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"

	// MaxVCardDecodeErrors bounds consecutive malformed cards before giving up.
	MaxVCardDecodeErrors = 5

	DefaultICalRefresh = 24 * time.Hour

	UIDSalt         = "go-lifeweeks-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted in vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// DateFormatISO matches JavaScript's Date.toISOString (UTC, milliseconds).
	DateFormatISO = "2006-01-02T15:04:05.000Z07:00"

	// Week range labels.
	DateFormatMonthDay     = "Jan 2"
	DateFormatMonthDayYear = "Jan 2, 2006"
	FormatRangeSameYear    = "%s – %s, %d"
	FormatRangeCrossYear   = "%s – %s"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	HTTPRetryMax        = 3
	HTTPRetryWaitMin    = 500 * time.Millisecond
	HTTPRetryWaitMax    = 5 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, a vCard with a photo fits comfortably.
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/weeks.ics"
	RouteImage          = "/share.png"
	RouteStats          = "/stats.json"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeImagePNG        = "image/png"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBirthDateMissing = "birth date is required"
	ErrBirthDateFuture  = "birth date cannot be in the future"
	ErrBirthDateTooOld  = "birth date is more than 150 years ago"
	ErrLifespanRange    = "lifespan must be between 40 and 120 years"
	ErrDateParse        = "unable to parse date"
	ErrBirthYearMissing = "birth date has no year"
	ErrNoBirthday       = "no contact with a full birth date found"
	ErrSourceEmpty      = "vCard source is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrVCardOpen        = "failed to open vCard source"
	ErrVCardRead        = "failed to read vCard source"
	ErrVCardMalformed   = "too many malformed vCards in a row"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrExportEncode     = "failed to encode share image"
	ErrExportFont       = "failed to load export font"
	ErrRecordDecode     = "failed to decode stored profile"
	ErrRecordEncode     = "failed to encode stored profile"
	ErrStoreRead        = "failed to read stored profile"
	ErrStoreWrite       = "failed to write stored profile"
	ErrStoreClear       = "failed to clear stored profile"
	ErrStoreBackend     = "unsupported store backend"
	ErrStoreNeedsApp    = "the preferences store is only available in the desktop app"
	ErrNoProfile        = "no birth date stored; run `set --birth YYYY-MM-DD` or pass --birth"
	ErrWeekIndex        = "week index out of range"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrRefreshInterval  = "server refresh interval must be positive"
	ErrWeeksAhead       = "calendar weeks ahead must be between 1 and 520"
	ErrConfigRead       = "failed to read config file"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrNetwork          = "network error during fetch"
	ErrStatus           = "server returned unexpected status"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteOutput      = "failed to write output file"
	ErrPublish          = "failed to publish feed"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrUnknownRoute     = "unknown feed route"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackEventSummary = "Week %d of %d"

	// StubVCalendar is the minimal valid iCalendar object used once the lifespan is exceeded.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgBirthImported  = "Birth date imported from vCard"
	MsgCalendarBuilt  = "Week calendar generated"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgPublished      = "Feed published"
	MsgNothingToPub   = "No stored profile, nothing to publish"
	MsgPublishReq     = "Feed refresh requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgProfileLoaded  = "Stored profile restored"
	MsgProfileInvalid = "Stored profile is invalid, ignoring it"
	MsgProfileSaved   = "Profile saved"
	MsgProfileCleared = "Profile cleared"
	MsgStoreWarn      = "Persistence unavailable, continuing in memory"
	MsgStoreOpened    = "Profile store opened"
	MsgLifespanChange = "Lifespan changed"
	MsgGridBuilt      = "Week grid rendered"
	MsgViewStale      = "Day changed, rebuilding week grid"
	MsgExported       = "Share image exported"
	MsgSettingsLoaded = "Settings loaded"
	MsgVCardDownload  = "vCard downloading"
	MsgVCardStart     = "Initiating vCard download"
	MsgVCardStatus    = "Server returned error status"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyRoute     = "route"
	LogKeyBackend   = "backend"
	LogKeyInterval  = "interval"
	LogKeyLifespan  = "lifespan_years"
	LogKeyWeeks     = "total_weeks"
	LogKeyLived     = "weeks_lived"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyPath      = "path"
	LogKeyLength    = "content_length"
	LogKeyDuration  = "duration_ms"
	LogKeyConfig    = "config_file"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompEngine    = "engine"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompPublisher = "publisher"
	CompStore     = "store"
	CompExport    = "export"
	CompCLI       = "cli"
	CompMain      = "main"
	CompI18n      = "i18n"
)
