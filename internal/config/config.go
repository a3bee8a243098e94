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

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go AddressBook"
	AppID          = "com.github.tartampluch.go-addressbook"
	KeyringService = "com.github.tartampluch.go-addressbook"
	LogFileName    = "app.log"
	StoreFileName  = "addressbook.cbor"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	EnvPrefix      = "ADDRESSBOOK"
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
	// Used for the address book store, exports and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagStore        = "store"
	FlagLanguage     = "lang"
	FlagNoColor      = "no-color"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescStore    = "Path of the address book file"
	FlagDescLanguage = "Language of the messages (en, uk)"
	FlagDescNoColor  = "Disable colored output"
	FlagDescConfig   = "Path of an explicit configuration file"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyStorePath  = "store_path"
	KeyLanguage   = "language"
	KeyNoColor    = "no_color"
	KeyDebug      = "debug"
	KeyImportUser = "import_user"
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdHello          = "hello"
	CmdHelp           = "help"
	CmdAdd            = "add"
	CmdChange         = "change"
	CmdPhone          = "phone"
	CmdAll            = "all"
	CmdAddBirthday    = "add-birthday"
	CmdChangeBirthday = "change-birthday"
	CmdShowBirthday   = "show-birthday"
	CmdBirthdays      = "birthdays"
	CmdDelete         = "delete"
	CmdRemovePhone    = "remove-phone"
	CmdImport         = "import"
	CmdExport         = "export"
	CmdCalendar       = "calendar"
	CmdExit           = "exit"
	CmdClose          = "close"

	// Minimum positional argument counts.
	ArgsAdd            = 2
	ArgsChange         = 3
	ArgsPhone          = 1
	ArgsAddBirthday    = 2
	ArgsChangeBirthday = 2
	ArgsShowBirthday   = 1
	ArgsDelete         = 1
	ArgsRemovePhone    = 2
	ArgsImport         = 1
	ArgsExport         = 1
	ArgsCalendar       = 1
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "msg_welcome"
	TKeyPrompt           = "msg_prompt"
	TKeyHello            = "msg_hello"
	TKeyGoodbye          = "msg_goodbye"
	TKeyHelp             = "msg_help"
	TKeyContactAdded     = "msg_contact_added"
	TKeyContactUpdated   = "msg_contact_updated"
	TKeyContactDeleted   = "msg_contact_deleted"
	TKeyPhoneRemoved     = "msg_phone_removed"
	TKeyContactLine      = "msg_contact_line"      // Requires Name, Phones
	TKeyContactNoPhones  = "msg_contact_no_phones" // Requires Name
	TKeyBirthdayAdded    = "msg_birthday_added"    // Requires Name
	TKeyBirthdayUpdated  = "msg_birthday_updated"
	TKeyBirthdayShow     = "msg_birthday_show" // Requires Name, Date
	TKeyBirthdaysHeading = "msg_birthdays_heading"
	TKeyBirthdaysNone    = "msg_birthdays_none"
	TKeyBirthdaysLine    = "msg_birthdays_line" // Requires Name, Date
	TKeyImportDone       = "msg_import_done"    // Requires Added, Updated, Skipped
	TKeyExportDone       = "msg_export_done"    // Requires Count, Path
	TKeyCalendarDone     = "msg_calendar_done"  // Requires Count, Path

	TKeyErrName          = "err_validation_name"
	TKeyErrPhoneDigits   = "err_validation_phone_digits"
	TKeyErrPhoneLength   = "err_validation_phone_length"
	TKeyErrBirthday      = "err_validation_birthday"
	TKeyErrContactNF     = "err_contact_not_found"
	TKeyErrPhoneNF       = "err_phone_not_found"
	TKeyErrDupPhone      = "err_duplicate_phone"  // Requires Name
	TKeyErrDupName       = "err_duplicate_name"   // Requires Name
	TKeyErrBdayExists    = "err_birthday_exists"  // Requires Name
	TKeyErrBdayNotSet    = "err_birthday_not_set" // Requires Name
	TKeyErrTooFewArgs    = "err_too_few_args"
	TKeyErrEmptyBook     = "err_empty_book"
	TKeyErrUnknownCmd    = "err_unknown_command"
	TKeyErrStorage       = "err_storage"         // Requires Error
	TKeyErrInterchange   = "err_interchange"     // Requires Error
	TKeyHelpPrefix       = "help_"               // Followed by the command name
	TKeyEvtSummaryAge    = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth  = "event_summary_birth" // Requires Name
	TemplateKeyName      = "Name"
	TemplateKeyPhones    = "Phones"
	TemplateKeyDate      = "Date"
	TemplateKeyAge       = "Age"
	TemplateKeyCount     = "Count"
	TemplateKeyPath      = "Path"
	TemplateKeyAdded     = "Added"
	TemplateKeyUpdated   = "Updated"
	TemplateKeySkipped   = "Skipped"
	TemplateKeyError     = "Error"
	PhoneListSeparator   = "; "
	LocalesDir           = "locales"
	LocaleFilePrefix     = "active."
	LocaleFileSuffix     = ".json"
	LocaleUnmarshalKey   = "json"
	DefaultLanguage      = "en"
	HelpCommandColumnPad = 48
)

// -----------------------------------------------------------------------------
// Business Logic
// -----------------------------------------------------------------------------

const (
	// PhoneLength is the exact number of decimal digits in a phone number.
	PhoneLength = 10

	// UpcomingWindow is the inclusive look-ahead of the birthdays report.
	UpcomingWindow = 7 * 24 * time.Hour

	// Weekend roll-forward offsets.
	SaturdayShiftDays = 2
	SundayShiftDays   = 1

	// StoreFormatVersion tags the persisted CBOR document.
	StoreFormatVersion = 1

	// Validation tags (go-playground/validator).
	ValidateName        = "required," + ValidateNameTag
	ValidatePhoneDigits = "number"
	ValidatePhoneLength = "len=10"

	// ValidateNameTag is the custom tag for contact names: a letter followed by
	// letters or combining marks. Case folding can decompose a letter (İ, ΐ)
	// into a base letter plus marks, so folded keys must pass the same check.
	ValidateNameTag     = "alphaname"
	ValidateNamePattern = `^\p{L}[\p{L}\p{M}]*$`
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go AddressBook//Engine//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goaddressbook"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardVersion = "4.0"

	// FormatUID expects the record id, the event year and the domain.
	FormatUID = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the DD.MM.YYYY layout of user-entered birthdays.
	DateFormatBirthday = "02.01.2006"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// File Extensions
	ExtVCF = ".vcf"
	ExtICS = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrStoreRead      = "failed to read address book store"
	ErrStoreWrite     = "failed to write address book store"
	ErrStoreDecode    = "failed to decode address book store"
	ErrStoreEncode    = "failed to encode address book store"
	ErrStoreVersion   = "unsupported address book store version"
	ErrStoreRecord    = "invalid record in address book store"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrSourceEmpty    = "import source is empty"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrFetchRequest   = "failed to create request"
	ErrFetchNetwork   = "network error during fetch"
	ErrFetchStatus    = "server returned unexpected status"
	ErrBodyTooLarge   = "remote vCard source exceeds the size limit"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrExportWrite    = "failed to write export file"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app dir"
	ErrConfigRead     = "failed to read configuration file"
	ErrConfigDecode   = "failed to decode configuration"
	ErrFlagParse      = "failed to parse command line flags"
	ErrAppFailed      = "application failed unexpectedly"
	ErrInputRead      = "failed to read input"
	ErrSaveFailed     = "failed to save address book"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, saving address book"
	MsgStoreLoaded    = "Address book loaded"
	MsgStoreMissing   = "No address book store found, starting empty"
	MsgStoreSaved     = "Address book saved"
	MsgCommand        = "Command received"
	MsgCommandFailed  = "Command failed"
	MsgSkippedName    = "Skipping vCard without a valid name"
	MsgSkippedPhone   = "Skipping invalid phone number"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgImportDone     = "vCard import finished"
	MsgExportDone     = "vCard export finished"
	MsgCalendarDone   = "Calendar generation successful"
	MsgUpcomingDone   = "Upcoming birthdays computed"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchBody      = "vCards downloading"
	MsgFetchCapped    = "Remote body cut off at the size limit"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgConfigMissing  = "No configuration file found, using defaults"
	MsgConfigLoaded   = "Configuration loaded"
	MsgLangUnsupport  = "Unsupported language, falling back to default"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
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
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyPath      = "path"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyAdded     = "added"
	LogKeyUpdated   = "updated"
	LogKeySkipped   = "skipped"
	LogKeyDuration  = "duration_ms"
	LogKeyBytes     = "size_bytes"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
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
	CompMain    = "main"
	CompConfig  = "config"
	CompStorage = "storage"
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompSession = "session"
	CompCLI     = "cli"
	CompI18n    = "i18n"
)
