package constants

const (
	AppName            = "conquista"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/conquista"
	DefaultDBName      = "conquista.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "conquista-"
	BackupFileSuffix = ".db"

	// Instance lock
	LockfileName = "conquista.lock"

	// Config and session files live next to the database
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.yaml"
)
