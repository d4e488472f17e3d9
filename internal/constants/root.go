package constants

import "time"

const (
	AppName            = "vitalit"
	DefaultKeyringUser = "database-connection"
	PlanKeyringUser    = "active-plan"
	DefaultConfigPath  = "~/.config/vitalit/vitalit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the time-of-day format stamped on log entries (HH:MM:SS)
	TimeFormat = "15:04:05"

	// DefaultLocale is the fallback locale for localized catalog text
	DefaultLocale = "en-NG"

	// Storage keys. Each key holds one independent JSON value.
	KeyUserData        = "user_data"
	KeyUserPlan        = "user_plan"
	KeyWaterIntake     = "water_intake"
	KeyDailyCalories   = "daily_calories"
	KeyBodyComposition = "body_composition"
	KeyLanguage        = "language"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "vitalit-"

	// Entitlement constants
	UnlimitedPlanDays   = -1
	PlanPollInterval    = time.Minute
	HydrationHeroLiters = 2.0

	// Water log quick-add amount used by the TUI
	QuickWaterLiters = 0.25
)

// SupportedLocales lists the locales the catalogs ship text for.
var SupportedLocales = []string{"en-NG", "en-ZA", "en-KE", "en-GH", "fr-CI"}
