package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ResponseSlack   = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// R6DataSource is reported as the `source` of every single-player result.
	R6DataSource    = "r6data"
	RankedBoardID   = "ranked"
	DefaultPlatform = "pc"
)

const (
	MaxMatchPlayers       = 10
	TeamSize              = 5
	SearchSuggestionLimit = 10
)
