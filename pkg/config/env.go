package config

// EnvPrefix is passed to envconfig; individual fields carry full variable names.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CUKURID_DB_DSN"
	EnvDBHost = "CUKURID_DB_HOST"
	EnvDBUser = "CUKURID_DB_USER"
	EnvDBName = "CUKURID_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
