package config

// EnvPrefix is empty because every variable names its full env key in
// its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "XMX_DB_DSN"
	EnvDBHost = "XMX_DB_HOST"
	EnvDBUser = "XMX_DB_USER"
	EnvDBName = "XMX_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
