package config

import (
	"os"

	"github.com/spf13/viper"
)

// dotEnvFile is read, when present, before the process environment is
// consulted. Real environment variables win over the file.
const dotEnvFile = ".env"

// parseEnv overlays environment variables onto config:
//
//	PORT                  HTTP port, bound on all interfaces
//	HTTP_ADDR             HTTP bind address (wins over PORT)
//	GRPC_ADDR             health service bind address
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET            token signing secret
//	TOKEN_VALIDITY        token lifetime, e.g. "1h"
//	CORS_ORIGIN           allowed browser origin
//	UPLOAD_DIR            disk storage directory
//	STORAGE_BACKEND       "disk" or "s3"
//	MAX_UPLOAD_BYTES      upload size cap
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	PASSWORD_HASH         "bcrypt" or "argon2id"
//	BCRYPT_COST           bcrypt work factor
//	LOG_FORMAT, LOG_LEVEL
//	HEALTH_CHECK_INTERVAL database ping period
//
// Empty variables are ignored. A malformed envFile panics, like a malformed
// JSON config does.
func parseEnv(config *Config, envFile string) {
	v := viper.New()
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				panic(err)
			}
		}
	}

	str := func(key string, dst *string) {
		if v.IsSet(key) && v.GetString(key) != "" {
			*dst = v.GetString(key)
		}
	}

	if v.IsSet("PORT") && v.GetString("PORT") != "" {
		config.EndpointAddrHTTP = ":" + v.GetString("PORT")
	}
	str("HTTP_ADDR", &config.EndpointAddrHTTP)
	str("GRPC_ADDR", &config.EndpointAddrGRPC)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("JWT_SECRET", &config.SecretKey)
	if v.IsSet("TOKEN_VALIDITY") {
		config.AccessTokenValidityDuration = v.GetDuration("TOKEN_VALIDITY")
	}
	str("CORS_ORIGIN", &config.CORSOrigin)
	str("UPLOAD_DIR", &config.UploadDir)
	str("STORAGE_BACKEND", &config.StorageBackend)
	if v.IsSet("MAX_UPLOAD_BYTES") {
		config.MaxUploadBytes = v.GetInt64("MAX_UPLOAD_BYTES")
	}
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("PASSWORD_HASH", &config.PasswordHash)
	if v.IsSet("BCRYPT_COST") {
		config.BcryptCost = v.GetInt("BCRYPT_COST")
	}
	str("LOG_FORMAT", &config.LogFormat)
	str("LOG_LEVEL", &config.LogLevel)
	if v.IsSet("HEALTH_CHECK_INTERVAL") {
		config.HealthCheckInterval = v.GetDuration("HEALTH_CHECK_INTERVAL")
	}
}
