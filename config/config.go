// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("storage.type", "storage_type")

	v.BindEnv("upload.dir", "upload_dir")
	v.BindEnv("upload.profile_dir", "upload_profile_dir")
	v.BindEnv("upload.attachment_dir", "upload_attachment_dir")
	v.BindEnv("upload.max_image_size", "upload_max_image_size")
	v.BindEnv("upload.max_attachment_size", "upload_max_attachment_size")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.public_url", "aws_public_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.rate_limit.enabled", true)
	v.SetDefault("app.rate_limit.rps", 5)
	v.SetDefault("app.rate_limit.burst", 10)

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("storage.type", "local")

	v.SetDefault("upload.dir", "upload")
	v.SetDefault("upload.profile_dir", "profile")
	v.SetDefault("upload.attachment_dir", "attachment")
	v.SetDefault("upload.max_image_size", 2)
	v.SetDefault("upload.max_attachment_size", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetInt("upload.max_image_size") <= 0 {
		return errors.New("upload.max_image_size must be bigger than 0")
	}

	if v.GetInt("upload.max_attachment_size") <= 0 {
		return errors.New("upload.max_attachment_size must be bigger than 0")
	}

	if v.GetString("mail.sender") == "" {
		return errors.New("no mail sender address provided")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("no mail host provided")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("aws.access_key_id") == "" {
			return errors.New("access key id can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetString("aws.public_url") == "" {
			return errors.New("public bucket url can't be empty")
		}
	case "local":
	default:
		return errors.New("invalid storage type provided")
	}

	// Sizes are configured in MB
	v.Set("upload.max_image_size", v.GetInt64("upload.max_image_size")<<20)
	v.Set("upload.max_attachment_size", v.GetInt64("upload.max_attachment_size")<<20)

	return nil
}
