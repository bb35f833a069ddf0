package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type RootCfg struct {
	ApiBearerToken     string
	WorkspaceKeyPrefix string
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	DSN         string
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

type RedisCfg struct {
	Addr        string
	Password    string
	DB          int
	PoolSize    int
	SnapshotTTL int // seconds; overview snapshot cache
}

type MQCfg struct {
	URL        string
	AuditQueue string
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type Config struct {
	App       AppCfg
	Root      RootCfg
	Log       LogCfg
	Database  DBCfg
	Redis     RedisCfg
	RabbitMQ  MQCfg
	S3        S3Cfg
	Telemetry TelemetryCfg
}

func Load() (*Config, error) {
	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("IRIS") // e.g. IRIS_APP_PORT -> app.port

	// Defaults apply whether or not a file is present.
	setDefaults(base)

	// Read the file (if any)
	if err := base.ReadInConfig(); err == nil {
		// Expand ${ENV} references in the raw file, then re-parse.
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(raw))

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, err
		}
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetEnvPrefix("IRIS")
		setDefaults(v)

		cfg := new(Config)
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// No file is also fine, env + defaults only.
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "iris-os")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("root.apiBearerToken", "iris")
	v.SetDefault("root.workspaceKeyPrefix", "sk-iris-")
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.snapshotTTL", 30)
	v.SetDefault("rabbitmq.auditQueue", "iris_audit")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("telemetry.sampleRatio", 1.0)
}
