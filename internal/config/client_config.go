package config

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github/chapool/go-bitski/internal/util"
)

const (
	DefaultNetwork     = "mainnet"
	DefaultHTTPTimeout = 30 * time.Second
)

type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Client holds everything needed to build a bitski client.
type Client struct {
	ClientID         string
	CredentialID     string
	CredentialSecret string `json:"-"` // sensitive
	Scopes           []string
	RPCOverride      string
	Network          string
	HTTPTimeout      time.Duration
	Logger           Logger
}

// HasCredentials reports whether a client credentials grant can be attempted.
func (c Client) HasCredentials() bool {
	return c.CredentialID != "" && c.CredentialSecret != ""
}

// DefaultClientConfigFromEnv returns the client config as parsed from environment variables.
// For every setting the first variable that is set wins.
func DefaultClientConfigFromEnv() Client {
	v := viper.New()

	bindEnv(v, "client_id", "BITSKI_API_KEY", "BITSKI_CLIENT_ID", "API_KEY", "CLIENT_ID")
	bindEnv(v, "credential_id", "BITSKI_CREDENTIAL_ID", "CREDENTIAL_ID")
	bindEnv(v, "credential_secret", "BITSKI_CREDENTIAL_SECRET", "CREDENTIAL_SECRET")
	bindEnv(v, "scopes", "BITSKI_SCOPES", "SCOPES")
	bindEnv(v, "rpc_url", "BITSKI_RPC_URL", "RPC_URL")
	bindEnv(v, "network", "BITSKI_NETWORK")
	bindEnv(v, "http_timeout", "BITSKI_HTTP_TIMEOUT")
	bindEnv(v, "log_level", "BITSKI_LOG_LEVEL")
	bindEnv(v, "log_pretty", "BITSKI_LOG_PRETTY")

	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("log_level", zerolog.InfoLevel.String())
	v.SetDefault("log_pretty", false)

	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	timeout := v.GetDuration("http_timeout")
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	return Client{
		ClientID:         v.GetString("client_id"),
		CredentialID:     v.GetString("credential_id"),
		CredentialSecret: v.GetString("credential_secret"),
		Scopes:           util.SplitCSV(v.GetString("scopes")),
		RPCOverride:      v.GetString("rpc_url"),
		Network:          v.GetString("network"),
		HTTPTimeout:      timeout,
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: v.GetBool("log_pretty"),
		},
	}
}

func bindEnv(v *viper.Viper, key string, envs ...string) {
	input := append([]string{key}, envs...)
	if err := v.BindEnv(input...); err != nil {
		// only fails without a key
		panic(err)
	}
}
