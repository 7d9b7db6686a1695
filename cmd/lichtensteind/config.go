package main

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/tristanseifert/lichtenstein-node/certificates"
)

// Config is the process configuration loaded from lichtensteind.yaml plus
// LICHTENSTEIN_*-prefixed environment overrides, per SPEC_FULL.md's
// Configuration section.
type Config struct {
	UUID          uuid.UUID
	ListenAddr    string
	ServerName    string
	ClientVersion string
	LogLevel      string

	TLS certificates.Config

	Advertise AdvertiseConfig
	Store     StoreConfig
}

// AdvertiseConfig controls mDNS advertisement (component C4).
type AdvertiseConfig struct {
	Enabled  bool
	Instance string
}

// StoreConfig points at the nutsdb-backed persistent store (§3).
type StoreConfig struct {
	Path string
}

// loadConfig reads and validates the merged viper configuration. TLS
// certificates are decoded separately via encoding/json rather than
// viper's own Unmarshal: certificates/certs.Certif implements
// json.Marshaler/json.Unmarshaler (models.go/encode.go) and no
// mapstructure decode hook, so the certs sub-tree is round-tripped
// through JSON instead of asking viper to decode it directly.
func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ListenAddr:    v.GetString("listenAddr"),
		ServerName:    v.GetString("serverName"),
		ClientVersion: v.GetString("clientVersion"),
		LogLevel:      v.GetString("logLevel"),
		Advertise: AdvertiseConfig{
			Enabled:  v.GetBool("advertise.enabled"),
			Instance: v.GetString("advertise.instance"),
		},
		Store: StoreConfig{
			Path: v.GetString("store.path"),
		},
	}

	uuidStr := v.GetString("uuid")
	if uuidStr == "" {
		return nil, ErrorMissingUUID.Error(nil)
	}
	id, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, ErrorInvalidUUID.Error(err)
	}
	cfg.UUID = id

	if cfg.ListenAddr == "" {
		return nil, ErrorMissingListenAddr.Error(nil)
	}
	if cfg.Store.Path == "" {
		return nil, ErrorMissingStorePath.Error(nil)
	}

	if tlsSettings := v.Get("tls"); tlsSettings != nil {
		p, err := json.Marshal(tlsSettings)
		if err != nil {
			return nil, ErrorInvalidTLSConfig.Error(err)
		}
		if err := json.Unmarshal(p, &cfg.TLS); err != nil {
			return nil, ErrorInvalidTLSConfig.Error(err)
		}
	}
	if err := cfg.TLS.Validate(); err != nil {
		return nil, ErrorInvalidTLSConfig.Error(err)
	}

	return cfg, nil
}
