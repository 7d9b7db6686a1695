package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/tristanseifert/lichtenstein-node/errors"
)

func TestLoadConfigMissingUUID(t *testing.T) {
	v := viper.New()
	v.Set("listenAddr", ":4430")
	v.Set("store.path", "/tmp/lichtenstein")

	_, err := loadConfig(v)
	if err == nil || !errors.IsCode(err, ErrorMissingUUID) {
		t.Fatalf("err = %v, want ErrorMissingUUID", err)
	}
}

func TestLoadConfigInvalidUUID(t *testing.T) {
	v := viper.New()
	v.Set("uuid", "not-a-uuid")
	v.Set("listenAddr", ":4430")
	v.Set("store.path", "/tmp/lichtenstein")

	_, err := loadConfig(v)
	if err == nil || !errors.IsCode(err, ErrorInvalidUUID) {
		t.Fatalf("err = %v, want ErrorInvalidUUID", err)
	}
}

func TestLoadConfigMissingListenAddr(t *testing.T) {
	v := viper.New()
	v.Set("uuid", uuid.New().String())
	v.Set("store.path", "/tmp/lichtenstein")

	_, err := loadConfig(v)
	if err == nil || !errors.IsCode(err, ErrorMissingListenAddr) {
		t.Fatalf("err = %v, want ErrorMissingListenAddr", err)
	}
}

func TestLoadConfigMissingStorePath(t *testing.T) {
	v := viper.New()
	v.Set("uuid", uuid.New().String())
	v.Set("listenAddr", ":4430")

	_, err := loadConfig(v)
	if err == nil || !errors.IsCode(err, ErrorMissingStorePath) {
		t.Fatalf("err = %v, want ErrorMissingStorePath", err)
	}
}

func TestLoadConfigValid(t *testing.T) {
	id := uuid.New()
	v := viper.New()
	v.Set("uuid", id.String())
	v.Set("listenAddr", ":4430")
	v.Set("store.path", "/tmp/lichtenstein")
	v.Set("serverName", "node.example")
	v.Set("advertise.enabled", true)
	v.Set("advertise.instance", "node-one")

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.UUID != id {
		t.Errorf("UUID = %v, want %v", cfg.UUID, id)
	}
	if cfg.ListenAddr != ":4430" {
		t.Errorf("ListenAddr = %q, want \":4430\"", cfg.ListenAddr)
	}
	if !cfg.Advertise.Enabled || cfg.Advertise.Instance != "node-one" {
		t.Errorf("Advertise = %+v, want enabled/node-one", cfg.Advertise)
	}
	if cfg.Store.Path != "/tmp/lichtenstein" {
		t.Errorf("Store.Path = %q, want /tmp/lichtenstein", cfg.Store.Path)
	}
}

func TestLoadConfigTLSJSONRoundTrip(t *testing.T) {
	id := uuid.New()
	v := viper.New()
	v.Set("uuid", id.String())
	v.Set("listenAddr", ":4430")
	v.Set("store.path", "/tmp/lichtenstein")
	v.Set("tls.inheritDefault", true)
	v.Set("tls.dynamicSizingDisable", true)

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.TLS.InheritDefault {
		t.Errorf("TLS.InheritDefault = false, want true")
	}
	if !cfg.TLS.DynamicSizingDisable {
		t.Errorf("TLS.DynamicSizingDisable = false, want true")
	}
}
