package main

import (
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tristanseifert/lichtenstein-node/discovery"
	"github.com/tristanseifert/lichtenstein-node/logger"
	"github.com/tristanseifert/lichtenstein-node/node"
	"github.com/tristanseifert/lichtenstein-node/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the node client until terminated",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(vpr)
	if err != nil {
		return err
	}
	if cfg.ClientVersion == "" {
		cfg.ClientVersion = clientVersion
	}

	log := logger.New(parseLevel(cfg.LogLevel))

	ds, err := store.OpenNutsDBStore(cfg.Store.Path)
	if err != nil {
		return err
	}

	var adv *discovery.Advertiser
	if cfg.Advertise.Enabled {
		port, ok := listenPort(cfg.ListenAddr)
		if !ok {
			return ErrorMissingListenAddr.Error(nil)
		}
		adv, err = discovery.NewAdvertiser(cfg.Advertise.Instance, port, cfg.UUID, cfg.ClientVersion)
		if err != nil {
			return err
		}
	}

	n, err := node.New(node.Config{
		UUID:          cfg.UUID,
		Store:         ds,
		TLSConfig:     cfg.TLS.New(),
		ServerName:    cfg.ServerName,
		ListenAddr:    cfg.ListenAddr,
		ClientVersion: cfg.ClientVersion,
		Advertiser:    adv,
		Log:           log,
	})
	if err != nil {
		_ = ds.Close()
		return err
	}

	if err := n.Start(); err != nil {
		_ = ds.Close()
		return err
	}

	log.Info("lichtensteind started", logger.Field{Key: "listen", Value: cfg.ListenAddr})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	n.Stop()
	return ds.Close()
}

func parseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// listenPort extracts the numeric port from a "host:port" listen address,
// for mDNS advertisement; ok is false if the address has no parseable
// port, in which case the caller refuses to start rather than advertise a
// wrong one.
func listenPort(addr string) (uint16, bool) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, false
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}
