package node

import (
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
	"github.com/tristanseifert/lichtenstein-node/store"
	"github.com/tristanseifert/lichtenstein-node/wire"
)

// init registers the two handlers spec.md §6 names as the node's client API
// surface, per spec.md §9's "registered handlers include at minimum:
// client.GetInfo, client.AdoptRequest."
func init() {
	RegisterHandler("GetInfoRequest", handleGetInfo)
	RegisterHandler("AdoptRequest", handleAdoptRequest)
}

// handleGetInfo answers GetInfoRequest with whichever of node/adoption/
// performance the request's wants* flags select, per
// original_source/client/api/handlers/GetInfoReq.cpp.
func handleGetInfo(n *Node, c *connState, any *lichtenstein.Any) error {
	req := &lichtenstein.GetInfoRequest{}
	if err := wire.Unpack(any, req); err != nil {
		return err
	}

	resp := &lichtenstein.GetInfoResponse{}

	if req.WantsNode {
		resp.Node = n.nodeInfo()
	}
	if req.WantsAdoption {
		resp.Adoption = n.adoptionInfo()
	}
	if req.WantsPerformance {
		resp.Performance = performanceInfo()
	}

	return wire.SendMessage(c.sess, resp)
}

func (n *Node) nodeInfo() *lichtenstein.NodeInfo {
	hostname, _ := os.Hostname()
	uname := ""
	if info, err := host.Info(); err == nil {
		uname = info.Platform + " " + info.PlatformVersion + " " + info.KernelVersion
	}
	return &lichtenstein.NodeInfo{
		Hostname:      hostname,
		Uname:         uname,
		ClientVersion: n.cfg.ClientVersion,
		UUID:          n.cfg.UUID[:],
	}
}

func (n *Node) adoptionInfo() *lichtenstein.AdoptionInfo {
	adopted, _ := store.IsAdopted(n.cfg.Store)
	info := &lichtenstein.AdoptionInfo{IsAdopted: adopted}
	if adopted {
		if uuidStr, ok, _ := n.cfg.Store.Get(store.KeyServerUUID); ok {
			if id, err := uuid.Parse(uuidStr); err == nil {
				info.ServerUUID = id[:]
			}
		}
	}
	return info
}

// performanceInfo samples the host's load/memory/uptime via gopsutil, per
// SPEC_FULL.md supplement item 2.
func performanceInfo() *lichtenstein.PerformanceInfo {
	p := &lichtenstein.PerformanceInfo{}

	if avg, err := load.Avg(); err == nil {
		p.CPULoad1 = avg.Load1
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		p.MemoryUsedBytes = vm.Used
	}
	if info, err := host.Info(); err == nil {
		p.UptimeSeconds = info.Uptime
	}

	return p
}

// handleAdoptRequest claims the node for a controller, per spec.md §4.5 and
// scenarios S2/S3: an already-adopted node refuses with an error; otherwise
// the control/realtime endpoints and shared secret are persisted, adoption
// is marked valid, and a VERIFY_ADOPT pass is kicked off before the ack is
// sent, so the caller's AdoptAck reflects a store write that is durable
// before it transitions the state machine.
func handleAdoptRequest(n *Node, c *connState, any *lichtenstein.Any) error {
	req := &lichtenstein.AdoptRequest{}
	if err := wire.Unpack(any, req); err != nil {
		return err
	}

	if adopted, _ := store.IsAdopted(n.cfg.Store); adopted {
		return ErrorAlreadyAdopted.Error(nil)
	}

	serverUUID, err := uuid.FromBytes(req.ServerUUID)
	if err != nil {
		return ErrorMissingField.Error(err)
	}
	if req.APIAddress == "" || req.RTAddress == "" || req.Secret == "" {
		return ErrorMissingField.Error(nil)
	}

	ds := n.cfg.Store
	writes := map[string]string{
		store.KeyServerUUID:     serverUUID.String(),
		store.KeyServerHost:     req.APIAddress,
		store.KeyServerPort:     strconv.FormatUint(uint64(req.APIPort), 10),
		store.KeyRTHost:         req.RTAddress,
		store.KeyRTPort:         strconv.FormatUint(uint64(req.RTPort), 10),
		store.KeyAdoptionSecret: req.Secret,
	}
	for k, v := range writes {
		if err := ds.Set(k, v); err != nil {
			return err
		}
	}
	if err := ds.Set(store.KeyAdoptionValid, "1"); err != nil {
		return err
	}

	n.metrics.adoptionAttempts.Inc()
	n.setNextState(StateVerifyAdopt)

	return wire.SendMessage(c.sess, &lichtenstein.AdoptAck{IsAdopted: true})
}
