// Package store implements the opaque key/value persistent state spec.md §3
// names as an external collaborator. The distilled spec treats the data
// store only through its interface ("may be called from any thread");
// SPEC_FULL.md's DOMAIN STACK section backs that interface with the
// teacher's own embedded KV engine (`config/components/nutsdb`) rather than
// leaving it abstract, since a runnable node needs state that survives a
// restart (spec.md §1: "Nodes persist their adoption state so they can
// rejoin the fabric after a restart").
package store

// Key names for the seven persistent fields spec.md §3 enumerates.
const (
	KeyAdoptionValid  = "adoption.valid"
	KeyAdoptionSecret = "adoption.secret"
	KeyServerUUID     = "server.uuid"
	KeyServerHost     = "server.host"
	KeyServerPort     = "server.port"
	KeyRTHost         = "rt.host"
	KeyRTPort         = "rt.port"
)

// AdoptionKeys is every key the adoption invariant (spec.md §3/§8) requires
// to be present whenever KeyAdoptionValid == "1".
var AdoptionKeys = []string{
	KeyAdoptionSecret,
	KeyServerHost,
	KeyServerPort,
	KeyRTHost,
	KeyRTPort,
}

// DataStore is the opaque string key/value store, safe to call from any
// goroutine, per spec.md §5 ("the persistent key/value store is shared
// across all threads; thread safety is the store's responsibility").
type DataStore interface {
	// Get returns the value for key and true, or ("", false, nil) if the
	// key is absent.
	Get(key string) (string, bool, error)
	// Set writes key=value, creating or overwriting it.
	Set(key, value string) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// InvalidateAdoption sets adoption.valid to "0", the mandatory first step
// of any failure path per spec.md §3's invariant ("a verification failure
// or adoption rejection MUST set adoption.valid to 0 atomically before
// surfacing the error"). A single key write against the backing
// transactional engine is already atomic, so this needs no additional
// locking beyond what Set itself provides.
func InvalidateAdoption(ds DataStore) error {
	return ds.Set(KeyAdoptionValid, "0")
}

// IsAdopted reports whether adoption.valid reads "1".
func IsAdopted(ds DataStore) (bool, error) {
	v, ok, err := ds.Get(KeyAdoptionValid)
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}
