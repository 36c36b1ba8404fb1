package pathtree

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// hashTag distinguishes the children groups (require/call/new/...) and
// the "full vs noArgs" variant inside the canonical byte stream fed to
// xxhash, so that e.g. an accessProp named "call" can never collide
// with the call-children group.
type hashTag byte

const (
	tagRequire hashTag = iota
	tagAccessProp
	tagWriteProp
	tagCall
	tagNew
	tagArg
	tagArgCallID
	tagEnd
)

// computeHashes returns (h_full, h_noArgs) for node id, computing and
// caching them (and those of every descendant) bottom-up on first use.
// Each hash is a 128-bit digest built from two independently-seeded
// xxhash sums over the same canonical encoding; a 128-bit digest makes
// accidental collisions negligible, and equalSubtree in compress.go
// falls back to direct structural equality on the rare collision
// anyway.
func (t *Tree) computeHashes(id NodeID) (hFull, hNoArgs [2]uint64) {
	n := t.nodes[id]
	if n.hashed {
		return n.hFull, n.hNoArgs
	}

	full := newDigestPair()
	noArgs := newDigestPair()

	writeGroup(full, noArgs, tagRequire, n.Require, t, true)
	writeGroup(full, noArgs, tagAccessProp, n.AccessProp, t, true)
	writeGroup(full, noArgs, tagWriteProp, n.WriteProp, t, true)
	writeGroup(full, noArgs, tagCall, n.Call, t, true)
	writeGroup(full, noArgs, tagNew, n.New, t, true)
	writeArgGroup(full, noArgs, n.Arg, t)

	n.hFull = full.sum()
	n.hNoArgs = noArgs.sum()
	n.hashed = true
	return n.hFull, n.hNoArgs
}

// digestPair is two independently-seeded xxhash.Digests combined into
// one 128-bit value.
type digestPair struct {
	a, b *xxhash.Digest
}

func newDigestPair() *digestPair {
	a := xxhash.New()
	b := xxhash.New()
	b.Write([]byte{0xA5}) // distinct initial state from a
	return &digestPair{a: a, b: b}
}

func (d *digestPair) write(p []byte) {
	d.a.Write(p)
	d.b.Write(p)
}

func (d *digestPair) sum() [2]uint64 {
	return [2]uint64{d.a.Sum64(), d.b.Sum64()}
}

func u64bytes(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// writeGroup feeds a single string-keyed children group (require,
// accessProp, writeProp, call, or new) into both digests in
// canonical (sorted) key order, each entry's value being the child's
// own h_full or h_noArgs, recursively. includeInNoArgs controls
// whether this group participates in
// h_noArgs at all — true for every group except "arg", which
// writeArgGroup handles separately so it can be excluded from noArgs.
func writeGroup(full, noArgs *digestPair, tag hashTag, m map[string]NodeID, t *Tree, includeInNoArgs bool) {
	keys := sortedKeys(m)
	full.write([]byte{byte(tag)})
	if includeInNoArgs {
		noArgs.write([]byte{byte(tag)})
	}
	for _, k := range keys {
		childFull, childNoArgs := t.computeHashes(m[k])
		full.write([]byte(k))
		full.write(u64bytes(childFull[0]))
		full.write(u64bytes(childFull[1]))
		if includeInNoArgs {
			noArgs.write([]byte(k))
			noArgs.write(u64bytes(childNoArgs[0]))
			noArgs.write(u64bytes(childNoArgs[1]))
		}
	}
	full.write([]byte{byte(tagEnd)})
	if includeInNoArgs {
		noArgs.write([]byte{byte(tagEnd)})
	}
}

// writeArgGroup feeds the nested arg children (callId -> argId ->
// node) into h_full only; h_noArgs excludes the whole group (spec
// §4.3: "h_noArgs(n) = same hash with the arg group excluded").
func writeArgGroup(full, noArgs *digestPair, byCallID map[string]map[int]NodeID, t *Tree) {
	full.write([]byte{byte(tagArg)})
	for _, callID := range sortedKeys(byCallID) {
		full.write([]byte{byte(tagArgCallID)})
		full.write([]byte(callID))
		argIDs := byCallID[callID]
		ids := make([]int, 0, len(argIDs))
		for argID := range argIDs {
			ids = append(ids, argID)
		}
		sort.Ints(ids)
		for _, argID := range ids {
			childFull, _ := t.computeHashes(argIDs[argID])
			full.write(u64bytes(uint64(argID)))
			full.write(u64bytes(childFull[0]))
			full.write(u64bytes(childFull[1]))
		}
	}
	full.write([]byte{byte(tagEnd)})
	// h_noArgs sees only the group marker, never its contents.
	noArgs.write([]byte{byte(tagArg), byte(tagEnd)})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
