package cat

// Match is a frame resolved against the registry. Params aliases the frame
// and is only valid while the frame is.
type Match struct {
	Command Descriptor
	Params  []byte
}

// Matcher resolves frames to commands. The first two bytes of a frame are the
// mnemonic and the rest is the parameter payload.
type Matcher struct {
	Registry *Registry
}

// Match resolves frame. It reports false for frames shorter than two bytes and
// for mnemonics absent from the registry.
func (m Matcher) Match(frame []byte) (Match, bool) {
	if len(frame) < 2 {
		return Match{}, false
	}
	d, ok := m.Registry.Lookup(frame[:2])
	if !ok {
		return Match{}, false
	}
	return Match{Command: d, Params: frame[2:]}, true
}
