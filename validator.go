package cat

// Validator checks parameter payload lengths against a command's contract.
// It never looks at the payload content.
type Validator struct {
	// AllowQuery accepts an empty payload for Exact commands, so that a
	// bare "FA;" is dispatched as a read of the main band frequency.
	AllowQuery bool
}

// Validate returns nil when params satisfies the contract of d, and a
// *CommandError wrapping ErrMalformedParameters otherwise.
func (v Validator) Validate(d Descriptor, params []byte) error {
	n, exact := d.Contract.Len()
	if !exact || len(params) == n {
		return nil
	}
	if v.AllowQuery && len(params) == 0 {
		return nil
	}
	return &CommandError{
		Mnemonic: d.Mnemonic,
		Length:   len(params),
		Contract: d.Contract,
		Err:      ErrMalformedParameters,
	}
}

// Validate applies the strict contract with no query allowance.
func Validate(d Descriptor, params []byte) error {
	return Validator{}.Validate(d, params)
}
