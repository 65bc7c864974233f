package location

// Validator checks whether a zone name is part of the service area.
// Callers consult it before submitting a request; the dispatcher does
// not re-validate.
type Validator struct {
	zones map[string]struct{}
}

// NewValidator builds a validator from the configured zone list.
func NewValidator(zones []string) *Validator {
	set := make(map[string]struct{}, len(zones))
	for _, z := range zones {
		set[z] = struct{}{}
	}
	return &Validator{zones: set}
}

// IsValid reports whether the zone is serviced.
func (v *Validator) IsValid(zone string) bool {
	_, ok := v.zones[zone]
	return ok
}
