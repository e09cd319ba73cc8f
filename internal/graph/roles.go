package graph

// Roles assigns input fields to semantic roles. Empty means unassigned; Source
// and Target are mandatory.
type Roles struct {
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Weight   string `json:"weight,omitempty" yaml:"weight,omitempty"`
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Validate checks the mandatory roles against the schema's field names.
func (r Roles) Validate(fields []string) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	for _, role := range []struct{ name, field string }{
		{"source", r.Source},
		{"target", r.Target},
	} {
		if role.field == "" || !known[role.field] {
			return &MissingRoleError{Role: role.name, Field: role.field}
		}
	}
	return nil
}

// Merge fills unassigned roles of r from other.
func (r Roles) Merge(other Roles) Roles {
	if r.Source == "" {
		r.Source = other.Source
	}
	if r.Target == "" {
		r.Target = other.Target
	}
	if r.Weight == "" {
		r.Weight = other.Weight
	}
	if r.Interval == "" {
		r.Interval = other.Interval
	}
	return r
}

// SuggestRoles preselects fields literally named "source" and "target".
func SuggestRoles(fields []string) Roles {
	var r Roles
	for _, f := range fields {
		switch f {
		case "source":
			r.Source = f
		case "target":
			r.Target = f
		}
	}
	return r
}
