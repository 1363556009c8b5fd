// Package validation checks configuration documents before they are turned
// into registry entries.
//
// Struct tags are handled by the validator library; field names in errors
// follow the yaml tags so messages point at the document keys. Two custom
// tags are registered:
//
//	name      the value must keep at least one character after naming.Protect
//	frequency the value must parse as a frequency.Frequency
//
// Cross-field checks use the programmatic Validator:
//
//	v := validation.New()
//	v.ProtectedName("scenarios[0].name", s.Name)
//	v.Unique("scenarios", names)
//	err := v.Error()
package validation
