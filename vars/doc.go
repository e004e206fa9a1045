// Package vars holds the variable context that template lines are rendered
// against.
//
// A Context is a plain name to value map. It is built once, from files,
// the environment and key=value pairs, and then passed by value into each
// render call. Nothing in this module mutates a Context after it is built;
// Merge returns a new map.
//
// Example usage:
//
//	fileVars, err := vars.LoadFile("vars.yaml")
//	if err != nil {
//	    return err
//	}
//	setVars, err := vars.ParsePairs([]string{"name=Ujjawal"})
//	if err != nil {
//	    return err
//	}
//	ctx := fileVars.Merge(vars.FromEnv("LINETMPL_VAR"), setVars)
//
// Supported file formats are YAML (.yaml, .yml), TOML (.toml) and JSON
// (.json). The top level must be a mapping of scalar values.
package vars
