package deviceconfig

// Document is a config file decoded without a fixed shape, keyed by the
// serialized field names. Unlike Record it keeps missing and null keys
// apart from zero values, so validating a file on disk sees what the file
// actually holds.
type Document map[string]interface{}

// Field reports the value under name. Missing and null keys are absent.
func (d Document) Field(name string) (interface{}, bool) {
	v, ok := d[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
