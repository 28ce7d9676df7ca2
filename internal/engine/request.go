package engine

// Upload is one raw uploaded file as the HTTP layer received it. Path points
// at the request-private workspace copy; Name is the sanitized original
// filename, kept as metadata only and never trusted as a filesystem path.
type Upload struct {
	Name string
	Path string
	Size int64
}

// Options is the coerced, schema-conforming option bag. Values are string,
// int64, float64, bool, or decoded JSON (map[string]any / []any).
type Options map[string]any

// Str returns a string option (schema defaults guarantee presence).
func (o Options) Str(name string) string {
	v, _ := o[name].(string)
	return v
}

// Int returns an int option.
func (o Options) Int(name string) int64 {
	v, _ := o[name].(int64)
	return v
}

// Float returns a float option.
func (o Options) Float(name string) float64 {
	v, _ := o[name].(float64)
	return v
}

// Bool returns a bool option.
func (o Options) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

// JSONMap returns a json option decoded to a string-keyed map; non-object
// JSON values yield an empty map.
func (o Options) JSONMap(name string) map[string]any {
	v, _ := o[name].(map[string]any)
	if v == nil {
		return map[string]any{}
	}
	return v
}

// OperationRequest is a validated request ready for dispatch. By the time it
// reaches the dispatcher its options are fully coerced against the tool's
// schema; routines never re-validate.
type OperationRequest struct {
	ToolID string
	Inputs []Upload
	Opts   Options

	// WorkDir is the request-private scratch directory. Every artifact a
	// routine creates lives under it.
	WorkDir string
}

// Primary returns the first input, the one most tools operate on.
func (r *OperationRequest) Primary() Upload { return r.Inputs[0] }

// InputPaths returns the workspace paths of all inputs, in upload order.
func (r *OperationRequest) InputPaths() []string {
	paths := make([]string, len(r.Inputs))
	for i, in := range r.Inputs {
		paths[i] = in.Path
	}
	return paths
}

// ConversionResult is what a routine returns on success. The file at Path is
// owned by the envelope consumer from here on; routines must not leave any
// other temp artifact outside the request workspace.
type ConversionResult struct {
	Path        string
	Filename    string
	ContentType string
}
