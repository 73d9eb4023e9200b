package protocol

// Tool describes a function the model may call. Parameters is a JSON Schema
// object describing the arguments.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ObjectSchema builds an object schema from string properties. Each entry
// maps a property name to its description; required lists mandatory names.
func ObjectSchema(properties map[string]string, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, description := range properties {
		props[name] = map[string]any{
			"type":        "string",
			"description": description,
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
