// Package spec holds the YAML shape of a runtime model document.
package spec

type TransformationSpec struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type PluginSpec struct {
	// Name of the instance inside the model.
	Name string `yaml:"name"`
	// Kind names the prototype in the plugin store; defaults to Name.
	Kind string `yaml:"kind"`

	// Transformer settings.
	Frames          []string             `yaml:"frames"`
	Transformations []TransformationSpec `yaml:"transformations"`
}

type TaskSpec struct {
	Attributes map[string]any `yaml:"attributes"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`

	Task TaskSpec `yaml:"task"`

	// Plugins are registered in list order.
	Plugins []PluginSpec `yaml:"plugins"`
}
