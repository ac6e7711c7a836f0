package startup

// Product content the launcher prints or injects.
const (
	DefaultUpdateName = "New Computer Update"
	DefaultOSModel    = "gpt-4-vision-preview"
	DefaultProg       = "interpreter"
)

// Config is launcher data that varies by build rather than by run.
type Config struct {
	Version    string
	UpdateName string
	// OSDefaultModel is injected by --os when no --model is given.
	OSDefaultModel string
	Prog           string
}

// DefaultConfig returns the shipped configuration for version.
func DefaultConfig(version string) Config {
	return Config{
		Version:        version,
		UpdateName:     DefaultUpdateName,
		OSDefaultModel: DefaultOSModel,
		Prog:           DefaultProg,
	}
}

// Dirs are the storage directories the special flags open.
type Dirs struct {
	Profiles string
	Models   string
	Logs     string
}
