package whisper

// Config captures runtime settings for recognizer invocations.
type Config struct {
	// Binary is the launcher executable.
	Binary string
	// Tool is the package the launcher runs.
	Tool string
	// Device selects the compute device ("auto", "cpu", "cuda").
	Device string
	// BeamSize is the decoder beam width.
	BeamSize int
	// VADFilter enables voice activity detection.
	VADFilter bool
}

// Recognizer invocation defaults.
const (
	DefaultBinary   = "uvx"
	DefaultTool     = "whisper-ctranslate2"
	DefaultDevice   = "auto"
	DefaultBeamSize = 5
	DefaultModel    = "base"
	LargeModel      = "large-v3"
)
