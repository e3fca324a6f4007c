package config

const (
	defaultLogDir         = "~/.local/share/scribe/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultWhisperModel   = "base"
	defaultWhisperLarge   = "large-v3"
	defaultWhisperBinary  = "uvx"
	defaultWhisperTool    = "whisper-ctranslate2"
	defaultWhisperDevice  = "auto"
	defaultWhisperBeam    = 5
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultLLMBaseURL     = "http://localhost:1234/v1/chat/completions"
	defaultLLMModel       = "local-model"
	defaultLLMTimeout     = 120
	defaultLLMChunkChars  = 6000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Whisper: Whisper{
			Model:      defaultWhisperModel,
			LargeModel: defaultWhisperLarge,
			Binary:     defaultWhisperBinary,
			Tool:       defaultWhisperTool,
			Device:     defaultWhisperDevice,
			BeamSize:   defaultWhisperBeam,
			VADFilter:  true,
		},
		FFmpeg: FFmpeg{
			Binary:      defaultFFmpegBinary,
			ProbeBinary: defaultFFprobeBinary,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
			ChunkChars:     defaultLLMChunkChars,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
