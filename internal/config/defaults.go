package config

const (
	defaultInputDir       = "videos"
	defaultOutputDir      = "out"
	defaultWorkDir        = "temp"
	defaultLogDir         = "~/.local/share/dashforge/logs"
	defaultX264Preset     = "slow"
	defaultAV1Encoder     = "auto"
	defaultAOMCPUUsed     = 6
	defaultAudioBitrate   = "192k"
	defaultAudioLanguage  = "und"
	defaultSegmentSeconds = 4
	defaultBackend        = "auto"
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		Video: Video{
			X264Preset: defaultX264Preset,
			AV1Encoder: defaultAV1Encoder,
			AOMCPUUsed: defaultAOMCPUUsed,
		},
		Audio: Audio{
			Bitrate:  defaultAudioBitrate,
			Language: defaultAudioLanguage,
		},
		Packaging: Packaging{
			SegmentSeconds: defaultSegmentSeconds,
			Backend:        defaultBackend,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
