package constant

const (
	DEFAULT_WINDOW_WIDTH       = 800
	DEFAULT_WINDOW_HEIGHT      = 600
	DEFAULT_UPDATE_INTERVAL_US = 16666 // 16.666666ms, ~60 ticks per second
	DEFAULT_CAPTION            = ""
)

const (
	AUDIO_FREQ       = 44100
	CHANNELS         = 2
	AUDIO_SAMPLES    = 1024
	AUDIO_RESAMPLING = 4 // beep resampling quality
)

// Host button ids are laid out in disjoint ranges so that one integer
// identifies a button regardless of its device.
const (
	KB_RANGE_BEGIN = 0x000
	MS_RANGE_BEGIN = 0x200
	GP_RANGE_BEGIN = 0x300
	GP_RANGE_END   = 0x400
)
