package engine

// Sound names a fire-and-forget sound effect.
type Sound uint8

const (
	SoundJump Sound = iota
	SoundCoin
	SoundBump
	SoundPowerup
	SoundStomp
	SoundDeath
	SoundClear
)

var soundNames = [...]string{
	SoundJump:    "jump",
	SoundCoin:    "coin",
	SoundBump:    "bump",
	SoundPowerup: "powerup",
	SoundStomp:   "stomp",
	SoundDeath:   "death",
	SoundClear:   "clear",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// Sounder plays sounds. Implementations must not block and may drop sounds
// they are not ready for.
type Sounder interface {
	Play(Sound)
}
