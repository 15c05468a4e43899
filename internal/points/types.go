package points

// Object is an opaque host handle (a scene object, a hit record, save data).
// The engine never inspects it.
type Object any

// LanguageKey is the read-only input of a localization lookup.
type LanguageKey struct {
	Key   string
	Sheet string
	// Orig is the host's own translation before any subscriber ran.
	Orig string
}

// DeathEvent is the read-only input of ReceiveDeathEvent.
type DeathEvent struct {
	Effects         Object
	AlreadyReceived bool
}

// DeathFields are the by-reference fields of ReceiveDeathEvent.
type DeathFields struct {
	// AttackDirection is nil when the host has no direction.
	AttackDirection *float32
	ResetDeathEvent bool
	SpellBurn       bool
	IsWatery        bool
}

// JournalKill is the payload of RecordKillForJournal.
type JournalKill struct {
	Effects         Object
	PlayerDataName  string
	KilledBoolKey   string
	KillCountIntKey string
	NewDataBoolKey  string
}

// AttackDirection is the direction of a nail attack.
type AttackDirection int

const (
	AttackNormal AttackDirection = iota
	AttackUp
	AttackDown
)

// String returns the direction name.
func (d AttackDirection) String() string {
	switch d {
	case AttackNormal:
		return "normal"
	case AttackUp:
		return "up"
	case AttackDown:
		return "down"
	default:
		return "unknown"
	}
}

// SlashHitEvent is the payload of SlashHit.
type SlashHitEvent struct {
	Collider Object
	Source   Object
}

// CharmUpdateEvent is the payload of CharmUpdate.
type CharmUpdateEvent struct {
	PlayerData Object
	Hero       Object
}

// Vector2 is a two-component float vector.
type Vector2 struct {
	X, Y float32
}

// LocalSettings is per-save extension data.
type LocalSettings struct {
	// LoadedExtensions maps extension name to version. It is filled in by
	// the engine before SaveLocalSettings is dispatched.
	LoadedExtensions map[string]string
	// Data holds extension-owned entries keyed by extension name.
	Data map[string]any
}
