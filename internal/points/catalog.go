package points

import "github.com/dshills/modhooks/internal/hook"

// Point names.
const (
	LanguageGet          = "language_get"
	Cursor               = "cursor"
	ColliderCreate       = "collider_create"
	ObjectPoolSpawn      = "object_pool_spawn"
	ApplicationQuit      = "application_quit"
	HitInstance          = "hit_instance"
	DrawBlackBorders     = "draw_black_borders"
	OnEnableEnemy        = "on_enable_enemy"
	ReceiveDeathEvent    = "receive_death_event"
	RecordKillForJournal = "record_kill_for_journal"

	SetPlayerBool     = "set_player_bool"
	GetPlayerBool     = "get_player_bool"
	SetPlayerInt      = "set_player_int"
	GetPlayerInt      = "get_player_int"
	SetPlayerFloat    = "set_player_float"
	GetPlayerFloat    = "get_player_float"
	SetPlayerString   = "set_player_string"
	GetPlayerString   = "get_player_string"
	SetPlayerVector3  = "set_player_vector3"
	GetPlayerVector3  = "get_player_vector3"
	SetPlayerVariable = "set_player_variable"
	GetPlayerVariable = "get_player_variable"

	BlueHealth       = "blue_health"
	TakeHealth       = "take_health"
	TakeDamage       = "take_damage"
	AfterTakeDamage  = "after_take_damage"
	BeforePlayerDead = "before_player_dead"
	AfterPlayerDead  = "after_player_dead"
	Attack           = "attack"
	DoAttack         = "do_attack"
	AfterAttack      = "after_attack"
	SlashHit         = "slash_hit"
	CharmUpdate      = "charm_update"
	HeroUpdate       = "hero_update"
	BeforeAddHealth  = "before_add_health"
	FocusCost        = "focus_cost"
	SoulGain         = "soul_gain"
	DashVector       = "dash_vector"
	DashPressed      = "dash_pressed"

	SavegameLoad       = "savegame_load"
	SavegameSave       = "savegame_save"
	NewGame            = "new_game"
	SavegameClear      = "savegame_clear"
	AfterSavegameLoad  = "after_savegame_load"
	BeforeSavegameSave = "before_savegame_save"
	GetSaveFileName    = "get_save_file_name"
	AfterSavegameClear = "after_savegame_clear"
	SaveLocalSettings  = "save_local_settings"
	LoadLocalSettings  = "load_local_settings"

	SceneChanged    = "scene_changed"
	BeforeSceneLoad = "before_scene_load"
)

var catalog = []hook.Point{
	{Name: LanguageGet, Policy: hook.PolicyChain, Payload: "LanguageKey -> string", Doc: "localized string lookup"},
	{Name: Cursor, Policy: hook.PolicyNotify, Payload: "none", Doc: "host is about to show the cursor"},
	{Name: ColliderCreate, Policy: hook.PolicyNotify, Payload: "Object", Doc: "object with a collider was created"},
	{Name: ObjectPoolSpawn, Policy: hook.PolicyChain, Payload: "Object", Doc: "pooled object spawn"},
	{Name: ApplicationQuit, Policy: hook.PolicyNotify, Payload: "none", Doc: "host is closing"},
	{Name: HitInstance, Policy: hook.PolicyChain, Payload: "Object owner -> Object hit", Doc: "hit about to be applied"},
	{Name: DrawBlackBorders, Policy: hook.PolicyNotify, Payload: "[]Object", Doc: "scene borders drawn"},
	{Name: OnEnableEnemy, Policy: hook.PolicyChain, Payload: "Object enemy -> bool isDead", Doc: "enemy enabled"},
	{Name: ReceiveDeathEvent, Policy: hook.PolicyMutate, Payload: "DeathEvent, *DeathFields", Doc: "enemy death event received"},
	{Name: RecordKillForJournal, Policy: hook.PolicyNotify, Payload: "JournalKill", Doc: "kill recorded in journal"},

	{Name: SetPlayerBool, Policy: hook.PolicyChain, Payload: "string target -> bool", Doc: "player bool write"},
	{Name: GetPlayerBool, Policy: hook.PolicyChain, Payload: "string target -> bool", Doc: "player bool read"},
	{Name: SetPlayerInt, Policy: hook.PolicyChain, Payload: "string target -> int", Doc: "player int write"},
	{Name: GetPlayerInt, Policy: hook.PolicyChain, Payload: "string target -> int", Doc: "player int read"},
	{Name: SetPlayerFloat, Policy: hook.PolicyChain, Payload: "string target -> float32", Doc: "player float write"},
	{Name: GetPlayerFloat, Policy: hook.PolicyChain, Payload: "string target -> float32", Doc: "player float read"},
	{Name: SetPlayerString, Policy: hook.PolicyChain, Payload: "string target -> string", Doc: "player string write"},
	{Name: GetPlayerString, Policy: hook.PolicyChain, Payload: "string target -> string", Doc: "player string read"},
	{Name: SetPlayerVector3, Policy: hook.PolicyChain, Payload: "string target -> Vector3", Doc: "player vector write"},
	{Name: GetPlayerVector3, Policy: hook.PolicyChain, Payload: "string target -> Vector3", Doc: "player vector read"},
	{Name: SetPlayerVariable, Policy: hook.PolicyChain, Payload: "string target -> value.Value", Doc: "player variable write, other kinds"},
	{Name: GetPlayerVariable, Policy: hook.PolicyChain, Payload: "string target -> value.Value", Doc: "player variable read, other kinds"},

	{Name: BlueHealth, Policy: hook.PolicyLastWins, Payload: "none -> int", Doc: "extra health, default 0"},
	{Name: TakeHealth, Policy: hook.PolicyChain, Payload: "int damage", Doc: "health about to be removed"},
	{Name: TakeDamage, Policy: hook.PolicyChainMutate, Payload: "int damage, *int hazard", Doc: "damage about to be taken"},
	{Name: AfterTakeDamage, Policy: hook.PolicyChain, Payload: "int hazard -> int damage", Doc: "damage after modifiers"},
	{Name: BeforePlayerDead, Policy: hook.PolicyNotify, Payload: "none", Doc: "player about to die"},
	{Name: AfterPlayerDead, Policy: hook.PolicyNotify, Payload: "none", Doc: "player died"},
	{Name: Attack, Policy: hook.PolicyNotify, Payload: "AttackDirection", Doc: "attack started"},
	{Name: DoAttack, Policy: hook.PolicyNotify, Payload: "none", Doc: "attack input handled"},
	{Name: AfterAttack, Policy: hook.PolicyNotify, Payload: "AttackDirection", Doc: "attack finished"},
	{Name: SlashHit, Policy: hook.PolicyNotify, Payload: "SlashHitEvent", Doc: "slash collided"},
	{Name: CharmUpdate, Policy: hook.PolicyNotify, Payload: "CharmUpdateEvent", Doc: "equipment recalculated"},
	{Name: HeroUpdate, Policy: hook.PolicyNotify, Payload: "none", Doc: "per-frame player update"},
	{Name: BeforeAddHealth, Policy: hook.PolicyChain, Payload: "int amount", Doc: "health about to be added"},
	{Name: FocusCost, Policy: hook.PolicyLastWins, Payload: "none -> float32", Doc: "focus cost multiplier, default 1"},
	{Name: SoulGain, Policy: hook.PolicyChain, Payload: "int amount", Doc: "soul about to be gained"},
	{Name: DashVector, Policy: hook.PolicyChain, Payload: "Vector2", Doc: "dash velocity"},
	{Name: DashPressed, Policy: hook.PolicyAny, Payload: "none -> bool", Doc: "dash input override"},

	{Name: SavegameLoad, Policy: hook.PolicyNotify, Payload: "int slot", Doc: "save slot loading"},
	{Name: SavegameSave, Policy: hook.PolicyNotify, Payload: "int slot", Doc: "save slot saving"},
	{Name: NewGame, Policy: hook.PolicyNotify, Payload: "none", Doc: "new game started"},
	{Name: SavegameClear, Policy: hook.PolicyNotify, Payload: "int slot", Doc: "save slot clearing"},
	{Name: AfterSavegameLoad, Policy: hook.PolicyNotify, Payload: "Object save data", Doc: "save data loaded"},
	{Name: BeforeSavegameSave, Policy: hook.PolicyNotify, Payload: "Object save data", Doc: "save data about to be written"},
	{Name: GetSaveFileName, Policy: hook.PolicyLastWins, Payload: "int slot -> string", Doc: "save file name override, \"\" for none"},
	{Name: AfterSavegameClear, Policy: hook.PolicyNotify, Payload: "int slot", Doc: "save slot cleared"},
	{Name: SaveLocalSettings, Policy: hook.PolicyNotify, Payload: "*LocalSettings", Doc: "per-save extension data being written"},
	{Name: LoadLocalSettings, Policy: hook.PolicyNotify, Payload: "*LocalSettings", Doc: "per-save extension data loaded"},

	{Name: SceneChanged, Policy: hook.PolicyNotify, Payload: "string scene", Doc: "scene changed"},
	{Name: BeforeSceneLoad, Policy: hook.PolicyChain, Payload: "string scene", Doc: "scene about to load"},
}

// Catalog returns a copy of every point definition.
func Catalog() []hook.Point {
	out := make([]hook.Point, len(catalog))
	copy(out, catalog)
	return out
}

// NewRegistry returns a registry with the full catalog defined.
func NewRegistry(opts ...hook.Option) *hook.Registry {
	return hook.NewRegistry(append(opts, hook.WithPoints(catalog...))...)
}
