package points

import (
	"github.com/dshills/modhooks/internal/hook"
	"github.com/dshills/modhooks/internal/hook/value"
)

// Hooks is the typed entry point the host glue calls at each interception
// point. It holds no state besides the registry.
type Hooks struct {
	r      *hook.Registry
	loaded func() map[string]string
}

// New wraps r. loaded reports the currently loaded extensions and their
// versions; it may be nil.
func New(r *hook.Registry, loaded func() map[string]string) *Hooks {
	return &Hooks{r: r, loaded: loaded}
}

// Registry returns the underlying registry.
func (h *Hooks) Registry() *hook.Registry { return h.r }

var none = hook.NoArgs{}

// LanguageGet resolves a localized string, starting from the host's own
// translation orig.
func (h *Hooks) LanguageGet(key, sheet, orig string) string {
	return hook.DispatchChain(h.r, LanguageGet, LanguageKey{Key: key, Sheet: sheet, Orig: orig}, orig)
}

// Cursor notifies subscribers. It reports whether any subscriber was
// registered; when none is, the host applies its default cursor logic.
func (h *Hooks) Cursor() (handled bool) {
	handled = h.r.Count(Cursor) > 0
	hook.DispatchNotify(h.r, Cursor, none)
	return handled
}

// ColliderCreate notifies that obj was created with a collider.
func (h *Hooks) ColliderCreate(obj Object) {
	hook.DispatchNotify(h.r, ColliderCreate, obj)
}

// ObjectPoolSpawn lets subscribers replace a spawned object.
func (h *Hooks) ObjectPoolSpawn(obj Object) Object {
	return hook.DispatchChain(h.r, ObjectPoolSpawn, none, obj)
}

// ApplicationQuit notifies that the host is closing.
func (h *Hooks) ApplicationQuit() {
	hook.DispatchNotify(h.r, ApplicationQuit, none)
}

// HitInstance lets subscribers replace a hit before it is applied.
func (h *Hooks) HitInstance(owner, hit Object) Object {
	return hook.DispatchChain(h.r, HitInstance, owner, hit)
}

// DrawBlackBorders notifies with the border objects.
func (h *Hooks) DrawBlackBorders(borders []Object) {
	hook.DispatchNotify(h.r, DrawBlackBorders, borders)
}

// OnEnableEnemy returns whether the enemy should be treated as dead.
func (h *Hooks) OnEnableEnemy(enemy Object, isAlreadyDead bool) bool {
	return hook.DispatchChain(h.r, OnEnableEnemy, enemy, isAlreadyDead)
}

// ReceiveDeathEvent lets subscribers edit the death event fields.
func (h *Hooks) ReceiveDeathEvent(ev DeathEvent, fields *DeathFields) {
	hook.DispatchMutate(h.r, ReceiveDeathEvent, ev, fields)
}

// RecordKillForJournal notifies that a kill was recorded.
func (h *Hooks) RecordKillForJournal(k JournalKill) {
	hook.DispatchNotify(h.r, RecordKillForJournal, k)
}

// BlueHealth returns extra health; 0 when no subscriber answers.
func (h *Hooks) BlueHealth() int {
	return hook.DispatchLastWins(h.r, BlueHealth, none, 0)
}

// TakeHealth returns the health to remove.
func (h *Hooks) TakeHealth(damage int) int {
	return hook.DispatchChain(h.r, TakeHealth, none, damage)
}

// TakeDamage returns the damage to take. Subscribers may also change the
// hazard type through hazard.
func (h *Hooks) TakeDamage(hazard *int, damage int) int {
	return hook.DispatchChainMutate(h.r, TakeDamage, none, damage, hazard)
}

// AfterTakeDamage returns the final damage amount.
func (h *Hooks) AfterTakeDamage(hazard, damage int) int {
	return hook.DispatchChain(h.r, AfterTakeDamage, hazard, damage)
}

// BeforePlayerDead notifies before the player dies.
func (h *Hooks) BeforePlayerDead() { hook.DispatchNotify(h.r, BeforePlayerDead, none) }

// AfterPlayerDead notifies after the player died.
func (h *Hooks) AfterPlayerDead() { hook.DispatchNotify(h.r, AfterPlayerDead, none) }

// Attack notifies an attack in dir.
func (h *Hooks) Attack(dir AttackDirection) { hook.DispatchNotify(h.r, Attack, dir) }

// DoAttack notifies that attack input was handled.
func (h *Hooks) DoAttack() { hook.DispatchNotify(h.r, DoAttack, none) }

// AfterAttack notifies that the attack in dir finished.
func (h *Hooks) AfterAttack(dir AttackDirection) { hook.DispatchNotify(h.r, AfterAttack, dir) }

// SlashHit notifies a slash collision. A nil collider is ignored.
func (h *Hooks) SlashHit(collider, source Object) {
	if collider == nil {
		return
	}
	hook.DispatchNotify(h.r, SlashHit, SlashHitEvent{Collider: collider, Source: source})
}

// CharmUpdate notifies that equipment was recalculated.
func (h *Hooks) CharmUpdate(playerData, hero Object) {
	hook.DispatchNotify(h.r, CharmUpdate, CharmUpdateEvent{PlayerData: playerData, Hero: hero})
}

// HeroUpdate notifies the per-frame player update.
func (h *Hooks) HeroUpdate() { hook.DispatchNotify(h.r, HeroUpdate, none) }

// BeforeAddHealth returns the health to add.
func (h *Hooks) BeforeAddHealth(amount int) int {
	return hook.DispatchChain(h.r, BeforeAddHealth, none, amount)
}

// FocusCost returns the focus cost multiplier; 1 when no subscriber answers.
func (h *Hooks) FocusCost() float32 {
	return hook.DispatchLastWins(h.r, FocusCost, none, float32(1))
}

// SoulGain returns the soul to gain.
func (h *Hooks) SoulGain(amount int) int {
	return hook.DispatchChain(h.r, SoulGain, none, amount)
}

// DashVector returns the dash velocity.
func (h *Hooks) DashVector(v Vector2) Vector2 {
	return hook.DispatchChain(h.r, DashVector, none, v)
}

// DashPressed reports whether any subscriber asks for a dash.
func (h *Hooks) DashPressed() bool {
	return hook.DispatchAny(h.r, DashPressed)
}

// SavegameLoad notifies that slot is loading.
func (h *Hooks) SavegameLoad(slot int) { hook.DispatchNotify(h.r, SavegameLoad, slot) }

// SavegameSave notifies that slot is saving.
func (h *Hooks) SavegameSave(slot int) { hook.DispatchNotify(h.r, SavegameSave, slot) }

// NewGame notifies that a new game started.
func (h *Hooks) NewGame() { hook.DispatchNotify(h.r, NewGame, none) }

// SavegameClear notifies that slot is being cleared.
func (h *Hooks) SavegameClear(slot int) { hook.DispatchNotify(h.r, SavegameClear, slot) }

// AfterSavegameLoad notifies with the loaded save data.
func (h *Hooks) AfterSavegameLoad(data Object) { hook.DispatchNotify(h.r, AfterSavegameLoad, data) }

// BeforeSavegameSave notifies with the save data about to be written.
func (h *Hooks) BeforeSavegameSave(data Object) { hook.DispatchNotify(h.r, BeforeSavegameSave, data) }

// GetSaveFileName returns a save file name override for slot, or "" for
// none. The last subscriber to return wins, even when it returns "".
func (h *Hooks) GetSaveFileName(slot int) string {
	return hook.DispatchLastWins(h.r, GetSaveFileName, slot, "")
}

// AfterSavegameClear notifies that slot was cleared.
func (h *Hooks) AfterSavegameClear(slot int) { hook.DispatchNotify(h.r, AfterSavegameClear, slot) }

// SaveLocalSettings records the loaded extensions into data and notifies.
func (h *Hooks) SaveLocalSettings(data *LocalSettings) {
	if data == nil {
		data = &LocalSettings{}
	}
	if h.loaded != nil {
		data.LoadedExtensions = h.loaded()
	}
	hook.DispatchNotify(h.r, SaveLocalSettings, data)
}

// LoadLocalSettings notifies with per-save data read from disk.
func (h *Hooks) LoadLocalSettings(data *LocalSettings) {
	hook.DispatchNotify(h.r, LoadLocalSettings, data)
}

// SceneChanged notifies that the active scene changed.
func (h *Hooks) SceneChanged(scene string) { hook.DispatchNotify(h.r, SceneChanged, scene) }

// BeforeSceneLoad returns the scene to load.
func (h *Hooks) BeforeSceneLoad(scene string) string {
	return hook.DispatchChain(h.r, BeforeSceneLoad, none, scene)
}

// Player variable accessors.

// SetPlayerBool returns the bool to store for target.
func (h *Hooks) SetPlayerBool(target string, v bool) bool {
	return hook.DispatchChain(h.r, SetPlayerBool, target, v)
}

// GetPlayerBool returns the bool to report for target given the stored one.
func (h *Hooks) GetPlayerBool(target string, stored bool) bool {
	return hook.DispatchChain(h.r, GetPlayerBool, target, stored)
}

// SetPlayerInt returns the int to store for target.
func (h *Hooks) SetPlayerInt(target string, v int) int {
	return hook.DispatchChain(h.r, SetPlayerInt, target, v)
}

// GetPlayerInt returns the int to report for target.
func (h *Hooks) GetPlayerInt(target string, stored int) int {
	return hook.DispatchChain(h.r, GetPlayerInt, target, stored)
}

// SetPlayerFloat returns the float to store for target.
func (h *Hooks) SetPlayerFloat(target string, v float32) float32 {
	return hook.DispatchChain(h.r, SetPlayerFloat, target, v)
}

// GetPlayerFloat returns the float to report for target.
func (h *Hooks) GetPlayerFloat(target string, stored float32) float32 {
	return hook.DispatchChain(h.r, GetPlayerFloat, target, stored)
}

// SetPlayerString returns the string to store for target.
func (h *Hooks) SetPlayerString(target string, v string) string {
	return hook.DispatchChain(h.r, SetPlayerString, target, v)
}

// GetPlayerString returns the string to report for target.
func (h *Hooks) GetPlayerString(target string, stored string) string {
	return hook.DispatchChain(h.r, GetPlayerString, target, stored)
}

// SetPlayerVector3 returns the vector to store for target.
func (h *Hooks) SetPlayerVector3(target string, v value.Vector3) value.Vector3 {
	return hook.DispatchChain(h.r, SetPlayerVector3, target, v)
}

// GetPlayerVector3 returns the vector to report for target.
func (h *Hooks) GetPlayerVector3(target string, stored value.Vector3) value.Vector3 {
	return hook.DispatchChain(h.r, GetPlayerVector3, target, stored)
}

// SetPlayerVariable routes v to the point for its kind and returns the
// value to store.
func (h *Hooks) SetPlayerVariable(target string, v value.Value) value.Value {
	return accessors[v.Kind()].set(h, target, v)
}

// GetPlayerVariable routes stored to the point for its kind and returns
// the value to report.
func (h *Hooks) GetPlayerVariable(target string, stored value.Value) value.Value {
	return accessors[stored.Kind()].get(h, target, stored)
}
