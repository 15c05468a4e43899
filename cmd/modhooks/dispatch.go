package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/modhooks/internal/hook/value"
	"github.com/dshills/modhooks/internal/points"
)

// dispatcher runs one point from command-line arguments.
type dispatcher struct {
	usage string
	nargs int
	run   func(h *points.Hooks, args []string) (any, error)
}

func noArgs(fn func(h *points.Hooks)) dispatcher {
	return dispatcher{run: func(h *points.Hooks, _ []string) (any, error) {
		fn(h)
		return nil, nil
	}}
}

func intArg(usage string, fn func(h *points.Hooks, n int) any) dispatcher {
	return dispatcher{usage: usage, nargs: 1, run: func(h *points.Hooks, args []string) (any, error) {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", usage, err)
		}
		return fn(h, n), nil
	}}
}

func stringArg(usage string, fn func(h *points.Hooks, s string) any) dispatcher {
	return dispatcher{usage: usage, nargs: 1, run: func(h *points.Hooks, args []string) (any, error) {
		return fn(h, args[0]), nil
	}}
}

// playerVar dispatches a set or get of a player variable whose kind is
// taken from the JSON value.
func playerVar(set bool) dispatcher {
	return dispatcher{usage: "<target> <json>", nargs: 2, run: func(h *points.Hooks, args []string) (any, error) {
		var raw any
		if err := json.Unmarshal([]byte(args[1]), &raw); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		v := jsonValue(raw)
		if set {
			return h.SetPlayerVariable(args[0], v).Interface(), nil
		}
		return h.GetPlayerVariable(args[0], v).Interface(), nil
	}}
}

// jsonValue maps decoded JSON onto a Value. Whole numbers are ints and
// three-element number arrays are vectors.
func jsonValue(raw any) value.Value {
	switch x := raw.(type) {
	case float64:
		if x == float64(int(x)) {
			return value.Int(int(x))
		}
		return value.Float(float32(x))
	case []any:
		if len(x) == 3 {
			var v [3]float32
			for i, e := range x {
				f, ok := e.(float64)
				if !ok {
					return value.Generic(raw)
				}
				v[i] = float32(f)
			}
			return value.Vec3(value.Vector3{X: v[0], Y: v[1], Z: v[2]})
		}
	}
	return value.Of(raw)
}

var dispatchers = map[string]dispatcher{
	points.ApplicationQuit:  noArgs((*points.Hooks).ApplicationQuit),
	points.BeforePlayerDead: noArgs((*points.Hooks).BeforePlayerDead),
	points.AfterPlayerDead:  noArgs((*points.Hooks).AfterPlayerDead),
	points.DoAttack:         noArgs((*points.Hooks).DoAttack),
	points.HeroUpdate:       noArgs((*points.Hooks).HeroUpdate),
	points.NewGame:          noArgs((*points.Hooks).NewGame),
	points.Cursor: {run: func(h *points.Hooks, _ []string) (any, error) {
		return h.Cursor(), nil
	}},
	points.DashPressed: {run: func(h *points.Hooks, _ []string) (any, error) {
		return h.DashPressed(), nil
	}},
	points.BlueHealth: {run: func(h *points.Hooks, _ []string) (any, error) {
		return h.BlueHealth(), nil
	}},
	points.FocusCost: {run: func(h *points.Hooks, _ []string) (any, error) {
		return h.FocusCost(), nil
	}},

	points.TakeHealth:      intArg("<damage>", func(h *points.Hooks, n int) any { return h.TakeHealth(n) }),
	points.BeforeAddHealth: intArg("<amount>", func(h *points.Hooks, n int) any { return h.BeforeAddHealth(n) }),
	points.SoulGain:        intArg("<amount>", func(h *points.Hooks, n int) any { return h.SoulGain(n) }),
	points.GetSaveFileName: intArg("<slot>", func(h *points.Hooks, n int) any { return h.GetSaveFileName(n) }),
	points.SavegameLoad:    intArg("<slot>", func(h *points.Hooks, n int) any { h.SavegameLoad(n); return nil }),
	points.SavegameSave:    intArg("<slot>", func(h *points.Hooks, n int) any { h.SavegameSave(n); return nil }),
	points.SavegameClear:   intArg("<slot>", func(h *points.Hooks, n int) any { h.SavegameClear(n); return nil }),
	points.AfterSavegameClear: intArg("<slot>", func(h *points.Hooks, n int) any {
		h.AfterSavegameClear(n)
		return nil
	}),
	points.TakeDamage: intArg("<damage>", func(h *points.Hooks, n int) any {
		hazard := 1
		return map[string]int{"damage": h.TakeDamage(&hazard, n), "hazard": hazard}
	}),
	points.AfterTakeDamage: {usage: "<hazard> <damage>", nargs: 2, run: func(h *points.Hooks, args []string) (any, error) {
		hazard, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("hazard: %w", err)
		}
		damage, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("damage: %w", err)
		}
		return h.AfterTakeDamage(hazard, damage), nil
	}},

	points.SceneChanged:    stringArg("<scene>", func(h *points.Hooks, s string) any { h.SceneChanged(s); return nil }),
	points.BeforeSceneLoad: stringArg("<scene>", func(h *points.Hooks, s string) any { return h.BeforeSceneLoad(s) }),
	points.LanguageGet: {usage: "<key> <sheet> <text>", nargs: 3, run: func(h *points.Hooks, args []string) (any, error) {
		return h.LanguageGet(args[0], args[1], args[2]), nil
	}},

	points.SetPlayerVariable: playerVar(true),
	points.GetPlayerVariable: playerVar(false),
}

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <point> [args...]",
		Short: "Start the runtime and dispatch one point",
		Long: "Start the runtime with the configured extensions, dispatch one point and print the result.\n\n" +
			"Supported points:\n  " + strings.Join(dispatchUsage(), "\n  "),
		Example: `  modhooks dispatch soul_gain 11
  modhooks dispatch set_player_variable geo 120
  modhooks dispatch language_get TITLE Menu "Hollow Knight"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := dispatchers[args[0]]
			if !ok {
				return fmt.Errorf("point %q cannot be dispatched from the command line", args[0])
			}
			if len(args)-1 != d.nargs {
				return fmt.Errorf("usage: dispatch %s %s", args[0], d.usage)
			}

			rt, err := opts.newRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.Start(); err != nil {
				return err
			}
			defer rt.Shutdown()

			res, err := d.run(rt.Hooks(), args[1:])
			if err != nil {
				return err
			}
			if res != nil {
				out, err := json.Marshal(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}
}

func dispatchUsage() []string {
	lines := make([]string, 0, len(dispatchers))
	for name, d := range dispatchers {
		lines = append(lines, strings.TrimSpace(name+" "+d.usage))
	}
	slices.Sort(lines)
	return lines
}
