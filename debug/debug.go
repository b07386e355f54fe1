// Package debug provides env-gated trace logging for the table engine.
// Set TBL_DEBUG_COMMAND, TBL_DEBUG_MAP or TBL_DEBUG_REPAIR to a truthy
// value to trace the corresponding subsystem on stderr.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Command bool
	Map     bool
	Repair  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Command = boolEnv("TBL_DEBUG_COMMAND")
	d.Map = boolEnv("TBL_DEBUG_MAP")
	d.Repair = boolEnv("TBL_DEBUG_REPAIR")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Command() bool {
	return d.Command
}
func Map() bool {
	return d.Map
}
func Repair() bool {
	return d.Repair
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func Commandf(format string, args ...any) {
	if d.Command {
		Logf(format, args...)
	}
}

func Mapf(format string, args ...any) {
	if d.Map {
		Logf(format, args...)
	}
}

func Repairf(format string, args ...any) {
	if d.Repair {
		Logf(format, args...)
	}
}

func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
