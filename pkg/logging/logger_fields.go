package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// Key lifecycle field helpers

func EngineID(id string) Field {
	return String("engine_id", id)
}

func WindowIndex(idx uint64) Field {
	return Uint64("window_index", idx)
}

func MazeSize(size int) Field {
	return Int("maze_size", size)
}

func SecurityLevel(level string) Field {
	return String("security_level", level)
}

func Attempt(n int) Field {
	return Int("attempt", n)
}

func Density(d float64) Field {
	return Float64("density", d)
}

func PathLength(n int) Field {
	return Int("path_length", n)
}

func DirectionChanges(n int) Field {
	return Int("direction_changes", n)
}

// MazeFingerprint carries the short maze identity hash, never seed or
// key material.
func MazeFingerprint(fp string) Field {
	return String("maze_fingerprint", fp)
}

// KeyFingerprint carries the short key identity hash, never key material.
func KeyFingerprint(fp string) Field {
	return String("key_fingerprint", fp)
}
