package threads

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var names sync.Map // goroutine id (int) -> name (string)

// SetName names the calling goroutine. The name shows up in snapshots and is
// what name hints from the capture engine are matched against.
func SetName(name string) {
	if id := CurrentID(); id > 0 {
		names.Store(id, name)
	}
}

// ClearName removes the calling goroutine's name. Goroutines that set a name
// should clear it before returning, ids are reused.
func ClearName() {
	if id := CurrentID(); id > 0 {
		names.Delete(id)
	}
}

// NameOf returns the display name of goroutine id.
func NameOf(id int) string {
	if v, ok := names.Load(id); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}

	if id == 1 {
		return MainName
	}

	return "goroutine " + strconv.Itoa(id)
}

// CurrentID returns the id of the calling goroutine, or 0 if it cannot be
// determined.
func CurrentID() int {
	var buf [64]byte

	n := runtime.Stack(buf[:], false)
	line := bytes.TrimPrefix(buf[:n], []byte("goroutine "))

	end := bytes.IndexByte(line, ' ')
	if end <= 0 {
		return 0
	}

	id, err := strconv.Atoi(string(line[:end]))
	if err != nil {
		return 0
	}

	return id
}
