package patch

import "sync"

// locks holds one mutex per workbench path so that install and uninstall
// calls within this process never interleave on the same file. Other
// processes are not coordinated; the atomic rename keeps them from ever
// observing a half-written file.
var locks sync.Map // path -> *sync.Mutex

func lockPath(path string) (unlock func()) {
	v, _ := locks.LoadOrStore(path, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
