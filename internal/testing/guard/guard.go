package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("FINGATE_TEST_MODE") == "" {
			_ = os.Setenv("FINGATE_TEST_MODE", "1")
		}
	})
}
