package posts

import (
	"os"
	"testing"

	"github.com/256dpi/xo"

	"github.com/256dpi/board/coal"
)

var lungoStore = coal.MustOpen(nil, "test-board-posts", xo.Crash)

func withTester(t *testing.T, fn func(*testing.T, *coal.Tester)) {
	if uri := os.Getenv("TEST_MONGODB_URI"); uri != "" {
		t.Run("Mongo", func(t *testing.T) {
			store := coal.MustConnect(uri, xo.Crash)
			defer store.Close()
			tester := coal.NewTester(store, Collection)
			tester.Clean()
			fn(t, tester)
		})
	}

	t.Run("Lungo", func(t *testing.T) {
		tester := coal.NewTester(lungoStore, Collection)
		tester.Clean()
		fn(t, tester)
	})
}
