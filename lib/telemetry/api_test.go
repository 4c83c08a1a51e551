package telemetry

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func readFile(t testing.TB, path string) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: ReplaceLevelNames,
	}))
	api := NewScopedAPI("crawler", NewSlogAPI(logger))

	api.ReportNote("no listings", "location", "gdansk")
	api.ReportBroken("directory.listing-page", "err", "timeout")
	api.ReportCritical("tree.set", "location", "gdansk")
	api.ReportCount("records", 3)

	output := buf.String()
	require.Contains(t, output, `level=NOTE msg="crawler: no listings" location=gdansk`)
	require.Contains(t, output, `level=ERROR msg="crawler: directory.listing-page" err=timeout`)
	require.Contains(t, output, `level=CRITICAL`)
	require.Contains(t, output, `id="crawler: records" n=3`)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	var api API = rec

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			api.ReportNote("note", "i", i)
			api.ReportInfo(fmt.Sprintf("info %d", i))
		}()
	}
	wg.Wait()
	api.ReportCount("pairs", 4)

	require.Len(t, rec.Events(), 100)
	require.Len(t, rec.Filter(SeverityNote), 50)
	require.Empty(t, rec.Filter(SeverityError))

	n, ok := rec.Count("pairs")
	require.True(t, ok)
	require.Equal(t, int64(4), n)

	value, ok := rec.Filter(SeverityNote)[0].Param("i")
	require.True(t, ok)
	require.IsType(t, 0, value)
}
